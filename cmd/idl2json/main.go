// Command idl2json reads candid argument text on stdin and writes the
// equivalent JSON (or YAML) document on stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/idljson/cli"
	"github.com/wippyai/idljson/transcode"
)

func main() {
	var (
		didFiles = pflag.StringArrayP("did", "d", nil, "Path to a .did schema file (repeatable; the first provides the type environment)")
		typeStr  = pflag.StringP("typ", "t", "", "Type name or type expression; \"(t1, t2)\" converts an argument tuple")
		useInit  = pflag.BoolP("init", "i", false, "Convert against the schema's init-argument types")
		bytesAs  = pflag.StringP("bytes-as", "b", "numbers", "Byte vector rendering: numbers, hex, or base64")
		compact  = pflag.BoolP("compact", "c", false, "Compact JSON output (default when stdout is not a terminal)")
		yamlOut  = pflag.Bool("yaml", false, "Emit YAML instead of JSON")
		verbose  = pflag.BoolP("verbose", "v", false, "Log conversion decisions to stderr")
	)
	pflag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		cli.SetLogger(logger)
	}

	// Pretty output is for humans; pipes get compact JSON unless the
	// flag says otherwise.
	if !pflag.CommandLine.Changed("compact") {
		*compact = !term.IsTerminal(int(os.Stdout.Fd()))
	}

	bytesFormat, err := transcode.ParseBytesFormat(*bytesAs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read stdin: %v\n", err)
		os.Exit(1)
	}

	out, err := cli.IDL2JSON(input, cli.IDL2JSONOptions{
		DIDFiles: *didFiles,
		Type:     *typeStr,
		UseInit:  *useInit,
		Bytes:    bytesFormat,
		Compact:  *compact,
		YAML:     *yamlOut,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
