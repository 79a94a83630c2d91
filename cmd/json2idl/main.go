// Command json2idl reads a JSON (or YAML) document on stdin and writes
// the equivalent candid argument text on stdout. A type is required:
// candid values cannot be constructed from a schema-less document alone.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/idljson/cli"
)

func main() {
	var (
		didFiles = pflag.StringArrayP("did", "d", nil, "Path to a .did schema file (repeatable; the first provides the type environment)")
		typeStr  = pflag.StringP("typ", "t", "", "Type name or type expression; \"(t1, t2)\" converts an argument tuple")
		useInit  = pflag.BoolP("init", "i", false, "Convert against the schema's init-argument types")
		strict   = pflag.BoolP("strict", "s", false, "Reject document keys that match no record field")
		yamlIn   = pflag.Bool("yaml", false, "Parse the input as YAML instead of JSON")
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

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read stdin: %v\n", err)
		os.Exit(1)
	}

	out, err := cli.JSON2IDL(input, cli.JSON2IDLOptions{
		DIDFiles: *didFiles,
		Type:     *typeStr,
		UseInit:  *useInit,
		Strict:   *strict,
		YAML:     *yamlIn,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
