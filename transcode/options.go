package transcode

import (
	"fmt"

	"github.com/wippyai/idljson/candid"
)

// BytesFormat selects how byte vectors render in documents.
type BytesFormat int

const (
	// BytesNumbers renders a list of small integers. The default.
	BytesNumbers BytesFormat = iota
	// BytesHex renders a lowercase hex string.
	BytesHex
	// BytesBase64 renders a standard base64 string.
	BytesBase64
)

func (f BytesFormat) String() string {
	switch f {
	case BytesNumbers:
		return "numbers"
	case BytesHex:
		return "hex"
	case BytesBase64:
		return "base64"
	}
	return fmt.Sprintf("bytes_format(%d)", int(f))
}

// ParseBytesFormat maps a flag value to a BytesFormat.
func ParseBytesFormat(s string) (BytesFormat, error) {
	switch s {
	case "", "numbers":
		return BytesNumbers, nil
	case "hex":
		return BytesHex, nil
	case "base64":
		return BytesBase64, nil
	default:
		return 0, fmt.Errorf("unknown bytes format %q (numbers, hex, base64)", s)
	}
}

// Options configures both converters. Constructed once per invocation
// and read-only afterwards.
type Options struct {
	// Env resolves named types. Nil means an empty environment.
	Env *candid.Env
	// Bytes selects byte-vector rendering in the encode direction.
	Bytes BytesFormat
	// Compact selects compact document output at the serialization
	// boundary; carried here so one options value travels the whole
	// invocation.
	Compact bool
	// Strict makes the decoder reject document object keys that match
	// no declared record field.
	Strict bool
}

func (o Options) env() *candid.Env {
	if o.Env != nil {
		return o.Env
	}
	return candid.NewEnv()
}
