package candid

import (
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/wippyai/idljson/errors"
)

// Principal is an opaque reference identifier (canister or user id).
type Principal struct {
	Raw []byte
}

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// PrincipalFromText parses the standard textual encoding: base32 of a
// CRC-32 checksum followed by the raw bytes, lowercase, grouped by dashes
// every five characters.
func PrincipalFromText(text string) (Principal, error) {
	compact := strings.ReplaceAll(text, "-", "")
	decoded, err := principalEncoding.DecodeString(strings.ToUpper(compact))
	if err != nil {
		return Principal{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("principal %q is not valid base32", text).
			Cause(err).
			Build()
	}
	if len(decoded) < 4 {
		return Principal{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("principal %q is too short", text).
			Build()
	}
	raw := decoded[4:]
	want := binary.BigEndian.Uint32(decoded[:4])
	if got := crc32.ChecksumIEEE(raw); got != want {
		return Principal{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("principal %q has a bad checksum", text).
			Build()
	}
	return Principal{Raw: append([]byte(nil), raw...)}, nil
}

// String renders the textual encoding.
func (p Principal) String() string {
	buf := make([]byte, 4+len(p.Raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(p.Raw))
	copy(buf[4:], p.Raw)
	s := strings.ToLower(principalEncoding.EncodeToString(buf))

	var b strings.Builder
	for i := 0; i < len(s); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + 5
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}
