// Package charset maps character set names to decoders for byte-mode
// segments.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Default is the character set used when none is named. Each byte becomes
// the code point of the same value.
const Default = "ISO-8859-1"

// Charset is a named character set with its aliases.
type Charset struct {
	Name     string
	Aliases  []string
	Encoding encoding.Encoding
}

var (
	ISO8859_1 = &Charset{"ISO-8859-1", []string{"ISO8859_1", "LATIN1"}, charmap.ISO8859_1}
	Cp1252    = &Charset{"windows-1252", []string{"Cp1252"}, charmap.Windows1252}
	Cp437     = &Charset{"IBM437", []string{"Cp437"}, charmap.CodePage437}
	SJIS      = &Charset{"Shift_JIS", []string{"SJIS"}, japanese.ShiftJIS}
	GB18030   = &Charset{"GB18030", []string{"GB2312", "EUC_CN", "GBK"}, simplifiedchinese.GB18030}
	UTF8      = &Charset{"UTF-8", []string{"UTF8"}, unicode.UTF8}
	UTF16BE   = &Charset{"UTF-16BE", []string{"UnicodeBigUnmarked"}, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
)

var nameToCharset map[string]*Charset

func init() {
	nameToCharset = make(map[string]*Charset)
	for _, cs := range []*Charset{ISO8859_1, Cp1252, Cp437, SJIS, GB18030, UTF8, UTF16BE} {
		nameToCharset[strings.ToUpper(cs.Name)] = cs
		for _, alias := range cs.Aliases {
			nameToCharset[strings.ToUpper(alias)] = cs
		}
	}
}

// Lookup returns the character set for name, ignoring case. The empty
// name selects Default.
func Lookup(name string) (*Charset, bool) {
	if name == "" {
		name = Default
	}
	cs, ok := nameToCharset[strings.ToUpper(name)]
	return cs, ok
}

// DecodeBytes converts bytes in the named character set to a UTF-8 string.
// Unknown names and undecodable input fall back to the default mapping.
func DecodeBytes(data []byte, name string) string {
	cs, ok := Lookup(name)
	if !ok {
		cs = ISO8859_1
	}
	decoded, _, err := transform.Bytes(cs.Encoding.NewDecoder(), data)
	if err != nil && cs != ISO8859_1 {
		decoded, _, err = transform.Bytes(ISO8859_1.Encoding.NewDecoder(), data)
	}
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// EncodeString converts text to bytes in the named character set.
func EncodeString(text, name string) ([]byte, error) {
	cs, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("charset: unknown character set %q", name)
	}
	encoded, _, err := transform.Bytes(cs.Encoding.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("charset: %q is not representable in %s: %w", text, cs.Name, err)
	}
	return encoded, nil
}
