package transcoder

import (
	"github.com/wippyai/copybook/transcoder/internal/charset"
	"github.com/wippyai/copybook/transcoder/internal/zoned"
)

// Charset translates display fields between the record character set and
// text. See LookupCharset.
type Charset = charset.Charset

// Predefined character sets.
var (
	ASCII  = charset.ASCII
	Latin1 = charset.Latin1
	CP037  = charset.CP037
	CP1047 = charset.CP1047
)

// LookupCharset resolves a charset by name: ascii, latin1, cp037 or cp1047.
func LookupCharset(name string) (*Charset, error) {
	return charset.Lookup(name)
}

// CharsetNames lists the supported charset names.
func CharsetNames() []string {
	return charset.Names()
}

// Options configures decoder and encoder behavior.
type Options struct {
	// Charset of display fields. Nil means ASCII.
	Charset *Charset
	// TrimText removes trailing spaces from decoded alphanumeric fields.
	TrimText bool
}

// DefaultOptions returns the default configuration: ASCII, untrimmed text.
func DefaultOptions() Options {
	return Options{
		Charset: charset.ASCII,
	}
}

func (o Options) signs() *zoned.Signs {
	if o.Charset.IsEBCDIC() {
		return &zoned.EBCDIC
	}
	return &zoned.ASCII
}
