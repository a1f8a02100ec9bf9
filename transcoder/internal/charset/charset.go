package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/copybook/errors"
)

// Charset converts display bytes. A nil *Charset behaves as ASCII.
type Charset struct {
	cm        *charmap.Charmap
	name      string
	toASCII   [256]byte
	fromASCII [128]byte
	space     byte
	sub       byte
	ebcdic    bool
}

var (
	ASCII  = &Charset{name: "ascii", space: ' ', sub: '?'}
	Latin1 = build("latin1", charmap.ISO8859_1, false)
	CP037  = build("cp037", charmap.CodePage037, true)
	CP1047 = build("cp1047", charmap.CodePage1047, true)
)

var byName = map[string]*Charset{
	"ascii":     ASCII,
	"latin1":    Latin1,
	"iso8859-1": Latin1,
	"cp037":     CP037,
	"ibm037":    CP037,
	"037":       CP037,
	"cp1047":    CP1047,
	"ibm1047":   CP1047,
	"1047":      CP1047,
}

// Lookup returns the charset registered under name, case insensitively.
func Lookup(name string) (*Charset, error) {
	if name == "" {
		return ASCII, nil
	}
	cs, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.Unsupported(errors.PhaseLoad, fmt.Sprintf("unknown charset %q", name))
	}
	return cs, nil
}

// Names lists the canonical charset names.
func Names() []string {
	return []string{ASCII.name, Latin1.name, CP037.name, CP1047.name}
}

func build(name string, cm *charmap.Charmap, ebcdic bool) *Charset {
	cs := &Charset{name: name, cm: cm, ebcdic: ebcdic}

	for i := range cs.toASCII {
		r := cm.DecodeByte(byte(i))
		if r < utf8.RuneSelf {
			cs.toASCII[i] = byte(r)
		} else {
			cs.toASCII[i] = '?'
		}
	}
	for r := range cs.fromASCII {
		b, ok := cm.EncodeRune(rune(r))
		if !ok {
			b, _ = cm.EncodeRune('?')
		}
		cs.fromASCII[r] = b
	}
	cs.space = cs.fromASCII[' ']
	cs.sub = cs.fromASCII['?']
	return cs
}

// Name returns the canonical name.
func (c *Charset) Name() string {
	if c == nil {
		return ASCII.name
	}
	return c.name
}

// IsEBCDIC reports whether the set uses EBCDIC zone conventions.
func (c *Charset) IsEBCDIC() bool {
	return c != nil && c.ebcdic
}

// IsIdentity reports whether bytes pass through untranslated.
func (c *Charset) IsIdentity() bool {
	return c == nil || c.cm == nil
}

// DecodeText converts record bytes into a string.
func (c *Charset) DecodeText(src []byte) string {
	if c.IsIdentity() {
		return string(src)
	}
	var b strings.Builder
	b.Grow(len(src))
	for _, x := range src {
		b.WriteRune(c.cm.DecodeByte(x))
	}
	return b.String()
}

// EncodeText writes s into dst one character per byte, padding with the
// charset's space and truncating on the right. Characters without a
// mapping become '?'.
func (c *Charset) EncodeText(dst []byte, s string) {
	if c.IsIdentity() {
		if len(s) > len(dst) {
			s = s[:runeCut(s, len(dst))]
		}
		n := copy(dst, s)
		for i := n; i < len(dst); i++ {
			dst[i] = ' '
		}
		return
	}

	i := 0
	for _, r := range s {
		if i == len(dst) {
			break
		}
		b, ok := c.cm.EncodeRune(r)
		if !ok {
			b = c.sub
		}
		dst[i] = b
		i++
	}
	for ; i < len(dst); i++ {
		dst[i] = c.space
	}
}

// ToASCII translates src into dst byte for byte. Characters outside ASCII
// become '?'. dst must be at least len(src).
func (c *Charset) ToASCII(dst, src []byte) {
	if c.IsIdentity() {
		copy(dst, src)
		return
	}
	for i, x := range src {
		dst[i] = c.toASCII[x]
	}
}

// FromASCII translates ASCII src into dst byte for byte.
func (c *Charset) FromASCII(dst, src []byte) {
	if c.IsIdentity() {
		copy(dst, src)
		return
	}
	for i, x := range src {
		if x < utf8.RuneSelf {
			dst[i] = c.fromASCII[x]
		} else {
			dst[i] = c.sub
		}
	}
}

// runeCut returns the largest index <= n that does not split a UTF-8
// sequence in s.
func runeCut(s string, n int) int {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}
