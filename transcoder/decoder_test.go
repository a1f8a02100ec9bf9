package transcoder

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
)

func TestDecoder_New(t *testing.T) {
	d := NewDecoder()
	if d == nil {
		t.Fatal("NewDecoder returned nil")
	}
}

func TestDecoder_NewWithCompiler(t *testing.T) {
	c := NewCompiler()
	d := NewDecoderWithCompiler(c)
	if d == nil || d.Compiler() != c {
		t.Fatal("NewDecoderWithCompiler did not keep the compiler")
	}
}

func TestDecoder_ShortBuffer(t *testing.T) {
	s := employeeSchema()
	buf := append([]byte("EMP001    "), 0x00, 0x2A, 0x00, 0x06)

	rec, n, err := NewDecoder().Decode(s, buf, 0)
	if !stderrors.Is(err, errors.ErrLayout) {
		t.Fatalf("Decode error = %v, want layout error", err)
	}

	var e *errors.Error
	stderrors.As(err, &e)
	if len(e.Path) != 1 || e.Path[0] != "balance" {
		t.Errorf("Path = %v, want [balance]", e.Path)
	}
	if !strings.Contains(e.Detail, "[12,16)") {
		t.Errorf("Detail = %q, want range", e.Detail)
	}

	// fields before the failure are kept
	if n != 12 {
		t.Errorf("consumed = %d, want 12", n)
	}
	if rec["age"].Int64() != 42 {
		t.Errorf("partial record = %v", rec)
	}
	if _, ok := rec["balance"]; ok {
		t.Error("failed field must not be set")
	}
}

func TestDecoder_StartOutOfRange(t *testing.T) {
	s := copybook.NewSchema("r").Add("a", copybook.PicX(1))
	if _, _, err := NewDecoder().Decode(s, []byte("a"), 2); !stderrors.Is(err, errors.ErrLayout) {
		t.Errorf("Decode error = %v, want layout error", err)
	}
	if _, _, err := NewDecoder().Decode(s, []byte("a"), -1); !stderrors.Is(err, errors.ErrLayout) {
		t.Errorf("Decode error = %v, want layout error", err)
	}
}

func TestDecoder_ConversionError(t *testing.T) {
	s := copybook.NewSchema("r").
		Add("a", copybook.PicX(2)).
		Group("g", copybook.NewSchema("g").Add("qty", copybook.Pic9(3)))

	_, _, err := NewDecoder().Decode(s, []byte("ok1X3"), 0)
	if !stderrors.Is(err, errors.ErrConversion) {
		t.Fatalf("Decode error = %v, want conversion error", err)
	}

	var e *errors.Error
	stderrors.As(err, &e)
	if strings.Join(e.Path, ".") != "g.qty" {
		t.Errorf("Path = %v, want g.qty", e.Path)
	}
	if e.Picture != "9(3)" {
		t.Errorf("Picture = %q, want 9(3)", e.Picture)
	}
	if e.Value != "1X3" {
		t.Errorf("Value = %v, want 1X3", e.Value)
	}
}

func TestDecoder_SpacesAreNotNumbers(t *testing.T) {
	s := copybook.NewSchema("r").Add("n", copybook.Pic9(3))
	if _, _, err := NewDecoder().Decode(s, []byte("   "), 0); !stderrors.Is(err, errors.ErrConversion) {
		t.Errorf("Decode error = %v, want conversion error", err)
	}
}

func TestDecoder_PackedEncodingError(t *testing.T) {
	s := copybook.NewSchema("r").Add("p", copybook.Pic9(3).Comp3())
	_, _, err := NewDecoder().Decode(s, []byte{0x1A, 0x2C}, 0)
	if !stderrors.Is(err, errors.ErrEncoding) {
		t.Fatalf("Decode error = %v, want encoding error", err)
	}
	if !strings.Contains(err.Error(), "COMP-3") {
		t.Errorf("error %q should name the picture", err)
	}
}

func TestDecoder_Trim(t *testing.T) {
	s := copybook.NewSchema("r").Add("a", copybook.PicX(6))
	opts := DefaultOptions()
	opts.TrimText = true
	rec, _, err := NewDecoderWithOptions(NewCompiler(), opts).Decode(s, []byte(" ab   "), 0)
	if err != nil {
		t.Fatal(err)
	}
	if rec["a"].Str() != " ab" {
		t.Errorf("a = %q, want leading space kept", rec["a"].Str())
	}
}

func TestDecoder_ValueKinds(t *testing.T) {
	s := copybook.NewSchema("r").
		Add("n", copybook.Pic9(2)).
		Add("d", copybook.Pic9V9(3, 1)).
		Add("b", copybook.Pic9(4).Comp()).
		Add("bs", copybook.Pic9V9(4, 2).Comp()).
		Add("p", copybook.Pic9(3).Comp3())

	buf := append([]byte("12345"), 0x00, 0x07, 0x01, 0x2C, 0x12, 0x3C)
	rec, _, err := NewDecoder().Decode(s, buf, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]copybook.ValueKind{
		"n":  copybook.IntValue,
		"d":  copybook.DecimalValue,
		"b":  copybook.IntValue,
		"bs": copybook.DecimalValue,
		"p":  copybook.IntValue,
	}
	for name, kind := range want {
		if rec[name].Kind() != kind {
			t.Errorf("%s kind = %s, want %s", name, rec[name].Kind(), kind)
		}
	}
	if rec["bs"].Dec().String() != "3" {
		t.Errorf("bs = %s, want 3 (300 scaled by 2)", rec["bs"])
	}
}
