package copybook

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/copybook/errors"
)

func TestField_Picture(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{PicX(10), "X(10)"},
		{Pic9(4), "9(4)"},
		{Pic9(4).WithSign(), "S9(4)"},
		{Pic9(4).Comp(), "9(4) COMP"},
		{Pic9V9(7, 2).WithSign().Comp3(), "S9(5)V9(2) COMP-3"},
		{Pic9V9(2, 2), "V9(2)"},
		{Pic9Dot9(6, 2), "9(3).9(2)"},
		{Pic9Dot9(6, 0), "9(6)"},
		{Pic9Dot9(7, 2).Comp3(), "9(5)V9(2) COMP-3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.field.Picture(); got != tt.want {
				t.Errorf("Picture() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestField_Validate(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		ok    bool
	}{
		{"alphanumeric", PicX(1), true},
		{"zero length", PicX(0), false},
		{"negative scale", Field{Kind: DecimalAssumed, Length: 4, Scale: -1}, false},
		{"scale over length", Pic9V9(2, 3), false},
		{"scale equals length", Pic9V9(2, 2), true},
		{"comp alphanumeric", PicX(4).Comp(), false},
		{"comp-3 alphanumeric", PicX(4).Comp3(), false},
		{"comp 18 digits", Pic9(18).Comp(), true},
		{"comp 19 digits", Pic9(19).Comp(), false},
		{"numeric with scale", Field{Kind: Numeric, Length: 4, Scale: 1}, false},
		{"explicit without point room", Pic9Dot9(2, 2), false},
		{"explicit minimal", Pic9Dot9(3, 2), true},
		{"unknown kind", Field{Kind: Kind(9), Length: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if !tt.ok {
				var e *errors.Error
				if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidSchema {
					t.Fatalf("Validate() = %v, want invalid_schema error", err)
				}
			}
		})
	}
}

func TestField_Digits(t *testing.T) {
	tests := []struct {
		field     Field
		digits    int
		intDigits int
	}{
		{Pic9(5), 5, 5},
		{Pic9V9(7, 2), 7, 5},
		{Pic9Dot9(6, 2), 5, 3},
		{Pic9Dot9(6, 0), 6, 6},
		{Pic9Dot9(6, 2).Comp3(), 6, 4},
	}

	for _, tt := range tests {
		if got := tt.field.Digits(); got != tt.digits {
			t.Errorf("%s Digits() = %d, want %d", tt.field.Picture(), got, tt.digits)
		}
		if got := tt.field.IntDigits(); got != tt.intDigits {
			t.Errorf("%s IntDigits() = %d, want %d", tt.field.Picture(), got, tt.intDigits)
		}
	}
}

func TestKindString(t *testing.T) {
	if DecimalAssumed.String() != "decimal-assumed" {
		t.Errorf("got %s", DecimalAssumed)
	}
	if Kind(200).String() != "unknown" {
		t.Errorf("got %s", Kind(200))
	}
	if PackedDecimal.String() != "comp-3" {
		t.Errorf("got %s", PackedDecimal)
	}
}
