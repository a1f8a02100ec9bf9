package copybook

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBlank(t *testing.T) {
	s := NewSchema("rec").
		Add("name", PicX(5)).
		Add("qty", Pic9(3)).
		Add("price", Pic9Dot9(6, 2)).
		Group("inner", NewSchema("inner").Add("flag", PicX(1)))

	r := Blank(s)

	if got := r["name"].Str(); got != "     " {
		t.Errorf("name = %q, want 5 spaces", got)
	}
	if r["qty"].Kind() != IntValue || r["qty"].Int64() != 0 {
		t.Errorf("qty = %v, want Int(0)", r["qty"])
	}
	if r["price"].Kind() != DecimalValue || r["price"].Dec().StringFixed(2) != "0.00" {
		t.Errorf("price = %v, want 0.00", r["price"])
	}
	if v, ok := r.Get("inner", "flag"); !ok || v.Str() != " " {
		t.Errorf("inner.flag = %v, %v", v, ok)
	}
}

func TestFromNative(t *testing.T) {
	s := NewSchema("rec").
		Add("id", PicX(6)).
		Add("age", Pic9(4).Comp()).
		Add("bal", Pic9V9(7, 2).Comp3()).
		Group("addr", NewSchema("addr").Add("zip", Pic9(5)))

	var m map[string]any
	dec := json.NewDecoder(strings.NewReader(`{"id":"EMP001","age":42,"bal":650.00,"addr":{"zip":"01234"}}`))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		t.Fatal(err)
	}

	r, err := FromNative(s, m)
	if err != nil {
		t.Fatalf("FromNative error: %v", err)
	}

	want := Record{
		"id":   Text("EMP001"),
		"age":  Int(42),
		"bal":  DecimalString("650"),
		"addr": Group(Record{"zip": Int(1234)}),
	}
	if !r.Equal(want) {
		t.Errorf("FromNative = %v, want %v", r, want)
	}
}

func TestFromNative_Errors(t *testing.T) {
	s := NewSchema("rec").Add("n", Pic9(3)).Group("g", NewSchema("g").Add("x", PicX(1)))

	if _, err := FromNative(s, map[string]any{"n": "abc"}); err == nil || !strings.Contains(err.Error(), "at n") {
		t.Errorf("bad number error = %v", err)
	}
	if _, err := FromNative(s, map[string]any{"g": "scalar"}); err == nil {
		t.Error("scalar for group should fail")
	}
	if _, err := FromNative(s, map[string]any{"n": []int{1}}); err == nil {
		t.Error("slice for numeric should fail")
	}
}

func TestFieldRange(t *testing.T) {
	r := FieldRange{Path: []string{"a", "b"}, Field: PicX(3), Start: 4, End: 7}
	if r.Len() != 3 || r.Name() != "a.b" {
		t.Errorf("Len=%d Name=%s", r.Len(), r.Name())
	}
}
