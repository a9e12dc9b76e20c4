package schema

import "testing"

func TestIsWideningAllowed(t *testing.T) {
	cases := []struct {
		src, dst Type
		want     bool
	}{
		{Int, Int, true},
		{Int, Long, true},
		{Int, Float, true},
		{Int, Double, true},
		{Int, String, true},
		{Long, Int, false},
		{Long, Double, true},
		{Float, Double, true},
		{Double, Float, false},
		{Double, String, true},
		{String, Date, true},
		{Date, String, true},
		{String, Int, false},
		{Boolean, Int, false},
		{Decimal(10, 2), Decimal(12, 2), true},
		{Decimal(10, 2), Decimal(8, 2), false},
		{Decimal(10, 2), Decimal(12, 4), false},
		{Decimal(10, 2), String, true},
		{Int, Decimal(10, 2), true},
	}
	for _, c := range cases {
		if got := IsWideningAllowed(c.src, c.dst); got != c.want {
			t.Errorf("IsWideningAllowed(%s, %s) = %t, want %t", c.src, c.dst, got, c.want)
		}
	}
}

func TestIsWideningAllowedRejectsNested(t *testing.T) {
	rec := RecordOf(Field{ID: 1, Name: "x", Type: Int})
	if IsWideningAllowed(rec, rec) {
		t.Error("nested types never widen")
	}
	if IsWideningAllowed(Int, ArrayOf(Field{ID: 1, Type: Int})) {
		t.Error("primitive to nested is not a widening")
	}
}
