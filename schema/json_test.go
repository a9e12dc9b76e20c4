package schema_test

import (
	"strings"
	"testing"

	"github.com/SteNicholas/hudi/schema"
)

func TestJSONRoundTrip(t *testing.T) {
	s := baseSchema(t)

	b, err := schema.ToJSON(s)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := schema.FromJSON(b)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if back.VersionID() != s.VersionID() {
		t.Errorf("VersionID = %d, want %d", back.VersionID(), s.VersionID())
	}
	if back.MaxColumnID() != s.MaxColumnID() {
		t.Errorf("MaxColumnID = %d, want %d", back.MaxColumnID(), s.MaxColumnID())
	}
	for _, name := range s.AllColumnNames() {
		want, _ := s.FindFieldByName(name)
		got, ok := back.FindFieldByName(name)
		if !ok {
			t.Errorf("%s missing after round trip", name)
			continue
		}
		if got.ID != want.ID || got.Optional != want.Optional || got.Type.String() != want.Type.String() {
			t.Errorf("%s = %s, want %s", name, got, want)
		}
		if got.Doc != want.Doc {
			t.Errorf("%s doc = %q, want %q", name, got.Doc, want.Doc)
		}
	}

	again, err := schema.ToJSON(back)
	if err != nil {
		t.Fatalf("ToJSON(back): %v", err)
	}
	if string(again) != string(b) {
		t.Errorf("encoding is not stable:\n%s\n%s", b, again)
	}
}

func TestJSONDecimalRoundTrip(t *testing.T) {
	s := schema.NewSchema(1,
		schema.Field{ID: 0, Name: "amount", Type: schema.Decimal(10, 2)},
	)
	b, err := schema.ToJSON(s)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(string(b), `"decimal(10,2)"`) {
		t.Fatalf("payload missing decimal type: %s", b)
	}
	back, err := schema.FromJSON(b)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	f, _ := back.FindFieldByName("amount")
	if f.Type != schema.Decimal(10, 2) {
		t.Errorf("amount type = %s, want decimal(10,2)", f.Type)
	}
}

// Default values must keep their types across a round trip: an int64
// default that reloads as float64 would silently change the column's
// contract on every catalog load.
func TestJSONDefaultRoundTrip(t *testing.T) {
	s := schema.NewSchema(1,
		schema.Field{ID: 0, Name: "retries", Optional: true, Type: schema.Int, Default: int64(0)},
		schema.Field{ID: 1, Name: "count", Optional: true, Type: schema.Long, Default: int64(5)},
		schema.Field{ID: 2, Name: "ratio", Optional: true, Type: schema.Double, Default: 0.5},
		schema.Field{ID: 3, Name: "active", Optional: true, Type: schema.Boolean, Default: false},
		schema.Field{ID: 4, Name: "region", Optional: true, Type: schema.String, Default: "eu"},
		schema.Field{ID: 5, Name: "opts", Optional: true, Type: schema.RecordOf(
			schema.Field{ID: 6, Name: "depth", Optional: true, Type: schema.Int, Default: int64(3)},
		)},
	)
	b, err := schema.ToJSON(s)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := schema.FromJSON(b)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	want := map[string]any{
		"retries":    int64(0),
		"count":      int64(5),
		"ratio":      0.5,
		"active":     false,
		"region":     "eu",
		"opts.depth": int64(3),
	}
	for name, def := range want {
		f, ok := back.FindFieldByName(name)
		if !ok {
			t.Errorf("%s missing after round trip", name)
			continue
		}
		if f.Default != def {
			t.Errorf("%s default = %#v, want %#v", name, f.Default, def)
		}
	}
}

func TestFromJSONRejectsNonRecordRoot(t *testing.T) {
	_, err := schema.FromJSON([]byte(`{"version_id":1,"max_column_id":0,"type":"array","fields":[]}`))
	if !schema.IsKind(err, schema.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
}

func TestFromJSONRejectsUnknownType(t *testing.T) {
	payload := `{"version_id":1,"max_column_id":0,"type":"record","fields":[
		{"id":0,"name":"x","optional":true,"type":"varchar"}]}`
	_, err := schema.FromJSON([]byte(payload))
	if !schema.IsKind(err, schema.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
}

func TestParsePrimitive(t *testing.T) {
	for _, name := range []string{"boolean", "int", "long", "float", "double",
		"date", "timestamp", "string", "uuid", "binary", "decimal(38,10)"} {
		p, err := schema.ParsePrimitive(name)
		if err != nil {
			t.Errorf("ParsePrimitive(%q): %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("ParsePrimitive(%q).String() = %q", name, p.String())
		}
	}
	if _, err := schema.ParsePrimitive("struct"); !schema.IsKind(err, schema.ErrInvalidArgument) {
		t.Errorf("ParsePrimitive(struct) err = %v, want invalid_argument", err)
	}
}
