package schema_test

import (
	"testing"

	"github.com/SteNicholas/hudi/schema"
)

// baseSchema builds the tree used across the evolution tests:
//
//	0: id        required int
//	1: name      optional string
//	2: age       optional int
//	3: address   optional record<4: street string, 5: city string>
//	6: tags      optional array<7: element string>
//	8: attrs     optional map<9: key string, 10: value long>
func baseSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.NewSchema(1,
		schema.Field{ID: 0, Name: "id", Type: schema.Int, Doc: "record id"},
		schema.Field{ID: 1, Name: "name", Optional: true, Type: schema.String},
		schema.Field{ID: 2, Name: "age", Optional: true, Type: schema.Int},
		schema.Field{ID: 3, Name: "address", Optional: true, Type: schema.RecordOf(
			schema.Field{ID: 4, Name: "street", Optional: true, Type: schema.String},
			schema.Field{ID: 5, Name: "city", Optional: true, Type: schema.String},
		)},
		schema.Field{ID: 6, Name: "tags", Optional: true, Type: schema.ArrayOf(
			schema.Field{ID: 7, Optional: false, Type: schema.String},
		)},
		schema.Field{ID: 8, Name: "attrs", Optional: true, Type: schema.MapOf(
			schema.Field{ID: 9, Type: schema.String},
			schema.Field{ID: 10, Optional: true, Type: schema.Long},
		)},
	)
}

func TestSchemaLookups(t *testing.T) {
	s := baseSchema(t)

	if got := s.MaxColumnID(); got != 10 {
		t.Fatalf("MaxColumnID = %d, want 10", got)
	}
	if got := s.VersionID(); got != 1 {
		t.Fatalf("VersionID = %d, want 1", got)
	}

	f, ok := s.FindFieldByName("address.street")
	if !ok || f.ID != 4 {
		t.Fatalf("FindFieldByName(address.street) = %v, %t", f, ok)
	}
	f, ok = s.FindFieldByName("tags.element")
	if !ok || f.ID != 7 {
		t.Fatalf("FindFieldByName(tags.element) = %v, %t", f, ok)
	}
	f, ok = s.FindFieldByName("attrs.key")
	if !ok || f.ID != 9 {
		t.Fatalf("FindFieldByName(attrs.key) = %v, %t", f, ok)
	}
	f, ok = s.FindFieldByName("attrs.value")
	if !ok || f.ID != 10 {
		t.Fatalf("FindFieldByName(attrs.value) = %v, %t", f, ok)
	}
	if _, ok := s.FindFieldByName("missing"); ok {
		t.Fatal("FindFieldByName(missing) resolved")
	}

	f, ok = s.FindFieldByID(5)
	if !ok || f.Name != "city" {
		t.Fatalf("FindFieldByID(5) = %v, %t", f, ok)
	}
}

func TestSchemaCaseSensitivity(t *testing.T) {
	s := baseSchema(t)

	if !s.HasColumn("Address.Street", false) {
		t.Error("case-insensitive lookup should fold names")
	}
	if s.HasColumn("Address.Street", true) {
		t.Error("case-sensitive lookup should not fold names")
	}
	id, ok := s.FindIDByName("NAME", false)
	if !ok || id != 1 {
		t.Errorf("FindIDByName(NAME, insensitive) = %d, %t", id, ok)
	}
}

func TestSchemaMaxColumnIDHighWaterMark(t *testing.T) {
	fields := []schema.Field{{ID: 0, Name: "a", Type: schema.Int}}
	s := schema.NewSchemaWithMaxColumnID(1, 42, fields)
	if got := s.MaxColumnID(); got != 42 {
		t.Fatalf("MaxColumnID = %d, want carried mark 42", got)
	}

	// a mark below the tree's highest id is ignored
	s = schema.NewSchemaWithMaxColumnID(1, 0, baseSchema(t).Fields())
	if got := s.MaxColumnID(); got != 10 {
		t.Fatalf("MaxColumnID = %d, want 10", got)
	}
}

func TestWithVersionID(t *testing.T) {
	s := baseSchema(t)
	v2 := s.WithVersionID(2)
	if v2.VersionID() != 2 {
		t.Fatalf("VersionID = %d, want 2", v2.VersionID())
	}
	if s.VersionID() != 1 {
		t.Fatal("WithVersionID mutated the receiver")
	}
	if _, ok := v2.FindFieldByName("address.city"); !ok {
		t.Fatal("copy lost the name index")
	}
}
