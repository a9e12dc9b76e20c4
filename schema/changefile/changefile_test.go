package changefile_test

import (
	"testing"

	"github.com/SteNicholas/hudi/schema"
	"github.com/SteNicholas/hudi/schema/changefile"
)

func base(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.NewSchema(1,
		schema.Field{ID: 0, Name: "id", Type: schema.Int, Doc: "record id"},
		schema.Field{ID: 1, Optional: true, Name: "name", Type: schema.String},
		schema.Field{ID: 2, Optional: true, Name: "age", Type: schema.Int},
		schema.Field{ID: 3, Optional: true, Name: "address", Type: schema.RecordOf(
			schema.Field{ID: 4, Optional: true, Name: "street", Type: schema.String},
			schema.Field{ID: 5, Optional: true, Name: "city", Type: schema.String},
		)},
	)
}

const sampleChanges = `
deletes:
  - name: address.city
updates:
  - name: age
    type: long
    doc: age in years
  - name: name
    rename: full_name
adds:
  - name: email
    type: string
    doc: contact address
  - parent: address
    name: zip
    type: string
  - name: points
    type:
      array:
        type: double
moves:
  - name: email
    kind: after
    anchor: id
`

func TestParse(t *testing.T) {
	cs, err := changefile.Parse([]byte(sampleChanges))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cs.Deletes) != 1 || cs.Deletes[0].Name != "address.city" {
		t.Errorf("deletes = %+v", cs.Deletes)
	}
	if len(cs.Updates) != 2 {
		t.Fatalf("updates = %+v", cs.Updates)
	}
	if cs.Updates[0].Type == nil || cs.Updates[0].Type.Type != schema.Long {
		t.Errorf("age type spec = %+v", cs.Updates[0].Type)
	}
	if cs.Updates[1].Rename != "full_name" {
		t.Errorf("rename = %q", cs.Updates[1].Rename)
	}
	if len(cs.Adds) != 3 {
		t.Fatalf("adds = %+v", cs.Adds)
	}
	if _, ok := cs.Adds[2].Type.Type.(*schema.Array); !ok {
		t.Errorf("points type = %T", cs.Adds[2].Type.Type)
	}
	if len(cs.Moves) != 1 || cs.Moves[0].Kind != "after" {
		t.Errorf("moves = %+v", cs.Moves)
	}
}

func TestApply(t *testing.T) {
	cs, err := changefile.Parse([]byte(sampleChanges))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	next, err := cs.Apply(base(t))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, ok := next.FindFieldByName("address.city"); ok {
		t.Error("address.city survived")
	}
	if f, ok := next.FindFieldByName("age"); !ok || f.Type != schema.Long || f.Doc != "age in years" {
		t.Errorf("age = %+v", f)
	}
	if _, ok := next.FindFieldByName("name"); ok {
		t.Error("name not renamed")
	}
	if _, ok := next.FindFieldByName("full_name"); !ok {
		t.Error("full_name missing")
	}
	for _, name := range []string{"email", "address.zip", "points", "points.element"} {
		if _, ok := next.FindFieldByName(name); !ok {
			t.Errorf("%s missing", name)
		}
	}

	var names []string
	for _, f := range next.Fields() {
		names = append(names, f.Name)
	}
	want := []string{"id", "email", "full_name", "age", "address", "points"}
	if len(names) != len(want) {
		t.Fatalf("fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("fields = %v, want %v", names, want)
		}
	}
}

func TestApplyMissingType(t *testing.T) {
	cs, err := changefile.Parse([]byte("adds:\n  - name: email\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = cs.Apply(base(t))
	if !schema.IsKind(err, schema.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
}

func TestApplyNullabilityForce(t *testing.T) {
	cs := &changefile.ChangeSet{
		Updates: []changefile.UpdateSpec{
			{Name: "name", Nullable: boolPtr(false)},
		},
	}
	if _, err := cs.Apply(base(t)); !schema.IsKind(err, schema.ErrIllegalTransition) {
		t.Fatalf("err = %v, want illegal_transition", err)
	}

	cs.Updates[0].Force = true
	next, err := cs.Apply(base(t))
	if err != nil {
		t.Fatalf("Apply with force: %v", err)
	}
	if f, _ := next.FindFieldByName("name"); f.Optional {
		t.Error("name still optional")
	}
}

func TestParseRejectsBadType(t *testing.T) {
	_, err := changefile.Parse([]byte("adds:\n  - name: x\n    type: varchar\n"))
	if err == nil {
		t.Fatal("expected error for unknown type name")
	}
}

func boolPtr(b bool) *bool { return &b }
