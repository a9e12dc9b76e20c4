// Package changefile parses a declarative YAML description of one schema
// change set and lowers it onto the schema builder API. The file groups
// edits the same way the rewrite applies them: deletes, then updates,
// then adds, with column moves last.
package changefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/SteNicholas/hudi/schema"
)

// ChangeSet is the parsed form of one change file.
type ChangeSet struct {
	Deletes []DeleteSpec `yaml:"deletes"`
	Updates []UpdateSpec `yaml:"updates"`
	Adds    []AddSpec    `yaml:"adds"`
	Moves   []MoveSpec   `yaml:"moves"`
}

type DeleteSpec struct {
	Name string `yaml:"name"`
}

// UpdateSpec edits one existing column. Absent keys leave the attribute
// alone; "nullable: false" therefore needs an explicit key, which is why
// the nullability fields are pointers.
type UpdateSpec struct {
	Name     string    `yaml:"name"`
	Type     *TypeSpec `yaml:"type"`
	Rename   string    `yaml:"rename"`
	Doc      *string   `yaml:"doc"`
	Default  *yamlAny  `yaml:"default"`
	Nullable *bool     `yaml:"nullable"`
	Force    bool      `yaml:"force"`
}

type AddSpec struct {
	Parent  string    `yaml:"parent"`
	Name    string    `yaml:"name"`
	Type    *TypeSpec `yaml:"type"`
	Doc     string    `yaml:"doc"`
	Default *yamlAny  `yaml:"default"`
}

type MoveSpec struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"` // first|last|before|after
	Anchor string `yaml:"anchor"`
}

type yamlAny struct {
	Value any
}

func (y *yamlAny) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&y.Value)
}

// TypeSpec is either a primitive type name scalar ("long",
// "decimal(10,2)") or a mapping describing a nested type:
//
//	record:
//	  - {name: lat, type: double}
//	  - {name: lon, type: double}
//	array:
//	  type: string
//	map:
//	  key: {type: string}
//	  value: {type: long, nullable: true}
type TypeSpec struct {
	Type schema.Type
}

type nestedTypeSpec struct {
	Record []fieldSpec `yaml:"record"`
	Array  *fieldSpec  `yaml:"array"`
	Map    *mapSpec    `yaml:"map"`
}

type mapSpec struct {
	Key   fieldSpec `yaml:"key"`
	Value fieldSpec `yaml:"value"`
}

type fieldSpec struct {
	Name     string    `yaml:"name"`
	Type     *TypeSpec `yaml:"type"`
	Nullable *bool     `yaml:"nullable"`
	Doc      string    `yaml:"doc"`
}

func (ts *TypeSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		p, err := schema.ParsePrimitive(name)
		if err != nil {
			return err
		}
		ts.Type = p
		return nil
	}

	var nested nestedTypeSpec
	if err := node.Decode(&nested); err != nil {
		return err
	}
	switch {
	case len(nested.Record) > 0:
		fields := make([]schema.Field, len(nested.Record))
		for i, fs := range nested.Record {
			f, err := fs.toField()
			if err != nil {
				return err
			}
			fields[i] = f
		}
		ts.Type = schema.RecordOf(fields...)
	case nested.Array != nil:
		elem, err := nested.Array.toField()
		if err != nil {
			return err
		}
		ts.Type = schema.ArrayOf(elem)
	case nested.Map != nil:
		key, err := nested.Map.Key.toField()
		if err != nil {
			return err
		}
		value, err := nested.Map.Value.toField()
		if err != nil {
			return err
		}
		ts.Type = schema.MapOf(key, value)
	default:
		return schema.InvalidArgumentError("type must be a primitive name or one of record/array/map")
	}
	return nil
}

// toField builds a field with a placeholder ID; AddColumn reassigns every
// ID inside an added subtree anyway.
func (fs fieldSpec) toField() (schema.Field, error) {
	if fs.Type == nil {
		return schema.Field{}, schema.InvalidArgumentError(
			fmt.Sprintf("field %q is missing a type", fs.Name))
	}
	optional := true
	if fs.Nullable != nil {
		optional = *fs.Nullable
	}
	return schema.Field{
		Name:     fs.Name,
		Optional: optional,
		Type:     fs.Type.Type,
		Doc:      fs.Doc,
	}, nil
}

// Parse decodes one YAML change file.
func Parse(b []byte) (*ChangeSet, error) {
	var cs ChangeSet
	if err := yaml.Unmarshal(b, &cs); err != nil {
		return nil, schema.Wrap(schema.ErrInvalidArgument, "parse change file", err)
	}
	return &cs, nil
}

// Lower validates the change set against base and returns the table
// changes to apply, in application order. Moves always attach to the add
// change: its resolver covers both pre-existing columns and columns added
// in the same file.
func (cs *ChangeSet) Lower(base *schema.Schema) ([]schema.TableChange, error) {
	var changes []schema.TableChange

	if len(cs.Deletes) > 0 {
		del := schema.NewColumnDeleteChange(base)
		for _, d := range cs.Deletes {
			if err := del.DeleteColumn(d.Name); err != nil {
				return nil, err
			}
		}
		changes = append(changes, del)
	}

	if len(cs.Updates) > 0 {
		upd := schema.NewColumnUpdateChange(base)
		for _, u := range cs.Updates {
			if err := lowerUpdate(upd, u); err != nil {
				return nil, err
			}
		}
		changes = append(changes, upd)
	}

	if len(cs.Adds) > 0 || len(cs.Moves) > 0 {
		add := schema.NewColumnAddChange(base)
		for _, a := range cs.Adds {
			if a.Type == nil {
				return nil, schema.InvalidArgumentError(
					fmt.Sprintf("added column %q is missing a type", a.Name))
			}
			var def any
			if a.Default != nil {
				def = a.Default.Value
			}
			if err := add.AddColumnTo(a.Parent, a.Name, a.Type.Type, a.Doc, def); err != nil {
				return nil, err
			}
		}
		for _, m := range cs.Moves {
			kind, err := schema.ParsePositionKind(m.Kind)
			if err != nil {
				return nil, err
			}
			if err := add.AddPositionChange(m.Name, m.Anchor, kind); err != nil {
				return nil, err
			}
		}
		changes = append(changes, add)
	}

	return changes, nil
}

func lowerUpdate(upd *schema.ColumnUpdateChange, u UpdateSpec) error {
	if u.Type != nil {
		if err := upd.UpdateColumnType(u.Name, u.Type.Type); err != nil {
			return err
		}
	}
	if u.Doc != nil {
		if err := upd.UpdateColumnComment(u.Name, *u.Doc); err != nil {
			return err
		}
	}
	if u.Default != nil {
		if err := upd.UpdateColumnDefault(u.Name, u.Default.Value); err != nil {
			return err
		}
	}
	if u.Nullable != nil {
		if err := upd.UpdateColumnNullability(u.Name, *u.Nullable, u.Force); err != nil {
			return err
		}
	}
	// rename last so earlier edits resolve under the original name
	if u.Rename != "" {
		if err := upd.RenameColumn(u.Name, u.Rename); err != nil {
			return err
		}
	}
	return nil
}

// Apply lowers the change set and rewrites base in one step.
func (cs *ChangeSet) Apply(base *schema.Schema) (*schema.Schema, error) {
	changes, err := cs.Lower(base)
	if err != nil {
		return nil, err
	}
	return schema.ApplyTableChanges(base, changes...)
}
