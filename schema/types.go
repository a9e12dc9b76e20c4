package schema

import (
	"fmt"
	"strings"
)

// Kind enumerates every type a column can carry.
type Kind string

const (
	KindBoolean   Kind = "boolean"
	KindInt       Kind = "int"
	KindLong      Kind = "long"
	KindFloat     Kind = "float"
	KindDouble    Kind = "double"
	KindDate      Kind = "date"
	KindTimestamp Kind = "timestamp"
	KindString    Kind = "string"
	KindUUID      Kind = "uuid"
	KindBinary    Kind = "binary"
	KindDecimal   Kind = "decimal"
	KindRecord    Kind = "record"
	KindArray     Kind = "array"
	KindMap       Kind = "map"
)

// Type is the tagged union over primitive and nested column types.
// Nested types (record, array, map) own their child fields; the ordered
// child list is both the storage layout and the evolution surface.
type Type interface {
	Kind() Kind
	IsNested() bool
	String() string
}

// Primitive is a leaf type. Primitives are compared by value; two ints
// are the same type, two decimals only when precision and scale match.
type Primitive struct {
	K Kind
	// decimal only
	Precision int
	Scale     int
}

var (
	Boolean   = Primitive{K: KindBoolean}
	Int       = Primitive{K: KindInt}
	Long      = Primitive{K: KindLong}
	Float     = Primitive{K: KindFloat}
	Double    = Primitive{K: KindDouble}
	Date      = Primitive{K: KindDate}
	Timestamp = Primitive{K: KindTimestamp}
	String    = Primitive{K: KindString}
	UUID      = Primitive{K: KindUUID}
	Binary    = Primitive{K: KindBinary}
)

// Decimal returns the decimal type with the given precision and scale.
func Decimal(precision, scale int) Primitive {
	return Primitive{K: KindDecimal, Precision: precision, Scale: scale}
}

func (p Primitive) Kind() Kind     { return p.K }
func (p Primitive) IsNested() bool { return false }

func (p Primitive) String() string {
	if p.K == KindDecimal {
		return fmt.Sprintf("decimal(%d,%d)", p.Precision, p.Scale)
	}
	return string(p.K)
}

// Field is one named, typed, identified slot in the schema tree. Identity
// is by ID, never by name or position, across schema versions.
type Field struct {
	ID       int
	Optional bool
	Name     string
	Type     Type
	Doc      string
	Default  any
}

func (f Field) String() string {
	req := "required"
	if f.Optional {
		req = "optional"
	}
	return fmt.Sprintf("%d: %s: %s %s", f.ID, f.Name, req, f.Type)
}

// Record is a container of ordered named fields. Do not mutate Fields
// after construction; schema versions are immutable snapshots.
type Record struct {
	Fields []Field
}

func RecordOf(fields ...Field) *Record {
	return &Record{Fields: fields}
}

func (r *Record) Kind() Kind     { return KindRecord }
func (r *Record) IsNested() bool { return true }

func (r *Record) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("record<%s>", strings.Join(parts, ", "))
}

// FieldByName returns the direct child with the given name.
func (r *Record) FieldByName(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Array is a container of exactly one element field. The element field
// carries its own stable ID and is named "element" in dotted paths.
type Array struct {
	Element Field
}

func ArrayOf(element Field) *Array {
	element.Name = arrayElementName
	return &Array{Element: element}
}

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) IsNested() bool { return true }

func (a *Array) String() string {
	return fmt.Sprintf("array<%s>", a.Element.Type)
}

// Map holds key and value fields, named "key" and "value" in dotted paths.
// Keys are always required.
type Map struct {
	Key   Field
	Value Field
}

func MapOf(key, value Field) *Map {
	key.Name = mapKeyName
	key.Optional = false
	value.Name = mapValueName
	return &Map{Key: key, Value: value}
}

func (m *Map) Kind() Kind     { return KindMap }
func (m *Map) IsNested() bool { return true }

func (m *Map) String() string {
	return fmt.Sprintf("map<%s, %s>", m.Key.Type, m.Value.Type)
}

const (
	arrayElementName = "element"
	mapKeyName       = "key"
	mapValueName     = "value"
)
