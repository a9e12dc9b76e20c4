package schema

import "golang.org/x/text/cases"

// schemaIndex holds the lookup tables built once per schema version.
// Full dotted names address nested fields; array elements and map
// keys/values use the fixed segments "element", "key" and "value".
type schemaIndex struct {
	idToField  map[int]Field
	nameToID   map[string]int
	foldedToID map[string]int
	idToParent map[int]int
	maxID      int
}

var foldCaser = cases.Fold()

func foldName(name string) string {
	return foldCaser.String(name)
}

func buildIndex(root *Record) *schemaIndex {
	ix := &schemaIndex{
		idToField:  make(map[int]Field),
		nameToID:   make(map[string]int),
		foldedToID: make(map[string]int),
		idToParent: make(map[int]int),
	}
	for _, f := range root.Fields {
		ix.indexField(f, "", noParentID)
	}
	return ix
}

func (ix *schemaIndex) indexField(f Field, prefix string, parentID int) {
	fullName := f.Name
	if prefix != "" {
		fullName = prefix + "." + f.Name
	}
	ix.idToField[f.ID] = f
	ix.nameToID[fullName] = f.ID
	ix.foldedToID[foldName(fullName)] = f.ID
	if parentID != noParentID {
		ix.idToParent[f.ID] = parentID
	}
	if f.ID > ix.maxID {
		ix.maxID = f.ID
	}
	switch t := f.Type.(type) {
	case *Record:
		for _, child := range t.Fields {
			ix.indexField(child, fullName, f.ID)
		}
	case *Array:
		ix.indexField(t.Element, fullName, f.ID)
	case *Map:
		ix.indexField(t.Key, fullName, f.ID)
		ix.indexField(t.Value, fullName, f.ID)
	}
}

// assignFreshIDs returns a copy of t in which every contained field has
// been given a fresh ID from next, assigned in pre-order. Used when an
// entire nested subtree is attached by a single add.
func assignFreshIDs(t Type, next *int) Type {
	switch t := t.(type) {
	case *Record:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = reassignField(f, next)
		}
		return RecordOf(fields...)
	case *Array:
		return &Array{Element: reassignField(t.Element, next)}
	case *Map:
		key := reassignField(t.Key, next)
		value := reassignField(t.Value, next)
		return &Map{Key: key, Value: value}
	default:
		return t
	}
}

func reassignField(f Field, next *int) Field {
	f.ID = *next
	*next++
	f.Type = assignFreshIDs(f.Type, next)
	return f
}
