package schema

// noParentID is the parent sentinel for columns of the root record.
const noParentID = -1

// Schema is one immutable version of a table's field tree plus its
// ID-allocation high-water mark. Lookups run against indexes built once
// at construction; a published Schema is never mutated, evolution
// produces a wholly new value.
type Schema struct {
	versionID   int64
	maxColumnID int
	record      *Record
	index       *schemaIndex
}

// NewSchema builds a schema whose max column ID is the highest ID present
// in the tree.
func NewSchema(versionID int64, fields ...Field) *Schema {
	record := RecordOf(fields...)
	ix := buildIndex(record)
	return &Schema{
		versionID:   versionID,
		maxColumnID: ix.maxID,
		record:      record,
		index:       ix,
	}
}

// NewSchemaWithMaxColumnID builds a schema carrying an explicit ID
// high-water mark. The mark may exceed the highest ID present: IDs of
// deleted columns are never reissued.
func NewSchemaWithMaxColumnID(versionID int64, maxColumnID int, fields []Field) *Schema {
	s := NewSchema(versionID, fields...)
	if maxColumnID > s.maxColumnID {
		s.maxColumnID = maxColumnID
	}
	return s
}

func (s *Schema) VersionID() int64 { return s.versionID }

// MaxColumnID returns the highest field ID ever minted for this table.
func (s *Schema) MaxColumnID() int { return s.maxColumnID }

// Record returns the root record. Callers must not mutate it.
func (s *Schema) Record() *Record { return s.record }

// Fields returns the ordered top-level columns.
func (s *Schema) Fields() []Field { return s.record.Fields }

// WithVersionID returns a copy of s under a new version number. The field
// tree and indexes are shared; both values stay immutable.
func (s *Schema) WithVersionID(versionID int64) *Schema {
	c := *s
	c.versionID = versionID
	return &c
}

// FindFieldByName resolves a full dotted name case-sensitively.
func (s *Schema) FindFieldByName(fullName string) (Field, bool) {
	id, ok := s.index.nameToID[fullName]
	if !ok {
		return Field{}, false
	}
	return s.index.idToField[id], true
}

// FindFieldByID resolves a stable field ID.
func (s *Schema) FindFieldByID(id int) (Field, bool) {
	f, ok := s.index.idToField[id]
	return f, ok
}

// FindIDByName resolves a full dotted name to a field ID, folding case
// when caseSensitive is false.
func (s *Schema) FindIDByName(fullName string, caseSensitive bool) (int, bool) {
	if caseSensitive {
		id, ok := s.index.nameToID[fullName]
		return id, ok
	}
	id, ok := s.index.foldedToID[foldName(fullName)]
	return id, ok
}

// HasColumn reports whether a full dotted name resolves in this schema.
func (s *Schema) HasColumn(fullName string, caseSensitive bool) bool {
	_, ok := s.FindIDByName(fullName, caseSensitive)
	return ok
}

// parentID returns the field ID of the container holding id, or
// noParentID for top-level columns.
func (s *Schema) parentID(id int) int {
	if p, ok := s.index.idToParent[id]; ok {
		return p
	}
	return noParentID
}

// AllColumnNames returns every resolvable full dotted name.
func (s *Schema) AllColumnNames() []string {
	names := make([]string, 0, len(s.index.nameToID))
	for name := range s.index.nameToID {
		names = append(names, name)
	}
	return names
}
