package schema

import "fmt"

// ApplyTableChanges rewrites base through each change in the order given
// and returns a new schema version. The base schema is never touched;
// every level of the tree is rebuilt as an owned value. Callers decide
// the application order across changes; the usual sequence is delete,
// then update, then add.
func ApplyTableChanges(base *Schema, changes ...TableChange) (*Schema, error) {
	cur := base
	for _, c := range changes {
		next, err := applyTableChange(cur, c)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func applyTableChange(s *Schema, c TableChange) (*Schema, error) {
	r := rewriter{}
	switch c := c.(type) {
	case *ColumnDeleteChange:
		r.del = c
	case *ColumnUpdateChange:
		r.upd = c
	case *ColumnAddChange:
		r.add = c
	default:
		return nil, InvalidArgumentError(fmt.Sprintf("unknown table change type %T", c))
	}

	fields, err := r.rewriteFields(noParentID, s.Fields())
	if err != nil {
		return nil, err
	}

	maxID := s.MaxColumnID()
	if r.add != nil && r.add.maxMintedID() > maxID {
		maxID = r.add.maxMintedID()
	}
	return NewSchemaWithMaxColumnID(s.VersionID(), maxID, fields), nil
}

// rewriter walks the schema tree once for a single change. Exactly one of
// the three variants is set; the others stay nil and contribute nothing.
type rewriter struct {
	del *ColumnDeleteChange
	upd *ColumnUpdateChange
	add *ColumnAddChange
}

// rewriteFields rebuilds one record container: deleted columns are
// omitted subtree and all, pending replacements substitute attributes,
// nested types recurse, and the container's additions and position
// directives reconcile the final order. A container with neither stays
// in filtered order.
func (r rewriter) rewriteFields(containerID int, fields []Field) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if r.del != nil && r.del.isDeleted(f.ID) {
			continue
		}
		nf, err := r.rewriteField(f)
		if err != nil {
			return nil, err
		}
		out = append(out, nf)
	}

	additions := r.additions(containerID)
	directives := r.directives(containerID)
	if len(additions) > 0 || len(directives) > 0 {
		return reconcileFieldOrder(out, additions, directives)
	}
	return out, nil
}

// rewriteField substitutes a pending replacement's attributes and
// recurses into the (possibly substituted) type. A replacement can only
// carry a primitive type change, so a nested column keeps its original
// type as the recursion target.
func (r rewriter) rewriteField(f Field) (Field, error) {
	nf := f
	if r.upd != nil {
		if u, ok := r.upd.replacement(f.ID); ok {
			nf.Name = u.Name
			nf.Optional = u.Optional
			nf.Doc = u.Doc
			nf.Default = u.Default
			if !u.Type.IsNested() {
				nf.Type = u.Type
			}
		}
	}
	if nf.Type.IsNested() {
		nt, err := r.rewriteType(f.ID, nf.Type)
		if err != nil {
			return Field{}, err
		}
		nf.Type = nt
	}
	return nf, nil
}

func (r rewriter) rewriteType(ownerID int, t Type) (Type, error) {
	switch t := t.(type) {
	case *Record:
		fields, err := r.rewriteFields(ownerID, t.Fields)
		if err != nil {
			return nil, err
		}
		return RecordOf(fields...), nil
	case *Array:
		elem, err := r.rewriteUnitField(t.Element)
		if err != nil {
			return nil, err
		}
		return &Array{Element: elem}, nil
	case *Map:
		key, err := r.rewriteUnitField(t.Key)
		if err != nil {
			return nil, err
		}
		value, err := r.rewriteUnitField(t.Value)
		if err != nil {
			return nil, err
		}
		return &Map{Key: key, Value: value}, nil
	default:
		return t, nil
	}
}

// rewriteUnitField handles array elements and map keys/values: containers
// of exactly one field, open to delete and update by ID but never to
// additions or reordering. Deleting one would leave the container without
// a shape, so that is refused; the column holding it must go instead.
func (r rewriter) rewriteUnitField(f Field) (Field, error) {
	if r.del != nil && r.del.isDeleted(f.ID) {
		return Field{}, IncompatibleSchemaError(fmt.Sprintf(
			"cannot delete %s (id %d): delete the containing column instead", f.Name, f.ID))
	}
	return r.rewriteField(f)
}

func (r rewriter) additions(containerID int) []Field {
	if r.add == nil {
		return nil
	}
	return r.add.additions(containerID)
}

func (r rewriter) directives(containerID int) []PositionChange {
	switch {
	case r.add != nil:
		return r.add.positionChanges(containerID)
	case r.upd != nil:
		return r.upd.positionChanges(containerID)
	default:
		return nil
	}
}
