package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// ColumnUpdateChange accumulates attribute edits to existing columns.
// Edits to the same column merge: a later call starts from the pending
// replacement, so independent attributes compose. A call that would
// change nothing is a no-op and leaves pending state untouched.
type ColumnUpdateChange struct {
	baseColumnChange
	updates map[int]Field
}

// NewColumnUpdateChange starts an update change against s with
// case-insensitive name checks, the default for SQL-facing callers.
func NewColumnUpdateChange(s *Schema) *ColumnUpdateChange {
	return NewColumnUpdateChangeWithCase(s, false)
}

func NewColumnUpdateChangeWithCase(s *Schema, caseSensitive bool) *ColumnUpdateChange {
	return &ColumnUpdateChange{
		baseColumnChange: newBaseColumnChange(s, caseSensitive),
		updates:          make(map[int]Field),
	}
}

func (c *ColumnUpdateChange) ChangeKind() ChangeKind { return ChangeUpdate }

func (c *ColumnUpdateChange) SupportsPositionChange() bool { return true }

// findIDByFullName resolves strictly against the base schema; an update
// never references IDs it did not start from.
func (c *ColumnUpdateChange) findIDByFullName(fullName string) (int, error) {
	if id, ok := c.schema.FindIDByName(fullName, c.caseSensitive); ok {
		return id, nil
	}
	return 0, UnknownColumnError(fullName)
}

// pending returns the working copy of a column: its pending replacement
// when one exists, the base field otherwise.
func (c *ColumnUpdateChange) pending(f Field) Field {
	if u, ok := c.updates[f.ID]; ok {
		return u
	}
	return f
}

func (c *ColumnUpdateChange) resolve(name string) (Field, error) {
	id, err := c.checkColumnModifiable(c, name)
	if err != nil {
		return Field{}, err
	}
	f, _ := c.schema.FindFieldByID(id)
	return f, nil
}

// UpdateColumnType changes a column to a wider primitive type. Nested
// target types are rejected; the transition must be an allowed widening
// so data files written under the old type stay readable.
func (c *ColumnUpdateChange) UpdateColumnType(name string, newType Type) error {
	f, err := c.resolve(name)
	if err != nil {
		return err
	}
	if newType.IsNested() {
		return InvalidArgumentError(fmt.Sprintf(
			"only primitive type updates are supported, column %s got %s", name, newType))
	}
	if !IsWideningAllowed(f.Type, newType) {
		return IncompatibleSchemaError(fmt.Sprintf(
			"cannot update column %s from %s to incompatible type %s", name, f.Type, newType))
	}
	u := c.pending(f)
	if u.Type == newType {
		return nil
	}
	u.Type = newType
	c.updates[f.ID] = u
	return nil
}

// UpdateColumnComment replaces a column's documentation string.
func (c *ColumnUpdateChange) UpdateColumnComment(name, newDoc string) error {
	f, err := c.resolve(name)
	if err != nil {
		return err
	}
	u := c.pending(f)
	if u.Doc == newDoc {
		return nil
	}
	u.Doc = newDoc
	c.updates[f.ID] = u
	return nil
}

// UpdateColumnDefault replaces a column's default value.
func (c *ColumnUpdateChange) UpdateColumnDefault(name string, newDefault any) error {
	f, err := c.resolve(name)
	if err != nil {
		return err
	}
	u := c.pending(f)
	if reflect.DeepEqual(u.Default, newDefault) {
		return nil
	}
	u.Default = newDefault
	c.updates[f.ID] = u
	return nil
}

// RenameColumn renames one column. The new name must be non-empty, a
// single path segment, and must not collide with any existing sibling
// under the schema's case-sensitivity mode.
func (c *ColumnUpdateChange) RenameColumn(name, newName string) error {
	f, err := c.resolve(name)
	if err != nil {
		return err
	}
	if newName == "" {
		return InvalidArgumentError(fmt.Sprintf("cannot rename column %s to an empty name", name))
	}
	if strings.Contains(newName, ".") {
		return InvalidArgumentError(fmt.Sprintf(
			"cannot rename column %s to %s: new name must not be a path", name, newName))
	}
	siblingFull := newName
	if i := strings.LastIndex(name, "."); i >= 0 {
		siblingFull = name[:i+1] + newName
	}
	if c.schema.HasColumn(siblingFull, c.caseSensitive) {
		return DuplicateColumnError(siblingFull)
	}
	u := c.pending(f)
	if u.Name == newName {
		return nil
	}
	u.Name = newName
	c.updates[f.ID] = u
	return nil
}

// UpdateColumnNullability changes whether a column accepts nulls.
// Required to optional is always safe. Optional to required narrows what
// existing data may hold and needs force.
func (c *ColumnUpdateChange) UpdateColumnNullability(name string, nullable, force bool) error {
	f, err := c.resolve(name)
	if err != nil {
		return err
	}
	u := c.pending(f)
	if u.Optional == nullable {
		return nil
	}
	if u.Optional && !nullable && !force {
		return IllegalTransitionError(name, "cannot change an optional column to required")
	}
	u.Optional = nullable
	c.updates[f.ID] = u
	return nil
}

// AddPositionChange reorders an existing column within its container.
func (c *ColumnUpdateChange) AddPositionChange(srcName, anchorName string, kind PositionKind) error {
	return c.addPositionChange(c, srcName, anchorName, kind)
}

// replacement returns the pending replacement for a field ID, if any.
func (c *ColumnUpdateChange) replacement(id int) (Field, bool) {
	u, ok := c.updates[id]
	return u, ok
}
