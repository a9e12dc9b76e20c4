package schema

// ColumnDeleteChange accumulates columns to drop. Deleting a container
// drops its whole subtree at rewrite time; descendants need no separate
// marking. Deleted columns have no position, so the change refuses
// position directives outright.
type ColumnDeleteChange struct {
	baseColumnChange
	deletes map[int]struct{}
}

// NewColumnDeleteChange starts a delete change against s.
func NewColumnDeleteChange(s *Schema) *ColumnDeleteChange {
	return &ColumnDeleteChange{
		baseColumnChange: newBaseColumnChange(s, false),
		deletes:          make(map[int]struct{}),
	}
}

func (c *ColumnDeleteChange) ChangeKind() ChangeKind { return ChangeDelete }

func (c *ColumnDeleteChange) SupportsPositionChange() bool { return false }

func (c *ColumnDeleteChange) findIDByFullName(fullName string) (int, error) {
	if id, ok := c.schema.FindIDByName(fullName, c.caseSensitive); ok {
		return id, nil
	}
	return 0, UnknownColumnError(fullName)
}

// DeleteColumn marks one column for removal.
func (c *ColumnDeleteChange) DeleteColumn(name string) error {
	id, err := c.checkColumnModifiable(c, name)
	if err != nil {
		return err
	}
	c.deletes[id] = struct{}{}
	return nil
}

// AddPositionChange always fails: a deleted column has no position.
func (c *ColumnDeleteChange) AddPositionChange(srcName, anchorName string, kind PositionKind) error {
	return c.addPositionChange(c, srcName, anchorName, kind)
}

func (c *ColumnDeleteChange) isDeleted(id int) bool {
	_, ok := c.deletes[id]
	return ok
}
