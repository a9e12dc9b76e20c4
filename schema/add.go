package schema

import "fmt"

// ColumnAddChange accumulates new columns against a base schema. Every
// added column (and every field inside an added nested type) receives a
// fresh ID strictly greater than the base schema's max column ID; IDs are
// assigned in pre-order and never reused within one change.
type ColumnAddChange struct {
	baseColumnChange
	fullNameToID map[string]int
	parentToAdds map[int][]Field
	nextID       int
}

// NewColumnAddChange starts an add change against s.
func NewColumnAddChange(s *Schema) *ColumnAddChange {
	return &ColumnAddChange{
		baseColumnChange: newBaseColumnChange(s, false),
		fullNameToID:     make(map[string]int),
		parentToAdds:     make(map[int][]Field),
		nextID:           s.MaxColumnID() + 1,
	}
}

func (c *ColumnAddChange) ChangeKind() ChangeKind { return ChangeAdd }

func (c *ColumnAddChange) SupportsPositionChange() bool { return true }

// AddColumn proposes a new top-level column.
func (c *ColumnAddChange) AddColumn(name string, t Type, doc string, defaultValue any) error {
	return c.AddColumnTo("", name, t, doc, defaultValue)
}

// AddColumnTo proposes a new column under parent, an existing record
// column (empty parent means the root). New columns are always optional:
// there is no backfill mechanism, so a required column could never be
// satisfied by existing data files. If t is nested its entire subtree is
// attached in one call, every inner field minted a fresh ID.
func (c *ColumnAddChange) AddColumnTo(parent, name string, t Type, doc string, defaultValue any) error {
	if name == "" {
		return InvalidArgumentError("column name must not be empty")
	}
	parentID := noParentID
	fullName := name
	if parent != "" {
		parentField, ok := c.schema.FindFieldByName(parent)
		if !ok {
			return UnknownColumnError(parent)
		}
		if _, ok := parentField.Type.(*Record); !ok {
			return IncompatibleSchemaError(fmt.Sprintf(
				"cannot add column %s: parent %s is not a record", name, parent))
		}
		parentID = parentField.ID
		fullName = parent + "." + name
		if c.schema.HasColumn(fullName, c.caseSensitive) {
			return DuplicateColumnError(fullName)
		}
	} else if c.schema.HasColumn(name, c.caseSensitive) {
		return DuplicateColumnError(name)
	}
	if _, ok := c.fullNameToID[fullName]; ok {
		return DuplicateColumnError(fullName)
	}

	id := c.nextID
	next := id + 1
	typeWithIDs := assignFreshIDs(t, &next)

	c.fullNameToID[fullName] = id
	if parentID != noParentID {
		c.idToParent[id] = parentID
	}
	c.parentToAdds[parentID] = append(c.parentToAdds[parentID], Field{
		ID:       id,
		Optional: true,
		Name:     name,
		Type:     typeWithIDs,
		Doc:      doc,
		Default:  defaultValue,
	})
	c.nextID = next
	return nil
}

// AddPositionChange reorders a column, either pre-existing or added
// earlier in this change, relative to a sibling or an absolute end.
func (c *ColumnAddChange) AddPositionChange(srcName, anchorName string, kind PositionKind) error {
	return c.addPositionChange(c, srcName, anchorName, kind)
}

// findIDByFullName resolves against the base schema first, then falls
// back to IDs minted earlier in this change, so new columns can be
// positioned relative to each other.
func (c *ColumnAddChange) findIDByFullName(fullName string) (int, error) {
	if id, ok := c.schema.FindIDByName(fullName, c.caseSensitive); ok {
		return id, nil
	}
	if id, ok := c.fullNameToID[fullName]; ok {
		return id, nil
	}
	return 0, UnknownColumnError(fullName)
}

// additions returns the pending new columns for one container.
func (c *ColumnAddChange) additions(parentID int) []Field {
	return c.parentToAdds[parentID]
}

// maxMintedID is the highest ID this change has assigned so far.
func (c *ColumnAddChange) maxMintedID() int {
	return c.nextID - 1
}
