package schema

import "fmt"

// ChangeKind tags the three table-change variants.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// PositionKind is where a moved column lands relative to its anchor.
type PositionKind string

const (
	PositionFirst  PositionKind = "first"
	PositionLast   PositionKind = "last"
	PositionBefore PositionKind = "before"
	PositionAfter  PositionKind = "after"
)

// ParsePositionKind parses the user-facing spelling of a position kind.
func ParsePositionKind(s string) (PositionKind, error) {
	switch PositionKind(s) {
	case PositionFirst, PositionLast, PositionBefore, PositionAfter:
		return PositionKind(s), nil
	}
	return "", InvalidArgumentError(fmt.Sprintf("unknown position kind: %q", s))
}

// PositionChange moves one column relative to a sibling, or to an absolute
// end of its container. Directives are recorded in issue order per parent
// container and applied in that order at rewrite time.
type PositionChange struct {
	SourceID int
	AnchorID int // before/after only
	Kind     PositionKind
}

// TableChange is one pending change set against a fixed base schema.
// A change is built by one caller, consumed once by ApplyTableChanges,
// and never reused.
type TableChange interface {
	ChangeKind() ChangeKind
	SupportsPositionChange() bool

	// findIDByFullName resolves a user-facing dotted name to a field ID.
	// Update and Delete resolve strictly against the base schema; Add
	// additionally resolves IDs it minted itself. The asymmetry is
	// deliberate: a reorder must never reference an update target that
	// has not been committed.
	findIDByFullName(fullName string) (int, error)
}

// baseColumnChange carries the state shared by all change variants: the
// base schema snapshot, the case-sensitivity mode for name checks, the
// parent map extended as columns are minted, and the per-parent ordered
// position-directive log.
type baseColumnChange struct {
	schema        *Schema
	caseSensitive bool
	idToParent    map[int]int
	positions     map[int][]PositionChange
}

func newBaseColumnChange(s *Schema, caseSensitive bool) baseColumnChange {
	return baseColumnChange{
		schema:        s,
		caseSensitive: caseSensitive,
		idToParent:    make(map[int]int),
		positions:     make(map[int][]PositionChange),
	}
}

func (b *baseColumnChange) parentOf(id int) int {
	if p, ok := b.idToParent[id]; ok {
		return p
	}
	return b.schema.parentID(id)
}

// checkColumnModifiable verifies that name resolves through the variant's
// resolver before a mutation is recorded against it.
func (b *baseColumnChange) checkColumnModifiable(c TableChange, name string) (int, error) {
	id, err := c.findIDByFullName(name)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// addPositionChange records a reorder directive for the container shared
// by source and anchor. Before/After require both columns to sit under
// the same parent; First/Last take no anchor.
func (b *baseColumnChange) addPositionChange(c TableChange, srcName, anchorName string, kind PositionKind) error {
	if !c.SupportsPositionChange() {
		return UnsupportedError(fmt.Sprintf("%s change does not support position changes", c.ChangeKind()))
	}
	srcID, err := c.findIDByFullName(srcName)
	if err != nil {
		return err
	}
	parentID := b.parentOf(srcID)
	if parentID != noParentID {
		if parent, ok := b.schema.FindFieldByID(parentID); ok {
			if _, isRecord := parent.Type.(*Record); !isRecord {
				return InvalidArgumentError(fmt.Sprintf(
					"cannot reorder %s: container %s is not a record", srcName, parent.Name))
			}
		}
	}

	pc := PositionChange{SourceID: srcID, Kind: kind}
	switch kind {
	case PositionBefore, PositionAfter:
		anchorID, err := c.findIDByFullName(anchorName)
		if err != nil {
			return err
		}
		if b.parentOf(anchorID) != parentID {
			return InvalidArgumentError(fmt.Sprintf(
				"cannot reorder column %s relative to %s: different parents", srcName, anchorName))
		}
		pc.AnchorID = anchorID
	case PositionFirst, PositionLast:
		// no anchor
	default:
		return InvalidArgumentError(fmt.Sprintf("unknown position kind: %q", kind))
	}
	b.positions[parentID] = append(b.positions[parentID], pc)
	return nil
}

// positionChanges returns the ordered directive log for one container.
func (b *baseColumnChange) positionChanges(parentID int) []PositionChange {
	return b.positions[parentID]
}
