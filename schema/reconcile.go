package schema

import "fmt"

// reconcileFieldOrder merges one container's surviving original fields,
// its newly added fields, and its ordered position directives into the
// final field order.
//
// The working list seeds with the originals followed by the additions in
// declaration order, so untouched columns keep their place and new
// columns default to the back. Directives then apply strictly in the
// order they were issued, each one seeing the effects of the previous:
// "move A after C, then move B first" is a sequence, not a constraint
// set. A directive whose source or anchor is no longer present (for
// example, deleted in the same rewrite) fails here, the earliest point
// the final deletion set is known.
func reconcileFieldOrder(original, additions []Field, directives []PositionChange) ([]Field, error) {
	working := make([]Field, 0, len(original)+len(additions))
	working = append(working, original...)
	working = append(working, additions...)

	for _, d := range directives {
		src := indexOfField(working, d.SourceID)
		if src < 0 {
			return nil, InvalidArgumentError(fmt.Sprintf(
				"cannot move column id %d: not present in container", d.SourceID))
		}
		moved := working[src]
		working = append(working[:src], working[src+1:]...)

		var at int
		switch d.Kind {
		case PositionFirst:
			at = 0
		case PositionLast:
			at = len(working)
		case PositionBefore, PositionAfter:
			anchor := indexOfField(working, d.AnchorID)
			if anchor < 0 {
				return nil, InvalidArgumentError(fmt.Sprintf(
					"cannot move column id %d: anchor id %d not present in container",
					d.SourceID, d.AnchorID))
			}
			at = anchor
			if d.Kind == PositionAfter {
				at++
			}
		default:
			return nil, InvalidArgumentError(fmt.Sprintf("unknown position kind: %q", d.Kind))
		}

		working = append(working, Field{})
		copy(working[at+1:], working[at:])
		working[at] = moved
	}
	return working, nil
}

func indexOfField(fields []Field, id int) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}
