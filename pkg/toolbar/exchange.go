package toolbar

import "fmt"

// Exchange swaps items[parentIndex] with its subitem at subitemIndex and
// returns the new top-level slice. The tapped subitem takes the parent's
// slot and inherits the parent's subitem list, in which its own position
// now holds the parent stripped of children. The subitem's previous
// children are discarded.
//
// The input slice and every item reachable from it are left untouched;
// the result shares no subitem storage with them.
func Exchange(items []ActionItem, parentIndex, subitemIndex int) ([]ActionItem, error) {
	if parentIndex < 0 || parentIndex >= len(items) {
		return nil, fmt.Errorf("exchange parent %d of %d items: %w",
			parentIndex, len(items), ErrIndexOutOfRange)
	}
	parent := items[parentIndex]
	if subitemIndex < 0 || subitemIndex >= len(parent.SubItems) {
		return nil, fmt.Errorf("exchange subitem %d of %d under %q: %w",
			subitemIndex, len(parent.SubItems), parent.Identifier, ErrIndexOutOfRange)
	}

	siblings := cloneItems(parent.SubItems)
	siblings[subitemIndex] = parent.Stripped()

	promoted := parent.SubItems[subitemIndex].Stripped()
	promoted.SubItems = siblings

	out := cloneItems(items)
	out[parentIndex] = promoted
	return out, nil
}
