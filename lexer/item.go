// SPDX-License-Identifier: MIT
package lexer

import "fmt"

type (
	// ItemID int holding an identifier for the Item tokens
	ItemID int

	// Item type holding token, value & item type of scanned runes.
	Item struct {
		Err error
		Val string // The value of this Item
		ID  ItemID // The type of this Item
		Pos int    // The starting position, (in runes) of this Item
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_             = iota // Consume 0 to start actual numbering at 1.
	ItemError            // Notify occurrence of an `error`.
	ItemSplitter         // References the splitter.
	ItemEOF              // End of the source.
	ItemValue            // Node identifier.
	ItemEndMarker        // References the end marker.
)

var itemNames = map[ItemID]string{
	ItemError:     "error",
	ItemSplitter:  "splitter",
	ItemEOF:       "EOF",
	ItemValue:     "value",
	ItemEndMarker: "end marker",
}

// String is the `fmt.Stringer` interface implementation for ItemID.
func (i ItemID) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}

	return fmt.Sprintf("item(%d)", int(i))
}

// String is the `fmt.Stringer` interface implementation for Item.
func (i Item) String() string {
	switch i.ID {
	case ItemError:
		return fmt.Sprintf("%s@%d: %v", i.ID, i.Pos, i.Err)
	case ItemValue:
		return fmt.Sprintf("%s@%d: %q", i.ID, i.Pos, i.Val)
	}

	return fmt.Sprintf("%s@%d", i.ID, i.Pos)
}
