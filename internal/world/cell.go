package world

import "fmt"

// CellKind represents the contents of one maze cell.
// The set is closed: maze text is parsed into these kinds and anything else is rejected.
type CellKind int

const (
	CellOpen           CellKind = iota // ' ' walkable empty space
	CellPillar                         // '+' wall corner / pillar
	CellWallHorizontal                 // '-' horizontal wall run
	CellWallVertical                   // '|' vertical wall run
	CellGoal                           // 'g' exit, blocks like a wall and wins the maze

	// CellVoid is reported for lookups outside the grid. It has no symbol.
	CellVoid
)

// cellInfo holds the static properties of a cell kind
type cellInfo struct {
	symbol   rune
	name     string
	color    uint32 // minimap colour, packed 0xRRGGBB
	blocking bool
}

var cellTable = [...]cellInfo{
	CellOpen:           {symbol: ' ', name: "open", color: 0x000000},
	CellPillar:         {symbol: '+', name: "pillar", color: 0xAA00AA, blocking: true},
	CellWallHorizontal: {symbol: '-', name: "wall_horizontal", color: 0x991199, blocking: true},
	CellWallVertical:   {symbol: '|', name: "wall_vertical", color: 0x881188, blocking: true},
	CellGoal:           {symbol: 'g', name: "goal", color: 0xFF0000, blocking: true},
	CellVoid:           {symbol: 0, name: "void", color: 0x000000, blocking: true},
}

// WallKinds lists the kinds drawn with a wall texture, in symbol order.
var WallKinds = []CellKind{CellPillar, CellWallHorizontal, CellWallVertical, CellGoal}

// ParseCell maps a maze symbol to its kind.
func ParseCell(r rune) (CellKind, bool) {
	for kind, info := range cellTable {
		if CellKind(kind) == CellVoid {
			continue
		}
		if info.symbol == r {
			return CellKind(kind), true
		}
	}
	return CellVoid, false
}

func (k CellKind) valid() bool {
	return k >= 0 && int(k) < len(cellTable)
}

// Symbol returns the maze character for the kind, or 0 for CellVoid.
func (k CellKind) Symbol() rune {
	if !k.valid() {
		return 0
	}
	return cellTable[k].symbol
}

// Color returns the flat minimap colour for the kind.
func (k CellKind) Color() uint32 {
	if !k.valid() {
		return 0
	}
	return cellTable[k].color
}

// IsBlocking reports whether rays and the player stop at this kind.
func (k CellKind) IsBlocking() bool {
	if !k.valid() {
		return true
	}
	return cellTable[k].blocking
}

// IsWall reports whether the kind is one of the textured wall kinds (including the goal).
func (k CellKind) IsWall() bool {
	return k.IsBlocking() && k != CellVoid
}

func (k CellKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
	return cellTable[k].name
}
