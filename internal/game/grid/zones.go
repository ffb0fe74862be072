package grid

// Side identifies which half of the grid a player deploys from. The
// first player in battle order owns the left half, the second the right.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// InDeploymentZone reports whether pos is a legal deployment cell for
// side: the side's own half of the columns plus the shared middle
// column(s).
func (l Layout) InDeploymentZone(side Side, pos Position) bool {
	if !l.InBounds(pos) {
		return false
	}
	if l.IsMiddleColumn(pos.Col) {
		return true
	}
	mid := l.Cols / 2
	if side == SideLeft {
		return pos.Col < mid
	}
	if l.Cols%2 == 1 {
		return pos.Col > mid
	}
	return pos.Col >= mid
}

// Flank classifies a column for flank combat modifiers.
type Flank int

const (
	FlankField Flank = iota
	FlankLeftEdge
	FlankCenter
	FlankRightEdge
)

var flankNames = map[Flank]string{
	FlankField:     "FIELD",
	FlankLeftEdge:  "LEFT_EDGE",
	FlankCenter:    "CENTER",
	FlankRightEdge: "RIGHT_EDGE",
}

func (f Flank) String() string {
	if name, ok := flankNames[f]; ok {
		return name
	}
	return "FIELD"
}

// FlankOf returns the flank classification for a column: the two edge
// columns and the exact center column carry modifiers, everything else
// is open field.
func (l Layout) FlankOf(col int) Flank {
	switch {
	case col == 0:
		return FlankLeftEdge
	case col == l.Cols-1:
		return FlankRightEdge
	case l.Cols%2 == 1 && col == l.Cols/2:
		return FlankCenter
	default:
		return FlankField
	}
}
