package timeaxis

// BlockKind distinguishes the source of a rendered block.
type BlockKind string

const (
	ScheduleBlock BlockKind = "schedule"
	EventBlock    BlockKind = "event"
)

// Block is one positioned rectangle on a day column.
type Block struct {
	Kind        BlockKind
	Ref         string
	Title       string
	StartMinute int
	EndMinute   int
	Geometry    Geometry
	ZIndex      int
}

// LayoutDay computes the geometry for each block of a single day column.
// Overlapping blocks are stacked by z-order in input order only; no
// overlap-avoidance layout is attempted.
func LayoutDay(blocks []Block) []Block {
	laid := make([]Block, 0, len(blocks))
	for i, b := range blocks {
		b.Geometry = GeometryFor(b.StartMinute, b.EndMinute)
		b.ZIndex = i
		laid = append(laid, b)
	}
	return laid
}
