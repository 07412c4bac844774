// Package timeaxis maps minute-of-day values onto the vertical pixel scale of
// a 24-hour day column and back.
package timeaxis

const (
	// HourHeight is the fixed pixel height of one hour on the axis.
	HourHeight = 48.0
	// MinutesPerTick is the commit granularity of the axis.
	MinutesPerTick = 15
	// MinBlockHeight keeps very short blocks visible and clickable.
	MinBlockHeight = 12.0
	// MinutesPerDay is the number of minutes displayed on a full column.
	MinutesPerDay = 24 * 60
)

// Geometry is the vertical placement of a block on the axis.
type Geometry struct {
	Top    float64
	Height float64
}

// PositionFor returns the vertical pixel position of a minute of day.
func PositionFor(minute int) float64 {
	return float64(minute) / 60.0 * HourHeight
}

// GeometryFor returns the placement for a [start,end) minute interval. The
// height is floor-clamped to MinBlockHeight.
func GeometryFor(startMinute, endMinute int) Geometry {
	top := PositionFor(startMinute)
	height := PositionFor(endMinute) - top
	if height < MinBlockHeight {
		height = MinBlockHeight
	}
	return Geometry{Top: top, Height: height}
}

// MinuteAt is the exact inverse of PositionFor, clamped to a single day.
func MinuteAt(offset float64) int {
	minute := int(offset/HourHeight*60.0 + 0.5)
	if minute < 0 {
		return 0
	}
	if minute > MinutesPerDay-1 {
		return MinutesPerDay - 1
	}
	return minute
}

// MinuteDelta converts a signed pixel distance into a signed minute distance
// on the same scale.
func MinuteDelta(deltaPx float64) int {
	minutes := deltaPx / HourHeight * 60.0
	if minutes < 0 {
		return int(minutes - 0.5)
	}
	return int(minutes + 0.5)
}

// SnapToTick rounds a minute to the nearest tick. The result can reach
// MinutesPerDay when the input sits at the very bottom of the column.
func SnapToTick(minute int) int {
	snapped := ((minute + MinutesPerTick/2) / MinutesPerTick) * MinutesPerTick
	if snapped < 0 {
		return 0
	}
	if snapped > MinutesPerDay {
		return MinutesPerDay
	}
	return snapped
}

// ClampMinute limits a minute value to the visible [0, MinutesPerDay-1] range.
func ClampMinute(minute int) int {
	if minute < 0 {
		return 0
	}
	if minute > MinutesPerDay-1 {
		return MinutesPerDay - 1
	}
	return minute
}
