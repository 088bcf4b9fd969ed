package runner

import "github.com/aanchal1810/Oplaite-AI/internal/core"

// LaneCount is the number of lanes, one per answer option.
const LaneCount = 3

// ShiftLane applies one lane intent and clamps the result to the track.
// Actions other than left and right leave the lane unchanged.
func ShiftLane(lane int, a core.Action) int {
	switch a {
	case core.ActionLeft:
		lane--
	case core.ActionRight:
		lane++
	}
	return core.Clamp(lane, 0, LaneCount-1)
}

// SwipeIntent turns a press-to-release movement into a lane intent.
// Short or mostly vertical movements are ignored.
func SwipeIntent(dx, dy, deadZone int) core.Action {
	if core.Abs(dx) <= deadZone || core.Abs(dx) <= core.Abs(dy) {
		return core.ActionNone
	}
	if dx < 0 {
		return core.ActionLeft
	}
	return core.ActionRight
}
