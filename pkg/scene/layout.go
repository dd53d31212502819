package scene

import "math"

// layoutTracks computes the horizontal placement of every track and the
// content bounds of the scene. It runs only from Validate.
func (s *Scene) layoutTracks() {
	width := 0
	minY, maxY := math.MaxInt, math.MinInt
	expandable := 0

	for _, e := range s.entries {
		size := e.track.ContentSize()
		if Expandable(e.constraint) {
			expandable++
		}

		e.x = width
		if w := ParseConstraint(e.constraint); w > 0 {
			e.width = w
		} else {
			e.width = int(math.Ceil(size.W))
		}
		width += e.width

		if size.H >= 0 {
			minY = min(minY, int(math.Floor(size.MinY())))
			maxY = max(maxY, int(math.Ceil(size.MaxY())))
		}
	}

	if s.preferredWidth > 0 && expandable > 0 {
		s.distribute(s.preferredWidth-width, expandable)
		width = s.preferredWidth
	}

	if minY == math.MaxInt {
		minY = 0
	}
	if maxY == math.MinInt {
		maxY = 0
	}
	s.contents.width = width
	s.contents.y = minY
	s.contents.height = maxY - minY

	s.logger.Debug("scene layout",
		"tracks", len(s.entries),
		"width", width,
		"expandable", expandable,
		"y", minY,
		"height", maxY-minY)
}

// distribute spreads adjust over the expandable tracks when it is positive,
// or over every track when the natural width is too large. Widths stay
// integral: the share is adjust divided evenly and the remainder of the
// division goes to the last eligible track so the widths always add up to
// the preferred width.
func (s *Scene) distribute(adjust, expandable int) {
	grow := adjust >= 0
	eligible := len(s.entries)
	if grow {
		eligible = expandable
	}
	share := adjust / eligible
	rem := adjust - share*eligible

	last := -1
	for i, e := range s.entries {
		if !grow || Expandable(e.constraint) {
			last = i
		}
	}

	x := 0
	for i, e := range s.entries {
		e.x = x
		if !grow || Expandable(e.constraint) {
			e.width += share
			if i == last {
				e.width += rem
			}
		}
		x += e.width
	}
}
