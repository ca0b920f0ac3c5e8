package reservation

// Selection is one user's drag state on one court. While Anchor is set a drag
// is in progress and Current holds its range; Ranges accumulates finished drags.
type Selection struct {
	Anchor  *Cell   `json:"anchor,omitempty"`
	Current *Range  `json:"current,omitempty"`
	Ranges  []Range `json:"ranges"`
}

// DragOutcome reports what a finished drag produced. A rejected range is
// returned for display only and never kept.
type DragOutcome struct {
	Range     Range
	Committed bool
	Reason    Reason
}

// RangeCheck validates a candidate range, returning "" when it may be kept.
type RangeCheck func(Range) Reason

func (s *Selection) Dragging() bool {
	return s.Anchor != nil
}

// DragStart begins a drag at c unless the cell is outside the grid, booked or
// past. A drag left open by a lost pointer-up is replaced.
func (s *Selection) DragStart(g *Grid, c Cell) bool {
	if !g.Visible(c) {
		return false
	}
	switch g.Classify(c.Date, c.Hour) {
	case StateBooked, StatePast:
		return false
	}

	anchor := c
	r := singleHour(c)
	s.Anchor = &anchor
	s.Current = &r
	return true
}

// DragOver stretches the in-progress range to c. Cells on another day are
// ignored; dragging above the anchor flips the range so it still starts first.
func (s *Selection) DragOver(c Cell) bool {
	if !s.Dragging() || c.Date != s.Anchor.Date {
		return false
	}
	if c.Hour < FirstHour || c.Hour > LastHour {
		return false
	}

	a := *s.Anchor
	r := Range{StartDate: a.Date, EndDate: a.Date}
	if c.Hour >= a.Hour {
		r.StartHour, r.EndHour = a.Hour, c.Hour+1
	} else {
		r.StartHour, r.EndHour = c.Hour, a.Hour+1
	}
	s.Current = &r
	return true
}

// DragEnd finishes the drag. The range is kept when check accepts it and it
// does not overlap a range already kept. The drag is cleared either way.
func (s *Selection) DragEnd(check RangeCheck) DragOutcome {
	if !s.Dragging() || s.Current == nil {
		s.Anchor, s.Current = nil, nil
		return DragOutcome{}
	}

	r := *s.Current
	s.Anchor, s.Current = nil, nil

	reason := check(r)
	if reason == "" {
		for _, kept := range s.Ranges {
			if kept.Overlaps(r) {
				reason = ReasonOverlap
				break
			}
		}
	}
	if reason != "" {
		return DragOutcome{Range: r, Reason: reason}
	}

	s.Ranges = append(s.Ranges, r)
	return DragOutcome{Range: r, Committed: true}
}

// RemoveRange drops the i-th kept range, preserving the order of the rest.
func (s *Selection) RemoveRange(i int) error {
	if i < 0 || i >= len(s.Ranges) {
		return ErrRangeIndex
	}
	s.Ranges = append(s.Ranges[:i:i], s.Ranges[i+1:]...)
	return nil
}

// ClearAll drops every kept range. An in-progress drag is left alone.
func (s *Selection) ClearAll() {
	s.Ranges = nil
}

// Pending returns the kept ranges plus the in-progress one, for classification.
func (s *Selection) Pending() []Range {
	out := make([]Range, 0, len(s.Ranges)+1)
	out = append(out, s.Ranges...)
	if s.Current != nil {
		out = append(out, *s.Current)
	}
	return out
}
