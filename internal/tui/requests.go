package tui

import (
	"github.com/scline/collegevis/internal/errors"
	"github.com/scline/collegevis/internal/scorecard"
)

// RequestList is the set of series requests pending for the next plot. It
// is an immutable value: every mutation returns a new list with a bumped
// version, and the render pass only ever sees a snapshot. State changes
// flow exclusively through the AddSeriesRequest, RemoveSeriesRequest, and
// SubmitPlot messages.
type RequestList struct {
	version int
	max     int
	items   []scorecard.SeriesRequest
}

// NewRequestList returns an empty list capped at max entries.
func NewRequestList(max int) RequestList {
	return RequestList{max: max}
}

// Add appends a request. A full list is left unchanged and returns
// ErrTooManySeries.
func (l RequestList) Add(req scorecard.SeriesRequest) (RequestList, error) {
	if l.max > 0 && len(l.items) >= l.max {
		return l, errors.Wrapf(errors.ErrTooManySeries, "limit is %d", l.max)
	}
	items := make([]scorecard.SeriesRequest, len(l.items)+1)
	copy(items, l.items)
	items[len(l.items)] = req
	return RequestList{version: l.version + 1, max: l.max, items: items}, nil
}

// Remove drops the request at index i. Out-of-range indexes are ignored.
func (l RequestList) Remove(i int) RequestList {
	if i < 0 || i >= len(l.items) {
		return l
	}
	items := make([]scorecard.SeriesRequest, 0, len(l.items)-1)
	items = append(items, l.items[:i]...)
	items = append(items, l.items[i+1:]...)
	return RequestList{version: l.version + 1, max: l.max, items: items}
}

// Items returns a snapshot of the pending requests.
func (l RequestList) Items() []scorecard.SeriesRequest {
	out := make([]scorecard.SeriesRequest, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of pending requests.
func (l RequestList) Len() int { return len(l.items) }

// Version increments with every mutation.
func (l RequestList) Version() int { return l.version }
