package tui

import (
	"testing"

	"github.com/scline/collegevis/internal/errors"
	"github.com/scline/collegevis/internal/scorecard"
)

func req(college string) scorecard.SeriesRequest {
	return scorecard.SeriesRequest{College: college, Field: "SAT_AVG", StartYear: 2012, EndYear: 2014}
}

func TestRequestList_AddRemove(t *testing.T) {
	list := NewRequestList(20)

	list, err := list.Add(req("Alder College"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	list, err = list.Add(req("Birch University"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if list.Len() != 2 || list.Version() != 2 {
		t.Errorf("Len = %d, Version = %d", list.Len(), list.Version())
	}

	list = list.Remove(0)
	items := list.Items()
	if len(items) != 1 || items[0].College != "Birch University" {
		t.Errorf("items = %v", items)
	}
	if list.Version() != 3 {
		t.Errorf("Version = %d, want 3", list.Version())
	}
}

func TestRequestList_RemoveOutOfRange(t *testing.T) {
	list := NewRequestList(20)
	list, _ = list.Add(req("Alder College"))

	before := list.Version()
	for _, i := range []int{-1, 1, 99} {
		list = list.Remove(i)
	}
	if list.Len() != 1 || list.Version() != before {
		t.Errorf("out-of-range removes must be no-ops: Len = %d, Version = %d", list.Len(), list.Version())
	}
}

func TestRequestList_Cap(t *testing.T) {
	list := NewRequestList(2)
	list, _ = list.Add(req("A"))
	list, _ = list.Add(req("B"))

	_, err := list.Add(req("C"))
	if !errors.Is(err, errors.ErrTooManySeries) {
		t.Fatalf("got %v, want ErrTooManySeries", err)
	}
	if list.Len() != 2 {
		t.Errorf("Len = %d, a rejected add must not grow the list", list.Len())
	}
}

func TestRequestList_Snapshot(t *testing.T) {
	list := NewRequestList(20)
	list, _ = list.Add(req("Alder College"))

	items := list.Items()
	items[0].College = "mutated"

	if list.Items()[0].College != "Alder College" {
		t.Error("Items must return a copy")
	}
}
