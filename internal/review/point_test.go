package review

import (
	"testing"
	"time"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

func TestReviewPointApplyEdit(t *testing.T) {
	p := &ReviewPoint{ID: "a", File: "a.go", Range: buffer.MustRange(1, 3, 1, 8)}

	// Delete "ab" before the range on the same line.
	if !p.ApplyEdit(buffer.NewDelete(buffer.MustRange(1, 0, 1, 2))) {
		t.Fatal("ApplyEdit() = false")
	}
	if want := buffer.MustRange(1, 1, 1, 6); p.Range != want {
		t.Errorf("Range = %s, want %s", p.Range, want)
	}

	if p.ApplyEdit(buffer.NewInsert(buffer.Pos(2, 0), "zz")) {
		t.Error("ApplyEdit() after range = true")
	}
}

func TestReviewPointSnapshotRestore(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &ReviewPoint{
		ID:      "a",
		File:    "a.go",
		Range:   buffer.MustRange(0, 0, 0, 5),
		Comment: "before",
		Version: 1,
		Options: map[string]string{"k": "v"},
	}

	s := p.Snapshot(PartReviewer, at)
	if s.ID != "a" || s.Part != PartReviewer || !s.CommittedAt.Equal(at) {
		t.Errorf("Snapshot() = %+v", s)
	}

	p.Options["k"] = "changed"
	if s.Options["k"] != "v" {
		t.Error("snapshot shares option map")
	}

	p.Comment = "after"
	p.Version = 2
	p.Range = buffer.MustRange(3, 0, 3, 5)
	p.restore(s)

	if p.Comment != "before" || p.Version != 1 || p.Options["k"] != "v" {
		t.Errorf("restore() = %+v", p)
	}
	if want := buffer.MustRange(3, 0, 3, 5); p.Range != want {
		t.Errorf("restore() replaced live range: %s", p.Range)
	}
}

func TestReviewPointClone(t *testing.T) {
	p := &ReviewPoint{
		ID:      "a",
		Options: map[string]string{"k": "v"},
		History: []Snapshot{{ID: "a", Options: map[string]string{"k": "v"}}},
	}
	c := p.Clone()
	c.Options["k"] = "x"
	c.History[0].Options["k"] = "x"
	c.History[0].Comment = "x"

	if p.Options["k"] != "v" || p.History[0].Options["k"] != "v" || p.History[0].Comment != "" {
		t.Errorf("Clone() shares state with original: %+v", p)
	}

	if _, ok := (&ReviewPoint{}).Latest(); ok {
		t.Error("Latest() on empty history = ok")
	}
	if s, ok := p.Latest(); !ok || s.ID != "a" {
		t.Errorf("Latest() = %+v, %v", s, ok)
	}
}
