package review

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/engine/tracking"
)

// Part identifies which side of the review owns a version.
type Part string

// Part values.
const (
	PartReviewer Part = "reviewer"
	PartReviewee Part = "reviewee"
)

// ParsePart parses a part name.
func ParsePart(s string) (Part, error) {
	switch Part(s) {
	case PartReviewer, PartReviewee:
		return Part(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPart, s)
	}
}

// Next returns the part that responds to p.
func (p Part) Next() Part {
	if p == PartReviewer {
		return PartReviewee
	}
	return PartReviewer
}

// String returns the part name.
func (p Part) String() string {
	return string(p)
}

// Snapshot is an immutable copy of a review point's mutable fields taken
// at commit time. It shares the ID of the point it was taken from.
type Snapshot struct {
	ID          string
	Version     int
	Part        Part
	Range       buffer.Range
	Comment     string
	Author      string
	Closed      bool
	Options     map[string]string
	UpdatedAt   time.Time
	CommittedAt time.Time
}

// ReviewPoint is a comment anchored to a range of a file.
// Range is kept valid against the current file content by ApplyEdit.
type ReviewPoint struct {
	ID        string
	File      string // workspace-relative, slash separated
	Range     buffer.Range
	Comment   string
	Author    string
	Version   int
	Closed    bool
	Options   map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time

	// History holds committed snapshots, oldest first.
	History []Snapshot
}

// ApplyEdit moves the range to follow e. It returns true if the range
// changed.
func (p *ReviewPoint) ApplyEdit(e buffer.Edit) bool {
	next, changed := tracking.UpdateRange(p.Range, e)
	if changed {
		p.Range = next
	}
	return changed
}

// Reanchor replaces the range unconditionally.
func (p *ReviewPoint) Reanchor(r buffer.Range) {
	p.Range = r
}

// SetComment replaces the comment. It reports whether it changed.
func (p *ReviewPoint) SetComment(comment string) bool {
	if p.Comment == comment {
		return false
	}
	p.Comment = comment
	return true
}

// Close marks the point resolved.
func (p *ReviewPoint) Close() bool {
	if p.Closed {
		return false
	}
	p.Closed = true
	return true
}

// Reopen clears the resolved flag.
func (p *ReviewPoint) Reopen() bool {
	if !p.Closed {
		return false
	}
	p.Closed = false
	return true
}

// SetOption sets key to value.
func (p *ReviewPoint) SetOption(key, value string) bool {
	if cur, ok := p.Options[key]; ok && cur == value {
		return false
	}
	if p.Options == nil {
		p.Options = make(map[string]string)
	}
	p.Options[key] = value
	return true
}

// DeleteOption removes key.
func (p *ReviewPoint) DeleteOption(key string) bool {
	if _, ok := p.Options[key]; !ok {
		return false
	}
	delete(p.Options, key)
	return true
}

// Latest returns the most recent snapshot, if any.
func (p *ReviewPoint) Latest() (Snapshot, bool) {
	if len(p.History) == 0 {
		return Snapshot{}, false
	}
	return p.History[len(p.History)-1], true
}

// Clone returns a deep copy of p.
func (p *ReviewPoint) Clone() ReviewPoint {
	c := *p
	c.Options = maps.Clone(p.Options)
	c.History = slices.Clone(p.History)
	for i := range c.History {
		c.History[i].Options = maps.Clone(c.History[i].Options)
	}
	return c
}

// Snapshot records the current state as committed by part at the given time.
func (p *ReviewPoint) Snapshot(part Part, at time.Time) Snapshot {
	return Snapshot{
		ID:          p.ID,
		Version:     p.Version,
		Part:        part,
		Range:       p.Range,
		Comment:     p.Comment,
		Author:      p.Author,
		Closed:      p.Closed,
		Options:     maps.Clone(p.Options),
		UpdatedAt:   p.UpdatedAt,
		CommittedAt: at,
	}
}

// restore copies a snapshot's metadata back into p. The live range is
// kept: it tracks the current file content, which the snapshot does not.
func (p *ReviewPoint) restore(s Snapshot) {
	p.Version = s.Version
	p.Comment = s.Comment
	p.Author = s.Author
	p.Closed = s.Closed
	p.Options = maps.Clone(s.Options)
	p.UpdatedAt = s.UpdatedAt
}
