package review

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

// CurrentFormat is the record format written by Record.
const CurrentFormat = 2

// Record is the persisted shape of a Collection.
type Record struct {
	Format       int               `json:"format" yaml:"format"`
	Version      int               `json:"version" yaml:"version"`
	Part         string            `json:"part" yaml:"part"`
	History      []WorkspaceRecord `json:"history" yaml:"history"`
	ReviewPoints []PointRecord     `json:"review_points" yaml:"review_points"`
}

// WorkspaceRecord is the persisted shape of a WorkspaceSnapshot.
type WorkspaceRecord struct {
	Version     int       `json:"version" yaml:"version"`
	Part        string    `json:"part" yaml:"part"`
	Message     string    `json:"message,omitempty" yaml:"message,omitempty"`
	CommittedAt time.Time `json:"committed_at" yaml:"committed_at"`
}

// PointRecord is the persisted shape of a ReviewPoint.
type PointRecord struct {
	ID        string            `json:"id" yaml:"id"`
	File      string            `json:"file" yaml:"file"`
	Range     RangeRecord       `json:"range" yaml:"range"`
	Comment   string            `json:"comment" yaml:"comment"`
	Author    string            `json:"author,omitempty" yaml:"author,omitempty"`
	Version   int               `json:"version" yaml:"version"`
	Closed    bool              `json:"closed" yaml:"closed"`
	Options   map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" yaml:"updated_at"`
	History   []SnapshotRecord  `json:"history,omitempty" yaml:"history,omitempty"`
}

// SnapshotRecord is the persisted shape of a Snapshot. The id is implied by
// the enclosing point.
type SnapshotRecord struct {
	Version     int               `json:"version" yaml:"version"`
	Part        string            `json:"part" yaml:"part"`
	Range       RangeRecord       `json:"range" yaml:"range"`
	Comment     string            `json:"comment" yaml:"comment"`
	Author      string            `json:"author,omitempty" yaml:"author,omitempty"`
	Closed      bool              `json:"closed" yaml:"closed"`
	Options     map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at" yaml:"updated_at"`
	CommittedAt time.Time         `json:"committed_at" yaml:"committed_at"`
}

// RangeRecord is the persisted shape of a buffer.Range.
type RangeRecord struct {
	Start PositionRecord `json:"start" yaml:"start"`
	End   PositionRecord `json:"end" yaml:"end"`
}

// PositionRecord is the persisted shape of a buffer.Position.
type PositionRecord struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

func rangeRecord(r buffer.Range) RangeRecord {
	return RangeRecord{
		Start: PositionRecord{Line: r.Start.Line, Character: r.Start.Character},
		End:   PositionRecord{Line: r.End.Line, Character: r.End.Character},
	}
}

// Range converts the record to a validated range.
func (r RangeRecord) Range() (buffer.Range, error) {
	start, err := buffer.NewPosition(r.Start.Line, r.Start.Character)
	if err != nil {
		return buffer.Range{}, err
	}
	end, err := buffer.NewPosition(r.End.Line, r.End.Character)
	if err != nil {
		return buffer.Range{}, err
	}
	return buffer.NewRange(start, end)
}

// Record returns the persisted shape of the collection.
func (c *Collection) Record() Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec := Record{
		Format:       CurrentFormat,
		Version:      c.version,
		Part:         c.part.String(),
		History:      make([]WorkspaceRecord, len(c.history)),
		ReviewPoints: make([]PointRecord, len(c.points)),
	}
	for i, ws := range c.history {
		rec.History[i] = WorkspaceRecord{
			Version:     ws.Version,
			Part:        ws.Part.String(),
			Message:     ws.Message,
			CommittedAt: ws.CommittedAt,
		}
	}
	for i, p := range c.points {
		rec.ReviewPoints[i] = pointRecord(p)
	}
	return rec
}

func pointRecord(p *ReviewPoint) PointRecord {
	pr := PointRecord{
		ID:        p.ID,
		File:      p.File,
		Range:     rangeRecord(p.Range),
		Comment:   p.Comment,
		Author:    p.Author,
		Version:   p.Version,
		Closed:    p.Closed,
		Options:   maps.Clone(p.Options),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, s := range p.History {
		pr.History = append(pr.History, SnapshotRecord{
			Version:     s.Version,
			Part:        s.Part.String(),
			Range:       rangeRecord(s.Range),
			Comment:     s.Comment,
			Author:      s.Author,
			Closed:      s.Closed,
			Options:     maps.Clone(s.Options),
			UpdatedAt:   s.UpdatedAt,
			CommittedAt: s.CommittedAt,
		})
	}
	return pr
}

// FromRecord builds a collection from its persisted shape. The record is
// validated in full before anything is built; any failure returns an error
// wrapping ErrMalformedRecord.
func FromRecord(rec Record, opts ...Option) (*Collection, error) {
	if rec.Format != CurrentFormat {
		return nil, fmt.Errorf("%w: unsupported format %d", ErrMalformedRecord, rec.Format)
	}
	if rec.Version < 1 {
		return nil, fmt.Errorf("%w: version %d", ErrMalformedRecord, rec.Version)
	}
	part, err := ParsePart(rec.Part)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	history := make([]WorkspaceSnapshot, len(rec.History))
	for i, wr := range rec.History {
		wp, err := ParsePart(wr.Part)
		if err != nil {
			return nil, fmt.Errorf("%w: history %d: %w", ErrMalformedRecord, i, err)
		}
		history[i] = WorkspaceSnapshot{
			Version:     wr.Version,
			Part:        wp,
			Message:     wr.Message,
			CommittedAt: wr.CommittedAt,
		}
	}

	points := make([]*ReviewPoint, 0, len(rec.ReviewPoints))
	seen := make(map[string]bool, len(rec.ReviewPoints))
	for i, pr := range rec.ReviewPoints {
		p, err := pointFromRecord(pr)
		if err != nil {
			return nil, fmt.Errorf("%w: review point %d: %w", ErrMalformedRecord, i, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrMalformedRecord, p.ID)
		}
		seen[p.ID] = true
		points = append(points, p)
	}

	c := New(opts...)
	c.version = rec.Version
	c.part = part
	c.history = history
	for _, p := range points {
		p.File = c.Normalize(p.File)
		c.insertLocked(p)
	}
	return c, nil
}

func pointFromRecord(pr PointRecord) (*ReviewPoint, error) {
	if pr.ID == "" {
		return nil, errors.New("missing id")
	}
	if pr.File == "" {
		return nil, ErrEmptyFile
	}
	if pr.Version < 1 {
		return nil, fmt.Errorf("version %d", pr.Version)
	}
	r, err := pr.Range.Range()
	if err != nil {
		return nil, err
	}

	p := &ReviewPoint{
		ID:        pr.ID,
		File:      pr.File,
		Range:     r,
		Comment:   pr.Comment,
		Author:    pr.Author,
		Version:   pr.Version,
		Closed:    pr.Closed,
		Options:   maps.Clone(pr.Options),
		CreatedAt: pr.CreatedAt,
		UpdatedAt: pr.UpdatedAt,
	}
	for j, sr := range pr.History {
		part, err := ParsePart(sr.Part)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", j, err)
		}
		if sr.Version < 1 || sr.Version > pr.Version {
			return nil, fmt.Errorf("snapshot %d: version %d outside 1..%d", j, sr.Version, pr.Version)
		}
		sr2, err := sr.Range.Range()
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", j, err)
		}
		p.History = append(p.History, Snapshot{
			ID:          p.ID,
			Version:     sr.Version,
			Part:        part,
			Range:       sr2,
			Comment:     sr.Comment,
			Author:      sr.Author,
			Closed:      sr.Closed,
			Options:     maps.Clone(sr.Options),
			UpdatedAt:   sr.UpdatedAt,
			CommittedAt: sr.CommittedAt,
		})
	}
	return p, nil
}
