package review

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/revpoint/internal/engine/buffer"
	"github.com/dshills/revpoint/internal/engine/tracking"
	"github.com/dshills/revpoint/internal/log"
)

// WorkspaceSnapshot records one commit of the whole workspace.
type WorkspaceSnapshot struct {
	Version     int // the version that was committed
	Part        Part
	Message     string
	CommittedAt time.Time
}

// Collection holds every review point of a workspace and dispatches edits
// to the points of the edited file.
// All operations are thread-safe; accessors return copies.
type Collection struct {
	mu sync.RWMutex

	points []*ReviewPoint // creation order
	byID   map[string]*ReviewPoint
	byFile map[string][]*ReviewPoint

	version int
	part    Part
	history []WorkspaceSnapshot

	author         string
	defaultComment string
	root           string
	now            func() time.Time
	newID          func() string
	logger         *log.Logger
	updater        *tracking.Updater

	handlersMu sync.RWMutex
	onChange   []func(file string)
}

// New creates an empty collection at version 1, owned by the reviewer.
func New(opts ...Option) *Collection {
	c := &Collection{
		byID:           make(map[string]*ReviewPoint),
		byFile:         make(map[string][]*ReviewPoint),
		version:        1,
		part:           PartReviewer,
		defaultComment: DefaultComment,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
		logger:         log.Nop(),
		updater:        tracking.NewUpdater(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// OnChange registers a handler called with the file whose review point
// ranges moved after an ApplyEdit. Handlers run after the collection lock
// is released.
func (c *Collection) OnChange(fn func(file string)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Add anchors a new review point to r in file.
func (c *Collection) Add(file string, r buffer.Range, comment string) (ReviewPoint, error) {
	file = c.Normalize(file)
	if file == "" {
		return ReviewPoint{}, ErrEmptyFile
	}
	if !r.IsValid() {
		return ReviewPoint{}, fmt.Errorf("%w: %s", buffer.ErrInvalidRange, r)
	}
	if comment == "" {
		comment = c.defaultComment
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	p := &ReviewPoint{
		ID:        c.newID(),
		File:      file,
		Range:     r,
		Comment:   comment,
		Author:    c.author,
		Version:   c.version,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.insertLocked(p)

	c.logger.Debug("review point added", "id", p.ID, "file", file, "range", r.String())
	return p.Clone(), nil
}

// Get returns a copy of the review point with the given id.
func (c *Collection) Get(id string) (ReviewPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	if !ok {
		return ReviewPoint{}, false
	}
	return p.Clone(), true
}

// Points returns copies of all review points in creation order.
func (c *Collection) Points() []ReviewPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.points)
}

// PointsIn returns copies of the review points anchored in file.
func (c *Collection) PointsIn(file string) []ReviewPoint {
	file = c.Normalize(file)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.byFile[file])
}

// PointsAt returns copies of the review points of file whose range touches
// pos. An empty range matches only its own position.
func (c *Collection) PointsAt(file string, pos buffer.Position) []ReviewPoint {
	at := buffer.Range{Start: pos, End: pos}

	var out []ReviewPoint
	for _, p := range c.PointsIn(file) {
		if p.Range.Intersects(at) {
			out = append(out, p)
		}
	}
	return out
}

// Files returns the sorted set of files that have review points.
func (c *Collection) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files := make([]string, 0, len(c.byFile))
	for f := range c.byFile {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of review points.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.points)
}

// Version returns the current working version.
func (c *Collection) Version() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Part returns the party that owns the current version.
func (c *Collection) Part() Part {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.part
}

// History returns the workspace commits, oldest first.
func (c *Collection) History() []WorkspaceSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.history)
}

// BelongsTo reports whether file has any review points. Editor integrations
// call it on every keystroke to skip dispatch for untracked files.
func (c *Collection) BelongsTo(file string) bool {
	file = c.Normalize(file)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byFile[file]) > 0
}

// ApplyEdit moves the ranges of every review point in file to follow e.
// It returns true if any range changed.
func (c *Collection) ApplyEdit(file string, e buffer.Edit) bool {
	file = c.Normalize(file)
	if e.IsNoOp() {
		return false
	}

	c.mu.Lock()
	points := c.byFile[file]
	ranges := make([]buffer.Range, len(points))
	for i, p := range points {
		ranges[i] = p.Range
	}
	moved := c.updater.UpdateAll(ranges, e)
	for _, i := range moved {
		p := points[i]
		c.logger.Debug("range updated", "id", p.ID, "file", file, "from", p.Range.String(), "to", ranges[i].String())
		p.Range = ranges[i]
	}
	c.mu.Unlock()

	if len(moved) == 0 {
		return false
	}
	c.notify(file)
	return true
}

// Stats returns the range update counters.
func (c *Collection) Stats() tracking.Stats {
	return c.updater.Stats()
}

// Remove deletes a review point. Unknown ids are ignored.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return false
	}
	c.deleteLocked(p)
	return true
}

// UpdateComment replaces a review point's comment. It returns false for
// unknown ids and unchanged comments.
func (c *Collection) UpdateComment(id, comment string) bool {
	return c.mutate(id, func(p *ReviewPoint) bool { return p.SetComment(comment) })
}

// Close marks a review point as resolved.
func (c *Collection) Close(id string) bool {
	return c.mutate(id, (*ReviewPoint).Close)
}

// Reopen clears a review point's resolved flag.
func (c *Collection) Reopen(id string) bool {
	return c.mutate(id, (*ReviewPoint).Reopen)
}

// SetOption sets a key/value option on a review point.
func (c *Collection) SetOption(id, key, value string) bool {
	return c.mutate(id, func(p *ReviewPoint) bool { return p.SetOption(key, value) })
}

// DeleteOption removes an option from a review point.
func (c *Collection) DeleteOption(id, key string) bool {
	return c.mutate(id, func(p *ReviewPoint) bool { return p.DeleteOption(key) })
}

// Reanchor resets a review point's range to the user's current selection.
// Unknown ids are ignored. A selection in a different file is rejected
// with ErrFileMismatch and leaves the point untouched.
func (c *Collection) Reanchor(id, file string, r buffer.Range) (bool, error) {
	if !r.IsValid() {
		return false, fmt.Errorf("%w: %s", buffer.ErrInvalidRange, r)
	}
	file = c.Normalize(file)

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return false, nil
	}
	if p.File != file {
		return false, fmt.Errorf("%w: point is in %s, selection in %s", ErrFileMismatch, p.File, file)
	}
	if p.Range == r {
		return false, nil
	}
	p.Reanchor(r)
	p.UpdatedAt = c.now()
	return true, nil
}

// Commit closes the current version. Every open review point pushes a
// snapshot onto its history and moves to the new version; the workspace
// is handed to the other part.
func (c *Collection) Commit(message string) WorkspaceSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	ws := WorkspaceSnapshot{
		Version:     c.version,
		Part:        c.part,
		Message:     message,
		CommittedAt: now,
	}

	next := c.version + 1
	committed := 0
	for _, p := range c.points {
		if p.Closed {
			continue
		}
		p.History = append(p.History, p.Snapshot(c.part, now))
		p.Version = next
		committed++
	}

	c.history = append(c.history, ws)
	c.version = next
	c.part = c.part.Next()

	c.logger.Info("version committed", "version", ws.Version, "part", ws.Part.String(), "points", committed)
	return ws
}

// Revert discards the current version and returns to the previous one.
// Points of the current version take back their newest snapshot; points
// created in it are removed.
func (c *Collection) Revert() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		return ErrNothingToRevert
	}

	current := c.version
	kept := make([]*ReviewPoint, 0, len(c.points))
	removed := 0
	for _, p := range c.points {
		if p.Version != current {
			kept = append(kept, p)
			continue
		}
		last, ok := p.Latest()
		if !ok {
			delete(c.byID, p.ID)
			removed++
			continue
		}
		p.restore(last)
		p.History = p.History[:len(p.History)-1]
		kept = append(kept, p)
	}
	c.points = kept
	c.reindexLocked()

	ws := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.version = ws.Version
	c.part = ws.Part

	c.logger.Info("version reverted", "from", current, "to", c.version, "removed", removed)
	return nil
}

// mutate applies fn to a known review point and stamps UpdatedAt when fn
// reports a change.
func (c *Collection) mutate(id string, fn func(p *ReviewPoint) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return false
	}
	if !fn(p) {
		return false
	}
	p.UpdatedAt = c.now()
	return true
}

func (c *Collection) notify(file string) {
	c.handlersMu.RLock()
	handlers := slices.Clone(c.onChange)
	c.handlersMu.RUnlock()

	for _, fn := range handlers {
		fn(file)
	}
}

// insertLocked adds p to every index (must hold lock).
func (c *Collection) insertLocked(p *ReviewPoint) {
	c.points = append(c.points, p)
	c.byID[p.ID] = p
	c.byFile[p.File] = append(c.byFile[p.File], p)
}

// deleteLocked removes p from every index (must hold lock).
func (c *Collection) deleteLocked(p *ReviewPoint) {
	c.points = slices.DeleteFunc(c.points, func(x *ReviewPoint) bool { return x == p })
	delete(c.byID, p.ID)

	rest := slices.DeleteFunc(c.byFile[p.File], func(x *ReviewPoint) bool { return x == p })
	if len(rest) == 0 {
		delete(c.byFile, p.File)
	} else {
		c.byFile[p.File] = rest
	}
}

// reindexLocked rebuilds the per-file index from points (must hold lock).
func (c *Collection) reindexLocked() {
	c.byFile = make(map[string][]*ReviewPoint, len(c.byFile))
	for _, p := range c.points {
		c.byFile[p.File] = append(c.byFile[p.File], p)
	}
}

func cloneAll(points []*ReviewPoint) []ReviewPoint {
	out := make([]ReviewPoint, len(points))
	for i, p := range points {
		out[i] = p.Clone()
	}
	return out
}
