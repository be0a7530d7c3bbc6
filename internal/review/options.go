package review

import (
	"time"

	"github.com/dshills/revpoint/internal/log"
)

// DefaultComment is the placeholder comment for new review points.
const DefaultComment = "add comment here."

// Option configures a Collection.
type Option func(*Collection)

// WithAuthor sets the author recorded on new review points.
func WithAuthor(author string) Option {
	return func(c *Collection) {
		c.author = author
	}
}

// WithDefaultComment sets the comment used when Add is given none.
func WithDefaultComment(comment string) Option {
	return func(c *Collection) {
		c.defaultComment = comment
	}
}

// WithWorkspaceRoot sets the directory absolute file paths are made
// relative to.
func WithWorkspaceRoot(root string) Option {
	return func(c *Collection) {
		c.root = root
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator sets the review point id source.
func WithIDGenerator(newID func() string) Option {
	return func(c *Collection) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInitialPart sets the part owning version 1 of a new collection.
func WithInitialPart(p Part) Option {
	return func(c *Collection) {
		if p != "" {
			c.part = p
		}
	}
}
