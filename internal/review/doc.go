// Package review keeps review points anchored to ranges of workspace files.
//
// A Collection owns every review point of a workspace. Editors report each
// text change through Collection.ApplyEdit, which moves the ranges of the
// points in the edited file so they keep covering the same text.
//
// Review proceeds in versions. Version 1 belongs to the reviewer; Commit
// snapshots every open point and hands the next version to the other part,
// and Revert discards the current version:
//
//	c := review.New(review.WithAuthor("alice"))
//	p, _ := c.Add("main.go", buffer.MustRange(3, 0, 3, 12), "rename this")
//	c.ApplyEdit("main.go", buffer.NewInsert(buffer.Pos(0, 0), "// header\n"))
//	got, _ := c.Get(p.ID) // got.Range is now [(4:0):(4:12))
//	c.Commit("first pass")
//
// Record and FromRecord convert a Collection to and from its persisted
// shape; see package store for the file format.
package review
