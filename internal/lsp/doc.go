// Package lsp bridges editor document notifications to review point
// tracking.
//
// Editors that speak the Language Server Protocol report every change to
// an open document through textDocument/didChange. Sync decodes those
// notifications into buffer.Edit values and dispatches them to a
// review.Collection so review point ranges follow the text.
//
// # Supported notifications
//
//   - textDocument/didOpen: mirror the document content
//   - textDocument/didChange: incremental changes are applied as they come;
//     a full-content change is diffed line by line against the mirror and
//     replayed as edits
//   - textDocument/didClose: drop the mirror
//   - textDocument/didSave: refresh the mirror when the client sends text
//
// Other methods are logged and ignored.
//
// # Framing
//
// Reader accepts both the base protocol framing (Content-Length headers)
// and newline-delimited JSON, one notification per line:
//
//	r := lsp.NewReader(os.Stdin)
//	s := lsp.NewSync(coll, lsp.WithRoot(root))
//	err := s.Run(ctx, r)
package lsp
