// Package csvdb provides a generic, file-backed data store over delimited
// text records.
//
// # Overview
//
// The package centers around [Store], a generic repository that keeps one
// entity type in one newline-delimited text file, one record per line, fields
// joined by commas and quoted when they carry a delimiter, quote character or
// newline. There is no header row and no caching: every call re-reads the
// backing file, every mutation rewrites it in full.
//
// # Durability: Snapshot Rewrite
//
// Mutations load the full record set, transform it in memory and rewrite the
// whole file through an atomic rename. The file on disk is therefore always a
// syntactically complete, independently loadable state. Concurrent mutating
// calls are NOT serialized against each other; two overlapping read-then-
// rewrite cycles resolve as last-writer-wins. That is an accepted property of
// the design, not something the package tries to hide.
//
// # Record Recovery
//
// A line that fails to decode is dropped with a logged warning while the rest
// of the file still loads. Only structural I/O failures propagate to callers.
//
// # References
//
// Records refer to records in other stores by id only. [Resolve] hydrates
// such a reference on decode, substituting a stub carrying just the id when
// the target cannot be found.
package csvdb
