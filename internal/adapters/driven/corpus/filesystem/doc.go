// Package filesystem provides the corpus loader: a driven.ChunkSource
// backed by a flat directory of .txt and .md files.
//
// The loader keeps one immutable snapshot of chunks in memory and only
// re-reads the directory when a file's modification time reaches the
// snapshot's build time, the number of eligible files changes, or the
// watcher reports a change. Concurrent reloads are coalesced so the
// corpus is read at most once at a time.
package filesystem
