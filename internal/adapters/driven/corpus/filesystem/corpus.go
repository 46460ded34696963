package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/core/ports/driven"
	"github.com/custodia-labs/shiori/internal/logger"
	"github.com/custodia-labs/shiori/internal/postprocessors"
)

// Ensure Corpus implements the interface.
var _ driven.ChunkSource = (*Corpus)(nil)

// DefaultWorkers is the default number of files read concurrently during a reload.
const DefaultWorkers = 4

const reloadKey = "reload"

// mtimeSlack is subtracted from a reload's start time when recording
// BuiltAt. File mtimes come from a coarse clock, so a write landing just
// after the reload started can carry an mtime slightly before it.
const mtimeSlack = time.Second

// Corpus is the in-memory corpus cache for one knowledge directory.
type Corpus struct {
	dir      string
	pipeline driven.PostProcessorPipeline
	workers  int
	pool     *ants.Pool

	mu       sync.RWMutex
	snapshot *domain.Snapshot
	dirty    bool

	group   singleflight.Group
	reloads atomic.Int64
}

// Option configures a Corpus.
type Option func(*Corpus)

// WithWorkers sets the size of the file-reading pool.
func WithWorkers(n int) Option {
	return func(c *Corpus) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPipeline replaces the default paragraph/lowercase pipeline.
func WithPipeline(p driven.PostProcessorPipeline) Option {
	return func(c *Corpus) {
		if p != nil {
			c.pipeline = p
		}
	}
}

// New creates a corpus loader for dir. Nothing is read until the first
// call to Chunks. Call Close to release the worker pool.
func New(dir string, opts ...Option) (*Corpus, error) {
	c := &Corpus{
		dir:      dir,
		pipeline: postprocessors.DefaultPipeline(),
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}

	pool, err := ants.NewPool(c.workers)
	if err != nil {
		return nil, fmt.Errorf("create reader pool: %w", err)
	}
	c.pool = pool

	return c, nil
}

// Dir returns the knowledge directory.
func (c *Corpus) Dir() string {
	return c.dir
}

// Close releases the worker pool.
func (c *Corpus) Close() error {
	c.pool.Release()
	return nil
}

// Chunks returns the current snapshot's chunks, reloading first if the
// directory changed since the snapshot was built. A missing directory
// yields no chunks and no error.
func (c *Corpus) Chunks(ctx context.Context) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l, err := c.list()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Knowledge directory not found: %s", c.dir)
			c.reset()
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", c.dir, err)
	}

	if snap, ok := c.fresh(l); ok {
		logger.Debug("Corpus cache hit: %d chunks", len(snap.Chunks))
		return snap.Chunks, nil
	}

	// The reload is shared by every caller waiting on it, so it must not
	// be cut short by the first caller's cancellation.
	reloadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(reloadKey, func() (any, error) {
		return c.reload(reloadCtx, l)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("Joined in-flight corpus reload")
		}
		return res.Val.(*domain.Snapshot).Chunks, nil
	}
}

// Stats describes the current snapshot without touching the disk.
func (c *Corpus) Stats() domain.CorpusStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := domain.CorpusStats{
		Dir:     c.dir,
		Reloads: c.reloads.Load(),
	}
	if c.snapshot != nil {
		stats.Files = c.snapshot.Files
		stats.Chunks = len(c.snapshot.Chunks)
		stats.BuiltAt = c.snapshot.BuiltAt
	}
	return stats
}

// Invalidate forces the next Chunks call to reload.
func (c *Corpus) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// fresh returns the current snapshot if listing l shows nothing newer.
func (c *Corpus) fresh(l *listing) (*domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snapshot
	if c.dirty || snap.IsEmpty() {
		return nil, false
	}
	if len(l.files) != snap.Files || !l.latest.Before(snap.BuiltAt) {
		return nil, false
	}
	return snap, true
}

func (c *Corpus) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.dirty = false
}

// reload reads every file in l and publishes a new snapshot.
// Only one reload runs at a time.
func (c *Corpus) reload(ctx context.Context, l *listing) (*domain.Snapshot, error) {
	// A reload that finished while this one was queued may already
	// cover everything l saw.
	if snap, ok := c.fresh(l); ok {
		return snap, nil
	}

	logger.Section("Corpus Reload")
	logger.Info("Loading %d knowledge files from %s", len(l.files), c.dir)
	start := time.Now()

	// Changes landing after this point must make the next call reload.
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()

	perFile := make([][]domain.Chunk, len(l.files))
	var wg sync.WaitGroup
	for i := range l.files {
		f := l.files[i]
		slot := &perFile[i]
		task := func() {
			defer wg.Done()
			*slot = c.load(ctx, f)
		}
		wg.Add(1)
		if err := c.pool.Submit(task); err != nil {
			logger.Debug("Reader pool unavailable (%v), reading %s inline", err, f.name)
			task()
		}
	}
	wg.Wait()

	total := 0
	for _, chunks := range perFile {
		total += len(chunks)
	}
	all := make([]domain.Chunk, 0, total)
	for _, chunks := range perFile {
		all = append(all, chunks...)
	}

	snap := &domain.Snapshot{
		Chunks:  all,
		BuiltAt: start.Add(-mtimeSlack),
		Files:   len(l.files),
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()
	c.reloads.Add(1)

	logger.Info("Loaded %d chunks from %d files in %dms",
		len(all), len(l.files), time.Since(start).Milliseconds())
	return snap, nil
}

// load reads and segments one file. Failures skip the file.
func (c *Corpus) load(ctx context.Context, f fileEntry) []domain.Chunk {
	data, err := os.ReadFile(f.path)
	if err != nil {
		logger.Warn("Skipping unreadable file %s: %v", f.name, err)
		return nil
	}

	doc := &domain.Document{
		Name:    f.name,
		Path:    f.path,
		Content: string(data),
		ModTime: f.modTime,
	}

	chunks, err := c.pipeline.Process(ctx, doc)
	if err != nil {
		logger.Warn("Skipping file %s: %v", f.name, err)
		return nil
	}
	logger.Debug("Segmented %s into %d chunks", f.name, len(chunks))
	return chunks
}

// fileEntry is an eligible corpus file seen during listing.
type fileEntry struct {
	name    string
	path    string
	modTime time.Time
}

// listing is the result of one staleness pass over the directory.
type listing struct {
	files  []fileEntry
	latest time.Time
}

// list enumerates eligible files in directory order and their newest mtime.
// Directories and other non-regular entries are skipped, not descended.
func (c *Corpus) list() (*listing, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	l := &listing{files: make([]fileEntry, 0, len(entries))}
	for _, entry := range entries {
		name := entry.Name()
		if !domain.IsEligibleFile(name) {
			continue
		}

		path := filepath.Join(c.dir, name)
		// Stat rather than entry.Info so symlinked files are followed.
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		l.files = append(l.files, fileEntry{name: name, path: path, modTime: info.ModTime()})
		if info.ModTime().After(l.latest) {
			l.latest = info.ModTime()
		}
	}
	return l, nil
}
