package store

import (
	"context"
	stderrors "errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/observability"
)

// DefaultDebounce is the quiet interval used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces document writes. Each Schedule call replaces the
// pending write for the same name and restarts its timer; only the latest
// data is written once no change has arrived for the quiet interval.
type Debouncer struct {
	store   Store
	delay   time.Duration
	timeout time.Duration
	logger  *log.Logger

	// OnError, if set, is called for every failed background write.
	OnError func(name string, err error)

	mu      sync.Mutex
	pending map[string]*pendingWrite
	saved   map[string]uint64
	gen     uint64
	closed  bool

	writeMu  sync.Mutex
	inflight sync.WaitGroup
}

type pendingWrite struct {
	data  mindmap.Data
	gen   uint64
	timer *time.Timer
}

// NewDebouncer creates a debouncer writing to s. A non-positive delay uses
// DefaultDebounce. A nil logger discards output.
func NewDebouncer(s Store, delay time.Duration, logger *log.Logger) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Debouncer{
		store:   s,
		delay:   delay,
		timeout: 30 * time.Second,
		logger:  logger,
		pending: make(map[string]*pendingWrite),
		saved:   make(map[string]uint64),
	}
}

// Schedule queues data to be written under name. A write already pending for
// name is superseded. Schedule never blocks on the store. After Close it is a
// no-op.
func (d *Debouncer) Schedule(name string, data mindmap.Data) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("write after close dropped", "document", name)
		return
	}
	if p, ok := d.pending[name]; ok {
		p.timer.Stop()
		observability.Store().OnSuperseded(context.Background(), name)
		d.logger.Debug("superseded pending write", "document", name)
	}
	d.gen++
	gen := d.gen
	p := &pendingWrite{data: data, gen: gen}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(name, gen) })
	d.pending[name] = p
}

// Pending reports the number of documents with an unwritten change.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) fire(name string, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[name]
	if !ok || p.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, name)
	d.inflight.Add(1)
	d.mu.Unlock()
	defer d.inflight.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.write(ctx, name, p); err != nil && d.OnError != nil {
		d.OnError(name, err)
	}
}

// write saves p unless a newer generation of the same document has already
// been written.
func (d *Debouncer) write(ctx context.Context, name string, p *pendingWrite) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	stale := d.saved[name] > p.gen
	d.mu.Unlock()
	if stale {
		return nil
	}

	start := time.Now()
	if err := d.store.Save(ctx, name, p.data); err != nil {
		d.logger.Error("save failed", "document", name, "error", err)
		return err
	}
	d.mu.Lock()
	d.saved[name] = p.gen
	d.mu.Unlock()
	d.logger.Debug("saved document", "document", name, "nodes", len(p.data.Nodes),
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// Flush writes every pending change now, in name order, and returns the
// joined errors.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	batch := make(map[string]*pendingWrite, len(d.pending))
	for name, p := range d.pending {
		p.timer.Stop()
		batch[name] = p
	}
	clear(d.pending)
	d.mu.Unlock()

	names := make([]string, 0, len(batch))
	for name := range batch {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := d.write(ctx, name, batch[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Close flushes pending writes and waits for background writes to finish.
// It does not close the underlying store.
func (d *Debouncer) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	err := d.Flush(ctx)
	d.inflight.Wait()
	return err
}
