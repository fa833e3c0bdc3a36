// Package ingest runs the external log command and maintains the bounded
// entry buffer the rest of the application reads.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/modoterra/tailview/pkg/core"
	"github.com/modoterra/tailview/pkg/extract"
)

// lineBacklog bounds the producer channel. Only the producer can block on
// a full channel; the consumer side never does.
const lineBacklog = 1024

// handle is the live channel/cancel pair for one running producer.
type handle struct {
	lines  chan string
	errs   chan error
	cancel context.CancelFunc
}

// Collector owns the lifecycle of the background producer and the buffer
// it feeds. All methods are called from the single consumer loop.
type Collector struct {
	buf     *Buffer
	command string
	handle  *handle
	loading bool
	lastErr error
	logger  *slog.Logger
	now     func() time.Time
}

// NewCollector creates a collector for the given command string. Nothing
// runs until Start.
func NewCollector(command string, logger *slog.Logger) *Collector {
	return &Collector{
		buf:     &Buffer{},
		command: command,
		logger:  logger,
		now:     time.Now,
	}
}

// Start launches a producer bound to a fresh channel. A second Start
// without an intervening Stop is a no-op: at most one collection is live.
func (c *Collector) Start() {
	if c.handle != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &handle{
		lines:  make(chan string, lineBacklog),
		errs:   make(chan error, 1),
		cancel: cancel,
	}
	c.handle = h
	c.loading = true
	c.lastErr = nil
	c.logger.Info("collection started", "command", c.command)
	go runProducer(ctx, c.command, h.lines, h.errs, c.logger)
}

// Stop cancels the producer and discards the handle without waiting for
// the worker to wind down. It never blocks.
func (c *Collector) Stop() {
	if c.handle == nil {
		return
	}
	c.handle.cancel()
	c.handle = nil
	c.loading = false
	c.logger.Info("collection stopped")
}

// Restart is the only way the ingestion source changes at runtime: stop,
// clear the buffer, start against the current command.
func (c *Collector) Restart() {
	c.Stop()
	c.buf.Clear()
	c.Start()
}

// Drain moves every currently queued line into the buffer. It is called
// once per consumer tick and never blocks on an empty channel.
func (c *Collector) Drain() {
	if c.handle == nil {
		return
	}
	select {
	case err := <-c.handle.errs:
		c.lastErr = err
		c.loading = false
	default:
	}
	for {
		select {
		case line := <-c.handle.lines:
			c.append(line)
		default:
			return
		}
	}
}

func (c *Collector) append(line string) {
	ts, content, ok := extract.Timestamp(line)
	if !ok {
		// every stored entry carries a concrete timestamp
		ts = c.now().Format(core.TimeFormat)
	}
	c.buf.Append(core.Entry{Timestamp: ts, Content: content})
	c.loading = false
}

// Clear empties the buffer without touching the running producer.
func (c *Collector) Clear() {
	c.buf.Clear()
}

// Entries returns the buffered entries in arrival order.
func (c *Collector) Entries() []core.Entry {
	return c.buf.Entries()
}

// Len reports how many entries are buffered.
func (c *Collector) Len() int {
	return c.buf.Len()
}

// Loading is true from Start until the first entry arrives or the spawn
// fails, so a host UI can show a spinner.
func (c *Collector) Loading() bool {
	return c.loading
}

// Err returns the spawn failure of the current collection, if any.
// Cleared on the next Start.
func (c *Collector) Err() error {
	return c.lastErr
}

// Running reports whether a collection handle is live.
func (c *Collector) Running() bool {
	return c.handle != nil
}

// SetCommand changes the command used by the next Start or Restart. The
// running producer, if any, is unaffected.
func (c *Collector) SetCommand(command string) {
	c.command = command
}

// Command returns the configured command string.
func (c *Collector) Command() string {
	return c.command
}
