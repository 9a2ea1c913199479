// Package controller owns the per-buffer breadcrumb state and drives
// refreshes, clicks, and the periodic maintenance tickers.
//
// All state lives on a single event loop: inbound editor events, ticker
// callbacks, and fetch results are funneled through the same channel,
// so no locking is needed around the buffer map.
package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"symline/internal/breadcrumb"
	"symline/internal/config"
	"symline/internal/render"
	"symline/internal/symbol"
	"symline/pkg/types"
)

const (
	// DisplayVar is the per-buffer variable the host's tabline reads.
	DisplayVar = "symline"

	highlightDuration = 300 * time.Millisecond
	cleanupInterval   = 30 * time.Second
	redrawInterval    = 5 * time.Second
)

// bufferState is the cached result of the last successful refresh.
type bufferState struct {
	crumbs []symbol.Info
	cancel context.CancelFunc // in-flight fetch, nil when idle
}

// Controller glues the symbol provider, the selector, the renderer, and
// the editor host together.
type Controller struct {
	client  types.Client
	host    types.Host
	cfg     *config.Config
	cfgPath string

	buffers map[int]*bufferState
	events  chan func()
	done    chan struct{}
	closed  sync.Once
}

// New creates a controller. cfgPath may be empty; it is re-read on
// every configuration-change event.
func New(client types.Client, host types.Host, cfg *config.Config, cfgPath string) *Controller {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Controller{
		client:  client,
		host:    host,
		cfg:     cfg,
		cfgPath: cfgPath,
		buffers: make(map[int]*bufferState),
		events:  make(chan func(), 64),
		done:    make(chan struct{}),
	}
}

// Run consumes events until ctx is canceled or Close is called. Both
// tickers stop before Run returns, as do any in-flight fetches.
func (c *Controller) Run(ctx context.Context) {
	cleanup := time.NewTicker(cleanupInterval)
	redraw := time.NewTicker(redrawInterval)
	defer cleanup.Stop()
	defer redraw.Stop()
	defer c.cancelInflight()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case fn := <-c.events:
			fn()
		case <-cleanup.C:
			c.sweep(ctx)
		case <-redraw.C:
			c.discard("redraw", c.host.Redraw(ctx, true))
		}
	}
}

// Close stops the event loop deterministically.
func (c *Controller) Close() {
	c.closed.Do(func() { close(c.done) })
}

// Dispatch schedules fn onto the event loop. It is safe from any
// goroutine and drops the work when the controller is closed.
func (c *Controller) Dispatch(fn func()) {
	select {
	case c.events <- fn:
	case <-c.done:
	}
}

// OnCursorIdle schedules a refresh for the buffer under the cursor.
func (c *Controller) OnCursorIdle(bufnr int, uri string, cursor types.Position) {
	c.Dispatch(func() { c.refresh(bufnr, uri, cursor) })
}

// OnConfigChanged schedules a configuration reload. No redraw is
// forced; the new settings take effect on the next cursor-idle event.
func (c *Controller) OnConfigChanged() {
	c.Dispatch(func() { c.reloadConfig() })
}

// OnClick schedules click navigation for an encoded token.
func (c *Controller) OnClick(token int, button types.MouseButton) {
	c.Dispatch(func() { c.handleClick(context.Background(), render.ClickToken(token), button) })
}

// Snapshot returns a copy of the cached breadcrumb for a buffer, or nil
// when none is cached. It funnels through the event loop and is safe
// from any goroutine.
func (c *Controller) Snapshot(bufnr int) []symbol.Info {
	reply := make(chan []symbol.Info, 1)
	c.Dispatch(func() {
		st, ok := c.buffers[bufnr]
		if !ok {
			reply <- nil
			return
		}
		crumbs := make([]symbol.Info, len(st.crumbs))
		copy(crumbs, st.crumbs)
		reply <- crumbs
	})
	select {
	case crumbs := <-reply:
		return crumbs
	case <-c.done:
		return nil
	}
}

// refresh cancels the buffer's previous in-flight fetch and starts a
// new one. Cancellation handles are keyed per buffer so refreshes for
// different buffers never preempt each other.
func (c *Controller) refresh(bufnr int, uri string, cursor types.Position) {
	st, ok := c.buffers[bufnr]
	if !ok {
		st = &bufferState{}
		c.buffers[bufnr] = st
	}
	if st.cancel != nil {
		st.cancel()
	}

	fetchCtx, cancel := context.WithCancel(context.Background())
	st.cancel = cancel

	go func() {
		tree, err := c.client.GetDocumentSymbols(fetchCtx, uri)
		if err != nil || tree == nil {
			// Canceled, failed, or no provider result: leave the
			// previous breadcrumb in place.
			if err != nil {
				slog.Debug("Symbol fetch did not complete", "bufnr", bufnr, "error", err)
			}
			return
		}
		c.Dispatch(func() {
			// A newer refresh may have preempted this one after the
			// result arrived.
			if fetchCtx.Err() != nil {
				return
			}
			cancel()
			st.cancel = nil
			c.commit(bufnr, tree, cursor)
		})
	}()
}

// commit recomputes the breadcrumb from a fetched tree and pushes the
// rendered line into the buffer's display variable. Failures leave the
// display unchanged.
func (c *Controller) commit(bufnr int, tree []types.DocumentSymbol, cursor types.Position) {
	ctx := context.Background()

	flat := symbol.Flatten(tree)
	crumbs := breadcrumb.Select(flat, cursor, c.cfg)

	st, ok := c.buffers[bufnr]
	if !ok {
		// Swept while the fetch was in flight.
		return
	}
	st.crumbs = crumbs

	if loaded, err := c.host.IsBufferLoaded(ctx, bufnr); err != nil || !loaded {
		return
	}

	line := render.Serialize(render.BuildSegments(crumbs, c.cfg, bufnr))
	c.discard("set display variable", c.host.SetBufferVar(ctx, bufnr, DisplayVar, line))
}

// handleClick decodes a click token and navigates to the breadcrumb it
// names. Every failure mode is a silent no-op.
func (c *Controller) handleClick(ctx context.Context, token render.ClickToken, button types.MouseButton) {
	bufnr, index, err := token.Decode()
	if err != nil {
		slog.Debug("Ignoring malformed click token", "token", int(token), "error", err)
		return
	}

	st, ok := c.buffers[bufnr]
	if !ok || index >= len(st.crumbs) {
		return
	}
	crumb := st.crumbs[index]

	winid, err := c.host.WindowForBuffer(ctx, bufnr)
	if err != nil || winid == 0 {
		return
	}

	c.discard("focus window", c.host.FocusWindow(ctx, winid))
	c.discard("move cursor", c.host.SetCursor(ctx, winid, crumb.SelectionRange.Start))

	if button == types.MouseLeft {
		c.discard("highlight", c.host.HighlightRange(ctx, bufnr, crumb.SelectionRange))
		time.AfterFunc(highlightDuration, func() {
			c.Dispatch(func() {
				c.discard("redraw", c.host.Redraw(ctx, true))
				c.discard("clear highlight", c.host.ClearHighlight(ctx, bufnr))
				c.discard("redraw", c.host.Redraw(ctx, true))
			})
		})
	} else {
		c.discard("select range", c.host.SetSelection(ctx, bufnr, crumb.Range))
	}
}

// sweep drops cached state for buffers the editor no longer has.
func (c *Controller) sweep(ctx context.Context) {
	live, err := c.host.ListBuffers(ctx)
	if err != nil {
		slog.Debug("Skipping cleanup sweep", "error", err)
		return
	}
	alive := make(map[int]bool, len(live))
	for _, bufnr := range live {
		alive[bufnr] = true
	}
	for bufnr, st := range c.buffers {
		if alive[bufnr] {
			continue
		}
		if st.cancel != nil {
			st.cancel()
		}
		delete(c.buffers, bufnr)
	}
}

func (c *Controller) reloadConfig() {
	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		slog.Warn("Keeping previous configuration", "error", err)
		return
	}
	c.cfg = cfg
}

// discard swallows a host-call error, keeping the never-raise contract
// while leaving a debug trail for regressions.
func (c *Controller) discard(op string, err error) {
	if err != nil {
		slog.Debug("Host call failed", "op", op, "error", err)
	}
}

func (c *Controller) cancelInflight() {
	for _, st := range c.buffers {
		if st.cancel != nil {
			st.cancel()
		}
	}
}
