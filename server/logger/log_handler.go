// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// enum LogMode
type LogMode uint8

const (
	ModeDev LogMode = iota
	ModeProd
	ModeSilence
)

// =========================================================
// This package supports two ways to assemble/inject a slog logger:
//
// (A) Pass in a *slog.Logger directly (recommended, the common case):
//     use NewDefaultLogger(LogMode), or assemble your own *slog.Logger.
//
// (B) Pass in a slog.Handler (advanced): compose
//     slog.NewJSONHandler / slog.NewTextHandler / ReplaceAttr /
//     LevelVar... yourself, then wrap it into a *slog.Logger with
//     NewLogger(h). This integrates cleanly with any external slog
//     Handler.
//
// This package also provides AsyncHandler, which turns any slog.Handler
// into a non-blocking (async) handler.
// =========================================================

// NewDefaultLogger returns a *slog.Logger built from LogMode defaults.
// The most common entry point: inject a *slog.Logger directly.
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode))
}

// NewDefaultAsyncLogger returns an async *slog.Logger built from LogMode defaults.
// The most common entry point for an async logger.
func NewDefaultAsyncLogger(mode LogMode) *slog.Logger {
	return slog.New(NewAsyncHandler(buildHandler(mode), 8192))
}

// NewLogger wraps a Handler into a *slog.Logger.
// The advanced entry point: assemble your own Handler (JSON/Text/
// ReplaceAttr/LevelVar...) and hand it to this package.
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev)
	}
	return slog.New(h)
}

// AsyncHandler is a slog.Handler wrapper:
//   - the calling goroutine's Handle call stays non-blocking: it only
//     enqueues onto a channel
//   - a background goroutine calls next.Handle(...) for each queued
//     record
//   - a full channel drops the record, rather than pushing latency back
//     onto the request path
//
// Design notes:
//   - Being a slog.Handler itself, it composes cleanly with
//     slog.NewJSONHandler / slog.NewTextHandler / ReplaceAttr /
//     WithAttrs / WithGroup.
//   - This is an assembly-layer (server/runtime) convenience: callers
//     that don't want async behavior can use a synchronous handler
//     directly instead.
//
// Note: slog.Logger ignores the error Handler.Handle returns. Handle
// I/O errors inside next if you need to react to them.
type AsyncHandler struct {
	next slog.Handler
	d    *asyncDispatcher
}

type asyncDispatcher struct {
	ch     chan asyncItem
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup

	// dropCount counts records dropped because the buffer was full
	// (useful for observability/alerting).
	dropCount atomic.Uint64
}

type asyncItem struct {
	ctx     context.Context
	rec     slog.Record
	handler slog.Handler
}

// NewAsyncHandler wraps next with an async dispatcher.
// buf controls the queue size: a larger buf drops less often, at the
// cost of more memory and a longer shutdown drain.
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev)
	}
	if buf <= 0 {
		buf = 1024
	}

	d := &asyncDispatcher{
		ch:     make(chan asyncItem, buf),
		closed: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.worker()

	return &AsyncHandler{next: next, d: d}
}

func (h *AsyncHandler) Ready() bool {
	return (h != nil && h.d != nil)
}

// Dropped returns number of dropped log records due to a full buffer.
func (h *AsyncHandler) Dropped() uint64 {
	if h == nil || h.d == nil {
		return 0
	}
	return h.d.dropCount.Load()
}

// Close stops the dispatcher and drains buffered logs.
// Not part of the slog.Handler interface; only callable if you hold a
// *AsyncHandler.
func (h *AsyncHandler) Close() {
	if h == nil || h.d == nil {
		return
	}
	h.d.once.Do(func() { close(h.d.closed) })
	h.d.wg.Wait()
}

func (d *asyncDispatcher) worker() {
	defer d.wg.Done()

	// Background worker: once closed fires, drains until the channel
	// is empty.
	for {
		select {
		case it := <-d.ch:
			if it.handler != nil {
				_ = it.handler.Handle(it.ctx, it.rec)
			}
		case <-d.closed:
			for {
				select {
				case it := <-d.ch:
					if it.handler != nil {
						_ = it.handler.Handle(it.ctx, it.rec)
					}
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h == nil || h.d == nil {
		// Not ready; drop silently
		return nil
	}

	// After Close(): no longer accepting new records, drop immediately.
	select {
	case <-h.d.closed:
		h.d.dropCount.Add(1)
		return nil
	default:
	}

	// r.Clone() copies the record's attributes, so the mutable
	// references inside slog.Record are safe to hand to another
	// goroutine. This is the standard way to retain a slog.Record.
	it := asyncItem{ctx: ctx, rec: r.Clone(), handler: h.next}

	select {
	case h.d.ch <- it:
		return nil
	default:
		h.d.dropCount.Add(1)
		return nil
	}
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), d: h.d}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), d: h.d}
}

// NewAsync builds a *slog.Logger using LogMode defaults, then wraps its handler with AsyncHandler.
// The convenience entry point for "give me non-blocking logging by default".
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	base := buildHandler(mode)
	ah := NewAsyncHandler(base, buf)
	return slog.New(ah), ah
}

func buildHandler(logmode LogMode) slog.Handler {
	switch logmode {
	case ModeDev:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	case ModeProd:
		// Production: JSON on stdout, for Loki/Promtail to scrape.
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		// Silent mode: discard everything.
		return slog.NewTextHandler(io.Discard, nil)
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
