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

// Package app provides application lifecycle management (App), which
// starts and stops multiple Components as one unit.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// App is a simple lifecycle manager: it starts every registered
// Component and coordinates a graceful shutdown when it receives an OS
// signal or any Component fails. It keeps every component's start/stop
// sequencing under one place.
type App struct {
	comps []Component
}

// New creates a new App instance.
func New() *App { return &App{} }

// NewWith is sugar over New that registers several Components at once.
func NewWith(copms ...Component) *App {
	app := New()
	for _, c := range copms {
		app.Register(c)
	}
	return app
}

// Register adds c to the set of Components App manages during Run.
func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// Run starts every registered Component, each in its own goroutine, and
// blocks until an OS termination signal (SIGINT/SIGTERM) arrives or any
// Component's Run returns.
//   - On a termination signal: triggers a graceful shutdown and returns
//     nil (a clean stop).
//   - On a Component returning an error: triggers a graceful shutdown
//     and returns that error.
//
// Assumes each Component.Run is a blocking call spanning that
// component's lifetime.
func (a *App) Run() error {
	// errCh collects the first error any Component returns.
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	// Two exit paths: an OS signal, or a Component error.
	select {
	case <-quit:
		a.gracefulShutdown(5 * time.Second)
		return nil
	case err := <-errCh:
		a.gracefulShutdown(5 * time.Second)
		return err
	}

}

// gracefulShutdown calls every Component's Shutdown within td, in
// registration order. Whether an implementation that can't shut down in
// time force-aborts or ignores the error is left up to it.
func (a *App) gracefulShutdown(td time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), td)
	defer cancel()
	for _, c := range a.comps {
		err := c.Shutdown(ctx)
		if err != nil {
			fmt.Fprintf(os.Stdout, "shutdown err: %v\n", err)
		}
	}
}
