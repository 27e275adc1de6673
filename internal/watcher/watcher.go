// Package watcher reports changes to the ledge message database.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/pubsub"
)

// Config holds watcher configuration options.
type Config struct {
	DBPath   string
	Debounce time.Duration
}

// DefaultConfig watches dbPath with a 300ms debounce.
func DefaultConfig(dbPath string) Config {
	return Config{DBPath: dbPath, Debounce: 300 * time.Millisecond}
}

// Watcher publishes an UpdatedEvent carrying the database path whenever the
// database or its WAL settles after a burst of writes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dbPath   string
	names    map[string]bool
	debounce time.Duration
	broker   *pubsub.Broker[string]

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	base := filepath.Base(cfg.DBPath)
	return &Watcher{
		fsw:    fsw,
		dbPath: cfg.DBPath,
		names: map[string]bool{
			base:              true,
			base + "-wal":     true,
			base + "-journal": true,
		},
		debounce: cfg.Debounce,
		broker:   pubsub.NewBroker[string](),
		done:     make(chan struct{}),
	}, nil
}

// Broker returns the broker change events are published on.
func (w *Watcher) Broker() *pubsub.Broker[string] {
	return w.broker
}

// Start watches the directory holding the database. SQLite replaces and
// recreates its side files, so the directory is watched rather than the file.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching database", "path", w.dbPath, "debounce", w.debounce)

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop ends the watch loop and closes the broker. It is safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.Debug(log.CatWatcher, "Database changed", "path", w.dbPath)
			w.broker.Publish(pubsub.UpdatedEvent, w.dbPath)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "File watch error", err, "path", w.dbPath)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.names[filepath.Base(event.Name)]
}
