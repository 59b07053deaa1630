// Package reload watches a definitions directory by polling and triggers a
// reload when its YAML files change.
package reload

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Func reloads definitions. It is called from the watcher goroutine.
type Func func(ctx context.Context) error

type Reloader struct {
	mu       sync.Mutex
	dir      string
	interval time.Duration
	reload   Func
	last     string
}

// New creates a reloader for dir. The current state of dir is taken as the
// baseline, so nothing is reloaded until it changes.
func New(dir string, interval time.Duration, reload Func) *Reloader {
	r := &Reloader{
		dir:      dir,
		interval: interval,
		reload:   reload,
	}
	r.last, _ = fingerprint(dir)
	return r
}

// Start polls until ctx is done. A non-positive interval disables polling.
func (r *Reloader) Start(ctx context.Context) {
	if r.interval <= 0 {
		log.Println("[reload] disabled")
		return
	}
	go func() {
		log.Printf("[reload] watching %s every %s", r.dir, r.interval)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[reload] stopped")
				return
			case <-ticker.C:
				if _, err := r.Check(ctx); err != nil {
					log.Printf("[reload] %v", err)
				}
			}
		}
	}()
}

// Check reloads when the directory differs from the last seen state and
// reports whether a reload ran. A failed reload is retried on the next check.
func (r *Reloader) Check(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fp, err := fingerprint(r.dir)
	if err != nil {
		return false, fmt.Errorf("scan %s: %w", r.dir, err)
	}
	if fp == r.last {
		return false, nil
	}

	if err := r.reload(ctx); err != nil {
		return false, fmt.Errorf("reload: %w", err)
	}
	r.last = fp
	log.Printf("[reload] definitions in %s changed, reloaded", r.dir)
	return true, nil
}

// fingerprint summarises name, size and modification time of every
// definition file in dir. A missing dir has an empty fingerprint.
func fingerprint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var parts []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", entry.Name(), info.Size(), info.ModTime().UnixNano()))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|"), nil
}
