package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Target receives a finished report. Deliver is called at most once per
// report and only with a complete document.
type Target interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// TargetFunc adapts a function to Target.
type TargetFunc func(ctx context.Context, name string, data []byte) error

// Deliver implements Target.
func (f TargetFunc) Deliver(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// DirTarget writes reports into a directory.
type DirTarget struct {
	Dir string
}

// Path returns where a report called name is written.
func (t DirTarget) Path(name string) string {
	return filepath.Join(t.Dir, name)
}

// Deliver writes data atomically: a reader never observes a partial file.
func (t DirTarget) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.Dir != "" {
		if err := os.MkdirAll(t.Dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(t.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	return os.Rename(tmp.Name(), t.Path(name))
}

// MemoryTarget keeps the delivered report in memory.
type MemoryTarget struct {
	mu    sync.Mutex
	name  string
	data  []byte
	count int
}

// Deliver implements Target.
func (t *MemoryTarget) Deliver(_ context.Context, name string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
	t.data = bytes.Clone(data)
	t.count++
	return nil
}

// Report returns the last delivered name and bytes.
func (t *MemoryTarget) Report() (string, []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name, t.data
}

// Deliveries returns how many reports were delivered.
func (t *MemoryTarget) Deliveries() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
