package worker

import (
	"context"
	"fmt"

	"github.com/JNZader/lintbundle/internal/bundle"
)

// Builder builds the effective configuration for a file.
type Builder interface {
	Build(path string) (*bundle.Config, error)
}

// ResolveTask resolves the configuration of a single file.
type ResolveTask struct {
	id      string
	path    string
	builder Builder
	config  *bundle.Config
}

// NewResolveTask creates a task resolving path with b.
func NewResolveTask(path string, b Builder) *ResolveTask {
	return &ResolveTask{
		id:      "resolve:" + path,
		path:    path,
		builder: b,
	}
}

// ID returns the task identifier.
func (t *ResolveTask) ID() string {
	return t.id
}

// Execute builds the configuration.
func (t *ResolveTask) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg, err := t.builder.Build(t.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", t.path, err)
	}
	t.config = cfg
	return nil
}

// Config returns the resolved configuration, nil until Execute succeeds.
func (t *ResolveTask) Config() *bundle.Config {
	return t.config
}

// Path returns the file path being resolved.
func (t *ResolveTask) Path() string {
	return t.path
}
