package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JNZader/lintbundle/internal/bundle"
)

// mockTask for testing
type mockTask struct {
	id       string
	duration time.Duration
	err      error
}

func (t *mockTask) ID() string { return t.id }
func (t *mockTask) Execute(ctx context.Context) error {
	select {
	case <-time.After(t.duration):
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stubBuilder returns a config whose only extends entry is the path.
type stubBuilder struct {
	calls atomic.Int64
	fail  string
}

func (b *stubBuilder) Build(path string) (*bundle.Config, error) {
	b.calls.Add(1)
	if path == b.fail {
		return nil, errors.New("boom")
	}
	return &bundle.Config{Extends: []string{path}}, nil
}

func TestPool_BasicExecution(t *testing.T) {
	pool := NewPool(context.Background(), Config{Workers: 2, QueueSize: 10})
	pool.Start()
	defer pool.Stop()

	for i := 0; i < 5; i++ {
		task := &mockTask{
			id:       fmt.Sprintf("task-%d", i),
			duration: 10 * time.Millisecond,
		}
		if err := pool.Submit(task); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	results := 0
	timeout := time.After(1 * time.Second)
	for results < 5 {
		select {
		case r := <-pool.Results():
			if r.Error != nil {
				t.Errorf("unexpected error: %v", r.Error)
			}
			results++
		case <-timeout:
			t.Fatal("timeout waiting for results")
		}
	}

	stats := pool.Stats()
	if stats.Processed != 5 {
		t.Errorf("expected 5 processed, got %d", stats.Processed)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	pool := NewPool(context.Background(), Config{Workers: 2})
	pool.Start()
	defer pool.Stop()

	expectedErr := errors.New("task failed")
	task := &mockTask{
		id:       "failing-task",
		duration: 10 * time.Millisecond,
		err:      expectedErr,
	}

	if err := pool.Submit(task); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result := <-pool.Results()
	if !errors.Is(result.Error, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, result.Error)
	}

	stats := pool.Stats()
	if stats.Errors != 1 {
		t.Errorf("expected 1 error, got %d", stats.Errors)
	}
}

func TestPool_Cancellation(t *testing.T) {
	pool := NewPool(context.Background(), Config{Workers: 2})
	pool.Start()

	task := &mockTask{
		id:       "long-task",
		duration: 10 * time.Second,
	}
	_ = pool.Submit(task)

	// Stop must not wait for the long task.
	pool.Stop()
}

func TestPool_ParentContextStopsSubmit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, Config{Workers: 1, QueueSize: 1})
	pool.Start()
	defer pool.Stop()
	cancel()

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		err = pool.Submit(&mockTask{id: fmt.Sprintf("t-%d", i), duration: time.Second})
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPool_NotStarted(t *testing.T) {
	pool := NewPool(context.Background(), Config{Workers: 2})

	err := pool.Submit(&mockTask{id: "test"})
	if err == nil {
		t.Error("expected error when submitting to unstarted pool")
	}
}

func TestPool_DoubleStart(t *testing.T) {
	pool := NewPool(context.Background(), Config{Workers: 2})
	pool.Start()
	pool.Start() // Should not panic or create duplicate workers
	pool.Stop()
}

func TestPool_DefaultConfig(t *testing.T) {
	pool := NewPool(context.Background(), Config{})

	if pool.workers != runtime.GOMAXPROCS(0) {
		t.Errorf("expected %d workers, got %d", runtime.GOMAXPROCS(0), pool.workers)
	}
}

func TestStats_String(t *testing.T) {
	stats := Stats{
		Workers:   4,
		Processed: 100,
		Errors:    5,
		Pending:   10,
	}

	want := "workers=4 processed=100 errors=5 pending=10"
	if got := stats.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRun_PreservesOrder(t *testing.T) {
	var tasks []Task
	for i := 0; i < 20; i++ {
		tasks = append(tasks, &mockTask{
			id:       fmt.Sprintf("task-%d", i),
			duration: time.Duration(20-i) * time.Millisecond,
		})
	}

	results, stats, err := Run(context.Background(), Config{Workers: 4}, tasks)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(results))
	}
	if stats.Workers != 4 || stats.Processed != 20 || stats.Pending != 0 {
		t.Errorf("unexpected stats: %s", stats)
	}
	for i, r := range results {
		if r.TaskID != tasks[i].ID() {
			t.Errorf("result %d: got %s, want %s", i, r.TaskID, tasks[i].ID())
		}
	}
}

func TestRun_Empty(t *testing.T) {
	results, _, err := Run(context.Background(), Config{}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{&mockTask{id: "a"}, &mockTask{id: "b"}, &mockTask{id: "c"}}
	for i := 0; i < 20; i++ {
		results, _, err := Run(ctx, Config{Workers: 3}, tasks)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("run %d: expected context.Canceled, got %v", i, err)
		}
		if results != nil {
			t.Fatalf("run %d: expected no results", i)
		}
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	tasks := []Task{
		&mockTask{id: "slow-1", duration: 5 * time.Second},
		&mockTask{id: "slow-2", duration: 5 * time.Second},
	}

	_, _, err := Run(ctx, Config{Workers: 2}, tasks)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestResolveTask(t *testing.T) {
	b := &stubBuilder{fail: "broken.js"}
	ok := NewResolveTask("index.js", b)
	bad := NewResolveTask("broken.js", b)

	results, stats, err := Run(context.Background(), Config{Workers: 2}, []Task{ok, bad})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Processed != 2 || stats.Errors != 1 {
		t.Errorf("unexpected stats: %s", stats)
	}

	if results[0].Error != nil {
		t.Errorf("unexpected error: %v", results[0].Error)
	}
	if ok.Config() == nil || ok.Config().Extends[0] != "index.js" {
		t.Errorf("unexpected config: %+v", ok.Config())
	}
	if ok.ID() != "resolve:index.js" || ok.Path() != "index.js" {
		t.Errorf("unexpected identity: %s %s", ok.ID(), ok.Path())
	}

	if results[1].Error == nil {
		t.Error("expected error for broken.js")
	}
	if bad.Config() != nil {
		t.Error("failed task should have no config")
	}
	if b.calls.Load() != 2 {
		t.Errorf("expected 2 builds, got %d", b.calls.Load())
	}
}

func TestResolveTask_CanceledContext(t *testing.T) {
	b := &stubBuilder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewResolveTask("index.js", b).Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if b.calls.Load() != 0 {
		t.Error("builder should not be called")
	}
}

func BenchmarkPool_Throughput(b *testing.B) {
	pool := NewPool(context.Background(), Config{Workers: runtime.GOMAXPROCS(0), QueueSize: 1000})
	pool.Start()
	defer pool.Stop()

	go func() {
		for range pool.Results() {
		}
	}()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		task := &mockTask{
			id:       fmt.Sprintf("task-%d", i),
			duration: 0,
		}
		_ = pool.Submit(task)
	}
}

func BenchmarkRun_Resolve(b *testing.B) {
	builder := &stubBuilder{}
	tasks := make([]Task, 64)

	for i := 0; i < b.N; i++ {
		for j := range tasks {
			tasks[j] = NewResolveTask(fmt.Sprintf("src/file-%d.ts", j), builder)
		}
		if _, _, err := Run(context.Background(), Config{}, tasks); err != nil {
			b.Fatal(err)
		}
	}
}
