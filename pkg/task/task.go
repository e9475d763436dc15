// Package task is a registry of named build tasks invoked from the CLI.
//
// Register a task once at start-up, then run it by name:
//
//	task.MustRegister(task.Task{
//	    Name:        "mocha-test",
//	    Description: "Run the unit tests and write a JUnit report",
//	    Run:         runUnitTests,
//	})
//
//	err := task.Run(ctx, "mocha-test")
//
// A task's error is its result: the CLI turns it into a non-zero exit.
package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shashiranjanraj/basecamp/pkg/logger"
)

// Func is the body of a task.
type Func func(ctx context.Context) error

// Task is a named unit of build work.
type Task struct {
	Name        string
	Description string
	Run         Func
}

var (
	ErrUnknownTask   = errors.New("task: unknown task")
	ErrDuplicateTask = errors.New("task: already registered")
	ErrInvalidTask   = errors.New("task: name and Run are required")
)

// Registry holds tasks by name. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register adds t. Names are unique.
func (r *Registry) Register(t Task) error {
	if t.Name == "" || t.Run == nil {
		return ErrInvalidTask
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[t.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTask, t.Name)
	}
	r.tasks[t.Name] = t
	return nil
}

// MustRegister is Register that panics, for init-time wiring.
func (r *Registry) MustRegister(t Task) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(name string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[name]
	return t, ok
}

// All returns every task sorted by name.
func (r *Registry) All() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run executes the named task and returns its error unchanged.
func (r *Registry) Run(ctx context.Context, name string) error {
	t, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}

	log := logger.WithCtx(ctx).With("task", name)
	start := time.Now()
	log.Info("task started")

	err := t.Run(ctx)

	elapsed := time.Since(start).Round(time.Millisecond).String()
	if err != nil {
		log.Error("task failed", "duration", elapsed, "error", err)
		return err
	}
	log.Info("task finished", "duration", elapsed)
	return nil
}

// Default is the process-wide registry used by the CLI.
var Default = NewRegistry()

func Register(t Task) error                      { return Default.Register(t) }
func MustRegister(t Task)                        { Default.MustRegister(t) }
func Lookup(name string) (Task, bool)            { return Default.Lookup(name) }
func All() []Task                                { return Default.All() }
func Run(ctx context.Context, name string) error { return Default.Run(ctx, name) }
