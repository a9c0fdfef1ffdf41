// Package inapp holds the toasts shown inside the storefront until the view
// layer picks them up.
package inapp

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the toast style.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Toast is one transient notification.
type Toast struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewToast stamps a toast with an id and the current time.
func NewToast(level Level, message string) Toast {
	return Toast{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// Feed is a bounded FIFO of pending toasts. When full the oldest toast is dropped.
type Feed struct {
	mu       sync.Mutex
	toasts   []Toast
	capacity int
}

// NewFeed creates a feed holding at most capacity toasts.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = 50
	}
	return &Feed{
		toasts:   make([]Toast, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a toast. Returns false when an older toast had to be dropped.
func (f *Feed) Push(t Toast) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := true
	if len(f.toasts) == f.capacity {
		f.toasts = f.toasts[1:]
		kept = false
	}
	f.toasts = append(f.toasts, t)
	return kept
}

// Drain returns every pending toast, oldest first, and empties the feed.
func (f *Feed) Drain() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.toasts
	f.toasts = make([]Toast, 0, f.capacity)
	return out
}

// Len returns the number of pending toasts.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toasts)
}
