package system

import (
	"context"
	"sync"

	"github.com/jdziat/simple-crontab/pkg/core"
)

// Memory keeps crontab text in process. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	text  string
	saves int
}

var _ core.Backend = (*Memory)(nil)

// NewMemory creates a backend holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// Load returns the stored text.
func (m *Memory) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Save replaces the stored text.
func (m *Memory) Save(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.saves++
	return nil
}

// Text returns the stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
