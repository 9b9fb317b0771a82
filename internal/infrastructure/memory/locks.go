package memory

import (
	"context"
	"sync"
)

// lockTable bloqueos exclusivos por clave (equivalente a SELECT ... FOR UPDATE).
// acquire respeta la cancelación del contexto: nunca bloquea indefinidamente.
type lockTable struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{held: make(map[string]chan struct{})}
}

func (t *lockTable) acquire(ctx context.Context, key string) error {
	for {
		t.mu.Lock()
		ch, busy := t.held[key]
		if !busy {
			t.held[key] = make(chan struct{})
			t.mu.Unlock()
			return nil
		}
		t.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *lockTable) release(key string) {
	t.mu.Lock()
	ch, ok := t.held[key]
	delete(t.held, key)
	t.mu.Unlock()
	if ok {
		close(ch)
	}
}
