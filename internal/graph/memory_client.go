package graph

import (
	"context"
	"sync"
)

// Responder computes the result of a statement executed on a MemoryClient.
type Responder func(Statement) (Result, error)

// MemoryClient is an in-process Client for tests. Statements are answered by
// the responder registered for their Cypher text; unregistered statements
// return an empty result.
type MemoryClient struct {
	mu           sync.Mutex
	responders   map[string]Responder
	executed     []Statement
	connectivity error
}

// NewMemoryClient returns an empty MemoryClient.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{responders: make(map[string]Responder)}
}

// On registers fn as the responder for cypher.
func (m *MemoryClient) On(cypher string, fn Responder) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responders[cypher] = fn
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

func (m *MemoryClient) Execute(_ context.Context, stmt Statement) (Result, error) {
	m.mu.Lock()
	stmt.Params = cloneMap(stmt.Params)
	m.executed = append(m.executed, stmt)
	fn := m.responders[stmt.Cypher]
	m.mu.Unlock()

	if fn == nil {
		return Result{}, nil
	}
	return fn(stmt)
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Executed returns a snapshot of the statements run so far.
func (m *MemoryClient) Executed() []Statement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Statement(nil), m.executed...)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
