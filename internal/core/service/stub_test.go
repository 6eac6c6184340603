package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ---------------------------------------------------------------------------
// Recording stub backend
// ---------------------------------------------------------------------------

type call struct {
	method string
	path   string
	body   any
}

// stubRequester answers requests from a route table keyed "METHOD path".
// A route returns the value to decode into out, or an error.
type stubRequester struct {
	mu     sync.Mutex
	routes map[string]func(body any) (any, error)
	calls  []call
}

func newStubRequester() *stubRequester {
	return &stubRequester{routes: make(map[string]func(body any) (any, error))}
}

func (r *stubRequester) on(method, path string, fn func(body any) (any, error)) {
	r.routes[method+" "+path] = fn
}

func (r *stubRequester) reply(method, path string, v any) {
	r.on(method, path, func(any) (any, error) { return v, nil })
}

func (r *stubRequester) fail(method, path string, err error) {
	r.on(method, path, func(any) (any, error) { return nil, err })
}

func (r *stubRequester) Do(_ context.Context, method, path string, body, out any) error {
	r.mu.Lock()
	r.calls = append(r.calls, call{method: method, path: path, body: body})
	fn, ok := r.routes[method+" "+path]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("unexpected request %s %s", method, path)
	}

	v, err := fn(body)
	if err != nil {
		return err
	}
	if out == nil || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (r *stubRequester) called(method, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c.method == method && c.path == path {
			return true
		}
	}
	return false
}

func (r *stubRequester) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// ---------------------------------------------------------------------------
// In-memory key/value store with injectable failures
// ---------------------------------------------------------------------------

type stubStore struct {
	values    map[string]string
	getErr    map[string]error
	removeErr error
}

func newStubStore() *stubStore {
	return &stubStore{values: make(map[string]string)}
}

func (s *stubStore) Get(_ context.Context, key string) (string, bool, error) {
	if err := s.getErr[key]; err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *stubStore) Remove(_ context.Context, key string) error {
	delete(s.values, key)
	return s.removeErr
}
