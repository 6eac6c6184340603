package ports

import "context"

// Requester performs one JSON request against a backend. body is encoded when
// non-nil; out is decoded into when non-nil and the response has a body.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}
