package homework

import "context"

// Source fetches every homework updated since cursor (Unix seconds).
type Source interface {
	Fetch(ctx context.Context, cursor int64) (*Snapshot, error)
}
