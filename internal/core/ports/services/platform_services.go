package services

import "context"

// EventPublisher forwards domain events to whoever listens. Publishing is best
// effort and never fails the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload any)
}

// ReportCache caches read models under a version that writers bump.
type ReportCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context) error
}
