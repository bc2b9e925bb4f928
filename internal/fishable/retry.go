package fishable

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
)

// Retrying wraps a Fishable whose lookups may hit a remote/slow source
// (e.g. a registry-backed package resolver) and retries transient failures
// with exponential backoff, mirroring the teacher's async resolver's
// tolerance for transient network errors.
type Retrying struct {
	inner Fishable
}

// NewRetrying wraps inner with exponential backoff retry (up to 3 total
// attempts, relying on the caller's context for an overall deadline).
func NewRetrying(inner Fishable) *Retrying {
	return &Retrying{inner: inner}
}

func newFishBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2.0
	return b
}

func retryOp[T any](ctx context.Context, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(newFishBackoff()),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(0),
	)
}

func (r *Retrying) Fish(ctx context.Context, item string, types []FhirType) (*Resource, error) {
	return retryOp(ctx, func() (*Resource, error) { return r.inner.Fish(ctx, item, types) })
}

func (r *Retrying) FishForMetadata(ctx context.Context, item string, types []FhirType) (*Metadata, error) {
	return retryOp(ctx, func() (*Metadata, error) { return r.inner.FishForMetadata(ctx, item, types) })
}

func (r *Retrying) FishByURL(ctx context.Context, url string) (*Resource, error) {
	return retryOp(ctx, func() (*Resource, error) { return r.inner.FishByURL(ctx, url) })
}

func (r *Retrying) FishByID(ctx context.Context, id string) (*Resource, error) {
	return retryOp(ctx, func() (*Resource, error) { return r.inner.FishByID(ctx, id) })
}

func (r *Retrying) FishByName(ctx context.Context, name string) (*Resource, error) {
	return retryOp(ctx, func() (*Resource, error) { return r.inner.FishByName(ctx, name) })
}

func (r *Retrying) FishByType(ctx context.Context, t FhirType) ([]*Resource, error) {
	return retryOp(ctx, func() ([]*Resource, error) { return r.inner.FishByType(ctx, t) })
}
