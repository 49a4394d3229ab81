package storage

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/sethvargo/go-retry"
)

// Retrying retries transient backend failures once. Domain errors
// (not found, already exists) and context errors are returned as is.
type Retrying struct {
	next    DirectoryStore
	backoff time.Duration
	logger  logging.Logger
}

const defaultRetryBackoff = 50 * time.Millisecond

func NewRetrying(next DirectoryStore, backoff time.Duration, logger logging.Logger) *Retrying {
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &Retrying{next: next, backoff: backoff, logger: logger.With("module", "storage")}
}

func transient(err error) bool {
	return !errors.Is(err, common.ErrorNotFound) &&
		!errors.Is(err, common.ErrAlreadyExists) &&
		!errors.Is(err, common.ErrMalformedPayload) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (r *Retrying) do(ctx context.Context, op string, f func(context.Context) error) error {
	b := retry.WithMaxRetries(1, retry.NewConstant(r.backoff))
	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := f(ctx)
		if err == nil || !transient(err) {
			return err
		}
		r.logger.Warn(ctx, "storage operation failed", "op", op, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})
}

func (r *Retrying) CreateDirectory(ctx context.Context, scope string, dir *models.Directory) error {
	return r.do(ctx, "create", func(ctx context.Context) error {
		return r.next.CreateDirectory(ctx, scope, dir)
	})
}

func (r *Retrying) GetDirectory(ctx context.Context, scope, dirPath string) (*models.Directory, error) {
	var d *models.Directory
	err := r.do(ctx, "get", func(ctx context.Context) error {
		var err error
		d, err = r.next.GetDirectory(ctx, scope, dirPath)
		return err
	})
	return d, err
}

func (r *Retrying) DeleteDirectory(ctx context.Context, scope, dirPath string) error {
	return r.do(ctx, "delete", func(ctx context.Context) error {
		return r.next.DeleteDirectory(ctx, scope, dirPath)
	})
}
