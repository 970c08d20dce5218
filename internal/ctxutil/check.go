// Package ctxutil holds the cancellation check every blocking entry point
// runs before doing work.
package ctxutil

import (
	"context"
	"fmt"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// Canceled returns ctx.Err(): nil while the context is live, otherwise
// context.Canceled or context.DeadlineExceeded.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// CanceledDuring is Canceled with the operation name attached and
// ErrOperationCanceled in the chain, for errors that reach the user.
func CanceledDuring(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", svnerrors.ErrOperationCanceled, operation, err)
	}
	return nil
}
