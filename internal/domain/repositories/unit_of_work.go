package repositories

import (
	"context"
)

// UnitOfWork runs a function inside a single atomic transaction. Every
// repository call made with the context it passes in joins that
// transaction; returning an error rolls the whole scope back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
