package shared

import "context"

// UnitOfWork executes a function inside a single storage transaction.
// Every repository write performed with the context passed to fn shares the
// same transaction; if fn returns an error, all of them roll back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
