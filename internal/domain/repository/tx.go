package repository

import "context"

// TxManager runs a function inside a single storage transaction. The
// transaction handle travels in the context passed to fn; any repository call
// made with that context joins the transaction. If fn returns an error or
// panics, the transaction is rolled back on every exit path and the original
// error is returned to the caller.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
