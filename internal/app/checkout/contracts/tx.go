package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
)

// Tx abstracts the Spanner read surface shared by single-use reads,
// read-only transactions and read-write transactions. Repositories take a Tx
// so the same read path serves plain queries and the locking reads inside a
// stock reservation.
type Tx interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}
