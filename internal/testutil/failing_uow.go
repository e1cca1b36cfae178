package testutil

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/alexanderramin/leadflow/internal/db"
)

// FailOnNthSaveUoW is a test UoW that injects an error on the Nth Save call
// within a transaction. This enables rollback tests by simulating failures
// at precise points in multi-write operations.
//
// Save calls are counted starting at 1. Load calls pass through normally.
type FailOnNthSaveUoW struct {
	Store  *db.Store
	FailOn int32
	Err    error
}

func (u *FailOnNthSaveUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewUnitOfWork(u.Store).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		wrapped := &failOnNthSave{DBTX: tx, failOn: u.FailOn, err: u.Err}
		return fn(ctx, wrapped)
	})
}

type failOnNthSave struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthSave) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	n := f.count.Add(1)
	if n == f.failOn {
		return f.err
	}
	return f.DBTX.Save(ctx, collection, records)
}
