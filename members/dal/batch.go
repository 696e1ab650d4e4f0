package dal

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// maxBatchWrites is the Firestore limit of writes in one atomic batch.
const maxBatchWrites = 500

type batchWrite struct {
	ref  *firestore.DocumentRef
	data interface{}
	opts []firestore.SetOption
}

// commitAtomic writes all of writes in a single batch, so either all or none are applied.
func commitAtomic(ctx context.Context, fs *firestore.Client, writes []batchWrite) error {
	if len(writes) == 0 {
		return nil
	}

	if len(writes) > maxBatchWrites {
		return fmt.Errorf("batch of %d writes exceeds the limit of %d", len(writes), maxBatchWrites)
	}

	batch := fs.Batch()

	for _, w := range writes {
		batch.Set(w.ref, w.data, w.opts...)
	}

	_, err := batch.Commit(ctx)

	return err
}
