package connection

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
)

var ErrFirestoreInitialization = errors.New("firestore initialization error")

const firestoreDatabaseEnv = "FIRESTORE_DATABASE"

type FirestoreClient struct {
	fs *firestore.Client
}

// NewFirestore connects to the project database, or to the named database set in FIRESTORE_DATABASE.
func NewFirestore(ctx context.Context, log *logger.Logging) (*FirestoreClient, error) {
	l := log.Logger(ctx)

	database := common.GetEnv(firestoreDatabaseEnv, firestore.DefaultDatabaseID)

	fs, err := firestore.NewClientWithDatabase(ctx, common.ProjectID, database)
	if err != nil {
		l.Errorf("%s: database %s: %s", ErrFirestoreInitialization, database, err)
		return nil, ErrFirestoreInitialization
	}

	return &FirestoreClient{fs}, nil
}
