package connection

import (
	"context"
	"errors"

	"cloud.google.com/go/pubsub"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
)

var ErrPubsubInitialization = errors.New("pubsub initialization error")

type PubsubClient struct {
	pubsub *pubsub.Client
}

// NewPubsubClient is used to hand activity events over to the notification subsystem.
func NewPubsubClient(ctx context.Context, log *logger.Logging) (*PubsubClient, error) {
	ps, err := pubsub.NewClient(ctx, common.ProjectID)
	if err != nil {
		log.Logger(ctx).Errorf("%s: %s", ErrPubsubInitialization, err)
		return nil, ErrPubsubInitialization
	}

	return &PubsubClient{ps}, nil
}
