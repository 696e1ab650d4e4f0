package activity

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/connection"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

// PubsubNotifier hands events that need a notification to the notification service.
type PubsubNotifier struct {
	pubsubClientFn connection.PubsubFromContextFun
	topicID        string
}

func NewPubsubNotifier(fun connection.PubsubFromContextFun, topicID string) *PubsubNotifier {
	return &PubsubNotifier{
		pubsubClientFn: fun,
		topicID:        topicID,
	}
}

func (n *PubsubNotifier) Notify(ctx context.Context, events []*domain.ActivityEvent) error {
	topic := n.pubsubClientFn(ctx).Topic(n.topicID)
	defer topic.Stop()

	var result error

	results := make([]*pubsub.PublishResult, 0, len(events))

	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		results = append(results, topic.Publish(ctx, &pubsub.Message{
			Data: data,
			Attributes: map[string]string{
				"clientKey": e.ClientKey,
				"type":      string(e.Type),
				"priority":  string(e.Priority),
			},
		}))
	}

	for _, res := range results {
		if _, err := res.Get(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result
}
