package gateway

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/conversions"
)

func (g *FedGatewayImpl) processTask() func(context.Context, Task) error {
	return func(ctx context.Context, task Task) error {
		switch task.Type {
		case Fetch:
			return g.processFetch(ctx, task)
		case Deliver:
			return g.processDeliver(ctx, task)
		default:
			return fmt.Errorf("unknown task type %d", task.Type)
		}
	}
}

func (g *FedGatewayImpl) processFetch(ctx context.Context, task Task) (err error) {
	log.Debug().Str("iri", task.To).Msg("fetching IRI")
	iri, err := url.Parse(task.To)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			log.Error().Err(err).Str("iri", task.To).Msg("fetch failed")
		}
	}()

	fetchedAt := time.Now()
	asType, err := g.client.Get(ctx, iri)
	if err != nil {
		return err
	}

	person, ok := asType.(vocab.ActivityStreamsPerson)
	if !ok {
		return fmt.Errorf("unprocessable entity: %s", asType.GetTypeName())
	}
	user, err := conversions.ActorToUser(person)
	if err != nil {
		return err
	}
	if _, err = g.db.UpsertRemoteUser(ctx, user, fetchedAt); err != nil {
		return err
	}

	if task.Next == nil {
		return nil
	}
	_, err = backlite.FromContext(ctx).Add(*task.Next).Save()
	return err
}

func (g *FedGatewayImpl) processDeliver(ctx context.Context, task Task) error {
	inbox := task.Inbox
	if inbox == "" {
		to, err := url.Parse(task.To)
		if err != nil {
			return err
		}
		resolved, err := g.db.GetActorInbox(ctx, to)
		if err != nil {
			log.Error().Str("receiver", task.To).Err(err).Msg("actor's inbox not found")
			return err
		}
		inbox = resolved.String()
	}

	inboxURL, err := url.Parse(inbox)
	if err != nil {
		return err
	}
	from, err := url.Parse(task.From)
	if err != nil {
		return err
	}

	log.Debug().Str("inbox", inbox).Str("from", task.From).Msg("delivering activity")

	if err = g.client.DeliverAs(ctx, task.Payload, inboxURL, from); err != nil || task.Next == nil {
		return err
	}
	_, err = backlite.FromContext(ctx).Add(*task.Next).Save()
	return err
}
