package gateway

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/client"
	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/domain"
)

// Software selects which followers a broadcast reaches, keyed by the software
// their instances report.
type Software string

const (
	// SoftwareNative matches peers running this software, which accept the
	// full-fidelity representation.
	SoftwareNative = Software(config.Software)
	// SoftwareOther matches everything else, including peers whose software
	// we never learned.
	SoftwareOther Software = "other"
	// SoftwareAny matches every follower.
	SoftwareAny Software = "*"
)

func (s Software) matches(peer string) bool {
	switch s {
	case SoftwareAny:
		return true
	case SoftwareNative:
		return strings.EqualFold(peer, config.Software)
	default:
		return !strings.EqualFold(peer, config.Software)
	}
}

type FedGateway interface {
	// Fetch asynchronously discovers the actor behind an IRI.
	Fetch(iri *url.URL) error
	// Deliver sends the activity to a single recipient actor.
	Deliver(ctx context.Context, activity vocab.Type, to, from *url.URL) error
	// Broadcast fans the activity out to the actor's followers whose
	// instances match the audience. Enqueueing is best-effort per inbox; a
	// follower we cannot reach never blocks the rest.
	Broadcast(ctx context.Context, actor domain.UserFed, activity vocab.Type, audience Software) error
	// BroadcastAll fans out to every follower regardless of software.
	BroadcastAll(ctx context.Context, actor domain.UserFed, activity vocab.Type) error
}

type FedGatewayImpl struct {
	client *client.HttpClient
	db     db.DB
	queue  *backlite.Client
	cfg    *config.Configuration
}

func New(ctx context.Context, db db.DB, client *client.HttpClient, cfg *config.Configuration, blClient *backlite.Client) FedGateway {
	g := &FedGatewayImpl{
		db:     db,
		queue:  blClient,
		client: client,
		cfg:    cfg,
	}
	queue := backlite.NewQueue(g.processTask())
	g.queue.Register(queue)
	g.queue.Start(ctx)
	log.Info().Msg("started task queue")
	return g
}

func (g *FedGatewayImpl) Fetch(iri *url.URL) error {
	log.Debug().Str("iri", iri.String()).Msg("enqueing fetch task")
	task := Task{
		Type: Fetch,
		To:   iri.String(),
	}

	_, err := g.queue.Add(task).Save()
	return err
}

func (g *FedGatewayImpl) Broadcast(ctx context.Context, actor domain.UserFed, activity vocab.Type, audience Software) error {
	data, err := streams.Serialize(activity)
	if err != nil {
		log.Error().Err(err).Msg("activity serialization error")
		return err
	}

	followers, err := g.db.GetFollowerInboxes(ctx, actor.ApId)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil
		}
		return err
	}

	seen := make(map[string]bool, len(followers))
	for _, follower := range followers {
		if follower.Inbox == nil || !audience.matches(follower.Software) {
			continue
		}
		// Shared inboxes show up once per follower; deliver once.
		inbox := follower.Inbox.String()
		if seen[inbox] {
			continue
		}
		seen[inbox] = true

		task := Task{
			Type:    Deliver,
			Inbox:   inbox,
			From:    actor.ApId.String(),
			Payload: data,
		}
		if _, err := g.queue.Add(task).Save(); err != nil {
			log.Error().Err(err).Str("inbox", inbox).Msg("delivery task enqueue")
		}
	}
	return nil
}

func (g *FedGatewayImpl) BroadcastAll(ctx context.Context, actor domain.UserFed, activity vocab.Type) error {
	return g.Broadcast(ctx, actor, activity, SoftwareAny)
}

func (g *FedGatewayImpl) Deliver(ctx context.Context, activity vocab.Type, to, from *url.URL) error {
	data, err := streams.Serialize(activity)
	if err != nil {
		log.Error().Err(err).Msg("activity serialization error")
		return err
	}

	task := Task{
		Type:    Deliver,
		To:      to.String(),
		From:    from.String(),
		Payload: data,
	}

	_, err = g.db.GetActorInbox(ctx, to)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			_, err = g.queue.Add(Task{
				Type: Fetch,
				To:   to.String(),
				Next: &task,
			}).Save()
		}
		return err
	}

	_, err = g.queue.Add(task).Save()
	if err != nil {
		log.Error().Err(err).Msg("adding delivery task to queue")
	}
	return err
}
