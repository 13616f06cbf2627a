package core

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sidereusnuntius/goreads/internal/conversions"
	"github.com/sidereusnuntius/goreads/internal/domain"
	"github.com/sidereusnuntius/goreads/internal/gateway"
	"github.com/sidereusnuntius/goreads/internal/mention"
	"github.com/sidereusnuntius/goreads/internal/service"
	"github.com/sidereusnuntius/goreads/internal/validate"
)

// CreateStatus runs the authoring pipeline. Validation failures happen before
// any write; once the status row exists, notification and federation problems
// are logged but never undo it.
func (s *AppService) CreateStatus(ctx context.Context, authorId int64, variantTag string, form service.StatusForm) (domain.Status, error) {
	variant, ok := domain.VariantByTag(variantTag)
	if !ok {
		return domain.Status{}, fmt.Errorf("%w: %q", service.ErrUnknownVariant, variantTag)
	}

	author, err := s.DB.GetUserByID(ctx, authorId)
	if err != nil {
		return domain.Status{}, err
	}

	if err := validate.StatusForm(form.Content, form.Rating); err != nil {
		return domain.Status{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	status := domain.Status{
		Author:    author,
		Source:    form.Content,
		Sensitive: form.Sensitive,
		Variant:   variant,
	}
	// The warning only survives alongside the flag that explains it.
	if form.Sensitive {
		status.ContentWarning = strings.TrimSpace(form.ContentWarning)
	}

	if form.Book != "" {
		book, err := url.Parse(form.Book)
		if err != nil {
			return domain.Status{}, fmt.Errorf("%w: book: %s", service.ErrInvalidInput, err)
		}
		status.Book = book
	}
	if variant.Tag == domain.TagReview {
		status.Rating = form.Rating
	}

	if form.ReplyParentID != 0 {
		parent, err := s.DB.GetStatus(ctx, form.ReplyParentID)
		if err != nil {
			return domain.Status{}, fmt.Errorf("%w: reply parent: %s", service.ErrInvalidInput, err)
		}
		status.ReplyParent = &parent
	}

	content := form.Content
	extractor := mention.New(s.Resolver.NewSession(), s.Config.Domain, s.Config.ResolverWorkers)
	found, err := extractor.ResolveAll(ctx, content)
	if err != nil {
		return domain.Status{}, err
	}
	for literal, user := range found {
		status.Mentions.Add(user)
		content = mention.Rewrite(content, literal, user)
	}

	// The parent's author hears about the reply even without being named in
	// the text.
	if status.ReplyParent != nil {
		status.Mentions.Add(status.ReplyParent.Author)
	}

	if variant.SkipRender {
		status.Content = content
	} else {
		status.Content = s.Renderer.Render(content)
	}
	if variant.HasQuote {
		status.Quote = s.Renderer.Render(form.Quote)
	}

	if err := s.DB.CreateStatus(ctx, &status); err != nil {
		return domain.Status{}, err
	}

	s.notifyRecipients(ctx, &status)
	s.broadcastCreate(context.WithoutCancel(ctx), status)

	return status, nil
}

// notifyRecipients files REPLY and MENTION notifications. The reply parent's
// author gets a single REPLY even when also mentioned by name. Per-recipient
// failures are logged and skipped.
func (s *AppService) notifyRecipients(ctx context.Context, status *domain.Status) {
	var replyAuthor *domain.UserFed
	if status.ReplyParent != nil {
		replyAuthor = &status.ReplyParent.Author
		if err := s.Notifier.Dispatch(ctx, *replyAuthor, domain.NotifyReply, status); err != nil {
			log.Error().Err(err).Int64("recipient", replyAuthor.ID).Msg("reply notification")
		}
	}

	for user := range status.Mentions.All() {
		if replyAuthor != nil && replyAuthor.ApId != nil && user.ApId.String() == replyAuthor.ApId.String() {
			continue
		}
		if err := s.Notifier.Dispatch(ctx, user, domain.NotifyMention, status); err != nil {
			log.Error().Err(err).Int64("recipient", user.ID).Msg("mention notification")
		}
	}
}

// broadcastCreate fans the new status out twice: the full-fidelity shape to
// peers speaking our software, the down-levelled one to everyone else. The
// runs are independent; one failing never stops the others.
func (s *AppService) broadcastCreate(ctx context.Context, status domain.Status) {
	generic := conversions.CreateActivity(status, false)

	var g errgroup.Group
	g.Go(func() error {
		return s.Gateway.Broadcast(ctx, status.Author, conversions.CreateActivity(status, true), gateway.SoftwareNative)
	})
	g.Go(func() error {
		return s.Gateway.Broadcast(ctx, status.Author, generic, gateway.SoftwareOther)
	})

	// Remote mentioned users (the reply parent's author among them) are not
	// necessarily followers; they get the activity addressed to them
	// directly.
	for user := range status.Mentions.All() {
		if user.Local {
			continue
		}
		to := user.ApId
		g.Go(func() error {
			return s.Gateway.Deliver(ctx, generic, to, status.Author.ApId)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int64("status", status.ID).Msg("create broadcast")
	}
}

func (s *AppService) DeleteStatus(ctx context.Context, requesterId, statusId int64) error {
	status, err := s.DB.GetStatus(ctx, statusId)
	if err != nil {
		return err
	}
	if status.Author.ID != requesterId {
		return fmt.Errorf("%w: status %d belongs to someone else", service.ErrUnauthorized, statusId)
	}

	if err := s.DB.TombstoneStatus(ctx, statusId); err != nil {
		return err
	}
	status.Tombstoned = true

	if err := s.Gateway.BroadcastAll(context.WithoutCancel(ctx), status.Author, conversions.DeleteActivity(status)); err != nil {
		log.Error().Err(err).Int64("status", statusId).Msg("delete broadcast")
	}
	return nil
}

func (s *AppService) GetStatus(ctx context.Context, id int64) (domain.Status, error) {
	return s.DB.GetStatus(ctx, id)
}

func (s *AppService) GetLocalUser(ctx context.Context, username string) (domain.UserFed, error) {
	return s.DB.GetUserByHandle(ctx, strings.ToLower(username), s.Config.Domain)
}

func (s *AppService) GetUserProfile(ctx context.Context, username, host string) (domain.Profile, error) {
	if host == "" {
		host = s.Config.Domain
	}
	user, err := s.DB.GetUserByHandle(ctx, strings.ToLower(username), host)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{UserCore: user.UserCore}, nil
}
