package conversions

import (
	"strings"

	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/domain"
)

// StatusToObject serializes a status. The native shape is what other goreads
// instances read: the variant's own ActivityStreams type plus the source
// markdown, content warning, sensitivity, mention tags and the book the
// status is about. The generic shape is a plain Note carrying only the fields
// any federated peer understands.
func StatusToObject(s domain.Status, native bool) vocab.Type {
	var obj statusObject
	if native && s.Variant.ApType == "Article" {
		obj = streams.NewActivityStreamsArticle()
	} else {
		obj = streams.NewActivityStreamsNote()
	}

	id := streams.NewJSONLDIdProperty()
	id.SetIRI(s.ApId)
	obj.SetJSONLDId(id)

	attributedTo := streams.NewActivityStreamsAttributedToProperty()
	attributedTo.AppendIRI(s.Author.ApId)
	obj.SetActivityStreamsAttributedTo(attributedTo)

	content := streams.NewActivityStreamsContentProperty()
	content.AppendXMLSchemaString(flattenContent(s, native))
	obj.SetActivityStreamsContent(content)

	published := streams.NewActivityStreamsPublishedProperty()
	published.Set(s.Published)
	obj.SetActivityStreamsPublished(published)

	if s.ReplyParent != nil {
		inReplyTo := streams.NewActivityStreamsInReplyToProperty()
		inReplyTo.AppendIRI(s.ReplyParent.ApId)
		obj.SetActivityStreamsInReplyTo(inReplyTo)
	}

	to := streams.NewActivityStreamsToProperty()
	to.AppendIRI(domain.Public)
	obj.SetActivityStreamsTo(to)

	if s.Author.Followers != nil {
		cc := streams.NewActivityStreamsCcProperty()
		cc.AppendIRI(s.Author.Followers)
		obj.SetActivityStreamsCc(cc)
	}

	if !native {
		return obj
	}

	if s.ContentWarning != "" {
		summary := streams.NewActivityStreamsSummaryProperty()
		summary.AppendXMLSchemaString(s.ContentWarning)
		obj.SetActivityStreamsSummary(summary)
	}

	sensitive := streams.NewActivityStreamsSensitiveProperty()
	sensitive.AppendXMLSchemaBoolean(s.Sensitive)
	obj.SetActivityStreamsSensitive(sensitive)

	if s.Variant.Tag == domain.TagReview && s.Rating > 0 {
		name := streams.NewActivityStreamsNameProperty()
		name.AppendXMLSchemaString(strings.Repeat("★", s.Rating))
		obj.SetActivityStreamsName(name)
	}

	if s.Book != nil {
		context := streams.NewActivityStreamsContextProperty()
		context.AppendIRI(s.Book)
		obj.SetActivityStreamsContext(context)
	}

	obj.SetActivityStreamsSource(sourceProp(s.Source))
	if s.Mentions.Len() != 0 {
		obj.SetActivityStreamsTag(mentionTags(s))
	}

	return obj
}

// flattenContent inlines the variant-specific fields into the content for
// peers that will never look at the extension properties.
func flattenContent(s domain.Status, native bool) string {
	if native || s.Quote == "" {
		return s.Content
	}
	return "<blockquote>" + s.Quote + "</blockquote>" + s.Content
}

func sourceProp(raw string) vocab.ActivityStreamsSourceProperty {
	source := streams.NewActivityStreamsObject()

	content := streams.NewActivityStreamsContentProperty()
	content.AppendXMLSchemaString(raw)
	source.SetActivityStreamsContent(content)

	mediaType := streams.NewActivityStreamsMediaTypeProperty()
	mediaType.Set(config.Markdown)
	source.SetActivityStreamsMediaType(mediaType)

	prop := streams.NewActivityStreamsSourceProperty()
	prop.SetActivityStreamsObject(source)
	return prop
}

func mentionTags(s domain.Status) vocab.ActivityStreamsTagProperty {
	tags := streams.NewActivityStreamsTagProperty()
	for user := range s.Mentions.All() {
		mention := streams.NewActivityStreamsMention()

		href := streams.NewActivityStreamsHrefProperty()
		href.Set(user.ApId)
		mention.SetActivityStreamsHref(href)

		name := streams.NewActivityStreamsNameProperty()
		name.AppendXMLSchemaString(user.Handle())
		mention.SetActivityStreamsName(name)

		tags.AppendActivityStreamsMention(mention)
	}
	return tags
}

func CreateActivity(s domain.Status, native bool) vocab.Type {
	create := streams.NewActivityStreamsCreate()

	id := streams.NewJSONLDIdProperty()
	id.SetIRI(s.ApId.JoinPath("activity"))
	create.SetJSONLDId(id)

	actor := streams.NewActivityStreamsActorProperty()
	actor.AppendIRI(s.Author.ApId)
	create.SetActivityStreamsActor(actor)

	objProp := streams.NewActivityStreamsObjectProperty()
	if err := objProp.AppendType(StatusToObject(s, native)); err != nil {
		log.Error().Err(err).Msg("failed to append status object")
	}
	create.SetActivityStreamsObject(objProp)

	published := streams.NewActivityStreamsPublishedProperty()
	published.Set(s.Published)
	create.SetActivityStreamsPublished(published)

	to := streams.NewActivityStreamsToProperty()
	to.AppendIRI(domain.Public)
	create.SetActivityStreamsTo(to)

	if s.Author.Followers != nil {
		cc := streams.NewActivityStreamsCcProperty()
		cc.AppendIRI(s.Author.Followers)
		create.SetActivityStreamsCc(cc)
	}

	return create
}

func DeleteActivity(s domain.Status) vocab.Type {
	del := streams.NewActivityStreamsDelete()

	id := streams.NewJSONLDIdProperty()
	id.SetIRI(s.ApId.JoinPath("delete"))
	del.SetJSONLDId(id)

	actor := streams.NewActivityStreamsActorProperty()
	actor.AppendIRI(s.Author.ApId)
	del.SetActivityStreamsActor(actor)

	objProp := streams.NewActivityStreamsObjectProperty()
	if err := objProp.AppendType(StatusTombstone(s)); err != nil {
		log.Error().Err(err).Msg("failed to append tombstone")
	}
	del.SetActivityStreamsObject(objProp)

	to := streams.NewActivityStreamsToProperty()
	to.AppendIRI(domain.Public)
	del.SetActivityStreamsTo(to)

	return del
}

// StatusTombstone is what peers get when they ask about a deleted status:
// identity and type are retained, content is gone.
func StatusTombstone(s domain.Status) vocab.Type {
	tomb := streams.NewActivityStreamsTombstone()

	id := streams.NewJSONLDIdProperty()
	id.SetIRI(s.ApId)
	tomb.SetJSONLDId(id)

	former := streams.NewActivityStreamsFormerTypeProperty()
	former.AppendXMLSchemaString(s.Variant.ApType)
	tomb.SetActivityStreamsFormerType(former)

	deleted := streams.NewActivityStreamsDeletedProperty()
	deleted.Set(s.Updated)
	tomb.SetActivityStreamsDeleted(deleted)

	return tomb
}
