package conversions

import (
	"net/url"
	"testing"
	"time"

	"code.superseriousbusiness.org/activity/streams"
	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/goreads/internal/domain"
)

func testStatus() domain.Status {
	s := domain.Status{
		ID:        10,
		ApId:      toURL("https://books.example/s/10"),
		Source:    "A *strange* ocean.",
		Content:   "<p>A <em>strange</em> ocean.</p>",
		Variant:   domain.Variants[domain.TagReview],
		Book:      toURL("https://books.example/b/solaris"),
		Rating:    4,
		Published: toTime("2026-08-20T10:30:00Z"),
		Updated:   toTime("2026-08-20T10:30:00Z"),
		Author: domain.UserFed{
			UserCore: domain.UserCore{
				ID:       1,
				Username: "ada",
				Host:     "books.example",
			},
			ApId:      toURL("https://books.example/u/ada"),
			Followers: toURL("https://books.example/u/ada/followers"),
		},
	}
	return s
}

// serialize drops the JSON-LD context so the assertions stay on the
// properties themselves.
func serialize(t *testing.T, s domain.Status, native bool) map[string]any {
	t.Helper()
	m, err := streams.Serialize(StatusToObject(s, native))
	if err != nil {
		t.Fatal(err)
	}
	delete(m, "@context")
	return m
}

func TestStatusToObjectNative(t *testing.T) {
	s := testStatus()
	s.Sensitive = true
	s.ContentWarning = "spoilers"
	s.Mentions.Add(domain.UserFed{
		UserCore: domain.UserCore{
			Username: "grace",
			Host:     "remote.example",
		},
		ApId:  toURL("https://remote.example/u/grace"),
		Inbox: toURL("https://remote.example/u/grace/inbox"),
	})

	expected := map[string]any{
		"type":         "Article",
		"id":           "https://books.example/s/10",
		"attributedTo": "https://books.example/u/ada",
		"content":      "<p>A <em>strange</em> ocean.</p>",
		"published":    "2026-08-20T10:30:00Z",
		"to":           "https://www.w3.org/ns/activitystreams#Public",
		"cc":           "https://books.example/u/ada/followers",
		"summary":      "spoilers",
		"sensitive":    true,
		"name":         "★★★★",
		"context":      "https://books.example/b/solaris",
		"source": map[string]any{
			"content":   "A *strange* ocean.",
			"mediaType": "text/markdown",
		},
		"tag": map[string]any{
			"type": "Mention",
			"href": "https://remote.example/u/grace",
			"name": "@grace@remote.example",
		},
	}

	if diff := cmp.Diff(expected, serialize(t, s, true)); diff != "" {
		t.Error(diff)
	}
}

func TestStatusToObjectGeneric(t *testing.T) {
	s := testStatus()
	s.Sensitive = true
	s.ContentWarning = "spoilers"

	expected := map[string]any{
		"type":         "Note",
		"id":           "https://books.example/s/10",
		"attributedTo": "https://books.example/u/ada",
		"content":      "<p>A <em>strange</em> ocean.</p>",
		"published":    "2026-08-20T10:30:00Z",
		"to":           "https://www.w3.org/ns/activitystreams#Public",
		"cc":           "https://books.example/u/ada/followers",
	}

	if diff := cmp.Diff(expected, serialize(t, s, false)); diff != "" {
		t.Error(diff)
	}
}

func TestStatusToObjectGenericQuote(t *testing.T) {
	s := testStatus()
	s.Variant = domain.Variants[domain.TagQuotation]
	s.Quote = "<p>The ocean thinks.</p>"

	m := serialize(t, s, false)
	expected := "<blockquote><p>The ocean thinks.</p></blockquote><p>A <em>strange</em> ocean.</p>"
	if m["content"] != expected {
		t.Errorf("expected content %q, got %q", expected, m["content"])
	}
}

func TestStatusToObjectReply(t *testing.T) {
	s := testStatus()
	s.Variant = domain.Variants[domain.TagReply]
	s.ReplyParent = &domain.Status{
		ApId: toURL("https://remote.example/s/4"),
	}

	for _, native := range []bool{true, false} {
		m := serialize(t, s, native)
		if m["inReplyTo"] != "https://remote.example/s/4" {
			t.Errorf("native=%v: expected inReplyTo, got %v", native, m["inReplyTo"])
		}
	}
}

func TestCreateActivity(t *testing.T) {
	s := testStatus()
	m, err := streams.Serialize(CreateActivity(s, true))
	if err != nil {
		t.Fatal(err)
	}

	if m["type"] != "Create" {
		t.Errorf("expected a Create, got %v", m["type"])
	}
	if m["id"] != "https://books.example/s/10/activity" {
		t.Errorf("unexpected activity id %v", m["id"])
	}
	if m["actor"] != "https://books.example/u/ada" {
		t.Errorf("unexpected actor %v", m["actor"])
	}
	if m["to"] != domain.Public.String() {
		t.Errorf("unexpected addressing %v", m["to"])
	}

	obj, ok := m["object"].(map[string]any)
	if !ok {
		t.Fatalf("expected an embedded object, got %v", m["object"])
	}
	if obj["type"] != "Article" || obj["id"] != "https://books.example/s/10" {
		t.Errorf("unexpected embedded object: %v", obj)
	}
}

func TestDeleteActivity(t *testing.T) {
	s := testStatus()
	s.Updated = toTime("2026-08-21T08:00:00Z")
	s.Tombstoned = true

	m, err := streams.Serialize(DeleteActivity(s))
	if err != nil {
		t.Fatal(err)
	}

	if m["type"] != "Delete" {
		t.Errorf("expected a Delete, got %v", m["type"])
	}
	if m["id"] != "https://books.example/s/10/delete" {
		t.Errorf("unexpected activity id %v", m["id"])
	}

	obj, ok := m["object"].(map[string]any)
	if !ok {
		t.Fatalf("expected an embedded tombstone, got %v", m["object"])
	}
	expected := map[string]any{
		"type":       "Tombstone",
		"id":         "https://books.example/s/10",
		"formerType": "Article",
		"deleted":    "2026-08-21T08:00:00Z",
	}
	if diff := cmp.Diff(expected, obj); diff != "" {
		t.Error(diff)
	}
}

func toURL(u string) *url.URL {
	url, _ := url.Parse(u)
	return url
}

func toTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
