package impl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/domain"
	"github.com/sidereusnuntius/goreads/internal/initialization"
)

var DB db.DB
var rawDB *sql.DB
var ctx = context.Background()

func TestMain(m *testing.M) {
	hostname, _ := url.Parse("https://books.example")
	cfg := config.Configuration{
		Domain:     "books.example",
		Url:        hostname,
		RsaKeySize: 2048,
	}

	d, err := initialization.OpenDB("file:temp?mode=memory&cache=shared")
	if err != nil {
		return
	}
	d.SetMaxOpenConns(1)

	err = initialization.SetupDB(&cfg, d, "../../../migrations", "temp")
	if err != nil {
		return
	}
	rawDB = d
	DB = New(cfg, d)
	m.Run()
}

var userSeq int

// newLocalUser inserts a fresh local user with an account and returns it.
func newLocalUser(t *testing.T) domain.UserFed {
	t.Helper()
	userSeq++
	username := fmt.Sprintf("reader%d", userSeq)

	u := domain.UserFedInternal{
		UserFed: domain.UserFed{
			UserCore: domain.UserCore{
				Username: username,
				Host:     "books.example",
				Local:    true,
			},
			ApId:      toURL("https://books.example/u/" + username),
			Inbox:     toURL("https://books.example/u/" + username + "/inbox"),
			Outbox:    toURL("https://books.example/u/" + username + "/outbox"),
			Followers: toURL("https://books.example/u/" + username + "/followers"),
			PublicKey: "pem",
		},
		PrivateKey: "pem",
	}
	account := domain.Account{
		Email:    username + "@example.com",
		Password: "hashed-" + username,
	}

	if err := DB.InsertLocalUser(ctx, u, account); err != nil {
		t.Fatal(err)
	}

	inserted, err := DB.GetUserByHandle(ctx, username, "books.example")
	if err != nil {
		t.Fatal(err)
	}
	return inserted
}

func toURL(u string) *url.URL {
	url, _ := url.Parse(u)
	return url
}

func TestGetInstanceIdOrCreate(t *testing.T) {
	id1, err := DB.GetInstanceIdOrCreate(ctx, "comp.example")
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	id2, err := DB.GetInstanceIdOrCreate(ctx, "comp.example")
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if id1 != id2 {
		t.Errorf("expected second query to return id %d, but it returned %d", id1, id2)
	}
}

func TestAuthData(t *testing.T) {
	u := newLocalUser(t)

	byName, err := DB.GetAuthDataByUsername(ctx, u.Username)
	if err != nil {
		t.Fatal(err)
	}
	if byName.UserID != u.ID || byName.Password != "hashed-"+u.Username {
		t.Errorf("unexpected auth data: %+v", byName)
	}

	byEmail, err := DB.GetAuthDataByEmail(ctx, u.Username+"@EXAMPLE.com")
	if err != nil {
		t.Fatal(err)
	}
	if byEmail.UserID != u.ID {
		t.Errorf("expected user %d, got %d", u.ID, byEmail.UserID)
	}

	if _, err = DB.GetAuthDataByUsername(ctx, "nobody"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserApId(t *testing.T) {
	u := newLocalUser(t)
	apId, err := DB.GetUserApId(ctx, u.Username)
	if err != nil {
		t.Fatal(err)
	}
	if apId.String() != u.ApId.String() {
		t.Errorf("expected %s, got %s", u.ApId, apId)
	}
}

func TestGetUserPrivateKey(t *testing.T) {
	// The instance row written during setup carries a usable key pair;
	// the pem placeholder stored for test users does not parse.
	key, err := DB.GetUserPrivateKeyByURI(ctx, toURL("https://books.example"))
	if err != nil {
		t.Fatal(err)
	}
	if key == nil {
		t.Error("expected the instance private key")
	}
}

func TestUpsertRemoteUser(t *testing.T) {
	remote := domain.UserFed{
		UserCore: domain.UserCore{
			Username: "grace",
			Name:     "Grace",
			Host:     "remote.example",
		},
		ApId:  toURL("https://remote.example/u/grace"),
		Inbox: toURL("https://remote.example/u/grace/inbox"),
	}

	first, err := DB.UpsertRemoteUser(ctx, remote, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 || first.Local {
		t.Errorf("unexpected stored user: %+v", first)
	}

	remote.Name = "Grace H."
	second, err := DB.UpsertRemoteUser(ctx, remote, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same row, got %d and %d", first.ID, second.ID)
	}
	if second.Name != "Grace H." {
		t.Errorf("expected the refreshed name, got %q", second.Name)
	}

	if _, err = DB.GetInstanceIdOrCreate(ctx, "remote.example"); err != nil {
		t.Errorf("expected an instances row for the user's host: %s", err)
	}

	inbox, err := DB.GetActorInbox(ctx, remote.ApId)
	if err != nil {
		t.Fatal(err)
	}
	if inbox.String() != "https://remote.example/u/grace/inbox" {
		t.Errorf("unexpected inbox %s", inbox)
	}
}

func TestCreateAndGetStatus(t *testing.T) {
	author := newLocalUser(t)
	mentioned := newLocalUser(t)

	parent := domain.Status{
		Author:  author,
		Variant: domain.Variants[domain.TagNote],
		Source:  "first",
		Content: "<p>first</p>",
	}
	if err := DB.CreateStatus(ctx, &parent); err != nil {
		t.Fatal(err)
	}
	if parent.ID == 0 || parent.ApId == nil {
		t.Fatalf("create did not fill in identity: %+v", parent)
	}
	if expected := fmt.Sprintf("https://books.example/s/%d", parent.ID); parent.ApId.String() != expected {
		t.Errorf("expected ap_id %s, got %s", expected, parent.ApId)
	}

	reply := domain.Status{
		Author:         author,
		Variant:        domain.Variants[domain.TagReview],
		Source:         "I agree",
		Content:        "<p>I agree</p>",
		ContentWarning: "spoilers",
		Sensitive:      true,
		ReplyParent:    &parent,
		Book:           toURL("https://books.example/b/solaris"),
		Rating:         5,
	}
	reply.Mentions.Add(mentioned)
	if err := DB.CreateStatus(ctx, &reply); err != nil {
		t.Fatal(err)
	}

	got, err := DB.GetStatus(ctx, reply.ID)
	if err != nil {
		t.Fatal(err)
	}

	if got.Content != "<p>I agree</p>" || got.ContentWarning != "spoilers" || !got.Sensitive {
		t.Errorf("unexpected status: %+v", got)
	}
	if got.Variant.Tag != domain.TagReview || got.Rating != 5 {
		t.Errorf("unexpected variant data: %+v", got)
	}
	if got.Book == nil || got.Book.String() != "https://books.example/b/solaris" {
		t.Errorf("unexpected book: %v", got.Book)
	}
	if got.Author.ID != author.ID || got.Author.Username != author.Username {
		t.Errorf("unexpected author: %+v", got.Author)
	}
	if got.ReplyParent == nil || got.ReplyParent.ID != parent.ID {
		t.Fatalf("expected the reply parent to be loaded: %+v", got.ReplyParent)
	}
	if got.ReplyParent.Author.ID != author.ID {
		t.Errorf("unexpected parent author: %+v", got.ReplyParent.Author)
	}
	if got.Mentions.Len() != 1 || !got.Mentions.Contains(mentioned) {
		t.Errorf("unexpected mentions: %v", got.Mentions.Users())
	}
}

func TestGetStatusNotFound(t *testing.T) {
	if _, err := DB.GetStatus(ctx, 99999); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTombstoneStatus(t *testing.T) {
	author := newLocalUser(t)
	status := domain.Status{
		Author:  author,
		Variant: domain.Variants[domain.TagQuotation],
		Source:  "gone soon",
		Content: "<p>gone soon</p>",
		Quote:   "<p>quoted</p>",
	}
	if err := DB.CreateStatus(ctx, &status); err != nil {
		t.Fatal(err)
	}

	if err := DB.TombstoneStatus(ctx, status.ID); err != nil {
		t.Fatal(err)
	}

	got, err := DB.GetStatus(ctx, status.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Tombstoned {
		t.Error("expected the status to be tombstoned")
	}
	if got.Content != "" || got.Source != "" || got.Quote != "" {
		t.Errorf("expected the content to be wiped: %+v", got)
	}
	if got.ApId.String() != status.ApId.String() {
		t.Errorf("tombstoning must not change the id, got %s", got.ApId)
	}

	if err = DB.TombstoneStatus(ctx, 99999); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateNotification(t *testing.T) {
	actor := newLocalUser(t)
	recipient := newLocalUser(t)
	status := domain.Status{
		Author:  actor,
		Variant: domain.Variants[domain.TagNote],
		Content: "<p>hi</p>",
	}
	if err := DB.CreateStatus(ctx, &status); err != nil {
		t.Fatal(err)
	}

	n := domain.Notification{
		RecipientID: recipient.ID,
		Kind:        domain.NotifyMention,
		ActorID:     actor.ID,
		StatusID:    status.ID,
	}
	if err := DB.CreateNotification(ctx, n); err != nil {
		t.Fatal(err)
	}
	// Delivering the same notification twice must not produce a second row.
	if err := DB.CreateNotification(ctx, n); err != nil {
		t.Fatal(err)
	}

	row := rawDB.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND status_id = ?`,
		recipient.ID, status.ID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected one notification, found %d", count)
	}
}

func TestGetFollowerInboxes(t *testing.T) {
	author := newLocalUser(t)

	if _, err := DB.GetInstanceIdOrCreate(ctx, "peer.example"); err != nil {
		t.Fatal(err)
	}
	if _, err := rawDB.Exec(`UPDATE instances SET software = 'goreads' WHERE hostname = 'peer.example'`); err != nil {
		t.Fatal(err)
	}

	now := time.Now().Unix()
	follows := []struct {
		follower string
		inbox    string
		host     string
		accepted bool
	}{
		{"https://peer.example/u/ada", "https://peer.example/u/ada/inbox", "peer.example", true},
		{"https://elsewhere.example/u/bob", "https://elsewhere.example/inbox", "elsewhere.example", true},
		{"https://peer.example/u/carol", "https://peer.example/u/carol/inbox", "peer.example", false},
	}
	for _, f := range follows {
		_, err := rawDB.Exec(`
			INSERT INTO follows (follower_ap_id, followee_ap_id, follower_inbox, follower_host, accepted, created)
			VALUES (?, ?, ?, ?, ?, ?)`,
			f.follower, author.ApId.String(), f.inbox, f.host, f.accepted, now,
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	inboxes, err := DB.GetFollowerInboxes(ctx, author.ApId)
	if err != nil {
		t.Fatal(err)
	}
	if len(inboxes) != 2 {
		t.Fatalf("expected two accepted followers, got %d", len(inboxes))
	}

	bySoftware := make(map[string]string)
	for _, f := range inboxes {
		bySoftware[f.Inbox.String()] = f.Software
	}
	if bySoftware["https://peer.example/u/ada/inbox"] != "goreads" {
		t.Errorf("expected the known peer's software, got %q", bySoftware["https://peer.example/u/ada/inbox"])
	}
	// Hosts without an instances row report no software at all.
	if software, ok := bySoftware["https://elsewhere.example/inbox"]; !ok || software != "" {
		t.Errorf("unexpected entry for the unknown host: %q, %v", software, ok)
	}
}
