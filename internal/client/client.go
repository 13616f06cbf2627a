package client

import (
	"bytes"
	"context"
	"crypto"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"code.superseriousbusiness.org/activity/pub"
	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"code.superseriousbusiness.org/httpsig"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goreads/internal/db"
)

const UserAgent = "goreads"

var prefs = []httpsig.Algorithm{httpsig.RSA_SHA256}
var getHeaders = []string{httpsig.RequestTarget, "date"}
var postHeaders = []string{httpsig.RequestTarget, "date", "digest"}
var mainKey, _ = url.Parse("#main-key")

// HttpClient makes the instance's outgoing requests: webfinger lookups, actor
// dereferences and activity deliveries. GETs and POSTs are signed with the
// instance key; when delivering on behalf of a particular user, a per-user
// transport is built from that user's key instead.
type HttpClient struct {
	db              db.DB
	client          *http.Client
	key             crypto.PrivateKey
	pubKeyId        *url.URL
	getSigner       httpsig.Signer
	getSignerMutex  sync.Mutex
	postSigner      httpsig.Signer
	postSignerMutex sync.Mutex
}

func New(db db.DB, client *http.Client, key crypto.PrivateKey, keyId *url.URL) (*HttpClient, error) {
	getSigner, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, getHeaders, httpsig.Signature, 3600)
	if err != nil {
		return nil, err
	}

	postSigner, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, postHeaders, httpsig.Signature, 3600)
	if err != nil {
		return nil, err
	}

	return &HttpClient{
		db:         db,
		client:     client,
		key:        key,
		pubKeyId:   keyId,
		getSigner:  getSigner,
		postSigner: postSigner,
	}, nil
}

type webfingerLink struct {
	Rel  string `json:"rel"`
	Type string `json:"type"`
	Href string `json:"href"`
}

type webfingerResponse struct {
	Subject string          `json:"subject"`
	Links   []webfingerLink `json:"links"`
}

// Finger asks the remote host who username is and returns the IRI of the
// matching actor. The webfinger endpoint itself is unauthenticated, so the
// request goes out unsigned.
func (c *HttpClient) Finger(ctx context.Context, username, host string) (*url.URL, error) {
	endpoint := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     "/.well-known/webfinger",
		RawQuery: url.Values{"resource": {"acct:" + username + "@" + host}}.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/jrd+json, application/json")
	req.Header.Set("User-Agent", UserAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("webfinger %s@%s: %s", username, host, res.Status)
	}

	var jrd webfingerResponse
	if err = json.NewDecoder(res.Body).Decode(&jrd); err != nil {
		return nil, fmt.Errorf("webfinger %s@%s: %w", username, host, err)
	}

	for _, link := range jrd.Links {
		if link.Rel == "self" && link.Href != "" {
			return url.Parse(link.Href)
		}
	}

	return nil, fmt.Errorf("webfinger %s@%s: no self link", username, host)
}

func (c *HttpClient) Get(ctx context.Context, iri *url.URL) (obj vocab.Type, err error) {
	res, err := c.Dereference(ctx, iri)
	if err != nil {
		return
	}
	defer res.Body.Close()

	var props map[string]any
	if err = json.NewDecoder(res.Body).Decode(&props); err != nil {
		log.Error().Err(err).Str("iri", iri.String()).Msg("response body unmarshaling error")
		return
	}

	obj, err = streams.ToType(ctx, props)
	return
}

func (c *HttpClient) Dereference(ctx context.Context, iri *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iri.String(), nil)
	if err != nil {
		return nil, err
	}

	c.getSignerMutex.Lock()
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	req.Header.Set("Accept", "application/activity+json")
	req.Header.Set("User-Agent", UserAgent)
	err = c.getSigner.SignRequest(c.key, c.pubKeyId.String(), req, nil)
	c.getSignerMutex.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("error while signing request")
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= http.StatusBadRequest {
		content, _ := io.ReadAll(res.Body)
		res.Body.Close()
		log.Error().Str("status", res.Status).Bytes("response", content).Msg("fetch error")
		return nil, fmt.Errorf("%d %s: %s", res.StatusCode, res.Status, content)
	}

	return res, nil
}

// DeliverAs posts the activity to the recipient's inbox, signed with the key
// of the sending actor. When from is the instance root, the instance key
// already held by the client is used directly.
func (c *HttpClient) DeliverAs(ctx context.Context, obj map[string]any, to *url.URL, from *url.URL) error {
	if path := from.Path; path == "" || path == "/" {
		return c.Deliver(ctx, obj, to)
	}

	key, err := c.db.GetUserPrivateKeyByURI(ctx, from)
	if err != nil {
		log.Error().Err(err).Str("actor", from.String()).Msg("user's private key not found")
		return err
	}

	signer, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, postHeaders, httpsig.Signature, 3600)
	if err != nil {
		return err
	}

	pubKeyId := from.ResolveReference(mainKey)
	transport := pub.NewHttpSigTransport(c.client, UserAgent, c, nil, signer, pubKeyId.String(), key)
	return transport.Deliver(ctx, obj, to)
}

func (c *HttpClient) Deliver(ctx context.Context, obj map[string]any, to *url.URL) error {
	body, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, to.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/activity+json")
	req.Header.Set("User-Agent", UserAgent)

	c.postSignerMutex.Lock()
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	err = c.postSigner.SignRequest(c.key, c.pubKeyId.String(), req, body)
	c.postSignerMutex.Unlock()
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(res.Body)
		log.Error().Int("code", res.StatusCode).Bytes("response body", body).Msg("delivery error")
		return fmt.Errorf("error %d: %s", res.StatusCode, res.Status)
	}
	return nil
}

func (c *HttpClient) NewTransport(ctx context.Context, prefs []httpsig.Algorithm, id *url.URL) (transport pub.Transport, err error) {
	key, err := c.db.GetUserPrivateKeyByURI(ctx, id)
	if err != nil {
		return
	}

	getSigner, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, getHeaders, httpsig.Signature, 3600)
	if err != nil {
		return
	}

	postSigner, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, postHeaders, httpsig.Signature, 3600)
	if err != nil {
		return
	}

	keyId := id.ResolveReference(mainKey)
	transport = pub.NewHttpSigTransport(c.client, UserAgent, c, getSigner, postSigner, keyId.String(), key)
	return
}

func (c *HttpClient) Now() time.Time {
	return time.Now()
}
