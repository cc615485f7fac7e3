// Package identity resolves user identities against the identity service
// over HTTP. The content service uses it to attach author details and to
// expand the follow graph when assembling feeds.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"quill/internal/models"
	"quill/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Resolver defines identity lookups needed by the content service.
type Resolver interface {
	ResolveByID(ctx context.Context, id uint) (*models.Identity, error)
	ResolveByUsername(ctx context.Context, username string) (*models.Identity, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

type httpResolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver returns a Resolver backed by the identity service at baseURL.
// The timeout bounds every lookup so a slow identity service degrades into
// an unavailable error instead of stalling feed assembly.
func NewResolver(baseURL string, timeout time.Duration) Resolver {
	return &httpResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// envelope matches the identity service's success response shape.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (r *httpResolver) ResolveByID(ctx context.Context, id uint) (*models.Identity, error) {
	var identity models.Identity
	err := r.get(ctx, "resolve_by_id", fmt.Sprintf("/api/users/%d", id), id, &identity)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *httpResolver) ResolveByUsername(ctx context.Context, username string) (*models.Identity, error) {
	var identity models.Identity
	path := "/api/users?username=" + url.QueryEscape(username)
	if err := r.get(ctx, "resolve_by_username", path, username, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *httpResolver) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	path := fmt.Sprintf("/api/users/%d/following/ids", userID)
	if err := r.get(ctx, "following_ids", path, userID, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// get performs the lookup and translates failures into the typed errors the
// service layer branches on: a definitive 404 is NotFound, everything else
// (transport errors, timeouts, 5xx) is Unavailable.
func (r *httpResolver) get(ctx context.Context, operation, path string, subject any, out any) error {
	observability.AddTraceAttributesToContext(ctx,
		attribute.String("resolver.operation", operation))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		observability.ResolverRequests.WithLabelValues(operation, "error").Inc()
		return models.NewUnavailableError("identity", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		observability.ResolverRequests.WithLabelValues(operation, "unavailable").Inc()
		return models.NewUnavailableError("identity", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		observability.ResolverRequests.WithLabelValues(operation, "not_found").Inc()
		return models.NewNotFoundError("User", subject)
	case resp.StatusCode != http.StatusOK:
		observability.ResolverRequests.WithLabelValues(operation, "unavailable").Inc()
		return models.NewUnavailableError("identity",
			fmt.Errorf("identity service returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.ResolverRequests.WithLabelValues(operation, "unavailable").Inc()
		return models.NewUnavailableError("identity", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		observability.ResolverRequests.WithLabelValues(operation, "unavailable").Inc()
		return models.NewUnavailableError("identity", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		observability.ResolverRequests.WithLabelValues(operation, "unavailable").Inc()
		return models.NewUnavailableError("identity", err)
	}

	observability.ResolverRequests.WithLabelValues(operation, "ok").Inc()
	return nil
}
