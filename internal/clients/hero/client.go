// Package hero provides the gateway to the external hero service. The
// hero service owns authoritative hero state; combat only reads a
// snapshot and reports deltas back. Update, delete, and level-up calls
// are best-effort notifications: callers log failures and move on.
package hero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=heromock github.com/crawlforge/dungeon-api/internal/clients/hero Gateway

const defaultTimeout = 5 * time.Second

// Gateway defines the operations the game core needs from the hero service
type Gateway interface {
	// GetHero fetches the hero snapshot combat resolves against
	GetHero(ctx context.Context, heroID string) (*entities.Hero, error)

	// UpdateHealthPoints reports a new hero HP value
	UpdateHealthPoints(ctx context.Context, heroID string, newHP int) error

	// DeleteHero reports the hero as dead and gone
	DeleteHero(ctx context.Context, heroID string) error

	// NotifyLevelUp reports a won fight for experience accounting
	NotifyLevelUp(ctx context.Context, heroID string) error
}

// Config holds the settings for the HTTP gateway
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Validate ensures required settings are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.BaseURL == "" {
		vb.RequiredField("BaseURL")
	}
	return vb.Build()
}

type httpGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a Gateway backed by the hero service HTTP API
func NewHTTPGateway(cfg *Config) (Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &httpGateway{
		baseURL: cfg.BaseURL,
		client:  client,
	}, nil
}

var _ Gateway = (*httpGateway)(nil)

func (g *httpGateway) GetHero(ctx context.Context, heroID string) (*entities.Hero, error) {
	if heroID == "" {
		return nil, errors.InvalidArgument("hero ID cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/heroes/%s", g.baseURL, heroID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build hero request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "hero service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.NotFoundf("hero %s not found", heroID)
	default:
		return nil, errors.Internalf("hero service returned %d", resp.StatusCode)
	}

	var h entities.Hero
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, errors.Wrap(err, "failed to decode hero")
	}

	return &h, nil
}

func (g *httpGateway) UpdateHealthPoints(ctx context.Context, heroID string, newHP int) error {
	payload := map[string]int{"health_points": newHP}
	return g.send(ctx, http.MethodPatch,
		fmt.Sprintf("%s/v1/heroes/%s/health", g.baseURL, heroID), payload)
}

func (g *httpGateway) DeleteHero(ctx context.Context, heroID string) error {
	return g.send(ctx, http.MethodDelete,
		fmt.Sprintf("%s/v1/heroes/%s", g.baseURL, heroID), nil)
}

func (g *httpGateway) NotifyLevelUp(ctx context.Context, heroID string) error {
	return g.send(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/heroes/%s/level-up", g.baseURL, heroID), nil)
}

func (g *httpGateway) send(ctx context.Context, method, url string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to marshal payload")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "hero service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return errors.Internalf("hero service returned %d", resp.StatusCode)
	}

	return nil
}
