package emailcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/verimail/signup-service/internal/application/auth"
)

const DefaultBaseURL = "https://api.zerobounce.net"

// ZeroBounceClient calls the ZeroBounce validation API.
// It is an explicitly constructed, injectable collaborator: base URL and
// HTTP client are swappable so tests can point it at a local server.
type ZeroBounceClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	lg      zerolog.Logger
}

func NewZeroBounceClient(baseURL, apiKey string, lg zerolog.Logger) *ZeroBounceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ZeroBounceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Second},
		lg:      lg.With().Str("component", "zerobounce_client").Logger(),
	}
}

type validateResponse struct {
	Status    string `json:"status"`
	SubStatus string `json:"sub_status"`
}

// Check returns the validation verdict for email.
// Only an explicit "invalid" verdict blocks registration; the caller treats
// every other status as passable and any returned error as fail-closed.
func (c *ZeroBounceClient) Check(ctx context.Context, email string) (auth.EmailStatus, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("email", email)

	reqURL := c.baseURL + "/v2/validate?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.lg.Warn().Err(err).Msg("validation api unreachable")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("validation api returned %d", resp.StatusCode)
	}

	var data validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("validation api response: %w", err)
	}

	c.lg.Debug().Str("status", data.Status).Str("sub_status", data.SubStatus).Msg("email validated")

	switch auth.EmailStatus(data.Status) {
	case auth.EmailStatusInvalid:
		return auth.EmailStatusInvalid, nil
	case auth.EmailStatusValid:
		return auth.EmailStatusValid, nil
	default:
		// catch-all, unknown, do_not_mail, ... all pass the minimal flow
		return auth.EmailStatusUnknown, nil
	}
}
