package recommend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/vanshika/retailrec/internal/domain"
)

const (
	// APIKeyHeader carries the API key of the remote scoring service.
	APIKeyHeader = "X-API-Key"
	// UserIDParam is the query parameter carrying the user id.
	UserIDParam = "user_id"

	remoteSourceName = "remote"
)

// RemoteOptions configures a RemoteSource.
type RemoteOptions struct {
	Endpoint string
	APIKey   string
	// Timeout bounds a single request. Zero leaves the request bounded only by
	// the caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// RemoteSource queries the live scoring service over HTTP.
type RemoteSource struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// remoteRecord defers item id decoding so only records within the request
// limit are converted.
type remoteRecord struct {
	ItemID json.RawMessage `json:"itemId"`
}

// NewRemoteSource builds a RemoteSource. A nil HTTPClient gets a dedicated
// client honoring opts.Timeout.
func NewRemoteSource(opts RemoteOptions) *RemoteSource {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &RemoteSource{
		endpoint: opts.Endpoint,
		apiKey:   opts.APIKey,
		client:   client,
	}
}

func (s *RemoteSource) Name() string { return remoteSourceName }

// Recommend issues GET <endpoint>?user_id=<id> and decodes a JSON array of
// {"itemId": ...} records. The status code is not inspected; any body that
// decodes to such an array is accepted.
func (s *RemoteSource) Recommend(ctx context.Context, req Request) ([]domain.ItemID, error) {
	endpoint := firstNonEmpty(req.Endpoint, s.endpoint)
	apiKey := firstNonEmpty(req.APIKey, s.apiKey)

	reqURL, err := BuildURL(endpoint, req.UserID)
	if err != nil {
		return nil, newError(ErrTransport, remoteSourceName, req.UserID, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newError(ErrTransport, remoteSourceName, req.UserID, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(APIKeyHeader, apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(ErrCanceled, remoteSourceName, req.UserID, err)
		}
		return nil, newError(ErrTransport, remoteSourceName, req.UserID, err)
	}
	defer resp.Body.Close()

	var records []remoteRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, newError(ErrDecode, remoteSourceName, req.UserID,
			fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err))
	}

	items := make([]domain.ItemID, 0, len(records))
	for i, rec := range records {
		if req.full(len(items)) {
			break
		}
		if len(rec.ItemID) == 0 {
			return nil, newError(ErrDecode, remoteSourceName, req.UserID,
				fmt.Errorf("record %d has no itemId", i))
		}
		var id domain.ItemID
		if err := json.Unmarshal(rec.ItemID, &id); err != nil {
			return nil, newError(ErrDecode, remoteSourceName, req.UserID,
				fmt.Errorf("record %d: %w", i, err))
		}
		items = append(items, id)
	}
	if len(items) == 0 {
		return nil, newError(ErrEmpty, remoteSourceName, req.UserID, nil)
	}
	return items, nil
}

// BuildURL appends the user id query parameter to endpoint. A query string
// already present is kept byte for byte.
func BuildURL(endpoint string, userID int64) (string, error) {
	if endpoint == "" {
		return "", errors.New("no endpoint configured")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("endpoint %q is not an absolute URL", endpoint)
	}
	param := UserIDParam + "=" + strconv.FormatInt(userID, 10)
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
