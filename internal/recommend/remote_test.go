package recommend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/retailrec/internal/domain"
)

func TestRemoteSource_Recommend(t *testing.T) {
	var gotKey, gotAccept, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(APIKeyHeader)
		gotAccept = r.Header.Get("Accept")
		gotUser = r.URL.Query().Get(UserIDParam)
		_, _ = w.Write([]byte(`[{"itemId": 42, "score": 0.9}, {"itemId": 7}]`))
	}))
	defer srv.Close()

	src := NewRemoteSource(RemoteOptions{Endpoint: srv.URL + "/recommend", APIKey: "secret"})
	items, err := src.Recommend(context.Background(), Request{UserID: 5, Mode: ModeRemote})
	require.NoError(t, err)

	assert.Equal(t, []domain.ItemID{42, 7}, items)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "5", gotUser)
}

func TestRemoteSource_RequestOverridesDefaults(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(APIKeyHeader)
		_, _ = w.Write([]byte(`[{"itemId": "11"}]`))
	}))
	defer srv.Close()

	src := NewRemoteSource(RemoteOptions{Endpoint: "http://unused.invalid", APIKey: "default"})
	items, err := src.Recommend(context.Background(), Request{UserID: 1, APIKey: "per-call", Endpoint: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{11}, items)
	assert.Equal(t, "per-call", gotKey)
}

func TestRemoteSource_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind error
	}{
		{name: "not json", body: "<html>oops</html>", kind: ErrDecode},
		{name: "object instead of array", body: `{"itemId": 1}`, kind: ErrDecode},
		{name: "missing itemId", body: `[{"id": 1}]`, kind: ErrDecode},
		{name: "empty array", body: `[]`, kind: ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRemoteSource(RemoteOptions{Endpoint: srv.URL}).
				Recommend(context.Background(), Request{UserID: 3})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestRemoteSource_ErrorStatusStillDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`[{"itemId": 8}]`))
	}))
	defer srv.Close()

	items, err := NewRemoteSource(RemoteOptions{Endpoint: srv.URL}).
		Recommend(context.Background(), Request{UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{8}, items)
}

func TestRemoteSource_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := NewRemoteSource(RemoteOptions{Endpoint: endpoint, Timeout: time.Second}).
		Recommend(context.Background(), Request{UserID: 3})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestRemoteSource_StopsAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"itemId": 42}, {"itemId": "n/a"}, {"score": 1}]`))
	}))
	defer srv.Close()

	src := NewRemoteSource(RemoteOptions{Endpoint: srv.URL})
	items, err := src.Recommend(context.Background(), Request{UserID: 5, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{42}, items)

	_, err = src.Recommend(context.Background(), Request{UserID: 5})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRemoteSource_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"itemId": 1}]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRemoteSource(RemoteOptions{Endpoint: srv.URL}).Recommend(ctx, Request{UserID: 5})
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("https://api.example.com/recommendations?campaign=spring", 42)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/recommendations?campaign=spring&user_id=42", got)

	got, err = BuildURL("https://h/p?flag&b=2", 5)
	require.NoError(t, err)
	assert.Equal(t, "https://h/p?flag&b=2&user_id=5", got)

	got, err = BuildURL("https://h/p", 5)
	require.NoError(t, err)
	assert.Equal(t, "https://h/p?user_id=5", got)

	_, err = BuildURL("", 1)
	assert.Error(t, err)
	_, err = BuildURL("/relative/path", 1)
	assert.Error(t, err)
}
