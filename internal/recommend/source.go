// Package recommend retrieves product recommendations for a user from one of
// several interchangeable sources: a remote scoring service or a static
// offline dataset.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanshika/retailrec/internal/domain"
)

// Mode selects the recommendation source for a single call.
type Mode int

const (
	ModeStatic Mode = iota
	ModeRemote
)

// ModeFromFlag maps the boolean "use the live service" flag onto a Mode.
func ModeFromFlag(useRemote bool) Mode {
	if useRemote {
		return ModeRemote
	}
	return ModeStatic
}

// ParseMode parses "remote" or "static".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remote":
		return ModeRemote, nil
	case "static":
		return ModeStatic, nil
	default:
		return 0, fmt.Errorf("unknown recommendation source %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeRemote:
		return "remote"
	case ModeStatic:
		return "static"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Request carries the per-call parameters of a retrieval. APIKey and Endpoint
// are only read by the remote source; when empty the source falls back to its
// configured values.
type Request struct {
	UserID   int64
	Mode     Mode
	APIKey   string
	Endpoint string
	// Limit caps the number of items a source converts and returns. Zero means
	// no cap. The Retriever sets it to its configured maximum.
	Limit int
}

// full reports whether n items already satisfy the request's Limit.
func (r Request) full(n int) bool {
	return r.Limit > 0 && n >= r.Limit
}

// Source produces recommendations for a user in source order. Items beyond
// req.Limit are neither parsed nor returned, so a malformed entry past the
// limit does not fail the call.
type Source interface {
	Name() string
	Recommend(ctx context.Context, req Request) ([]domain.ItemID, error)
}
