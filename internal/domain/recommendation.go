package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ItemID identifies a recommended catalog item.
type ItemID int64

// ParseItemID parses a decimal item identifier, tolerating surrounding
// whitespace and integral float notation such as "42.0".
func ParseItemID(raw string) (ItemID, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ItemID(id), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("invalid item id %q", raw)
	}
	return ItemID(int64(f)), nil
}

// UnmarshalJSON accepts both numeric and quoted numeric identifiers.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("item id is null")
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	parsed, err := ParseItemID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ItemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Recommendation is an ordered list of recommended items for a user. It is
// produced fresh on every call and never persisted.
type Recommendation struct {
	UserID int64
	Source string
	Items  []ItemID
}
