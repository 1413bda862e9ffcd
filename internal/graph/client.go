package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Client is the contract the metadata repository needs from the graph store.
type Client interface {
	Execute(ctx context.Context, stmt Statement) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Statement is a single Cypher query with its parameters.
type Statement struct {
	Cypher string
	Params map[string]any
	Write  bool
}

// Read builds a read-only statement.
func Read(cypher string, params map[string]any) Statement {
	return Statement{Cypher: cypher, Params: params}
}

// Write builds a statement executed in a write session.
func Write(cypher string, params map[string]any) Statement {
	return Statement{Cypher: cypher, Params: params, Write: true}
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// First returns the first record, if any.
func (r Result) First() (Record, bool) {
	if len(r.Records) == 0 {
		return nil, false
	}
	return r.Records[0], true
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// String returns the value under key rendered as a string. Numbers are
// formatted in their shortest form; nil yields "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the integer under key.
func (r Record) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	default:
		return 0, false
	}
}

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
