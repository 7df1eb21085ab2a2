package api

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/quantike/gulog/pkg/codec"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AppendResponse is returned after a successful append
type AppendResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// VerifyResponse reports the integrity status of a stored record
type VerifyResponse struct {
	ID          string `json:"id"`
	Valid       bool   `json:"valid"`
	PayloadSize int    `json:"payload_size,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string // Required on every /api/v1 request via X-API-Key
}

// WALClient defines the log operations the API server needs
type WALClient interface {
	Append(ctx context.Context, payload []byte) (ulid.ULID, error)
	Read(ctx context.Context, id ulid.ULID) (*codec.Record, error)
	Key(id ulid.ULID) string
}
