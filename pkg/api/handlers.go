package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/quantike/gulog/pkg/codec"
	"github.com/quantike/gulog/pkg/store"
)

// Server holds the API server state
type Server struct {
	client  WALClient
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(client WALClient, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		client:  client,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleAppend stores the request body as a new record and returns its id.
// The body is treated as opaque bytes; an empty body is a valid record.
func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.metrics.RecordWALOperation("append", false, 0, time.Since(start))
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	id, err := s.client.Append(r.Context(), payload)
	if err != nil {
		s.metrics.RecordWALOperation("append", false, 0, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to append record: %v", err), http.StatusBadGateway)
		return
	}

	s.metrics.RecordWALOperation("append", true, len(payload), time.Since(start))
	sendSuccess(w, AppendResponse{
		ID:  id.String(),
		Key: s.client.Key(id),
	})
}

// handleRead streams back the payload of the record with the given id
func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.parseID(w, r)
	if !ok {
		s.metrics.RecordWALOperation("read", false, 0, time.Since(start))
		return
	}

	record, err := s.client.Read(r.Context(), id)
	if err != nil {
		s.metrics.RecordWALOperation("read", false, 0, time.Since(start))
		s.sendReadError(w, err)
		return
	}

	s.metrics.RecordWALOperation("read", true, len(record.Payload), time.Since(start))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Record-Id", record.ID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(record.Payload)
}

// handleVerify re-reads a record and reports whether its digest still
// matches the payload
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.parseID(w, r)
	if !ok {
		s.metrics.RecordWALOperation("verify", false, 0, time.Since(start))
		return
	}

	record, err := s.client.Read(r.Context(), id)
	if err != nil {
		// A failed digest is a verification result, not a request failure
		var integrityErr *codec.IntegrityError
		if errors.As(err, &integrityErr) {
			s.metrics.RecordWALOperation("verify", true, 0, time.Since(start))
			sendSuccess(w, VerifyResponse{ID: id.String(), Valid: false})
			return
		}

		s.metrics.RecordWALOperation("verify", false, 0, time.Since(start))
		s.sendReadError(w, err)
		return
	}

	s.metrics.RecordWALOperation("verify", true, len(record.Payload), time.Since(start))
	sendSuccess(w, VerifyResponse{
		ID:          record.ID.String(),
		Valid:       true,
		PayloadSize: len(record.Payload),
	})
}

// parseID extracts and parses the id URL parameter, replying 400 on failure
func (s *Server) parseID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid record id %q", raw), http.StatusBadRequest)
		return ulid.ULID{}, false
	}
	return id, true
}

// sendReadError maps the read-path error taxonomy onto HTTP statuses
func (s *Server) sendReadError(w http.ResponseWriter, err error) {
	var (
		encodingErr  *codec.EncodingError
		integrityErr *codec.IntegrityError
		transportErr *store.TransportError
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		sendError(w, "Record not found", http.StatusNotFound)
	case errors.As(err, &encodingErr):
		sendError(w, fmt.Sprintf("Stored record is malformed: %v", err), http.StatusInternalServerError)
	case errors.As(err, &integrityErr):
		sendError(w, fmt.Sprintf("Stored record is corrupted: %v", err), http.StatusInternalServerError)
	case errors.As(err, &transportErr):
		sendError(w, fmt.Sprintf("Object store unavailable: %v", err), http.StatusBadGateway)
	default:
		sendError(w, fmt.Sprintf("Failed to read record: %v", err), http.StatusInternalServerError)
	}
}
