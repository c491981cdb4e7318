package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// Messages returned by the answer endpoint
const (
	msgQuestionRequired = "Question is required and cannot be empty."
	msgSelectionArray   = "selectedPartyIds must be an array."
	msgInvalidFormat    = "Invalid request format. Please ensure you are sending valid JSON in the request body."
	msgAnswerFailed     = "Failed to generate answer."
)

// maxRequestBody bounds the answer request body
const maxRequestBody = 1 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Question is required and cannot be empty."`
	Details string `json:"details,omitempty" example:"unexpected EOF"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// GenerateAnswerRequest is the documented shape of the answer request
// @Description Question over a party selection
type GenerateAnswerRequest struct {
	Question         string   `json:"question" example:"O que propõem para a habitação?"`
	SelectedPartyIDs []string `json:"selectedPartyIds" example:"PS,AD"`
}

// PartiesResponse lists the configured parties
// @Description Configured parties in display order
type PartiesResponse struct {
	Parties []domain.Party `json:"parties"`
}

// QueriesResponse lists recent query records
// @Description Recent query log entries, newest first
type QueriesResponse struct {
	Queries []*domain.QueryRecord `json:"queries"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings the configured Redis and PostgreSQL backends
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "redis unavailable", Details: err.Error()})
			return
		}
	}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "database unavailable", Details: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleSwaggerDoc serves the registered OpenAPI document
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Answer endpoints

// handleGenerateAnswer godoc
// @Summary      Answer a question
// @Description  Answers a question using only the electoral programs of the selected parties (all parties when the selection is empty). Budget and upstream problems are reported in the answer text with status 200.
// @Tags         Answers
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateAnswerRequest  true  "Question and party selection"
// @Success      200      {object}  domain.AnswerResult
// @Failure      400      {object}  ErrorResponse  "Invalid request"
// @Failure      500      {object}  ErrorResponse  "Failed to generate answer"
// @Router       /api/generate-answer [post]
func (s *Server) handleGenerateAnswer(w http.ResponseWriter, r *http.Request) {
	req, errResp := decodeAnswerRequest(w, r)
	if errResp != nil {
		writeJSON(w, http.StatusBadRequest, errResp)
		return
	}

	result, err := s.answerService.Answer(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, msgQuestionRequired)
			return
		}
		s.logger.Error("generate answer failed", "error", err, "request_id", RequestIDFrom(r.Context()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgAnswerFailed, Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// answerPayload keeps raw fields so type errors can be told apart from
// missing fields.
type answerPayload struct {
	Question         json.RawMessage `json:"question"`
	SelectedPartyIDs json.RawMessage `json:"selectedPartyIds"`
}

// Details returned with msgInvalidFormat for well-formed but unusable bodies
const (
	detailNotObject    = "request body must be a JSON object"
	detailTrailingData = "unexpected data after the JSON object"
)

// decodeAnswerRequest parses and validates the answer request body. An
// empty body is treated as an empty object. Non-string entries in the
// selection are ignored.
func decodeAnswerRequest(w http.ResponseWriter, r *http.Request) (domain.AnswerRequest, *ErrorResponse) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))

	var raw json.RawMessage
	err := dec.Decode(&raw)
	switch {
	case errors.Is(err, io.EOF):
		raw = json.RawMessage("{}")
	case err != nil:
		return domain.AnswerRequest{}, &ErrorResponse{Error: msgInvalidFormat, Details: err.Error()}
	default:
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return domain.AnswerRequest{}, &ErrorResponse{Error: msgInvalidFormat, Details: detailTrailingData}
		}
	}

	var payload answerPayload
	if body := bytes.TrimSpace(raw); len(body) == 0 || body[0] != '{' {
		return domain.AnswerRequest{}, &ErrorResponse{Error: msgInvalidFormat, Details: detailNotObject}
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.AnswerRequest{}, &ErrorResponse{Error: msgInvalidFormat, Details: detailNotObject}
	}

	var question string
	if err := json.Unmarshal(payload.Question, &question); err != nil || strings.TrimSpace(question) == "" {
		return domain.AnswerRequest{}, &ErrorResponse{Error: msgQuestionRequired}
	}

	raw = bytes.TrimSpace(payload.SelectedPartyIDs)
	if len(raw) == 0 || raw[0] != '[' {
		return domain.AnswerRequest{}, &ErrorResponse{Error: msgSelectionArray}
	}
	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return domain.AnswerRequest{}, &ErrorResponse{Error: msgSelectionArray}
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if id, ok := e.(string); ok {
			ids = append(ids, id)
		}
	}

	return domain.AnswerRequest{Question: question, SelectedPartyIDs: ids}, nil
}

// handleListParties godoc
// @Summary      List parties
// @Description  Returns the configured parties in display order
// @Tags         Answers
// @Produce      json
// @Success      200  {object}  PartiesResponse
// @Router       /api/v1/parties [get]
func (s *Server) handleListParties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PartiesResponse{Parties: s.answerService.Parties()})
}

// Admin endpoints

// handlePurgeCache godoc
// @Summary      Purge document cache
// @Description  Drops every cached program document (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/admin/cache [delete]
func (s *Server) handlePurgeCache(w http.ResponseWriter, r *http.Request) {
	if err := s.adminService.PurgeCache(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to purge cache")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "purged"})
}

// handleRecentQueries godoc
// @Summary      Recent queries
// @Description  Lists the newest query log entries (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50, max 500)"
// @Success      200    {object}  QueriesResponse
// @Failure      400    {object}  ErrorResponse  "Invalid limit"
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Failure      403    {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500    {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/admin/queries [get]
func (s *Server) handleRecentQueries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	queries, err := s.adminService.RecentQueries(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load queries")
		return
	}
	writeJSON(w, http.StatusOK, QueriesResponse{Queries: queries})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
