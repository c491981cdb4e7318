package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
	"github.com/custodia-labs/legislativas/internal/runtime"
)

// Ensure answerService implements AnswerService
var _ driving.AnswerService = (*answerService)(nil)

const (
	msgNoContextSelected = "Could not retrieve and process program content for the selected parties. Please try again or select different parties."
	msgNoContextAll      = "Could not retrieve and process any party program content at this time. Please try again later."
)

// answerer produces the final answer text for an assembled context
type answerer interface {
	Answer(ctx context.Context, contextText, question string, partyNames []string) string
}

// answerService orchestrates a single question:
//  1. Validate the request
//  2. Assemble the context for the selected parties
//  3. Reject empty contexts and contexts over the token budget
//  4. Ask the LLM
//  5. Record the query
type answerService struct {
	roster    *domain.Roster
	assembler driving.ContextAssembler
	client    answerer
	queryLog  driven.QueryLog
	services  *runtime.Services
	budget    domain.BudgetConfig
	logger    *slog.Logger
}

// AnswerServiceConfig holds dependencies for the answer service.
type AnswerServiceConfig struct {
	Roster    *domain.Roster
	Assembler driving.ContextAssembler
	Client    answerer
	QueryLog  driven.QueryLog   // optional
	Services  *runtime.Services // optional, used for the model name in query records
	Budget    domain.BudgetConfig
	Logger    *slog.Logger
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(cfg AnswerServiceConfig) driving.AnswerService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	roster := cfg.Roster
	if roster == nil {
		roster = domain.DefaultRoster()
	}
	budget := cfg.Budget
	if budget.Ceiling <= 0 {
		budget = domain.DefaultBudgetConfig()
	}

	return &answerService{
		roster:    roster,
		assembler: cfg.Assembler,
		client:    cfg.Client,
		queryLog:  cfg.QueryLog,
		services:  cfg.Services,
		budget:    budget,
		logger:    logger,
	}
}

// Parties returns the roster in display order
func (s *answerService) Parties() []domain.Party {
	return s.roster.Parties()
}

// Answer answers a question about the selected parties' programs
func (s *answerService) Answer(ctx context.Context, req domain.AnswerRequest) (*domain.AnswerResult, error) {
	start := time.Now()

	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	s.logger.Info("received question",
		"question", req.Question,
		"parties", strings.Join(req.SelectedPartyIDs, ","))

	bundle, err := s.assembler.Assemble(ctx, req.SelectedPartyIDs)
	if err != nil {
		return nil, err
	}

	result := &domain.AnswerResult{
		SourceDocuments: bundle.SourceDocuments,
		Query:           req.Question,
	}
	if result.SourceDocuments == nil {
		result.SourceDocuments = map[string]string{}
	}

	switch {
	case bundle.Empty():
		result.Outcome = domain.OutcomeNoContext
		result.Answer = msgNoContextAll
		if len(req.SelectedPartyIDs) > 0 {
			result.Answer = msgNoContextSelected
		}

	default:
		est := domain.EstimateTokens(bundle.Text, req.Question, s.budget)
		result.EstimatedTokens = est.Rounded()
		s.logger.Debug("estimated prompt size",
			"context_chars", est.ContextChars,
			"question_chars", est.QuestionChars,
			"tokens", result.EstimatedTokens)

		if est.Exceeded() {
			result.Outcome = domain.OutcomeBudgetExceeded
			result.Answer = s.budgetMessage(req.SelectedPartyIDs, est)
			s.logger.Warn("context exceeds token budget",
				"tokens", result.EstimatedTokens, "ceiling", est.Ceiling)
			break
		}

		result.Outcome = domain.OutcomeAnswered
		result.Answer = s.client.Answer(ctx, bundle.Text, req.Question, s.promptPartyNames(req.SelectedPartyIDs))
	}

	s.record(ctx, req, bundle, result, start)
	return result, nil
}

// budgetMessage explains why a query was rejected before calling the LLM
func (s *answerService) budgetMessage(selected []string, est domain.TokenEstimate) string {
	names := "all parties"
	if len(selected) > 0 {
		wanted := make(map[string]bool, len(selected))
		for _, id := range selected {
			if p, ok := s.roster.Lookup(id); ok {
				wanted[p.ID] = true
			}
		}
		var matched []string
		for _, p := range s.roster.Parties() {
			if wanted[p.ID] {
				matched = append(matched, p.Name)
			}
		}
		names = strings.Join(matched, ", ")
		if names == "" {
			names = "selected parties"
		}
	}

	return fmt.Sprintf("The selected program sections for %s are still too large (%d tokens) for the AI model (%d token limit). "+
		"Please try a more specific selection or a different question if querying many parties.",
		names, est.Rounded(), est.Ceiling)
}

// promptPartyNames returns the names mentioned in the prompt, skipping unknown ids
func (s *answerService) promptPartyNames(selected []string) []string {
	ids := selected
	if len(ids) == 0 {
		ids = s.roster.IDs()
	}
	return s.roster.Names(ids)
}

// record stores the query outcome. Failures are logged, never returned.
func (s *answerService) record(ctx context.Context, req domain.AnswerRequest, bundle *domain.ContextBundle, result *domain.AnswerResult, start time.Time) {
	duration := time.Since(start)
	s.logger.Info("answered question",
		"outcome", result.Outcome,
		"parties", len(bundle.PartyIDs),
		"estimated_tokens", result.EstimatedTokens,
		"duration", duration)

	if s.queryLog == nil {
		return
	}

	rec := &domain.QueryRecord{
		ID:              uuid.NewString(),
		Question:        req.Question,
		PartyIDs:        bundle.PartyIDs,
		Outcome:         result.Outcome,
		EstimatedTokens: result.EstimatedTokens,
		Duration:        duration,
		CreatedAt:       start.UTC(),
	}
	if result.Outcome == domain.OutcomeAnswered && s.services != nil {
		rec.Model = s.services.Config().LLMModel()
	}

	// The request may already be cancelled; the record should still land.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.queryLog.Record(recordCtx, rec); err != nil {
		s.logger.Warn("failed to record query", "id", rec.ID, "error", err)
	}
}
