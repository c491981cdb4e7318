package domain

import "time"

// AnswerOutcome classifies how a query was resolved
type AnswerOutcome string

const (
	OutcomeAnswered       AnswerOutcome = "answered"        // The LLM was called
	OutcomeBudgetExceeded AnswerOutcome = "budget_exceeded" // Rejected before calling the LLM
	OutcomeNoContext      AnswerOutcome = "no_context"      // Nothing could be assembled
)

// AnswerRequest is a user question over a party selection.
// An empty selection means every configured party.
type AnswerRequest struct {
	Question         string   `json:"question"`
	SelectedPartyIDs []string `json:"selectedPartyIds"`
}

// AnswerResult is returned to the UI for every non-failing query.
// Budget and upstream problems are reported in Answer as readable text.
type AnswerResult struct {
	Answer          string            `json:"answer"`
	SourceDocuments map[string]string `json:"sourceDocuments"`
	Query           string            `json:"query"`
	Outcome         AnswerOutcome     `json:"outcome"`
	EstimatedTokens int               `json:"estimatedTokens"`
}

// QueryRecord is an entry in the query log
type QueryRecord struct {
	ID              string        `json:"id"`
	Question        string        `json:"question"`
	PartyIDs        []string      `json:"party_ids"`
	Outcome         AnswerOutcome `json:"outcome"`
	EstimatedTokens int           `json:"estimated_tokens"`
	Model           string        `json:"model,omitempty"`
	Duration        time.Duration `json:"duration" swaggertype:"integer" example:"1500000"`
	CreatedAt       time.Time     `json:"created_at"`
}
