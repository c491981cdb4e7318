package domain

import (
	"math"
	"unicode/utf8"
)

// DefaultDocumentBaseURL is the raw-content location of the program repository
const DefaultDocumentBaseURL = "https://raw.githubusercontent.com/Wingheaded/eleicoes-md/refs/heads/main/"

// Defaults for the context assembly pipeline
const (
	DefaultChunkTargetSize   = 6000
	DefaultChunkOverlap      = 200
	DefaultCharsPerToken     = 4
	DefaultPromptOverhead    = 500  // System and user prompt scaffolding
	DefaultCompletionTokens  = 1536 // Reserved for the model's answer
	DefaultContextTokenLimit = 60000
)

// SelectionTier maps a minimum number of queried parties to the number of
// leading chunks taken from each party.
type SelectionTier struct {
	MinParties int `json:"min_parties"`
	Chunks     int `json:"chunks"`
}

// SelectionPolicy decides how many chunks per party enter the context.
// Tiers are evaluated from the highest MinParties down.
type SelectionPolicy []SelectionTier

// DefaultSelectionPolicy keeps the context roughly bounded: 10 chunks for a
// single party, 3 each for two or three, 1 each for four or more.
func DefaultSelectionPolicy() SelectionPolicy {
	return SelectionPolicy{
		{MinParties: 1, Chunks: 10},
		{MinParties: 2, Chunks: 3},
		{MinParties: 4, Chunks: 1},
	}
}

// ChunksPerParty returns the chunk allowance for a query over partyCount parties
func (p SelectionPolicy) ChunksPerParty(partyCount int) int {
	best := -1
	chunks := 0
	for _, tier := range p {
		if partyCount >= tier.MinParties && tier.MinParties > best {
			best = tier.MinParties
			chunks = tier.Chunks
		}
	}
	return chunks
}

// ContextBundle is the assembled LLM context for one query
type ContextBundle struct {
	Text            string              `json:"text"`
	PartyIDs        []string            `json:"party_ids"`        // Parties actually queried, in order
	SourceDocuments map[string]string   `json:"source_documents"` // Full raw text or placeholder per party
	ChunksByParty   map[string][]string `json:"chunks_by_party"`
}

// Empty reports whether no context text was produced
func (b *ContextBundle) Empty() bool {
	return b == nil || b.Text == ""
}

// BudgetConfig parameterises the token estimate
type BudgetConfig struct {
	CharsPerToken    int
	PromptOverhead   int
	CompletionTokens int
	Ceiling          int
}

// DefaultBudgetConfig returns the limits used against the hosted model
func DefaultBudgetConfig() BudgetConfig {
	return BudgetConfig{
		CharsPerToken:    DefaultCharsPerToken,
		PromptOverhead:   DefaultPromptOverhead,
		CompletionTokens: DefaultCompletionTokens,
		Ceiling:          DefaultContextTokenLimit,
	}
}

// TokenEstimate approximates the token usage of a request
type TokenEstimate struct {
	ContextChars  int     `json:"context_chars"`
	QuestionChars int     `json:"question_chars"`
	Tokens        float64 `json:"tokens"`
	Ceiling       int     `json:"ceiling"`
}

// EstimateTokens counts characters as Unicode code points and divides by the
// average characters per token, then adds the fixed prompt and completion
// allowances.
func EstimateTokens(contextText, question string, cfg BudgetConfig) TokenEstimate {
	charsPerToken := cfg.CharsPerToken
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	est := TokenEstimate{
		ContextChars:  utf8.RuneCountInString(contextText),
		QuestionChars: utf8.RuneCountInString(question),
		Ceiling:       cfg.Ceiling,
	}
	est.Tokens = float64(est.ContextChars+est.QuestionChars)/float64(charsPerToken) +
		float64(cfg.PromptOverhead+cfg.CompletionTokens)
	return est
}

// Exceeded reports whether the estimate is over the ceiling
func (e TokenEstimate) Exceeded() bool {
	return e.Tokens > float64(e.Ceiling)
}

// Rounded returns the estimate rounded to whole tokens
func (e TokenEstimate) Rounded() int {
	return int(math.Round(e.Tokens))
}
