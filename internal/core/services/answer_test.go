package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/legislativas/internal/runtime"
)

type answerFixture struct {
	source   *mocks.MockDocumentSource
	llm      *mocks.MockLLMService
	queryLog *mocks.MockQueryLog
	svc      *answerService
}

func newAnswerFixture(budget domain.BudgetConfig) *answerFixture {
	source := mocks.NewMockDocumentSource()
	llm := mocks.NewMockLLMService()
	services := runtime.NewServices(domain.NewRuntimeConfig("memory", "memory"))
	services.SetLLMService(llm)
	queryLog := mocks.NewMockQueryLog()

	svc := NewAnswerService(AnswerServiceConfig{
		Roster:    domain.DefaultRoster(),
		Assembler: newTestAssembler(source),
		Client:    NewAnswerClient(AnswerClientConfig{Services: services}),
		QueryLog:  queryLog,
		Services:  services,
		Budget:    budget,
	}).(*answerService)

	return &answerFixture{source: source, llm: llm, queryLog: queryLog, svc: svc}
}

type countingAssembler struct {
	calls  int
	bundle *domain.ContextBundle
	err    error
}

func (c *countingAssembler) Assemble(ctx context.Context, partyIDs []string) (*domain.ContextBundle, error) {
	c.calls++
	return c.bundle, c.err
}

func TestAnswerService_RejectsBlankQuestion(t *testing.T) {
	assembler := &countingAssembler{bundle: &domain.ContextBundle{}}
	svc := NewAnswerService(AnswerServiceConfig{Assembler: assembler})

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: q, SelectedPartyIDs: []string{}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "question %q", q)
	}
	assert.Equal(t, 0, assembler.calls)
}

func TestAnswerService_AssemblerError(t *testing.T) {
	assembler := &countingAssembler{err: context.Canceled}
	svc := NewAnswerService(AnswerServiceConfig{Assembler: assembler})

	_, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: "q"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnswerService_Answered(t *testing.T) {
	f := newAnswerFixture(domain.DefaultBudgetConfig())
	f.source.Put(testBaseURL+"PS.md", "## Saúde\nMais médicos de família.")
	f.llm.SetResponse("O PS propõe mais médicos.")

	result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{
		Question:         "O que propõe o PS para a saúde?",
		SelectedPartyIDs: []string{"PS"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeAnswered, result.Outcome)
	assert.Equal(t, "O PS propõe mais médicos.", result.Answer)
	assert.Equal(t, "O que propõe o PS para a saúde?", result.Query)
	assert.Equal(t, "## Saúde\nMais médicos de família.", result.SourceDocuments["PS"])
	assert.Greater(t, result.EstimatedTokens, 2036)
	assert.Equal(t, 1, f.llm.Calls())

	req, _ := f.llm.LastRequest()
	assert.Contains(t, req.Messages[1].Content, "Context from the electoral programs of Partido Socialista:")
	assert.Contains(t, req.Messages[1].Content, "--- RELEVANT SECTIONS FROM Partido Socialista (PS) ---")

	records := f.queryLog.Records()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, []string{"PS"}, records[0].PartyIDs)
	assert.Equal(t, domain.OutcomeAnswered, records[0].Outcome)
	assert.Equal(t, "mock-chat-model", records[0].Model)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestAnswerService_AllPartiesMentionedWhenNoneSelected(t *testing.T) {
	f := newAnswerFixture(domain.DefaultBudgetConfig())
	putAll(f.source, func(p domain.Party) string { return "programa " + p.ID })

	result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{Question: "Impostos?"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeAnswered, result.Outcome)
	assert.Len(t, result.SourceDocuments, 8)
	req, _ := f.llm.LastRequest()
	assert.Contains(t, req.Messages[1].Content,
		"Context from the electoral programs of Aliança Democrática and Bloco de Esquerda and ")
}

func TestAnswerService_UnknownPartiesUseGenericMention(t *testing.T) {
	f := newAnswerFixture(domain.DefaultBudgetConfig())

	result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{
		Question:         "Habitação?",
		SelectedPartyIDs: []string{"XX"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeAnswered, result.Outcome)
	assert.Equal(t, "Program for party ID 'XX' not found or mapping is missing.", result.SourceDocuments["XX"])
	req, _ := f.llm.LastRequest()
	assert.True(t, strings.HasPrefix(req.Messages[1].Content, "Context from the provided electoral programs:"))
}

func TestAnswerService_BudgetExceeded(t *testing.T) {
	budget := domain.DefaultBudgetConfig()
	budget.Ceiling = 2040
	f := newAnswerFixture(budget)
	f.source.Put(testBaseURL+"PS.md", strings.Repeat("programa socialista ", 10))
	f.source.Put(testBaseURL+"Livre.md", strings.Repeat("programa livre ", 10))

	result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{
		Question:         "Compare os programas",
		SelectedPartyIDs: []string{"PS", "L"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeBudgetExceeded, result.Outcome)
	assert.True(t, strings.HasPrefix(result.Answer,
		"The selected program sections for Livre, Partido Socialista are still too large ("), result.Answer)
	assert.Contains(t, result.Answer, "tokens) for the AI model (2040 token limit). Please try a more specific selection")
	assert.Greater(t, result.EstimatedTokens, 2040)
	assert.Len(t, result.SourceDocuments, 2)
	assert.Equal(t, 0, f.llm.Calls(), "the LLM must not be called")

	records := f.queryLog.Records()
	require.Len(t, records, 1)
	assert.Equal(t, domain.OutcomeBudgetExceeded, records[0].Outcome)
	assert.Empty(t, records[0].Model)
}

func TestAnswerService_BudgetExceededWithDefaultCeiling(t *testing.T) {
	f := newAnswerFixture(domain.DefaultBudgetConfig())
	f.source.Put(testBaseURL+"PS.md", "programa")

	result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{
		Question:         strings.Repeat("pergunta ", 27000),
		SelectedPartyIDs: []string{"PS"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeBudgetExceeded, result.Outcome)
	assert.Contains(t, result.Answer, "(60000 token limit)")
	assert.Equal(t, 0, f.llm.Calls())
}

func TestAnswerService_BudgetMessageNames(t *testing.T) {
	f := newAnswerFixture(domain.DefaultBudgetConfig())
	est := domain.TokenEstimate{Tokens: 70000.4, Ceiling: 60000}

	assert.Contains(t, f.svc.budgetMessage(nil, est), "for all parties are still too large (70000 tokens)")
	assert.Contains(t, f.svc.budgetMessage([]string{"XX"}, est), "for selected parties are still")
	assert.Contains(t, f.svc.budgetMessage([]string{"ps", "AD"}, est), "for Aliança Democrática, Partido Socialista are still")
}

func TestAnswerService_NoContext(t *testing.T) {
	t.Run("selected parties", func(t *testing.T) {
		f := newAnswerFixture(domain.DefaultBudgetConfig())
		f.source.Put(testBaseURL+"PS.md", "")

		result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{
			Question:         "Saúde?",
			SelectedPartyIDs: []string{"PS"},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeNoContext, result.Outcome)
		assert.Equal(t, "Could not retrieve and process program content for the selected parties. Please try again or select different parties.", result.Answer)
		assert.Equal(t, 0, f.llm.Calls())
	})

	t.Run("all parties", func(t *testing.T) {
		f := newAnswerFixture(domain.DefaultBudgetConfig())
		putAll(f.source, func(p domain.Party) string { return "  " })

		result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{Question: "Saúde?"})
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeNoContext, result.Outcome)
		assert.Equal(t, "Could not retrieve and process any party program content at this time. Please try again later.", result.Answer)
		assert.Equal(t, 0, f.llm.Calls())
	})
}

func TestAnswerService_QueryLogFailureIsIgnored(t *testing.T) {
	f := newAnswerFixture(domain.DefaultBudgetConfig())
	f.source.Put(testBaseURL+"PS.md", "programa")
	f.queryLog.SetError(errors.New("database down"))

	result, err := f.svc.Answer(context.Background(), domain.AnswerRequest{Question: "q", SelectedPartyIDs: []string{"PS"}})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAnswered, result.Outcome)
}

func TestAnswerService_LLMNotConfigured(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	source.Put(testBaseURL+"PS.md", "programa")
	svc := NewAnswerService(AnswerServiceConfig{
		Assembler: newTestAssembler(source),
		Client:    NewAnswerClient(AnswerClientConfig{Services: runtime.NewServices(nil)}),
	})

	result, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: "q", SelectedPartyIDs: []string{"PS"}})
	require.NoError(t, err)
	assert.Equal(t, "Error: The AI service is not configured. Missing API key.", result.Answer)
}

func TestAnswerService_Parties(t *testing.T) {
	svc := NewAnswerService(AnswerServiceConfig{Assembler: &countingAssembler{}})
	parties := svc.Parties()

	require.Len(t, parties, 8)
	assert.Equal(t, "AD", parties[0].ID)
	assert.Equal(t, "PS", parties[7].ID)
}
