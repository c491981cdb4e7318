package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// DocumentFetcher resolves a party to its program URL and reads it through
// the cache. Failures are reported in-band as tagged documents.
type DocumentFetcher struct {
	roster  *domain.Roster
	baseURL string
	source  driven.DocumentSource
	cache   driven.DocumentCache
	logger  *slog.Logger
}

// DocumentFetcherConfig holds dependencies for DocumentFetcher.
type DocumentFetcherConfig struct {
	Roster  *domain.Roster
	BaseURL string
	Source  driven.DocumentSource
	Cache   driven.DocumentCache // optional
	Logger  *slog.Logger
}

// NewDocumentFetcher creates a new document fetcher.
func NewDocumentFetcher(cfg DocumentFetcherConfig) *DocumentFetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	roster := cfg.Roster
	if roster == nil {
		roster = domain.DefaultRoster()
	}
	baseURL := cfg.BaseURL
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &DocumentFetcher{
		roster:  roster,
		baseURL: baseURL,
		source:  cfg.Source,
		cache:   cfg.Cache,
		logger:  logger,
	}
}

// URL returns the program location for a party.
func (f *DocumentFetcher) URL(party domain.Party) string {
	return f.baseURL + party.Filename + ".md"
}

// Fetch returns the party's program text. It never fails: unknown parties
// and unreachable documents come back as non-available documents.
func (f *DocumentFetcher) Fetch(ctx context.Context, partyID string) *domain.Document {
	party, ok := f.roster.Lookup(partyID)
	if !ok {
		f.logger.Warn("no program mapping for party", "party_id", partyID)
		return domain.NewNotFoundDocument(partyID)
	}
	url := f.URL(party)

	if f.cache != nil {
		content, hit, err := f.cache.Get(ctx, url)
		switch {
		case err != nil:
			f.logger.Warn("document cache read failed", "url", url, "error", err)
		case hit:
			f.logger.Debug("document cache hit", "party_id", partyID, "url", url)
			return domain.NewAvailableDocument(partyID, url, content)
		}
	}

	content, err := f.source.Fetch(ctx, url)
	if err != nil {
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) {
			f.logger.Error("failed to fetch program",
				"party_id", partyID, "url", url, "status", upErr.StatusCode)
			return domain.NewUnavailableDocument(partyID, url, upErr.StatusCode)
		}
		f.logger.Error("failed to fetch program", "party_id", partyID, "url", url, "error", err)
		return domain.NewUnavailableDocument(partyID, url, 0)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, url, content); err != nil {
			f.logger.Warn("document cache write failed", "url", url, "error", err)
		}
	}

	return domain.NewAvailableDocument(partyID, url, content)
}
