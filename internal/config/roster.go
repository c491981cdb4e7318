package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// rosterFile is the on-disk roster layout:
//
//	[[parties]]
//	id = "PS"
//	name = "Partido Socialista"
//	logo = "/legislativas2025/logos/PS.png"
//	filename = "PS"
type rosterFile struct {
	Parties []domain.Party `toml:"parties"`
}

// LoadRoster reads a TOML roster. An empty path returns the built-in roster.
func LoadRoster(path string) (*domain.Roster, error) {
	if path == "" {
		return domain.DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes and validates TOML roster content
func ParseRoster(data []byte) (*domain.Roster, error) {
	var file rosterFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(file.Parties) == 0 {
		return nil, fmt.Errorf("%w: roster has no parties", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(file.Parties))
	for i, p := range file.Parties {
		id := strings.ToUpper(strings.TrimSpace(p.ID))
		if id == "" {
			return nil, fmt.Errorf("%w: party %d has no id", domain.ErrInvalidInput, i+1)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: party %s has no name", domain.ErrInvalidInput, p.ID)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate party id %s", domain.ErrInvalidInput, p.ID)
		}
		seen[id] = true
	}

	return domain.NewRoster(file.Parties), nil
}
