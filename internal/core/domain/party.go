package domain

import "strings"

// Party is a political party whose electoral program can be queried
type Party struct {
	ID       string `json:"id" toml:"id"`      // Short unique code (e.g. "PS")
	Name     string `json:"name" toml:"name"`  // Display name
	Logo     string `json:"logo" toml:"logo"`  // Logo path served by the UI
	Filename string `json:"-" toml:"filename"` // Program filename on the document host, without .md
}

// Roster is the ordered, immutable set of configured parties.
// Lookups are case-insensitive on the party ID.
type Roster struct {
	parties []Party
	byID    map[string]int
}

// NewRoster builds a roster. Parties without a filename use their ID.
// Later duplicates of an ID are ignored.
func NewRoster(parties []Party) *Roster {
	r := &Roster{
		parties: make([]Party, 0, len(parties)),
		byID:    make(map[string]int, len(parties)),
	}
	for _, p := range parties {
		key := strings.ToUpper(strings.TrimSpace(p.ID))
		if key == "" {
			continue
		}
		if _, dup := r.byID[key]; dup {
			continue
		}
		if p.Filename == "" {
			p.Filename = p.ID
		}
		r.byID[key] = len(r.parties)
		r.parties = append(r.parties, p)
	}
	return r
}

// DefaultRoster returns the parties running in the 2025 legislative election
func DefaultRoster() *Roster {
	return NewRoster([]Party{
		{ID: "AD", Name: "Aliança Democrática", Logo: "/legislativas2025/logos/AD.png", Filename: "AD"},
		{ID: "BE", Name: "Bloco de Esquerda", Logo: "/legislativas2025/logos/BE.png", Filename: "BE"},
		{ID: "CDU", Name: "CDU - Coligação Democrática Unitária", Logo: "/legislativas2025/logos/CDU.png", Filename: "CDU"},
		{ID: "CH", Name: "Chega", Logo: "/legislativas2025/logos/Chega.png", Filename: "Chega"},
		{ID: "IL", Name: "Iniciativa Liberal", Logo: "/legislativas2025/logos/IL.png", Filename: "IL"},
		{ID: "L", Name: "Livre", Logo: "/legislativas2025/logos/Livre.png", Filename: "Livre"},
		{ID: "PAN", Name: "PAN - Pessoas-Animais-Natureza", Logo: "/legislativas2025/logos/PAN.png", Filename: "PAN"},
		{ID: "PS", Name: "Partido Socialista", Logo: "/legislativas2025/logos/PS.png", Filename: "PS"},
	})
}

// Lookup finds a party by ID
func (r *Roster) Lookup(id string) (Party, bool) {
	idx, ok := r.byID[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Party{}, false
	}
	return r.parties[idx], true
}

// Parties returns a copy of all parties in roster order
func (r *Roster) Parties() []Party {
	out := make([]Party, len(r.parties))
	copy(out, r.parties)
	return out
}

// IDs returns all party IDs in roster order
func (r *Roster) IDs() []string {
	ids := make([]string, len(r.parties))
	for i, p := range r.parties {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of parties
func (r *Roster) Len() int {
	return len(r.parties)
}

// DisplayName returns the party name, or the ID itself when unknown
func (r *Roster) DisplayName(id string) string {
	if p, ok := r.Lookup(id); ok {
		return p.Name
	}
	return id
}

// Names returns the names of the given IDs that exist in the roster,
// preserving order. Unknown IDs are skipped.
func (r *Roster) Names(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.Lookup(id); ok {
			names = append(names, p.Name)
		}
	}
	return names
}
