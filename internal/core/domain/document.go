package domain

import (
	"fmt"
	"net/http"
)

// DocumentStatus is the outcome of fetching a party program
type DocumentStatus string

const (
	DocumentAvailable   DocumentStatus = "available"   // Content holds the Markdown program
	DocumentNotFound    DocumentStatus = "not_found"   // Party ID has no filename mapping
	DocumentUnavailable DocumentStatus = "unavailable" // Host returned an error or could not be reached
)

// Document is the tagged result of fetching one party's program.
// Failed fetches carry a displayable placeholder instead of content so the
// pipeline can keep going for the other parties.
type Document struct {
	PartyID string         `json:"party_id"`
	URL     string         `json:"url,omitempty"`
	Status  DocumentStatus `json:"status"`
	Content string         `json:"content,omitempty"`
	Detail  string         `json:"detail,omitempty"` // Placeholder text for failed fetches
}

// Available reports whether the program content was retrieved
func (d *Document) Available() bool {
	return d.Status == DocumentAvailable
}

// Text returns the content when available, otherwise the placeholder
func (d *Document) Text() string {
	if d.Available() {
		return d.Content
	}
	return d.Detail
}

// NewAvailableDocument wraps fetched program content
func NewAvailableDocument(partyID, url, content string) *Document {
	return &Document{PartyID: partyID, URL: url, Status: DocumentAvailable, Content: content}
}

// NewNotFoundDocument builds the outcome for an unmapped party ID
func NewNotFoundDocument(partyID string) *Document {
	return &Document{
		PartyID: partyID,
		Status:  DocumentNotFound,
		Detail:  fmt.Sprintf("Program for party ID '%s' not found or mapping is missing.", partyID),
	}
}

// NewUnavailableDocument builds the outcome for a failed fetch.
// statusCode is zero when the host could not be reached at all.
func NewUnavailableDocument(partyID, url string, statusCode int) *Document {
	detail := fmt.Sprintf("Error fetching program for %s. Please try again later.", partyID)
	if statusCode != 0 {
		detail = fmt.Sprintf("Error fetching program for %s (%s). Please check the party ID and data source.",
			partyID, http.StatusText(statusCode))
	}
	return &Document{PartyID: partyID, URL: url, Status: DocumentUnavailable, Detail: detail}
}

// Chunk is a contiguous piece of a program section.
// Offsets count code points into the section the chunk was cut from.
type Chunk struct {
	Content     string `json:"content"`
	Position    int    `json:"position"` // Order within the document
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}
