package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookType tags serialized rule books so imports can reject foreign
// documents.
const BookType = "lab_single_trade_alert_rules"

// BookVersion is the version stamped on newly created books. Imported books
// keep whatever version they carried.
const BookVersion = 2

// Book is the serialized form of a rule set: the document persisted to
// browser-local storage and to the server-side named store.
type Book struct {
	Type             string  `json:"type"`
	Version          int     `json:"version"`
	CreatedAt        string  `json:"createdAt"`
	Rules            []Rule  `json:"rules"`
	Groups           []Group `json:"groups"`
	MasterBlinkColor string  `json:"masterBlinkColor"`
}

// NewBook wraps the current rule state into a fresh document.
func NewBook(rules []Rule, groups []Group, masterColor string) Book {
	if rules == nil {
		rules = []Rule{}
	}
	if groups == nil {
		groups = []Group{}
	}
	if masterColor == "" {
		masterColor = DefaultMasterColor
	}
	return Book{
		Type:             BookType,
		Version:          BookVersion,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
		Rules:            rules,
		Groups:           groups,
		MasterBlinkColor: masterColor,
	}
}

// ParseBook decodes and repairs a rule book document. Legacy documents with
// no groups get a synthesized "Imported" group holding every rule; rules
// pointing at a missing group are reattached to the first available one.
// The original version field survives the round-trip.
func ParseBook(data []byte) (*Book, error) {
	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("invalid rule book document: %w", err)
	}
	if book.Type != "" && book.Type != BookType {
		return nil, fmt.Errorf("unexpected document type %q", book.Type)
	}
	book.Type = BookType

	if book.Rules == nil {
		book.Rules = []Rule{}
	}
	if book.MasterBlinkColor == "" {
		book.MasterBlinkColor = DefaultMasterColor
	}

	if len(book.Groups) == 0 {
		imported := Group{ID: uuid.NewString(), Name: "Imported"}
		book.Groups = []Group{imported}
		for i := range book.Rules {
			book.Rules[i].GroupID = imported.ID
		}
		return &book, nil
	}

	known := make(map[string]bool, len(book.Groups))
	for _, g := range book.Groups {
		known[g.ID] = true
	}
	for i := range book.Rules {
		if !known[book.Rules[i].GroupID] {
			book.Rules[i].GroupID = book.Groups[0].ID
		}
	}
	return &book, nil
}
