package store

import (
	"context"

	"github.com/flashflow/flashflow/internal/models"
)

// starterDeck is loaded on first run so a new user has something to
// review before creating their own cards. Seeded cards are ordinary
// cards in every respect.
var starterDeck = []models.AddCardData{
	{Topic: "JavaScript", Question: "What is a closure?", Answer: "A function that remembers its outer variables and can access them."},
	{Topic: "JavaScript", Question: "What are the primitive types in JavaScript?", Answer: "string, number, bigint, boolean, undefined, symbol, and null."},
	{Topic: "CSS", Question: "What does CSS stand for?", Answer: "Cascading Style Sheets."},
	{Topic: "CSS", Question: "What is the CSS box model?", Answer: "A box that wraps around every HTML element, consisting of: margins, borders, padding, and the actual content."},
	{Topic: "History", Question: "In what year did World War II end?", Answer: "1945."},
}

// SeedIfEmpty loads the starter deck when the collection has no cards.
// Returns the number of cards added.
func (s *Store) SeedIfEmpty(ctx context.Context) (int, error) {
	if len(s.List()) > 0 {
		return 0, nil
	}
	for _, data := range starterDeck {
		if _, err := s.Add(ctx, data); err != nil {
			return 0, err
		}
	}
	s.log.Info("seeded starter deck with %d cards", len(starterDeck))
	return len(starterDeck), nil
}
