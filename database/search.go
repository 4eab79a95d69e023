package database

import (
	"fmt"
	"strings"
)

// SearchQueryParser validates a user's task search and splits it into terms.
// Every term must appear in the task text for a task to match.
type SearchQueryParser struct {
	minLength int
	maxLength int
}

// NewSearchQueryParser creates a SearchQueryParser with default limits:
// minimum 2 characters, maximum 200 characters.
func NewSearchQueryParser() *SearchQueryParser {
	return &SearchQueryParser{
		minLength: 2,
		maxLength: 200,
	}
}

// Parse converts a search query into lowercase terms.
// Performs the following transformations:
//  1. Trims whitespace
//  2. Validates length
//  3. Removes quotes, parentheses and LIKE wildcards
//  4. Splits into words
//  5. Filters out single-character words
//  6. Converts to lowercase
//
// Examples:
//
//	"Buy Milk" → ["buy", "milk"]
//	"a 100% done" → ["100", "done"]
//
// Returns error if query is too short, too long, or becomes empty after filtering.
func (p *SearchQueryParser) Parse(query string) ([]string, error) {
	query = strings.TrimSpace(query)

	if len(query) < p.minLength {
		return nil, fmt.Errorf("search query must be at least %d characters", p.minLength)
	}

	if len(query) > p.maxLength {
		return nil, fmt.Errorf("search query too long (max %d characters)", p.maxLength)
	}

	query = p.sanitize(query)

	words := strings.Fields(query)
	if len(words) == 0 {
		return nil, fmt.Errorf("search query is empty")
	}

	validWords := p.filterValidWords(words)
	if len(validWords) == 0 {
		return nil, fmt.Errorf("no valid search terms")
	}

	return validWords, nil
}

func (p *SearchQueryParser) sanitize(query string) string {
	replacer := strings.NewReplacer(
		`"`, "",
		"'", "",
		"(", "",
		")", "",
		"%", "",
		"_", "",
		`\`, "",
	)
	return replacer.Replace(query)
}

func (p *SearchQueryParser) filterValidWords(words []string) []string {
	valid := []string{}
	for _, word := range words {
		if len(word) >= 2 {
			valid = append(valid, strings.ToLower(word))
		}
	}
	return valid
}
