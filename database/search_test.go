package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQueryParser_Parse(t *testing.T) {
	parser := NewSearchQueryParser()

	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "basic two words",
			input:    "buy milk",
			expected: []string{"buy", "milk"},
		},
		{
			name:     "single word",
			input:    "milk",
			expected: []string{"milk"},
		},
		{
			name:     "mixed case",
			input:    "Review PULL Request",
			expected: []string{"review", "pull", "request"},
		},
		{
			name:     "extra whitespace",
			input:    "  buy   milk  ",
			expected: []string{"buy", "milk"},
		},
		{
			name:     "with quotes removed",
			input:    `"fix build"`,
			expected: []string{"fix", "build"},
		},
		{
			name:     "wildcards removed",
			input:    "100% done_ish",
			expected: []string{"100", "doneish"},
		},
		{
			name:    "too short",
			input:   "a",
			wantErr: true,
			errMsg:  "must be at least 2 characters",
		},
		{
			name:    "only whitespace",
			input:   "   ",
			wantErr: true,
			errMsg:  "must be at least 2 characters",
		},
		{
			name:    "only wildcards",
			input:   "%%%",
			wantErr: true,
			errMsg:  "search query is empty",
		},
		{
			name:    "only short words",
			input:   "a b c",
			wantErr: true,
			errMsg:  "no valid search terms",
		},
		{
			name:     "mixed short and long words",
			input:    "a milk b bread",
			expected: []string{"milk", "bread"},
		},
		{
			name:    "too long",
			input:   strings.Repeat("x", 201),
			wantErr: true,
			errMsg:  "too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Empty(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestSearchQueryParser_Sanitize(t *testing.T) {
	parser := NewSearchQueryParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes quotes",
			input:    `"hello"`,
			expected: "hello",
		},
		{
			name:     "removes single quotes",
			input:    "'hello'",
			expected: "hello",
		},
		{
			name:     "removes parentheses",
			input:    "(hello)",
			expected: "hello",
		},
		{
			name:     "removes like wildcards",
			input:    `50%_off\`,
			expected: "50off",
		},
		{
			name:     "keeps normal text",
			input:    "hello world",
			expected: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.sanitize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSearchQueryParser_FilterValidWords(t *testing.T) {
	parser := NewSearchQueryParser()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "all valid words",
			input:    []string{"hello", "world"},
			expected: []string{"hello", "world"},
		},
		{
			name:     "filters single char",
			input:    []string{"a", "hello", "b"},
			expected: []string{"hello"},
		},
		{
			name:     "converts to lowercase",
			input:    []string{"Hello", "WORLD"},
			expected: []string{"hello", "world"},
		},
		{
			name:     "empty input",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.filterValidWords(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
