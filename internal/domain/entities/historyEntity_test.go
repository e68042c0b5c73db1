package entities

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncatedTextKeepsCharactersIntact(t *testing.T) {
	e := ChatHistoryEntry{MessageText: strings.Repeat("₹", 250)}

	got := e.TruncatedText()
	assert.Equal(t, MessageTextCap, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got), "truncation must not split a multi-byte character")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateRunes("short", 200))
	assert.Equal(t, "", TruncateRunes("anything", 0))
	assert.Equal(t, "héllo", TruncateRunes("héllo world", 5))

	exact := strings.Repeat("x", 200)
	assert.Equal(t, exact, TruncateRunes(exact, 200))
}
