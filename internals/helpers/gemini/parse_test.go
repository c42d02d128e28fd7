package gemini

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapter = "chapter-8-gravitation"

func validItem(n int) string {
	return fmt.Sprintf(`{
		"question": "Question %d?",
		"options": ["A%d", "B%d", "C%d", "D%d"],
		"correctAnswer": "B%d",
		"explanation": "Because of NCERT section %d.",
		"topic": "Gravitation"
	}`, n, n, n, n, n, n, n)
}

func TestParseMCQResponseStripsCodeFences(t *testing.T) {
	raw := "```json\n[" + validItem(1) + "]\n```"
	questions, err := ParseMCQResponse(raw, 1, chapter, "easy")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Question 1?", questions[0].Question)
	assert.Equal(t, "B1", questions[0].CorrectAnswer)
}

func TestParseMCQResponseExactCountAlways(t *testing.T) {
	tests := []struct {
		name  string
		items int
		count int
	}{
		{"kurang dari target", 2, 5},
		{"pas", 3, 3},
		{"lebih dari target", 6, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "["
			for i := 0; i < tt.items; i++ {
				if i > 0 {
					raw += ","
				}
				raw += validItem(i)
			}
			raw += "]"

			questions, err := ParseMCQResponse(raw, tt.count, chapter, "medium")
			require.NoError(t, err)
			assert.Len(t, questions, tt.count)
		})
	}
}

func TestParseMCQResponsePadsWithPlaceholders(t *testing.T) {
	questions, err := ParseMCQResponse("["+validItem(1)+"]", 3, chapter, "hard")
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, "Additional hard question 2 for "+chapter, questions[1].Question)
	assert.Equal(t, "Additional hard question 3 for "+chapter, questions[2].Question)
	assert.Equal(t, "Option A", questions[1].CorrectAnswer)
	assert.Equal(t, "chapter 8 gravitation", questions[1].Topic)
}

func TestParseMCQResponseRepairsBrokenItems(t *testing.T) {
	raw := `[
		{"question": "", "options": ["A"], "correctAnswer": "X", "explanation": "", "topic": ""},
		{"question": "Ok?", "options": ["P", "Q", "R", "S"], "correctAnswer": "Z", "explanation": "e", "topic": "t"}
	]`
	questions, err := ParseMCQResponse(raw, 2, chapter, "easy")
	require.NoError(t, err)
	require.Len(t, questions, 2)

	// item 1: semua field rusak → default
	assert.Equal(t, "Sample question 1 for "+chapter, questions[0].Question)
	assert.Equal(t, defaultOptions, questions[0].Options)
	assert.Equal(t, "Option A", questions[0].CorrectAnswer)
	assert.Equal(t, "This is a easy level question about "+chapter+".", questions[0].Explanation)

	// item 2: jawaban tidak ada di opsi → dipaksa ke opsi pertama
	assert.Equal(t, "P", questions[1].CorrectAnswer)
}

func TestParseMCQResponseShapeInvariant(t *testing.T) {
	raw := `[
		{"question": "q", "options": ["1","2","3","4","5"], "correctAnswer": "3"},
		{"question": "q2", "options": null, "correctAnswer": ""}
	]`
	questions, err := ParseMCQResponse(raw, 4, chapter, "medium")
	require.NoError(t, err)
	for i, q := range questions {
		assert.Len(t, q.Options, 4, "soal %d", i)
		assert.Contains(t, q.Options, q.CorrectAnswer, "soal %d", i)
	}
}

func TestParseMCQResponseInvalidJSON(t *testing.T) {
	_, err := ParseMCQResponse("maaf, saya tidak bisa", 5, chapter, "easy")
	assert.Error(t, err)

	// object tunggal (bukan array) juga ditolak
	_, err = ParseMCQResponse(validItem(1), 5, chapter, "easy")
	assert.Error(t, err)
}

func TestTruncateUTF8KeepsRuneBoundary(t *testing.T) {
	// "α" = 2 byte; potong di tengah rune harus mundur ke batas rune.
	s := "abc" + "αβγ"
	assert.Equal(t, "abc", truncateUTF8(s, 4))
	assert.Equal(t, "abcα", truncateUTF8(s, 5))
	assert.Equal(t, s, truncateUTF8(s, len(s)))
	assert.Equal(t, s, truncateUTF8(s, 1000))

	out := truncateUTF8(strings.Repeat("θ", 10000), 15000)
	assert.LessOrEqual(t, len(out), 15000)
	assert.True(t, utf8.ValidString(out))
}
