package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MCQ adalah bentuk soal hasil parse dari response model.
type MCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

var defaultOptions = []string{"Option A", "Option B", "Option C", "Option D"}

// ParseMCQResponse membersihkan code fence, parse JSON array, repair field
// yang hilang/rusak, lalu pad/truncate sehingga hasil SELALU tepat `count`.
// Invariant: len(Options)==4 dan CorrectAnswer selalu salah satu Options.
func ParseMCQResponse(raw string, count int, chapter, difficulty string) ([]MCQ, error) {
	cleaned := stripCodeFences(raw)

	var parsed []MCQ
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("response bukan JSON array yang valid: %w", err)
	}

	if len(parsed) > count {
		parsed = parsed[:count]
	}

	questions := make([]MCQ, 0, count)
	for i, q := range parsed {
		questions = append(questions, repairMCQ(q, i, chapter, difficulty))
	}

	// Pad dengan placeholder sampai tepat count
	for len(questions) < count {
		questions = append(questions, MCQ{
			Question:      fmt.Sprintf("Additional %s question %d for %s", difficulty, len(questions)+1, chapter),
			Options:       append([]string(nil), defaultOptions...),
			CorrectAnswer: "Option A",
			Explanation:   fmt.Sprintf("This is a %s level question about %s.", difficulty, chapter),
			Topic:         strings.ReplaceAll(chapter, "-", " "),
		})
	}

	return questions, nil
}

func repairMCQ(q MCQ, index int, chapter, difficulty string) MCQ {
	if strings.TrimSpace(q.Question) == "" {
		q.Question = fmt.Sprintf("Sample question %d for %s", index+1, chapter)
	}
	if len(q.Options) != 4 {
		q.Options = append([]string(nil), defaultOptions...)
	}
	if !contains(q.Options, q.CorrectAnswer) {
		// jawaban hilang atau tidak ada di opsi → pakai opsi pertama
		q.CorrectAnswer = q.Options[0]
	}
	if strings.TrimSpace(q.Explanation) == "" {
		q.Explanation = fmt.Sprintf("This is a %s level question about %s.", difficulty, chapter)
	}
	if strings.TrimSpace(q.Topic) == "" {
		q.Topic = strings.ReplaceAll(chapter, "-", " ")
	}
	return q
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
