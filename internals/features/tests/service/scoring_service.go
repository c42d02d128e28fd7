// internals/features/tests/service/scoring_service.go
package service

import (
	"math"
	"strings"
)

// Skema penilaian NEET: +4 benar, -1 salah, 0 tidak dijawab.
const (
	MarksCorrect   = 4
	MarksIncorrect = -1
)

// Answer adalah satu jawaban yang disubmit frontend.
type Answer struct {
	QuestionID     string `json:"questionId"`
	Question       string `json:"question,omitempty"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	Topic          string `json:"topic,omitempty"`
}

func (a Answer) Unanswered() bool {
	return strings.TrimSpace(a.SelectedAnswer) == ""
}

func (a Answer) Correct() bool {
	return !a.Unanswered() && a.SelectedAnswer == a.CorrectAnswer
}

type ScoreSummary struct {
	Total      int `json:"total"`
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
	Score      int `json:"score"`
	MaxScore   int `json:"maxScore"`
	Accuracy   int `json:"accuracy"` // persen, dibulatkan
}

// ScoreAnswers menghitung skor satu sesi.
// Accuracy = round(correct / (correct+incorrect) * 100); soal yang tidak
// dijawab tidak mempengaruhi accuracy. Tanpa jawaban sama sekali → 0.
func ScoreAnswers(answers []Answer) ScoreSummary {
	s := ScoreSummary{Total: len(answers)}
	for _, a := range answers {
		switch {
		case a.Unanswered():
			s.Unanswered++
		case a.Correct():
			s.Correct++
		default:
			s.Incorrect++
		}
	}

	s.Score = s.Correct*MarksCorrect + s.Incorrect*MarksIncorrect
	s.MaxScore = s.Total * MarksCorrect

	if attempted := s.Correct + s.Incorrect; attempted > 0 {
		s.Accuracy = int(math.Round(float64(s.Correct) / float64(attempted) * 100))
	}
	return s
}
