package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func answered(correct bool) Answer {
	a := Answer{QuestionID: "q", CorrectAnswer: "B"}
	if correct {
		a.SelectedAnswer = "B"
	} else {
		a.SelectedAnswer = "C"
	}
	return a
}

func TestScoreAnswersNEETScheme(t *testing.T) {
	// 3 benar, 1 salah, 1 kosong: skor 3*4 - 1 = 11 dari maks 20, accuracy 75%
	answers := []Answer{
		answered(true), answered(true), answered(true),
		answered(false),
		{QuestionID: "q5", CorrectAnswer: "A"},
	}

	s := ScoreAnswers(answers)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Correct)
	assert.Equal(t, 1, s.Incorrect)
	assert.Equal(t, 1, s.Unanswered)
	assert.Equal(t, 11, s.Score)
	assert.Equal(t, 20, s.MaxScore)
	assert.Equal(t, 75, s.Accuracy)
}

func TestScoreAnswersAllUnanswered(t *testing.T) {
	s := ScoreAnswers([]Answer{
		{QuestionID: "q1", CorrectAnswer: "A"},
		{QuestionID: "q2", CorrectAnswer: "B"},
	})
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 8, s.MaxScore)
	assert.Equal(t, 0, s.Accuracy, "tanpa jawaban, accuracy 0 bukan NaN")
}

func TestScoreAnswersNegativeTotal(t *testing.T) {
	// semua salah → skor boleh negatif
	s := ScoreAnswers([]Answer{answered(false), answered(false), answered(false)})
	assert.Equal(t, -3, s.Score)
	assert.Equal(t, 0, s.Accuracy)
}

func TestScoreAnswersAccuracyRounding(t *testing.T) {
	// 1 benar 2 salah → 33.33 → 33; 2 benar 1 salah → 66.67 → 67
	s := ScoreAnswers([]Answer{answered(true), answered(false), answered(false)})
	assert.Equal(t, 33, s.Accuracy)

	s = ScoreAnswers([]Answer{answered(true), answered(true), answered(false)})
	assert.Equal(t, 67, s.Accuracy)
}

func TestScoreAnswersEmpty(t *testing.T) {
	s := ScoreAnswers(nil)
	assert.Equal(t, ScoreSummary{}, s)
}

func TestAnswerWhitespaceIsUnanswered(t *testing.T) {
	a := Answer{QuestionID: "q", SelectedAnswer: "   ", CorrectAnswer: "A"}
	assert.True(t, a.Unanswered())
	assert.False(t, a.Correct())
}
