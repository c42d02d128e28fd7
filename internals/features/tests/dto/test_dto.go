package dto

import "examgpt_backend/internals/features/tests/service"

type SubmitTestRequest struct {
	Subject      string           `json:"subject" validate:"required,oneof=physics chemistry biology"`
	ClassLevel   string           `json:"classLevel" validate:"required,oneof=class11 class12"`
	Chapter      string           `json:"chapter" validate:"required"`
	Difficulty   string           `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	TimeTakenSec int              `json:"timeTakenSec" validate:"omitempty,min=0"`
	Answers      []service.Answer `json:"answers" validate:"required,min=1,dive"`
}
