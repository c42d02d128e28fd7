package dto

// GenerateRequest: generate satu bab (persistensi strict).
type GenerateRequest struct {
	Subject    string `json:"subject" validate:"required,oneof=physics chemistry biology"`
	ClassLevel string `json:"classLevel" validate:"required,oneof=class11 class12"`
	Chapter    string `json:"chapter" validate:"required"`
	Force      bool   `json:"force"`
}

// GenerateBatchRequest: generate beberapa bab yang belum lengkap.
type GenerateBatchRequest struct {
	Subject    string `json:"subject" validate:"required,oneof=physics chemistry biology"`
	ClassLevel string `json:"classLevel" validate:"required,oneof=class11 class12"`
	BatchSize  int    `json:"batchSize" validate:"omitempty,min=1,max=20"`
	Force      bool   `json:"force"`
}

type GenerateAllRequest struct {
	BatchSize int `json:"batchSize" validate:"omitempty,min=1,max=20"`
}

// GetQuestionsQuery: ambil soal untuk latihan/test.
// Bisa lewat query string (GET) atau JSON body (POST /questions/get).
type GetQuestionsQuery struct {
	Subject    string `query:"subject" json:"subject" validate:"required,oneof=physics chemistry biology"`
	ClassLevel string `query:"classLevel" json:"classLevel" validate:"required,oneof=class11 class12"`
	Chapter    string `query:"chapter" json:"chapter" validate:"required"`
	Difficulty string `query:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Count      int    `query:"count" json:"count" validate:"omitempty,min=1,max=180"`
}
