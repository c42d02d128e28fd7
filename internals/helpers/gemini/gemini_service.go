package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// Service membungkus Gemini untuk ekstraksi PDF, generate MCQ,
// analisis performa tes, dan chat mentor.
type Service struct {
	client  *genai.Client
	limiter *rate.Limiter
}

// NewService membuat client Gemini. Semua call lewat token bucket
// (free tier Gemini ±15 request/menit, jadi 1 call per 4 detik).
func NewService(ctx context.Context, apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY kosong")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	return &Service{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(4*time.Second), 1),
	}, nil
}

func (s *Service) Close() error {
	return s.client.Close()
}

const extractPrompt = `Extract all educational content from this NCERT PDF. Focus on:
1. Main concepts, definitions, and theories
2. Important facts, figures, and data
3. Formulas, equations, and laws
4. Examples, case studies, and applications
5. Key points and summaries
6. Diagrams descriptions and explanations
7. Important notes and highlights

Provide clean, structured text that preserves the educational content and can be used for generating NEET-level MCQs.
Maintain the logical flow and organization of the content.`

// ExtractPDFText melakukan ekstraksi semantik (bukan OCR byte-per-byte).
func (s *Service) ExtractPDFText(ctx context.Context, pdfData []byte) (string, error) {
	log.Println("🔍 Ekstraksi teks PDF via Gemini...")

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	model := s.client.GenerativeModel("gemini-1.5-pro")
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: pdfData},
		genai.Text(extractPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("ekstraksi PDF gagal: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("ekstraksi PDF gagal: response kosong")
	}
	log.Printf("✅ Berhasil ekstrak %d karakter dari PDF", len(text))
	return text, nil
}

var difficultyInstructions = map[string]string{
	"easy":   "Direct recall questions from NCERT text. Test basic facts, definitions, and simple concepts. Focus on remembering key terms and straightforward applications.",
	"medium": "Application-based questions requiring understanding and analysis of concepts. Include diagram-based questions, cause-effect relationships, and moderate problem-solving.",
	"hard":   "Complex analytical questions requiring synthesis of multiple concepts. Include assertion-reasoning, case-study based questions, and advanced problem-solving that tests deep understanding.",
}

// GenerateMCQs meminta `count` soal pilihan ganda. Hasil selalu tepat
// `count` item (diperbaiki/dipad via ParseMCQResponse), atau error kalau
// call/parse gagal total.
func (s *Service) GenerateMCQs(ctx context.Context, content, subject, chapter, classLevel, difficulty string, count int) ([]MCQ, error) {
	content = truncateUTF8(content, 15000) // jaga limit token input

	prompt := fmt.Sprintf(`Generate exactly %d unique NEET-level multiple choice questions for %s - %s (%s) at %s difficulty.

NCERT Content:
%s

Difficulty Level: %s
Instructions: %s

CRITICAL REQUIREMENTS:
- Generate EXACTLY %d questions, no more, no less
- Each question must be UNIQUE and not repeat concepts
- Each question must have exactly 4 options (A, B, C, D)
- Only one correct answer per question
- Include detailed explanations with NCERT references
- Cover different topics within the chapter
- Questions must be suitable for NEET examination
- Avoid repetitive question patterns
- Use proper scientific terminology
- Include numerical problems where applicable
- Reference specific NCERT chapter sections when possible

Format as valid JSON array:
[
  {
    "question": "Question text here",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": "Exact text of correct option",
    "explanation": "Detailed explanation with NCERT reference",
    "topic": "Specific topic within chapter"
  }
]

Generate exactly %d questions in this format. Ensure valid JSON structure.`,
		count, subject, chapter, classLevel, difficulty,
		content,
		difficulty, difficultyInstructions[difficulty],
		count, count)

	log.Printf("🧠 Generate %d soal %s untuk %s - %s", count, difficulty, subject, chapter)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	model := s.client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.3) // rendah: konsistensi > kreativitas
	model.SetTopP(0.8)
	model.SetTopK(40)
	model.SetMaxOutputTokens(8192)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generate MCQ gagal: %w", err)
	}

	questions, err := ParseMCQResponse(responseText(resp), count, chapter, difficulty)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Generated %d soal %s untuk %s", len(questions), difficulty, chapter)
	return questions, nil
}

// AnalysisInput adalah ringkasan hasil tes untuk dianalisis.
type AnalysisInput struct {
	Subject         string   `json:"subject"`
	Chapter         string   `json:"chapter"`
	Score           int      `json:"score"`
	MaxScore        int      `json:"max_score"`
	Accuracy        int      `json:"accuracy"`
	IncorrectTopics []string `json:"incorrect_topics"`
}

func (s *Service) AnalyzePerformance(ctx context.Context, in AnalysisInput) (string, error) {
	prompt := fmt.Sprintf(`Analyze this NEET test performance and provide personalized recommendations:

Test Results:
- Subject: %s
- Chapter: %s
- Score: %d/%d
- Accuracy: %d%%
- Incorrect topics: %s

Provide:
1. Strengths and weaknesses analysis
2. Specific NCERT chapters/pages to review
3. Study strategy for next 7 days
4. Motivational message for NEET aspirant
5. Practice recommendations

Keep response encouraging and actionable for Indian NEET students.`,
		in.Subject, in.Chapter, in.Score, in.MaxScore, in.Accuracy, strings.Join(in.IncorrectTopics, ", "))

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	model := s.client.GenerativeModel("gemini-1.5-pro")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("analisis performa gagal: %w", err)
	}
	return responseText(resp), nil
}

// ChatWithMentor menjawab pertanyaan siswa. Context bebas (profil user,
// hasil tes terakhir) di-serialize ke prompt.
func (s *Service) ChatWithMentor(ctx context.Context, message string, chatContext interface{}) (string, error) {
	contextStr := "General NEET preparation query"
	if chatContext != nil {
		if b, err := json.Marshal(chatContext); err == nil {
			contextStr = string(b)
		}
	}

	prompt := fmt.Sprintf(`You are an expert NEET mentor for Indian students. Respond to this query: "%s"

Context: %s

Guidelines:
- Be encouraging and motivational
- Provide specific, actionable advice
- Reference NCERT textbooks when relevant
- Use simple, clear language
- Include study tips and strategies
- Be empathetic to NEET preparation challenges
- Keep responses conversational and helpful

Respond as if you're chatting with a student who needs guidance and support.`, message, contextStr)

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	model := s.client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetTopK(40)
	model.SetMaxOutputTokens(1024)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("chat mentor gagal: %w", err)
	}
	return responseText(resp), nil
}

// truncateUTF8 memotong s maksimal max byte tanpa membelah rune di batas
// potong; byte lanjutan di posisi max digeser mundur ke awal rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// responseText menggabungkan seluruh part teks kandidat pertama.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
