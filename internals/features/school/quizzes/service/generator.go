package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"sekolahku_backend/internals/configs"
	dto "sekolahku_backend/internals/features/school/quizzes/dto"
)

const quizPrompt = `Buatkan kuis pilihan ganda berdasarkan topik, jumlah soal, dan tingkat kesulitan yang diberikan oleh pengguna. Pastikan setiap pertanyaan memiliki 4 pilihan jawaban dan satu jawaban yang benar. Berikan respons hanya dalam format JSON yang valid.

Skema JSON yang harus diikuti:
{
  "quiz": {
    "title": "string (Judul kuis berdasarkan topik)",
    "difficulty": "string (Tingkat kesulitan: Beginner, Moderate, Advanced)",
    "questions": [
      {
        "question_text": "string (Teks pertanyaan)",
        "options": [
          "string (Pilihan A)",
          "string (Pilihan B)",
          "string (Pilihan C)",
          "string (Pilihan D)"
        ],
        "correct_answer": "string (Teks jawaban yang benar, harus sama persis dengan salah satu dari options)"
      }
    ]
  }
}

Input Pengguna:
`

// Generator membuat konten kuis dari topik + tingkat kesulitan.
type Generator interface {
	Generate(ctx context.Context, topic string, numQuestions int, difficulty string) (*dto.QuizPayload, error)
}

// GeminiGenerator memanggil endpoint generateContent (REST).
type GeminiGenerator struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func NewGeminiGeneratorFromEnv() *GeminiGenerator {
	return &GeminiGenerator{
		BaseURL: configs.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		APIKey:  configs.GeminiAPIKey,
		Model:   configs.GeminiModel,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiGenerator) Generate(ctx context.Context, topic string, numQuestions int, difficulty string) (*dto.QuizPayload, error) {
	finalPrompt := fmt.Sprintf("%s\nTopik: %s\nJumlah Pertanyaan: %d\nTingkat Kesulitan: %s\n",
		quizPrompt, topic, numQuestions, difficulty)

	reqBody, err := sonic.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: finalPrompt}},
		}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(g.BaseURL, "/"), g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("panggilan Gemini gagal: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var gr geminiResponse
	if err := sonic.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("response Gemini tidak bisa diparse: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini tidak mengembalikan kandidat")
	}

	return ParseQuizPayload(gr.Candidates[0].Content.Parts[0].Text)
}

// ParseQuizPayload membersihkan fence markdown (```json ... ```) lalu
// memvalidasi bentuk payload: minimal satu pertanyaan, masing-masing 4 opsi
// dan correct_answer yang persis salah satu opsinya.
func ParseQuizPayload(rawText string) (*dto.QuizPayload, error) {
	cleaned := strings.ReplaceAll(rawText, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var payload dto.QuizPayload
	if err := sonic.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("JSON kuis tidak valid: %w", err)
	}
	if payload.Quiz.Title == "" || len(payload.Quiz.Questions) == 0 {
		return nil, fmt.Errorf("payload kuis kosong")
	}
	for i, q := range payload.Quiz.Questions {
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("pertanyaan %d harus punya 4 pilihan", i)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("pertanyaan %d: correct_answer tidak ada di options", i)
		}
	}
	return &payload, nil
}
