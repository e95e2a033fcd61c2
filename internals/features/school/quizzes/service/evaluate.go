package service

import (
	"errors"
	"math"

	dto "sekolahku_backend/internals/features/school/quizzes/dto"
)

var (
	ErrNoQuestions       = errors.New("kuis tidak memiliki pertanyaan")
	ErrIncompleteAnswers = errors.New("semua pertanyaan harus dijawab")
)

// Evaluate menghitung skor di sisi server supaya klien tidak bisa mengirim
// skor sembarangan. Kebenaran = kesamaan string persis dengan jawaban
// tersimpan; skor = round(100 × benar / total).
func Evaluate(questions []dto.QuizQuestion, answers map[int]string) (int, error) {
	if len(questions) == 0 {
		return 0, ErrNoQuestions
	}

	correct := 0
	for i, q := range questions {
		chosen, ok := answers[i]
		if !ok {
			return 0, ErrIncompleteAnswers
		}
		if chosen == q.CorrectAnswer {
			correct++
		}
	}

	score := int(math.Round(100 * float64(correct) / float64(len(questions))))
	return score, nil
}
