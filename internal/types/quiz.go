package types

import (
  "time"

  "github.com/google/uuid"
)

type QuestionType string

const (
  QuestionMultipleChoice QuestionType = "multiple-choice"
  QuestionShortAnswer    QuestionType = "short-answer"
)

// Quiz is immutable once generated, embedded in its milestone document.
type Quiz struct {
  ID         string     `json:"id"`
  Title      string     `json:"title"`
  Difficulty int        `json:"difficulty"` // 1-3
  Questions  []Question `json:"questions"`
}

type Question struct {
  ID            string       `json:"id"`
  Text          string       `json:"text"`
  Type          QuestionType `json:"type"`
  Options       []string     `json:"options,omitempty"`
  CorrectAnswer string       `json:"correct_answer"`
  Explanation   string       `json:"explanation"`
}

// QuizResult is an append-only document at
// tracks/{userId}/roadmaps/{roadmapId}/quizResults/{id}. Never mutated
// after creation.
type QuizResult struct {
  ID             uuid.UUID    `json:"id"`
  QuizID         string       `json:"quiz_id"`
  MilestoneID    string       `json:"milestone_id"`
  AttemptNumber  int          `json:"attempt_number"`
  Score          int          `json:"score"`
  TotalQuestions int          `json:"total_questions"`
  Percentage     float64      `json:"percentage"`
  Passed         bool         `json:"passed"` // percentage >= 70
  TimeSpent      int          `json:"time_spent"` // seconds
  Timestamp      time.Time    `json:"timestamp"`
  Answers        []UserAnswer `json:"answers"`
}

type UserAnswer struct {
  QuestionID    string `json:"question_id"`
  UserAnswer    string `json:"user_answer"`
  CorrectAnswer string `json:"correct_answer"`
  IsCorrect     bool   `json:"is_correct"`
  Explanation   string `json:"explanation"`
}
