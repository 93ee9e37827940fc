package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

// shortAnswerThreshold is the semantic-similarity cutoff for a short
// answer to count as correct.
const shortAnswerThreshold = 0.75

type GradeVerdict struct {
  Correct     bool    `json:"correct"`
  Similarity  float64 `json:"similarity"`
  Explanation string  `json:"explanation"`
}

type GradingService interface {
  Grade(ctx context.Context, userID uuid.UUID, question *types.Question, userAnswer string) (*GradeVerdict, error)
}

type gradingService struct {
  log *logger.Logger
  ai  OpenAIClient
}

func NewGradingService(baseLog *logger.Logger, ai OpenAIClient) GradingService {
  return &gradingService{log: baseLog.With("service", "GradingService"), ai: ai}
}

// verdictSchema is the 3-field shape both grading branches are constrained
// to. The decoded object is re-checked client-side regardless of provider
// behavior.
var verdictSchema = map[string]any{
  "type": "object",
  "properties": map[string]any{
    "correct":     map[string]any{"type": "boolean"},
    "similarity":  map[string]any{"type": "number"},
    "explanation": map[string]any{"type": "string"},
  },
  "required":             []string{"correct", "similarity", "explanation"},
  "additionalProperties": false,
}

func (gs *gradingService) Grade(ctx context.Context, userID uuid.UUID, question *types.Question, userAnswer string) (*GradeVerdict, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to grade answers")
  }
  if question == nil || question.Text == "" {
    return nil, apperr.InvalidArgument("missing question")
  }

  var system, user string
  switch question.Type {
  case types.QuestionMultipleChoice:
    system = "You grade multiple-choice quiz answers. Judge exact-match correctness against the correct answer. Similarity is 1 for a correct answer and 0 otherwise. Use the stored explanation; when the user was wrong, restate the correct answer in the explanation."
    user = fmt.Sprintf(
      "Question: %s\nOptions: %s\nCorrect answer: %s\nStored explanation: %s\nUser answer: %s",
      question.Text, strings.Join(question.Options, " | "), question.CorrectAnswer, question.Explanation, userAnswer,
    )
  case types.QuestionShortAnswer:
    system = "You grade short-answer quiz responses by semantic similarity. Compare the meaning of the user's answer to the correct answer, ignoring phrasing. Return similarity between 0 and 1 and a short explanation."
    user = fmt.Sprintf(
      "Question: %s\nCorrect answer: %s\nUser answer: %s",
      question.Text, question.CorrectAnswer, userAnswer,
    )
  default:
    return nil, apperr.InvalidArgument(fmt.Sprintf("unknown question type %q", question.Type))
  }

  obj, err := gs.ai.GenerateJSON(ctx, system, user, "grade_verdict", verdictSchema)
  if err != nil {
    gs.log.Error("grading call failed", "question_id", question.ID, "error", err)
    return nil, apperr.Internal(err)
  }

  verdict, err := verdictFromObject(obj)
  if err != nil {
    gs.log.Error("grading response malformed", "question_id", question.ID, "error", err)
    return nil, apperr.Internal(err)
  }

  switch question.Type {
  case types.QuestionMultipleChoice:
    // Binary similarity for multiple choice, whatever the model scored.
    if verdict.Correct {
      verdict.Similarity = 1
    } else {
      verdict.Similarity = 0
    }
  case types.QuestionShortAnswer:
    verdict.Correct = verdict.Similarity >= shortAnswerThreshold
  }
  return verdict, nil
}

func verdictFromObject(obj map[string]any) (*GradeVerdict, error) {
  correct, ok := obj["correct"].(bool)
  if !ok {
    return nil, fmt.Errorf("verdict field 'correct' missing or not a boolean")
  }
  similarity, ok := obj["similarity"].(float64)
  if !ok {
    return nil, fmt.Errorf("verdict field 'similarity' missing or not a number")
  }
  explanation, ok := obj["explanation"].(string)
  if !ok {
    return nil, fmt.Errorf("verdict field 'explanation' missing or not a string")
  }
  if similarity < 0 {
    similarity = 0
  }
  if similarity > 1 {
    similarity = 1
  }
  return &GradeVerdict{Correct: correct, Similarity: similarity, Explanation: explanation}, nil
}
