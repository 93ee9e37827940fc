package services

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

func mcqQuestion() *types.Question {
  return &types.Question{
    ID:            "q1",
    Text:          "Which tag links a stylesheet?",
    Type:          types.QuestionMultipleChoice,
    Options:       []string{"<link>", "<style>", "<css>", "<ref>"},
    CorrectAnswer: "<link>",
    Explanation:   "The link tag references external resources",
  }
}

func shortQuestion() *types.Question {
  return &types.Question{
    ID:            "q2",
    Text:          "What data structure keeps keys sorted with O(log n) lookup?",
    Type:          types.QuestionShortAnswer,
    CorrectAnswer: "a balanced binary search tree",
    Explanation:   "Balanced BSTs keep order",
  }
}

func gradingWithVerdict(obj map[string]any, err error) GradingService {
  ai := &fakeOpenAI{
    generateJSON: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
      return obj, err
    },
  }
  return NewGradingService(logger.NewNop(), ai)
}

func TestGradeMultipleChoiceBinarySimilarity(t *testing.T) {
  cases := []struct {
    name           string
    verdict        map[string]any
    wantCorrect    bool
    wantSimilarity float64
  }{
    {
      name:           "correct_overrides_fractional_similarity",
      verdict:        map[string]any{"correct": true, "similarity": 0.4, "explanation": "right"},
      wantCorrect:    true,
      wantSimilarity: 1,
    },
    {
      name:           "incorrect_overrides_high_similarity",
      verdict:        map[string]any{"correct": false, "similarity": 0.9, "explanation": "wrong"},
      wantCorrect:    false,
      wantSimilarity: 0,
    },
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      svc := gradingWithVerdict(tc.verdict, nil)
      verdict, err := svc.Grade(context.Background(), uuid.New(), mcqQuestion(), "<style>")
      if err != nil {
        t.Fatalf("grade: %v", err)
      }
      if verdict.Correct != tc.wantCorrect || verdict.Similarity != tc.wantSimilarity {
        t.Fatalf("got correct=%v similarity=%v, want %v/%v",
          verdict.Correct, verdict.Similarity, tc.wantCorrect, tc.wantSimilarity)
      }
    })
  }
}

func TestGradeShortAnswerThreshold(t *testing.T) {
  cases := []struct {
    name        string
    similarity  float64
    wantCorrect bool
  }{
    {name: "paraphrase_above_threshold", similarity: 0.85, wantCorrect: true},
    {name: "exactly_at_threshold", similarity: 0.75, wantCorrect: true},
    {name: "just_below_threshold", similarity: 0.74, wantCorrect: false},
    {name: "unrelated_answer", similarity: 0.1, wantCorrect: false},
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      // The model's own correct flag is ignored for short answers; only
      // similarity decides.
      svc := gradingWithVerdict(map[string]any{
        "correct":     !tc.wantCorrect,
        "similarity":  tc.similarity,
        "explanation": "judged",
      }, nil)
      verdict, err := svc.Grade(context.Background(), uuid.New(), shortQuestion(), "a BST")
      if err != nil {
        t.Fatalf("grade: %v", err)
      }
      if verdict.Correct != tc.wantCorrect {
        t.Fatalf("similarity %v: correct=%v, want %v", tc.similarity, verdict.Correct, tc.wantCorrect)
      }
    })
  }
}

func TestGradeMalformedVerdict(t *testing.T) {
  cases := []struct {
    name    string
    verdict map[string]any
  }{
    {name: "missing_correct", verdict: map[string]any{"similarity": 0.5, "explanation": "x"}},
    {name: "correct_wrong_type", verdict: map[string]any{"correct": "yes", "similarity": 0.5, "explanation": "x"}},
    {name: "missing_similarity", verdict: map[string]any{"correct": true, "explanation": "x"}},
    {name: "missing_explanation", verdict: map[string]any{"correct": true, "similarity": 0.5}},
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      svc := gradingWithVerdict(tc.verdict, nil)
      _, err := svc.Grade(context.Background(), uuid.New(), shortQuestion(), "answer")
      if apperr.CodeOf(err) != apperr.CodeInternal {
        t.Fatalf("got %v, want internal", err)
      }
    })
  }
}

func TestGradeClampsSimilarity(t *testing.T) {
  svc := gradingWithVerdict(map[string]any{
    "correct":     true,
    "similarity":  1.7,
    "explanation": "overshoot",
  }, nil)
  verdict, err := svc.Grade(context.Background(), uuid.New(), shortQuestion(), "answer")
  if err != nil {
    t.Fatalf("grade: %v", err)
  }
  if verdict.Similarity != 1 {
    t.Fatalf("similarity=%v, want clamped to 1", verdict.Similarity)
  }
}

func TestGradeRejectsBadInput(t *testing.T) {
  svc := gradingWithVerdict(nil, nil)
  ctx := context.Background()

  if _, err := svc.Grade(ctx, uuid.Nil, mcqQuestion(), "x"); apperr.CodeOf(err) != apperr.CodeUnauthenticated {
    t.Fatalf("nil user got %v, want unauthenticated", err)
  }
  if _, err := svc.Grade(ctx, uuid.New(), nil, "x"); apperr.CodeOf(err) != apperr.CodeInvalidArgument {
    t.Fatalf("nil question got %v, want invalid-argument", err)
  }
  bad := mcqQuestion()
  bad.Type = "essay"
  if _, err := svc.Grade(ctx, uuid.New(), bad, "x"); apperr.CodeOf(err) != apperr.CodeInvalidArgument {
    t.Fatalf("unknown type got %v, want invalid-argument", err)
  }
}
