package services

import (
  "context"
  "time"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

// passThreshold is the percentage at and above which an attempt passes.
const passThreshold = 70.0

type AnswerSubmission struct {
  QuestionID string `json:"question_id"`
  Answer     string `json:"answer"`
}

type QuizService interface {
  // SubmitQuiz grades every answer and appends a QuizResult. Grading
  // failures degrade per question: multiple choice falls back to a literal
  // string-equality check, short answers with no verdict are marked
  // incorrect.
  SubmitQuiz(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID, quizID string, answers []AnswerSubmission, timeSpentSec int) (*types.QuizResult, error)
  // GradeAnswer grades a single answer without recording an attempt.
  GradeAnswer(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID, quizID, questionID, answer string) (*types.UserAnswer, error)
  ListResults(ctx context.Context, userID, roadmapID uuid.UUID, quizID string) ([]*types.QuizResult, error)
}

type quizService struct {
  store         docstore.Store
  log           *logger.Logger
  milestoneRepo repos.MilestoneRepo
  resultRepo    repos.QuizResultRepo
  grading       GradingService
  now           func() time.Time
}

func NewQuizService(
  store docstore.Store,
  baseLog *logger.Logger,
  milestoneRepo repos.MilestoneRepo,
  resultRepo repos.QuizResultRepo,
  grading GradingService,
) QuizService {
  return &quizService{
    store:         store,
    log:           baseLog.With("service", "QuizService"),
    milestoneRepo: milestoneRepo,
    resultRepo:    resultRepo,
    grading:       grading,
    now:           time.Now,
  }
}

func (qs *quizService) SubmitQuiz(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID, quizID string, answers []AnswerSubmission, timeSpentSec int) (*types.QuizResult, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to submit a quiz")
  }

  quiz, err := qs.findQuiz(ctx, userID, roadmapID, milestoneID, quizID)
  if err != nil {
    return nil, err
  }

  submitted := make(map[string]string, len(answers))
  for _, a := range answers {
    submitted[a.QuestionID] = a.Answer
  }

  graded := make([]types.UserAnswer, 0, len(quiz.Questions))
  score := 0
  for i := range quiz.Questions {
    q := &quiz.Questions[i]
    userAnswer := submitted[q.ID]
    record := qs.gradeOne(ctx, userID, q, userAnswer)
    if record.IsCorrect {
      score++
    }
    graded = append(graded, record)
  }

  total := len(quiz.Questions)
  percentage := 0.0
  if total > 0 {
    percentage = float64(score) / float64(total) * 100
  }

  attemptNumber := 1
  latest, err := qs.resultRepo.LatestAttempt(ctx, userID, roadmapID, quizID)
  if err != nil {
    return nil, apperr.Internal(err)
  }
  if latest != nil {
    attemptNumber = latest.AttemptNumber + 1
  }

  result := &types.QuizResult{
    ID:             uuid.New(),
    QuizID:         quizID,
    MilestoneID:    milestoneID,
    AttemptNumber:  attemptNumber,
    Score:          score,
    TotalQuestions: total,
    Percentage:     percentage,
    Passed:         percentage >= passThreshold,
    TimeSpent:      timeSpentSec,
    Timestamp:      qs.now(),
    Answers:        graded,
  }

  batch := qs.store.NewBatch()
  qs.resultRepo.Put(batch, userID, roadmapID, result)
  if err := qs.store.Commit(ctx, batch); err != nil {
    return nil, apperr.Internal(err)
  }
  return result, nil
}

func (qs *quizService) findQuiz(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID, quizID string) (*types.Quiz, error) {
  milestone, err := qs.milestoneRepo.Get(ctx, userID, roadmapID, milestoneID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return nil, apperr.NotFound("milestone not found")
    }
    return nil, apperr.Internal(err)
  }
  for i := range milestone.Quizzes {
    if milestone.Quizzes[i].ID == quizID {
      return &milestone.Quizzes[i], nil
    }
  }
  return nil, apperr.NotFound("quiz not found")
}

func (qs *quizService) GradeAnswer(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID, quizID, questionID, answer string) (*types.UserAnswer, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to grade an answer")
  }
  quiz, err := qs.findQuiz(ctx, userID, roadmapID, milestoneID, quizID)
  if err != nil {
    return nil, err
  }
  for i := range quiz.Questions {
    if quiz.Questions[i].ID == questionID {
      record := qs.gradeOne(ctx, userID, &quiz.Questions[i], answer)
      return &record, nil
    }
  }
  return nil, apperr.NotFound("question not found")
}

// gradeOne grades a single answer, applying the fallback policy when the
// grading service fails for any reason.
func (qs *quizService) gradeOne(ctx context.Context, userID uuid.UUID, q *types.Question, userAnswer string) types.UserAnswer {
  record := types.UserAnswer{
    QuestionID:    q.ID,
    UserAnswer:    userAnswer,
    CorrectAnswer: q.CorrectAnswer,
    Explanation:   q.Explanation,
  }

  verdict, err := qs.grading.Grade(ctx, userID, q, userAnswer)
  if err != nil {
    qs.log.Warn("grading failed, applying fallback", "question_id", q.ID, "error", err)
    if q.Type == types.QuestionMultipleChoice {
      record.IsCorrect = userAnswer == q.CorrectAnswer
    }
    // Short answers with no grading result stay incorrect.
    return record
  }

  record.IsCorrect = verdict.Correct
  if verdict.Explanation != "" {
    record.Explanation = verdict.Explanation
  }
  return record
}

func (qs *quizService) ListResults(ctx context.Context, userID, roadmapID uuid.UUID, quizID string) ([]*types.QuizResult, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to view quiz results")
  }
  results, err := qs.resultRepo.ListByQuiz(ctx, userID, roadmapID, quizID)
  if err != nil {
    return nil, apperr.Internal(err)
  }
  return results, nil
}
