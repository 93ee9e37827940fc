package repos

import (
  "context"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type QuizResultRepo interface {
  // LatestAttempt returns the most recent result for the quiz, or nil if
  // the quiz has never been attempted.
  LatestAttempt(ctx context.Context, userID, roadmapID uuid.UUID, quizID string) (*types.QuizResult, error)
  // ListByQuiz returns the quiz's results, newest first.
  ListByQuiz(ctx context.Context, userID, roadmapID uuid.UUID, quizID string) ([]*types.QuizResult, error)
  Put(batch *docstore.WriteBatch, userID, roadmapID uuid.UUID, result *types.QuizResult)
}

type quizResultRepo struct {
  store docstore.Store
  log   *logger.Logger
}

func NewQuizResultRepo(store docstore.Store, baseLog *logger.Logger) QuizResultRepo {
  return &quizResultRepo{store: store, log: baseLog.With("repo", "QuizResultRepo")}
}

func (qr *quizResultRepo) LatestAttempt(ctx context.Context, userID, roadmapID uuid.UUID, quizID string) (*types.QuizResult, error) {
  collection := QuizResultsCollection(userID.String(), roadmapID.String())
  docs, err := qr.store.QueryEqual(ctx, collection, "quiz_id", quizID, 1)
  if err != nil {
    return nil, err
  }
  if len(docs) == 0 {
    return nil, nil
  }
  var result types.QuizResult
  if err := docs[0].DataTo(&result); err != nil {
    return nil, err
  }
  return &result, nil
}

func (qr *quizResultRepo) ListByQuiz(ctx context.Context, userID, roadmapID uuid.UUID, quizID string) ([]*types.QuizResult, error) {
  collection := QuizResultsCollection(userID.String(), roadmapID.String())
  docs, err := qr.store.QueryEqual(ctx, collection, "quiz_id", quizID, listPageSize)
  if err != nil {
    return nil, err
  }
  results := make([]*types.QuizResult, 0, len(docs))
  for _, doc := range docs {
    var result types.QuizResult
    if err := doc.DataTo(&result); err != nil {
      return nil, err
    }
    results = append(results, &result)
  }
  return results, nil
}

func (qr *quizResultRepo) Put(batch *docstore.WriteBatch, userID, roadmapID uuid.UUID, result *types.QuizResult) {
  batch.Set(QuizResultPath(userID.String(), roadmapID.String(), result.ID.String()), result)
}
