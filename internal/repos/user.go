package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type UserRepo interface {
  GetByID(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
  GetByEmail(ctx context.Context, email string) (*types.UserProfile, error)
  Create(ctx context.Context, profile *types.UserProfile) error
  // Put queues an upsert of the profile document on the batch.
  Put(batch *docstore.WriteBatch, profile *types.UserProfile)
}

type userRepo struct {
  store docstore.Store
  log   *logger.Logger
}

func NewUserRepo(store docstore.Store, baseLog *logger.Logger) UserRepo {
  return &userRepo{store: store, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
  doc, err := ur.store.Get(ctx, UserPath(userID.String()))
  if err != nil {
    return nil, err
  }
  var profile types.UserProfile
  if err := doc.DataTo(&profile); err != nil {
    return nil, err
  }
  return &profile, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, email string) (*types.UserProfile, error) {
  docs, err := ur.store.QueryEqual(ctx, UsersCollection, "email", email, 1)
  if err != nil {
    return nil, err
  }
  if len(docs) == 0 {
    return nil, docstore.ErrNotFound
  }
  var profile types.UserProfile
  if err := docs[0].DataTo(&profile); err != nil {
    return nil, err
  }
  return &profile, nil
}

func (ur *userRepo) Create(ctx context.Context, profile *types.UserProfile) error {
  if _, err := ur.store.Get(ctx, UserPath(profile.ID.String())); err == nil {
    return errors.New("user already exists")
  } else if !errors.Is(err, docstore.ErrNotFound) {
    return err
  }
  return ur.store.Set(ctx, UserPath(profile.ID.String()), profile)
}

func (ur *userRepo) Put(batch *docstore.WriteBatch, profile *types.UserProfile) {
  batch.Set(UserPath(profile.ID.String()), profile)
}
