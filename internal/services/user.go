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

const trialDuration = 7 * 24 * time.Hour

type UserService interface {
  GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
  UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs *types.UserPreferences) (*types.UserProfile, error)
  ActivateTrial(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
  // DeleteAccount tears down every roadmap tree the user owns, their
  // public mirrors included, then the profile document. Best effort: a
  // failure partway leaves a partially deleted tree and the call is safe
  // to repeat.
  DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
  store       docstore.Store
  log         *logger.Logger
  userRepo    repos.UserRepo
  roadmapRepo repos.RoadmapRepo
  mirror      PublicMirrorService
  now         func() time.Time
}

func NewUserService(
  store docstore.Store,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  roadmapRepo repos.RoadmapRepo,
  mirror PublicMirrorService,
) UserService {
  return &userService{
    store:       store,
    log:         baseLog.With("service", "UserService"),
    userRepo:    userRepo,
    roadmapRepo: roadmapRepo,
    mirror:      mirror,
    now:         time.Now,
  }
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
  profile, err := us.load(ctx, userID)
  if err != nil {
    return nil, err
  }
  return profile, nil
}

func (us *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs *types.UserPreferences) (*types.UserProfile, error) {
  if err := prefs.Validate(); err != nil {
    return nil, apperr.InvalidArgument(err.Error())
  }
  profile, err := us.load(ctx, userID)
  if err != nil {
    return nil, err
  }
  profile.Preferences = prefs
  profile.UpdatedAt = us.now()
  if err := us.save(ctx, profile); err != nil {
    return nil, err
  }
  return profile, nil
}

func (us *userService) ActivateTrial(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
  profile, err := us.load(ctx, userID)
  if err != nil {
    return nil, err
  }
  if profile.SubscriptionRole != types.RoleFree {
    return nil, apperr.InvalidArgument("trial is only available on the free plan")
  }
  if profile.TrialEndsAt != nil {
    return nil, apperr.InvalidArgument("trial already used")
  }
  ends := us.now().Add(trialDuration)
  profile.TrialEndsAt = &ends
  profile.UpdatedAt = us.now()
  if err := us.save(ctx, profile); err != nil {
    return nil, err
  }
  us.log.Info("trial activated", "user_id", userID, "trial_ends_at", ends)
  return profile, nil
}

func (us *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
  if userID == uuid.Nil {
    return apperr.Unauthenticated("sign in to delete your account")
  }

  roadmaps, err := us.roadmapRepo.ListByUser(ctx, userID)
  if err != nil {
    return apperr.Internal(err)
  }
  for _, r := range roadmaps {
    if r.IsPublic {
      if err := us.mirror.RoadmapDeleted(ctx, r.ID); err != nil {
        return apperr.Internal(err)
      }
    }
  }

  deleted, err := us.store.DeleteTree(ctx, repos.RoadmapsCollection(userID.String()), docstore.DefaultDeleteBatchSize)
  if err != nil {
    return apperr.Internal(err)
  }
  if err := us.store.Delete(ctx, repos.UserPath(userID.String())); err != nil {
    return apperr.Internal(err)
  }
  us.log.Info("account deleted", "user_id", userID, "documents_deleted", deleted)
  return nil
}

func (us *userService) load(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in first")
  }
  profile, err := us.userRepo.GetByID(ctx, userID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return nil, apperr.NotFound("user not found")
    }
    return nil, apperr.Internal(err)
  }
  return profile, nil
}

func (us *userService) save(ctx context.Context, profile *types.UserProfile) error {
  batch := us.store.NewBatch()
  us.userRepo.Put(batch, profile)
  if err := us.store.Commit(ctx, batch); err != nil {
    return apperr.Internal(err)
  }
  return nil
}
