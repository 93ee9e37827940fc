package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/requestdata"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type AuthService interface {
  Register(ctx context.Context, email, displayName, password string) (*types.UserProfile, error)
  Login(ctx context.Context, email, password string) (string, *types.UserProfile, error)
  // SetContextFromToken verifies the token and attaches the caller's
  // identity to the context.
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  log       *logger.Logger
  userRepo  repos.UserRepo
  jwtSecret []byte
  accessTTL time.Duration
  now       func() time.Time
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecret string, accessTTL time.Duration) AuthService {
  return &authService{
    log:       baseLog.With("service", "AuthService"),
    userRepo:  userRepo,
    jwtSecret: []byte(jwtSecret),
    accessTTL: accessTTL,
    now:       time.Now,
  }
}

func (as *authService) Register(ctx context.Context, email, displayName, password string) (*types.UserProfile, error) {
  email = strings.TrimSpace(strings.ToLower(email))
  if email == "" || password == "" {
    return nil, apperr.InvalidArgument("email and password are required")
  }
  if len(password) < 8 {
    return nil, apperr.InvalidArgument("password must be at least 8 characters")
  }

  if _, err := as.userRepo.GetByEmail(ctx, email); err == nil {
    return nil, apperr.InvalidArgument("email already registered")
  } else if err != docstore.ErrNotFound {
    return nil, apperr.Internal(err)
  }

  hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, apperr.Internal(err)
  }

  now := as.now()
  profile := &types.UserProfile{
    ID:               uuid.New(),
    Email:            email,
    DisplayName:      displayName,
    PasswordHash:     string(hash),
    SubscriptionRole: types.RoleFree,
    CreatedAt:        now,
    UpdatedAt:        now,
  }
  if err := as.userRepo.Create(ctx, profile); err != nil {
    return nil, apperr.Internal(err)
  }
  as.log.Info("user registered", "user_id", profile.ID)
  return profile, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.UserProfile, error) {
  email = strings.TrimSpace(strings.ToLower(email))
  profile, err := as.userRepo.GetByEmail(ctx, email)
  if err != nil {
    if err == docstore.ErrNotFound {
      return "", nil, apperr.Unauthenticated("invalid email or password")
    }
    return "", nil, apperr.Internal(err)
  }
  if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
    return "", nil, apperr.Unauthenticated("invalid email or password")
  }

  token, err := as.issueToken(profile.ID)
  if err != nil {
    return "", nil, apperr.Internal(err)
  }
  return token, profile, nil
}

func (as *authService) issueToken(userID uuid.UUID) (string, error) {
  now := as.now()
  claims := jwt.RegisteredClaims{
    Subject:   userID.String(),
    IssuedAt:  jwt.NewNumericDate(now),
    ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
  }
  return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return as.jwtSecret, nil
  })
  if err != nil || !token.Valid {
    return ctx, apperr.Unauthenticated("invalid or expired token")
  }
  claims, ok := token.Claims.(*jwt.RegisteredClaims)
  if !ok {
    return ctx, apperr.Unauthenticated("invalid token claims")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, apperr.Unauthenticated("invalid token subject")
  }
  return requestdata.WithRequestData(ctx, &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
