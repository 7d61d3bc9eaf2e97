package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/normalization"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/requestdata"
  "github.com/easylearn/easylearn-backend/internal/types"
  "github.com/easylearn/easylearn-backend/internal/utils"
)

type AuthService interface {
  RegisterUser(ctx context.Context, in *utils.RegistrationInput) (*types.User, string, string, error)
  LoginUser(ctx context.Context, email, password string) (string, string, error)
  RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  return &authService{
    db:            db,
    log:           baseLog.With("service", "AuthService"),
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, in *utils.RegistrationInput) (*types.User, string, string, error) {
  if in != nil {
    in.Username = normalization.ParseInputString(in.Username)
    in.Email = normalization.ParseInputString(in.Email)
    in.Password = normalization.TrimInputString(in.Password)
    in.Password2 = normalization.TrimInputString(in.Password2)
  }
  if vErr := utils.ValidateRegistration(ctx, as.userRepo, as.log, in); vErr != nil {
    return nil, "", "", fmt.Errorf("%w: %s", ErrValidation, vErr.Error())
  }

  user := &types.User{
    ID:       uuid.New(),
    Username: in.Username,
    Email:    in.Email,
    Password: in.Password,
  }
  if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
    return nil, "", "", hErr
  }

  var accessToken, refreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
      return fmt.Errorf("create user: %w", err)
    }
    var issueErr error
    accessToken, refreshToken, issueErr = as.issueTokens(ctx, tx, user)
    return issueErr
  })
  if err != nil {
    as.log.Error("RegisterUser failed", "error", err)
    return nil, "", "", err
  }
  return user, accessToken, refreshToken, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  email = normalization.ParseInputString(email)
  password = normalization.TrimInputString(password)

  if vErr := utils.ValidateLogin(email, password); vErr != nil {
    return "", "", fmt.Errorf("%w: %s", ErrValidation, vErr.Error())
  }

  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return "", "", fmt.Errorf("retrieve user by email: %w", err)
  }
  if len(users) == 0 {
    return "", "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
  }
  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
  }

  var accessToken, refreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    var issueErr error
    accessToken, refreshToken, issueErr = as.issueTokens(ctx, tx, user)
    return issueErr
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
  if refreshToken == "" {
    return "", "", fmt.Errorf("%w: missing refresh token", ErrUnauthorized)
  }

  tokenRow, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
  if err != nil {
    return "", "", fmt.Errorf("lookup refresh token: %w", err)
  }
  if tokenRow == nil || tokenRow.ExpiresAt.Before(time.Now()) {
    return "", "", fmt.Errorf("%w: refresh token invalid or expired", ErrUnauthorized)
  }

  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{tokenRow.UserID})
  if err != nil || len(users) == 0 {
    return "", "", fmt.Errorf("%w: user for refresh token not found", ErrUnauthorized)
  }
  user := users[0]

  var accessToken, newRefreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{tokenRow.ID}); dErr != nil {
      return fmt.Errorf("delete rotated token: %w", dErr)
    }
    var issueErr error
    accessToken, newRefreshToken, issueErr = as.issueTokens(ctx, tx, user)
    return issueErr
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  userID := requestdata.ActingUserID(ctx)
  if userID == uuid.Nil {
    return fmt.Errorf("%w: not logged in", ErrUnauthorized)
  }
  if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{userID}); err != nil {
    return fmt.Errorf("delete user tokens: %w", err)
  }
  return nil
}

// SetContextFromToken validates the access token and installs the acting user
// into the request context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := jwt.MapClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return ctx, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
  }

  sub, _ := claims["sub"].(string)
  userID, err := uuid.Parse(sub)
  if err != nil {
    return ctx, fmt.Errorf("%w: malformed token subject", ErrUnauthorized)
  }
  username, _ := claims["username"].(string)

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    Username:    username,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub":      user.ID.String(),
    "username": user.Username,
    "iat":      now.Unix(),
    "exp":      now.Add(as.accessTTL).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  accessToken, err := token.SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    return "", "", fmt.Errorf("sign access token: %w", err)
  }

  refreshToken := uuid.New().String()
  userToken := &types.UserToken{
    ID:           uuid.New(),
    UserID:       user.ID,
    AccessToken:  accessToken,
    RefreshToken: refreshToken,
    ExpiresAt:    now.Add(as.refreshTTL),
  }
  if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
    return "", "", fmt.Errorf("create user token: %w", err)
  }
  return accessToken, refreshToken, nil
}
