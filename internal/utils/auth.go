package utils

import (
  "context"
  "fmt"
  "golang.org/x/crypto/bcrypt"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/normalization"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type RegistrationInput struct {
  Username  string
  Email     string
  Password  string
  Password2 string
}

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, in *RegistrationInput) error {
  if in == nil {
    return fmt.Errorf("no registration input given")
  }
  if in.Username == "" {
    return fmt.Errorf("a username is required to register")
  }
  if in.Email == "" {
    return fmt.Errorf("an email is required to register")
  }
  if in.Password == "" {
    return fmt.Errorf("a password is required to register")
  }
  if in.Password != in.Password2 {
    return fmt.Errorf("the two passwords did not match")
  }
  usernameExists, err := userRepo.UsernameExists(ctx, nil, in.Username)
  if err != nil {
    return fmt.Errorf("failed to check username: %w", err)
  }
  if usernameExists {
    return fmt.Errorf("username is already in use")
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, in.Email)
  if err != nil {
    return fmt.Errorf("failed to check user email: %w", err)
  }
  if emailExists {
    return fmt.Errorf("email is already in use")
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return fmt.Errorf("email is required to login")
  }
  if password == "" {
    return fmt.Errorf("password is required to login")
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.Username = normalization.ParseInputString(user.Username)
  user.Password = normalization.TrimInputString(user.Password)
}
