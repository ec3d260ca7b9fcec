package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
  "github.com/corpfinity/corpfinity-backend/internal/requestdata"
)

type UserOut struct {
  ID       uint   `json:"id"`
  Username string `json:"username"`
  Email    string `json:"email"`
}

type UserService interface {
  GetMe(ctx context.Context) (*UserOut, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*UserOut, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == 0 {
    return nil, fmt.Errorf("No request data found in context")
  }
  users, err := us.userRepo.GetByIDs(ctx, nil, []uint{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }
  return toUserOut(users[0]), nil
}

func toUserOut(u *types.User) *UserOut {
  return &UserOut{ID: u.ID, Username: u.Username, Email: u.Email}
}
