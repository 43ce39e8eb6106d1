package auth

import (
	"context"
	"errors"
	"strings"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string, isStaff bool) (string, error)
}

type Service struct {
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	jwt      jwtService
}

func NewService(users *repository.UserRepository, profiles *repository.ProfileRepository, jwt jwtService) *Service {
	return &Service{users: users, profiles: profiles, jwt: jwt}
}

// Register creates the account together with its empty profile in one
// transaction and returns a ready-to-use token payload.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	if req.Password != req.RepeatedPassword {
		return nil, ErrPasswordMismatch
	}

	role := domain.UserRole(strings.ToLower(strings.TrimSpace(req.Type)))
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	username := strings.TrimSpace(req.Username)
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameAlreadyTaken
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}

	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.IsStaff)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.IsStaff)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}
