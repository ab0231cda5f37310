package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/parkatlas/core/internal/models"
	"github.com/parkatlas/core/internal/pkg/jwt"
	"github.com/parkatlas/core/internal/repository"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidCredential = errors.New("invalid username or password")
)

// failureDelay slows credential-stuffing; overridden to zero in tests.
var failureDelay = 3 * time.Second

type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Register creates an account and returns a signed session token. Registration
// is open; the first failure mode is the username being taken.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, string, error) {
	existing, err := s.users.ByUsername(dto.Username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.UserModel{
		Username: dto.Username,
		Name:     dto.Name,
		Password: string(hashed),
	}
	if err := s.users.Create(&user); err != nil {
		// The unique index closes the window between the lookup above and
		// this insert.
		if repository.IsDuplicate(err) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// CurrentUser resolves a session's user by ID. Returns (nil, nil) when the
// account no longer exists.
func (s *Service) CurrentUser(id string) (*models.UserModel, error) {
	return s.users.ByID(id)
}

// Login verifies credentials and returns a signed session token. Failures are
// indistinguishable between unknown user and wrong password, and both pay the
// same delay.
func (s *Service) Login(dto *LoginDTO) (*models.UserModel, string, error) {
	user, err := s.users.ByUsername(dto.Username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		time.Sleep(failureDelay)
		return nil, "", ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		time.Sleep(failureDelay)
		return nil, "", ErrInvalidCredential
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
