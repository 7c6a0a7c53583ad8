package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	"github.com/Ricky0403/SoftwareProject/internal/user/domain"
	"github.com/Ricky0403/SoftwareProject/pkg/password"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

type RegisterDTO struct {
	Email    string
	Username string
	Password string
	Phone    string
	City     string
}

// ProfileDTO is the account view handed to transports; it never carries
// the password hash.
type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

type UserService interface {
	Register(ctx context.Context, cmd RegisterDTO) (*ProfileDTO, error)
	Login(ctx context.Context, email, plainPassword string) (*ProfileDTO, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error)
}

type userService struct {
	repo domain.UserRepository
	now  func() time.Time
}

func NewUserService(repo domain.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) Register(ctx context.Context, cmd RegisterDTO) (*ProfileDTO, error) {
	if err := validateRegistration(cmd); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("user service: failed to check email: %w", err)
	}

	n, err := s.repo.NextAccountNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("user service: failed to allocate account number: %w", err)
	}

	hash, err := password.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: failed to hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New(),
		UserID:       fmt.Sprintf("USER%04d", n),
		Email:        email,
		Username:     strings.TrimSpace(cmd.Username),
		PasswordHash: hash,
		Phone:        strings.TrimSpace(cmd.Phone),
		City:         strings.TrimSpace(cmd.City),
		UserType:     domain.TypeClient,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		LastLogin:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user service: failed to create user: %w", err)
	}

	log.Info("User registered",
		zap.String("userID", user.UserID),
		zap.String("email", user.Email),
	)
	return profileFromDomain(user), nil
}

func (s *userService) Login(ctx context.Context, email, plainPassword string) (*ProfileDTO, error) {
	if email == "" || plainPassword == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user service: failed to get user: %w", err)
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrUserNotActive
	}
	if !password.Check(plainPassword, user.PasswordHash) {
		log.Warn("Login rejected: bad password", zap.String("email", user.Email))
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("user service: failed to update last login: %w", err)
	}
	user.LastLogin = s.now()

	log.Info("User logged in", zap.String("userID", user.UserID))
	return profileFromDomain(user), nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	return profileFromDomain(user), nil
}

func validateRegistration(cmd RegisterDTO) error {
	if cmd.Email == "" || cmd.Username == "" || cmd.Password == "" || cmd.Phone == "" || cmd.City == "" {
		return fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(strings.TrimSpace(cmd.Email)) {
		return fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	if len(strings.TrimSpace(cmd.Username)) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters long", domain.ErrInvalidInput)
	}
	if len(cmd.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", domain.ErrInvalidInput)
	}
	if !phonePattern.MatchString(strings.TrimSpace(cmd.Phone)) {
		return fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	return nil
}

func profileFromDomain(u *domain.User) *ProfileDTO {
	return &ProfileDTO{
		ID:        u.ID,
		UserID:    u.UserID,
		Email:     u.Email,
		Username:  u.Username,
		Phone:     u.Phone,
		City:      u.City,
		UserType:  string(u.UserType),
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
