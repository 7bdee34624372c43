package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this username or email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrInvalidUsername      = errors.New("username may only contain letters, digits, '.', '_' and '-'")
	ErrUserNotFound         = errors.New("user not found")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// Usernames end up in export file names, so path separators are never allowed.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// TokenIssuer is the "iss" claim of issued tokens.
const TokenIssuer = "liftlog"

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, errors.New("username, email, and password cannot be empty")
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	if err := s.ensureFree(ctx, s.userRepo.GetByUsername, username); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.userRepo.GetByEmail, email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// lost a race with a concurrent registration; the unique index caught it
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) ensureFree(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), value string) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}
	return nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, username, password string) (token string, user *domain.User, err error) {
	if username == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	user, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetUser returns the user without its password hash.
func (s *authService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// --- JWT Helper ---

// Claims is the JWT payload shared with the API middleware.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}
