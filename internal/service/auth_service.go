package service

import (
	"errors"
	"time"

	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/repository"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMissingCredentials = errors.New("all fields are required")
	ErrInvalidRole        = errors.New("role must be creator or consumer")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepo      *repository.UserRepository
	sessionSecret string
	sessionTTL    time.Duration
	environment   string
}

func NewAuthService(userRepo *repository.UserRepository, sessionSecret string, sessionTTL time.Duration, environment string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

func (s *AuthService) Register(username, password string, role models.Role) (*models.User, error) {
	logger.Log.Debug("Processing user registration",
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	if username == "" || password == "" || role == "" {
		return nil, ErrMissingCredentials
	}
	if !models.ValidRole(role) {
		logger.Log.Warn("Registration with unknown role",
			zap.String("username", username),
			zap.String("role", string(role)),
		)
		return nil, ErrInvalidRole
	}

	existingUser, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	if existingUser != nil {
		logger.Log.Warn("Username already exists",
			zap.String("username", username),
		)
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.Error("Failed to create user in database",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return user, nil
}

// Login verifies credentials and issues a signed session token. A missing
// user and a wrong password both fail with ErrInvalidCredentials so the
// response never reveals whether the username exists.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	logger.Log.Debug("Processing user login",
		zap.String("username", username),
	)

	if username == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(user, s.sessionSecret, s.sessionTTL)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return user, token, nil
}

func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Log.Error("Failed to get user by ID",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
