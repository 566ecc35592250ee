package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/repository"
)

const (
	jwtExpHours = 24
	bcryptCost  = 10
)

// UserService handles admin-portal accounts and session tokens.
type UserService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// CreateUserInput is the payload for creating an account.
type CreateUserInput struct {
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	UserType string  `json:"userType"`
	Phone    *string `json:"phone"`
}

// CreateUser creates a new account. Email is case-normalized and must be
// unique.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.FullName == "" || input.Email == "" || input.Password == "" || input.UserType == "" {
		return nil, Invalid("All fields are required")
	}

	userType := models.UserType(strings.ToUpper(input.UserType))
	if userType != models.UserTypeAdmin && userType != models.UserTypeUser {
		return nil, Invalid("Invalid user type")
	}

	email := normalizeEmail(input.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, Invalid("User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Internal("Failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, Internal("Failed to hash password", err)
	}

	user := &models.User{
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     userType,
		Phone:        input.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, Internal("Failed to create user", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", Invalid("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", Unauthorized("Invalid email or password")
		}
		return nil, "", Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", Unauthorized("Invalid email or password")
	}

	token, err := s.GenerateJWT(user.ID, user.UserType)
	if err != nil {
		return nil, "", Internal("Failed to generate token", err)
	}
	return user, token, nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, Internal("Failed to list users", err)
	}
	return users, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return Invalid("Invalid user id")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("User not found")
		}
		return Internal("Failed to delete user", err)
	}
	return nil
}

// GenerateJWT generates a session token for a user
func (s *UserService) GenerateJWT(userID int, role models.UserType) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(jwtExpHours * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateJWT validates a session token and returns the user ID and role
func (s *UserService) ValidateJWT(tokenString string) (int, models.UserType, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("user_id not found in token")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", fmt.Errorf("role not found in token")
	}

	return int(userID), models.UserType(role), nil
}
