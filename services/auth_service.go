package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/config"
	"restaurants/models"
)

type AuthService struct {
	DB        *gorm.DB
	Cache     *cache.Service
	TTL       config.CacheTTL
	JWTSecret string
	JWTExpiry time.Duration
}

func NewAuthService(db *gorm.DB, c *cache.Service, cfg config.Config) *AuthService {
	return &AuthService{
		DB:        db,
		Cache:     c,
		TTL:       cfg.CacheTTL,
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiry,
	}
}

type RegisterInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	UserID      uint        `json:"user_id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput, ip string) (AuthResponse, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", input.Email).Count(&existing).Error; err != nil {
		return AuthResponse{}, err
	}
	if existing > 0 {
		return AuthResponse{}, fmt.Errorf("email %s: %w", input.Email, ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
		Role:     role,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return AuthResponse{}, fmt.Errorf("email %s: %w", input.Email, ErrConflict)
		}
		return AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	s.Cache.Delete(ctx, cache.KeyAdminStats)
	log.Printf("[AUTH] registered %s (ID: %d) from IP: %s", user.Email, user.ID, ip)

	return s.respond(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput, ip string) (AuthResponse, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", input.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[AUTH] failed login %s from IP: %s - user not found", input.Email, ip)
		return AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		log.Printf("[AUTH] failed login %s from IP: %s - invalid password", input.Email, ip)
		return AuthResponse{}, ErrInvalidCredentials
	}

	log.Printf("[AUTH] login %s (ID: %d) from IP: %s", user.Email, user.ID, ip)
	return s.respond(user)
}

func (s *AuthService) respond(user models.User) (AuthResponse, error) {
	token, err := GenerateToken(UserInfo{UserId: user.ID, Role: user.Role}, s.JWTSecret, s.JWTExpiry)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResponse{
		AccessToken: token,
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
	}, nil
}

// Profile returns the user behind a token.
func (s *AuthService) Profile(ctx context.Context, userID uint) (models.User, error) {
	key := s.Cache.GenerateKey(cache.KeyUser, cache.IDParams{ID: userID})

	var user models.User
	if s.Cache.Get(ctx, key, &user) {
		return user, nil
	}

	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return user, err
	}

	s.Cache.Set(ctx, key, user, s.TTL.Long)
	return user, nil
}
