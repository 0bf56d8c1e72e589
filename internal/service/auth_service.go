package service

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/logger"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
)

const tokenTTL = 30 * 24 * time.Hour

// User is the API-facing account representation; the password hash never
// leaves the service layer.
type User struct {
	ID          int64     `json:"id,string"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatarUrl"`
	MemberSince time.Time `json:"memberSince"`
	LastSeen    time.Time `json:"lastSeen"`
}

// AuthResponse is returned after successful login/register.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AuthService provides registration, login and account management.
type AuthService interface {
	// Register creates a new account with a unique username and email.
	Register(ctx context.Context, username, email, password string) (*AuthResponse, error)
	// Login authenticates by email, bumps last_seen and returns a JWT token.
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	// ValidateToken validates a JWT token and returns the user ID it carries.
	ValidateToken(token string) (int64, error)
	// GetUser returns the account for id.
	GetUser(ctx context.Context, id int64) (*User, error)
	// UpdateBio sanitizes and stores the free-text bio.
	UpdateBio(ctx context.Context, id int64, bio string) (*User, error)
	// DeleteAccount removes the account and, via cascade, its summaries.
	DeleteAccount(ctx context.Context, id int64) error
}

type authService struct {
	users     repository.UserRepository
	jwtSecret []byte
	sanitizer *bluemonday.Policy
}

// NewAuthService creates a new auth service. An empty secret gets replaced by
// a random per-process one, which invalidates tokens on restart.
func NewAuthService(users repository.UserRepository, jwtSecret string) AuthService {
	secret := []byte(jwtSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic(fmt.Sprintf("generate jwt secret: %v", err))
		}
		logger.Warn("jwt secret not configured, sessions will not survive restarts",
			"module", "auth", "action", "init", "resource", "auth", "result", "ok")
	}
	return &authService{
		users:     users,
		jwtSecret: secret,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.generateToken(created.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("user registered",
		"module", "auth", "action", "register", "resource", "user", "result", "ok",
		"user_id", created.ID, "username", username)

	return &AuthResponse{Token: token, User: toUser(&created)}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	if err := s.users.UpdateLastSeen(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("update last seen: %w", err)
	}
	user.LastSeen = time.Now().UTC()

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: toUser(user)}, nil
}

func (s *authService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUser(user), nil
}

func (s *authService) UpdateBio(ctx context.Context, id int64, bio string) (*User, error) {
	bio = strings.TrimSpace(s.sanitizer.Sanitize(bio))

	if err := s.users.UpdateBio(ctx, id, bio); err != nil {
		return nil, fmt.Errorf("update bio: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *authService) DeleteAccount(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	logger.Info("user deleted",
		"module", "auth", "action", "delete", "resource", "user", "result", "ok",
		"user_id", id)
	return nil
}

func (s *authService) generateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func toUser(u *model.User) *User {
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Bio:         u.Bio,
		AvatarURL:   gravatarURL(u.Email),
		MemberSince: u.MemberSince,
		LastSeen:    u.LastSeen,
	}
}

// gravatarURL generates a Gravatar URL for the given email.
func gravatarURL(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=mp&s=80", hex.EncodeToString(hash[:]))
}
