package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CrowderSoup/godolist/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionTTL is how long a session token stays valid.
const sessionTTL = 7 * 24 * time.Hour

type AuthService struct {
	jwtSecret []byte
	now       func() time.Time
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
		now:       time.Now,
	}
}

// UserFor builds the user for a sign-in identity. The uid is derived from
// the email, so signing in again yields the same user.
func (s *AuthService) UserFor(email, displayName, photoURL string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, errors.New("invalid email address")
	}
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}
	return models.User{
		UID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
	}, nil
}

// CreateJWT generates a session token carrying the user.
func (s *AuthService) CreateJWT(user models.User) (string, error) {
	now := s.now()
	claims := models.SessionClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyJWT verifies a session token and returns its user.
func (s *AuthService) VerifyJWT(tokenString string) (*models.User, error) {
	var claims models.SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UID == "" {
		return nil, errors.New("uid claim missing")
	}

	user := claims.User
	return &user, nil
}
