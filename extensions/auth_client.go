package extensions

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sessionIssuer = "catch-the-light"

var ErrInvalidSession = errors.New("invalid session token")

// SessionUser is the identity carried by a session cookie.
type SessionUser struct {
	UserId primitive.ObjectID
	Name   string
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AuthClient issues and verifies the HS256 tokens stored in the session
// cookie.
type AuthClient struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthClient(secret string, ttl time.Duration) *AuthClient {
	return &AuthClient{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *AuthClient) TTL() time.Duration {
	return c.ttl
}

func (c *AuthClient) IssueToken(user *models.UserModel) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.UserId.Hex(),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *AuthClient) ParseToken(tokenString string) (*SessionUser, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	userId, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	return &SessionUser{UserId: userId, Name: claims.Name}, nil
}
