package extensions

import (
	"errors"
	"testing"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIssueAndParseToken(t *testing.T) {
	client := NewAuthClient("secret", time.Hour)
	user := &models.UserModel{UserId: primitive.NewObjectID(), Name: "Ada"}

	token, err := client.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	session, err := client.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if session.UserId != user.UserId || session.Name != "Ada" {
		t.Errorf("ParseToken() = %+v, want %v/Ada", session, user.UserId)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	user := &models.UserModel{UserId: primitive.NewObjectID(), Name: "Ada"}
	token, err := NewAuthClient("one", time.Hour).IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	_, err = NewAuthClient("two", time.Hour).ParseToken(token)
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("ParseToken() error = %v, want ErrInvalidSession", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	client := NewAuthClient("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	client.now = func() time.Time { return issued }

	token, err := client.IssueToken(&models.UserModel{UserId: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	client.now = time.Now
	if _, err := client.ParseToken(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("ParseToken() error = %v, want ErrInvalidSession", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := NewAuthClient("secret", time.Hour).ParseToken("not-a-token"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("ParseToken() error = %v, want ErrInvalidSession", err)
	}
}
