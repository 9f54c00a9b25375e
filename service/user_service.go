package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/Kotlang/eventsGo/db"
	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type SignupForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// UserProfile is what the profile page renders.
type UserProfile struct {
	User   *models.UserModel
	Owned  []models.EventModel
	Joined []models.EventModel
	IsSelf bool
}

type UserService struct {
	db         db.EventsDbInterface
	bcryptCost int
}

func NewUserService(db db.EventsDbInterface) *UserService {
	return &UserService{db: db, bcryptCost: bcrypt.DefaultCost}
}

func (s *UserService) Signup(ctx context.Context, form SignupForm) (*models.UserModel, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" || email == "" || form.Password == "" {
		return nil, newError(KindValidation, missingFieldsMessage, nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, newError(KindValidation, "The email address is not valid", err)
	}
	if len(form.Password) < minPasswordLength {
		return nil, newError(KindValidation, "The password needs at least 6 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, newError(KindBackend, "Failed hashing password", err)
	}

	user := &models.UserModel{Name: name, Email: email, PasswordHash: string(hash)}
	err = s.db.User().Save(ctx, user)
	if errors.Is(err, db.ErrDuplicate) {
		return nil, newError(KindValidation, "That email is already registered", err)
	}
	if err != nil {
		logger.Error("Failed to save user", zap.Error(err))
		return nil, newError(KindBackend, "Failed to save user", err)
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, form LoginForm) (*models.UserModel, error) {
	if strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return nil, newError(KindValidation, missingFieldsMessage, nil)
	}

	user, err := s.db.User().FindByEmail(ctx, form.Email)
	if errors.Is(err, db.ErrNotFound) {
		return nil, newError(KindValidation, "Invalid email or password", err)
	}
	if err != nil {
		logger.Error("Failed to find user", zap.Error(err))
		return nil, newError(KindBackend, "Failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, newError(KindValidation, "Invalid email or password", err)
	}
	return user, nil
}

// GetProfile loads a user with the events they own and the events they joined.
func (s *UserService) GetProfile(ctx context.Context, viewer *extensions.SessionUser, userId string) (*UserProfile, error) {
	if viewer == nil {
		return nil, errUnauthenticated
	}

	id, err := ParseObjectId(userId)
	if err != nil {
		return nil, err
	}

	user, err := s.db.User().FindById(ctx, id)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}

	owned, err := s.db.Event().FindByOwner(ctx, id)
	if err != nil {
		return nil, fromStore(err, "Failed loading events")
	}
	joined, err := s.db.Event().FindByAttendant(ctx, id)
	if err != nil {
		return nil, fromStore(err, "Failed loading events")
	}

	return &UserProfile{
		User:   user,
		Owned:  owned,
		Joined: joined,
		IsSelf: viewer.UserId == id,
	}, nil
}
