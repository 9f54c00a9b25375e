package db

import (
	"context"
	"errors"

	"github.com/Kotlang/eventsGo/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrValidation = errors.New("document failed validation")
	ErrDuplicate  = errors.New("duplicate document")
)

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *models.EventModel) error
	FindById(ctx context.Context, id primitive.ObjectID) (*models.EventModel, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) (*models.EventModel, error)
	AddAttendant(ctx context.Context, id, userId primitive.ObjectID) error
	RemoveAttendant(ctx context.Context, id, userId primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByOwner(ctx context.Context, userId primitive.ObjectID) ([]models.EventModel, error)
	FindByAttendant(ctx context.Context, userId primitive.ObjectID) ([]models.EventModel, error)
}

type UserRepositoryInterface interface {
	Save(ctx context.Context, user *models.UserModel) error
	FindById(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error)
	FindByIds(ctx context.Context, ids []primitive.ObjectID) ([]models.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*models.UserModel, error)
}

// EventsDbInterface is the storage seam the services depend on. Both the
// MongoDB and the SQLite backends implement it.
type EventsDbInterface interface {
	Event() EventRepositoryInterface
	User() UserRepositoryInterface
	Close(ctx context.Context) error
}

func validateEvent(event *models.EventModel) error {
	if err := event.Validate(); err != nil {
		return errors.Join(ErrValidation, err)
	}
	return nil
}
