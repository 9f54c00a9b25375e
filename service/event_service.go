package service

import (
	"context"

	"github.com/Kotlang/eventsGo/db"
	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/models"
	"github.com/thoas/go-funk"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventDetail is what the detail page renders.
type EventDetail struct {
	*extensions.EventInfo
	FormattedDate    string
	ButtonPermission bool
	JoinedEvent      bool
}

// EventEdit is what the edit form renders.
type EventEdit struct {
	Event         *models.EventModel
	FormattedDate string
}

type EventService struct {
	db db.EventsDbInterface
}

func NewEventService(db db.EventsDbInterface) *EventService {
	return &EventService{
		db: db,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, user *extensions.SessionUser, form EventForm) (*models.EventModel, error) {
	if user == nil {
		return nil, errUnauthenticated
	}

	input, err := ValidateEventForm(form)
	if err != nil {
		return nil, err
	}

	eventModel, err := input.ToModel(user.UserId)
	if err != nil {
		return nil, newError(KindBackend, "Failed mapping event", err)
	}

	if err := s.db.Event().Create(ctx, eventModel); err != nil {
		logger.Error("Failed to create event", zap.Error(err))
		return nil, fromStore(err, "Failed to create event")
	}

	logger.Info("Created event",
		zap.String("eventId", eventModel.EventId.Hex()),
		zap.String("owner", user.UserId.Hex()))
	return eventModel, nil
}

func (s *EventService) GetEventDetail(ctx context.Context, user *extensions.SessionUser, eventId string) (*EventDetail, error) {
	if user == nil {
		return nil, errUnauthenticated
	}

	eventModel, err := s.findEvent(ctx, eventId)
	if err != nil {
		return nil, err
	}

	infoChan, errChan := extensions.AttachEventInfoAsync(ctx, s.db, eventModel)
	select {
	case info := <-infoChan:
		return &EventDetail{
			EventInfo:        info,
			FormattedDate:    extensions.FormatForDisplay(eventModel.Date),
			ButtonPermission: eventModel.IsOwner(user.UserId),
			JoinedEvent:      isAttendant(eventModel, user.UserId),
		}, nil
	case err := <-errChan:
		return nil, newError(KindBackend, "Failed loading event attendants", err)
	}
}

// GetEvent needs no session; the map widget reads it.
func (s *EventService) GetEvent(ctx context.Context, eventId string) (*models.EventModel, error) {
	return s.findEvent(ctx, eventId)
}

func (s *EventService) DeleteEvent(ctx context.Context, user *extensions.SessionUser, eventId string, ownerOnly bool) error {
	if user == nil {
		return errUnauthenticated
	}

	id, err := ParseObjectId(eventId)
	if err != nil {
		return err
	}

	if ownerOnly {
		if _, err := s.findOwnedEvent(ctx, user, id); err != nil {
			return err
		}
	}

	if err := s.db.Event().Delete(ctx, id); err != nil {
		logger.Error("Failed to delete event", zap.Error(err))
		return fromStore(err, "Failed to delete event")
	}
	return nil
}

func (s *EventService) JoinEvent(ctx context.Context, user *extensions.SessionUser, eventId string) error {
	if user == nil {
		return errUnauthenticated
	}

	id, err := ParseObjectId(eventId)
	if err != nil {
		return err
	}

	if err := s.db.Event().AddAttendant(ctx, id, user.UserId); err != nil {
		logger.Error("Failed to join event", zap.Error(err))
		return fromStore(err, "Event not found")
	}
	return nil
}

func (s *EventService) UnjoinEvent(ctx context.Context, user *extensions.SessionUser, eventId string) error {
	if user == nil {
		return errUnauthenticated
	}

	id, err := ParseObjectId(eventId)
	if err != nil {
		return err
	}

	if err := s.db.Event().RemoveAttendant(ctx, id, user.UserId); err != nil {
		logger.Error("Failed to unjoin event", zap.Error(err))
		return fromStore(err, "Event not found")
	}
	return nil
}

func (s *EventService) GetEventForEdit(ctx context.Context, user *extensions.SessionUser, eventId string, ownerOnly bool) (*EventEdit, error) {
	if user == nil {
		return nil, errUnauthenticated
	}

	id, err := ParseObjectId(eventId)
	if err != nil {
		return nil, err
	}

	var eventModel *models.EventModel
	if ownerOnly {
		eventModel, err = s.findOwnedEvent(ctx, user, id)
	} else {
		eventModel, err = s.db.Event().FindById(ctx, id)
		err = fromStore(err, "Event not found")
	}
	if err != nil {
		return nil, err
	}

	return &EventEdit{
		Event:         eventModel,
		FormattedDate: extensions.FormatForEditForm(eventModel.Date),
	}, nil
}

// UpdateEvent overwrites name, date, description and location. Owner and
// attendants are left as they are.
func (s *EventService) UpdateEvent(ctx context.Context, user *extensions.SessionUser, eventId string, form EventForm, ownerOnly bool) (*models.EventModel, error) {
	if user == nil {
		return nil, errUnauthenticated
	}

	id, err := ParseObjectId(eventId)
	if err != nil {
		return nil, err
	}

	input, err := ValidateEventForm(form)
	if err != nil {
		return nil, err
	}

	if ownerOnly {
		if _, err := s.findOwnedEvent(ctx, user, id); err != nil {
			return nil, err
		}
	}

	eventModel, err := s.db.Event().Update(ctx, id, input.Patch())
	if err != nil {
		logger.Error("Failed to update event", zap.Error(err))
		return nil, fromStore(err, "Event not found")
	}
	return eventModel, nil
}

func (s *EventService) findEvent(ctx context.Context, eventId string) (*models.EventModel, error) {
	id, err := ParseObjectId(eventId)
	if err != nil {
		return nil, err
	}

	eventModel, err := s.db.Event().FindById(ctx, id)
	if err != nil {
		return nil, fromStore(err, "Event not found")
	}
	return eventModel, nil
}

func (s *EventService) findOwnedEvent(ctx context.Context, user *extensions.SessionUser, id primitive.ObjectID) (*models.EventModel, error) {
	eventModel, err := s.db.Event().FindById(ctx, id)
	if err != nil {
		return nil, fromStore(err, "Event not found")
	}
	if !eventModel.IsOwner(user.UserId) {
		return nil, newError(KindForbidden, "Only the owner can change this event", nil)
	}
	return eventModel, nil
}

func isAttendant(eventModel *models.EventModel, userId primitive.ObjectID) bool {
	return funk.Contains(eventModel.Attendants, userId)
}
