package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/models"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// All input validations should be added here.

const missingFieldsMessage = "You have to fill all the fields"

// EventForm is the raw body of the create and update forms.
type EventForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Date        string `form:"date"`
	Longitude   string `form:"longitude"`
	Latitude    string `form:"latitude"`
}

// EventInput is a parsed EventForm.
type EventInput struct {
	Name        string
	Description string
	Date        time.Time
	Longitude   float64
	Latitude    float64
}

func (in *EventInput) Location() models.Location {
	return models.NewPoint(in.Longitude, in.Latitude)
}

func (in *EventInput) Patch() models.EventPatch {
	return models.EventPatch{
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location(),
	}
}

// ToModel maps the input onto a new event owned by owner.
func (in *EventInput) ToModel(owner primitive.ObjectID) (*models.EventModel, error) {
	event := &models.EventModel{}
	if err := copier.Copy(event, in); err != nil {
		return nil, err
	}
	event.Location = in.Location()
	event.Owner = owner
	event.Attendants = []primitive.ObjectID{}
	return event, nil
}

// ValidateEventForm requires every field to be present, the date to parse and
// the coordinates to be numbers inside their ranges.
func ValidateEventForm(form EventForm) (*EventInput, error) {
	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)
	if name == "" || description == "" ||
		strings.TrimSpace(form.Date) == "" ||
		strings.TrimSpace(form.Longitude) == "" ||
		strings.TrimSpace(form.Latitude) == "" {
		return nil, newError(KindValidation, missingFieldsMessage, nil)
	}

	date, err := extensions.ParseSubmittedDate(form.Date)
	if err != nil {
		return nil, newError(KindValidation, "The date is not valid", err)
	}

	longitude, err := parseCoordinate(form.Longitude, 180)
	if err != nil {
		return nil, newError(KindValidation, "Longitude must be a number between -180 and 180", err)
	}
	latitude, err := parseCoordinate(form.Latitude, 90)
	if err != nil {
		return nil, newError(KindValidation, "Latitude must be a number between -90 and 90", err)
	}

	return &EventInput{
		Name:        name,
		Description: description,
		Date:        date,
		Longitude:   longitude,
		Latitude:    latitude,
	}, nil
}

var errOutOfRange = errors.New("coordinate out of range")

func parseCoordinate(value string, limit float64) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if f < -limit || f > limit {
		return 0, errOutOfRange
	}
	return f, nil
}

// ParseObjectId validates a store-native identifier.
func ParseObjectId(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, newError(KindInvalidIdentifier, "invalid identifier", err)
	}
	return oid, nil
}
