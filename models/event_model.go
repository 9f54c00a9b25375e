package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PointType = "Point"

// Location is a GeoJSON point. Coordinates are [longitude, latitude].
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewPoint(longitude, latitude float64) Location {
	return Location{
		Type:        PointType,
		Coordinates: []float64{longitude, latitude},
	}
}

func (l Location) Longitude() float64 {
	if len(l.Coordinates) != 2 {
		return 0
	}
	return l.Coordinates[0]
}

func (l Location) Latitude() float64 {
	if len(l.Coordinates) != 2 {
		return 0
	}
	return l.Coordinates[1]
}

type EventModel struct {
	EventId     primitive.ObjectID   `bson:"_id" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Date        time.Time            `bson:"date" json:"date"`
	Location    Location             `bson:"location" json:"location"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Attendants  []primitive.ObjectID `bson:"attendants" json:"attendants"`
	CreatedOn   int64                `bson:"createdOn" json:"createdOn"`
}

// EventPatch is the set of fields an update may overwrite. Owner and
// attendants are never part of it.
type EventPatch struct {
	Name        string
	Description string
	Date        time.Time
	Location    Location
}

func (m *EventModel) Id() primitive.ObjectID {
	if m.EventId.IsZero() {
		m.EventId = primitive.NewObjectID()
	}
	return m.EventId
}

func (m *EventModel) Apply(patch EventPatch) {
	m.Name = patch.Name
	m.Description = patch.Description
	m.Date = patch.Date
	m.Location = patch.Location
}

func (m *EventModel) IsOwner(userId primitive.ObjectID) bool {
	return !userId.IsZero() && m.Owner == userId
}

// Validate checks the document level invariants that every stored event keeps.
func (m *EventModel) Validate() error {
	var errs []error
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(m.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if m.Date.IsZero() {
		errs = append(errs, errors.New("date is required"))
	}
	if m.Owner.IsZero() {
		errs = append(errs, errors.New("owner is required"))
	}
	if m.Location.Type != PointType || len(m.Location.Coordinates) != 2 {
		errs = append(errs, errors.New("location must be a point with two coordinates"))
	}
	return errors.Join(errs...)
}
