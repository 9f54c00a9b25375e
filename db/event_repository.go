package db

import (
	"context"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventRepository struct {
	AbstractRepository[models.EventModel]
}

func (r *EventRepository) Create(ctx context.Context, event *models.EventModel) error {
	if err := validateEvent(event); err != nil {
		return err
	}
	if event.Attendants == nil {
		// $addToSet needs an array, not null.
		event.Attendants = []primitive.ObjectID{}
	}
	if event.CreatedOn == 0 {
		event.CreatedOn = time.Now().Unix()
	}
	return <-r.Save(ctx, event.Id(), event)
}

func (r *EventRepository) FindById(ctx context.Context, id primitive.ObjectID) (*models.EventModel, error) {
	resultChan, errChan := r.FindOneById(ctx, id)
	return await(resultChan, errChan)
}

func (r *EventRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) (*models.EventModel, error) {
	existing, err := r.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Apply(patch)
	if err := validateEvent(existing); err != nil {
		return nil, err
	}

	// only the patched fields are written, so a concurrent join is not lost.
	resultChan, errChan := r.UpdateById(ctx, id, bson.M{"$set": bson.M{
		"name":        patch.Name,
		"description": patch.Description,
		"date":        patch.Date,
		"location":    patch.Location,
	}})
	return await(resultChan, errChan)
}

func (r *EventRepository) AddAttendant(ctx context.Context, id, userId primitive.ObjectID) error {
	return r.updateAttendants(ctx, id, bson.M{"$addToSet": bson.M{"attendants": userId}})
}

func (r *EventRepository) RemoveAttendant(ctx context.Context, id, userId primitive.ObjectID) error {
	return r.updateAttendants(ctx, id, bson.M{"$pull": bson.M{"attendants": userId}})
}

func (r *EventRepository) updateAttendants(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	matchedChan, errChan := r.UpdateOne(ctx, bson.M{"_id": id}, update)
	matched, err := await(matchedChan, errChan)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return <-r.DeleteById(ctx, id)
}

func (r *EventRepository) FindByOwner(ctx context.Context, userId primitive.ObjectID) ([]models.EventModel, error) {
	resultChan, errChan := r.Find(ctx, bson.M{"owner": userId}, bson.D{{Key: "date", Value: 1}}, 0, 0)
	return await(resultChan, errChan)
}

func (r *EventRepository) FindByAttendant(ctx context.Context, userId primitive.ObjectID) ([]models.EventModel, error) {
	resultChan, errChan := r.Find(ctx, bson.M{"attendants": userId}, bson.D{{Key: "date", Value: 1}}, 0, 0)
	return await(resultChan, errChan)
}
