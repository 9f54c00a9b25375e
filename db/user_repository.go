package db

import (
	"context"
	"strings"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	AbstractRepository[models.UserModel]
}

func (r *UserRepository) Save(ctx context.Context, user *models.UserModel) error {
	user.Email = normalizeEmail(user.Email)
	if user.CreatedOn == 0 {
		user.CreatedOn = time.Now().Unix()
	}
	err := <-r.AbstractRepository.Save(ctx, user.Id(), user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) FindById(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error) {
	resultChan, errChan := r.FindOneById(ctx, id)
	return await(resultChan, errChan)
}

func (r *UserRepository) FindByIds(ctx context.Context, ids []primitive.ObjectID) ([]models.UserModel, error) {
	if len(ids) == 0 {
		return []models.UserModel{}, nil
	}
	resultChan, errChan := r.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.D{{Key: "name", Value: 1}}, 0, 0)
	return await(resultChan, errChan)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	resultChan, errChan := r.FindOne(ctx, bson.M{"email": normalizeEmail(email)})
	return await(resultChan, errChan)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
