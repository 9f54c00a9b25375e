package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserModel struct {
	UserId       primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedOn    int64              `bson:"createdOn" json:"createdOn"`
}

func (m *UserModel) Id() primitive.ObjectID {
	if m.UserId.IsZero() {
		m.UserId = primitive.NewObjectID()
	}
	return m.UserId
}
