package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	eventCollection = "events"
	userCollection  = "users"
)

type MongoEventsDb struct {
	client   *mongo.Client
	database *mongo.Database
}

// ConnectMongo connects and pings the server, then makes sure the indexes
// the repositories rely on exist.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoEventsDb, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := &MongoEventsDb{client: client, database: client.Database(dbName)}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return db, nil
}

func (db *MongoEventsDb) EnsureIndexes(ctx context.Context) error {
	_, err := db.database.Collection(eventCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "attendants", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating event indexes: %w", err)
	}

	_, err = db.database.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user indexes: %w", err)
	}
	return nil
}

func (db *MongoEventsDb) Event() EventRepositoryInterface {
	return &EventRepository{NewAbstractRepository[models.EventModel](db.database, eventCollection)}
}

func (db *MongoEventsDb) User() UserRepositoryInterface {
	return &UserRepository{NewAbstractRepository[models.UserModel](db.database, userCollection)}
}

func (db *MongoEventsDb) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
