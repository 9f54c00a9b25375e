package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AbstractRepository maps one collection onto model type T. Every call runs
// in its own goroutine and delivers exactly one value on either the result
// channel or the error channel. Both channels are buffered so an abandoned
// call never blocks its goroutine.
type AbstractRepository[T any] struct {
	Collection *mongo.Collection
}

func NewAbstractRepository[T any](database *mongo.Database, collectionName string) AbstractRepository[T] {
	return AbstractRepository[T]{Collection: database.Collection(collectionName)}
}

func (r *AbstractRepository[T]) Save(ctx context.Context, id primitive.ObjectID, model *T) chan error {
	errChan := make(chan error, 1)

	go func() {
		opts := options.Replace().SetUpsert(true)
		_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": id}, model, opts)
		errChan <- err
	}()

	return errChan
}

func (r *AbstractRepository[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (chan *T, chan error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *AbstractRepository[T]) FindOne(ctx context.Context, filters bson.M) (chan *T, chan error) {
	resultChan := make(chan *T, 1)
	errChan := make(chan error, 1)

	go func() {
		result := new(T)
		err := r.Collection.FindOne(ctx, filters).Decode(result)
		if err != nil {
			errChan <- translateMongoError(err)
			return
		}
		resultChan <- result
	}()

	return resultChan, errChan
}

func (r *AbstractRepository[T]) Find(ctx context.Context, filters bson.M, sort bson.D, limit, skip int64) (chan []T, chan error) {
	resultChan := make(chan []T, 1)
	errChan := make(chan error, 1)

	go func() {
		opts := options.Find()
		if len(sort) > 0 {
			opts.SetSort(sort)
		}
		if limit > 0 {
			opts.SetLimit(limit)
		}
		if skip > 0 {
			opts.SetSkip(skip)
		}

		cursor, err := r.Collection.Find(ctx, filters, opts)
		if err != nil {
			errChan <- err
			return
		}
		defer cursor.Close(ctx)

		results := []T{}
		if err := cursor.All(ctx, &results); err != nil {
			errChan <- err
			return
		}
		resultChan <- results
	}()

	return resultChan, errChan
}

// UpdateById applies a mongo update document and returns the document as it
// is after the update.
func (r *AbstractRepository[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update bson.M) (chan *T, chan error) {
	resultChan := make(chan *T, 1)
	errChan := make(chan error, 1)

	go func() {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		result := new(T)
		err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(result)
		if err != nil {
			errChan <- translateMongoError(err)
			return
		}
		resultChan <- result
	}()

	return resultChan, errChan
}

// UpdateOne applies a mongo update document and reports how many documents
// matched the filter.
func (r *AbstractRepository[T]) UpdateOne(ctx context.Context, filters, update bson.M) (chan int64, chan error) {
	matchedChan := make(chan int64, 1)
	errChan := make(chan error, 1)

	go func() {
		res, err := r.Collection.UpdateOne(ctx, filters, update)
		if err != nil {
			errChan <- err
			return
		}
		matchedChan <- res.MatchedCount
	}()

	return matchedChan, errChan
}

func (r *AbstractRepository[T]) DeleteById(ctx context.Context, id primitive.ObjectID) chan error {
	errChan := make(chan error, 1)

	go func() {
		_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
		errChan <- err
	}()

	return errChan
}

func translateMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// await blocks until one of the two channels of an AbstractRepository call
// delivers.
func await[T any](resultChan chan T, errChan chan error) (T, error) {
	select {
	case res := <-resultChan:
		return res, nil
	case err := <-errChan:
		var zero T
		return zero, err
	}
}
