package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupTestDB(t *testing.T) *SqliteEventsDb {
	t.Helper()
	db, err := ConnectSqlite(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(context.Background()); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func newTestEvent(owner primitive.ObjectID) *models.EventModel {
	return &models.EventModel{
		Name:        "Northern lights watch",
		Description: "Bring a tripod",
		Date:        time.Date(2026, 12, 1, 22, 0, 0, 0, time.UTC),
		Location:    models.NewPoint(18.9553, 69.6492),
		Owner:       owner,
	}
}

func createTestEvent(t *testing.T, db *SqliteEventsDb, owner primitive.ObjectID) *models.EventModel {
	t.Helper()
	event := newTestEvent(owner)
	if err := db.Event().Create(context.Background(), event); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return event
}

func TestCreateAndFindEvent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	event := createTestEvent(t, db, owner)
	if event.EventId.IsZero() {
		t.Fatal("Create() did not assign an id")
	}

	found, err := db.Event().FindById(ctx, event.EventId)
	if err != nil {
		t.Fatalf("FindById() error = %v", err)
	}
	if found.Name != event.Name || found.Description != event.Description {
		t.Errorf("FindById() = %+v, want %+v", found, event)
	}
	if !found.Date.Equal(event.Date) {
		t.Errorf("Date = %v, want %v", found.Date, event.Date)
	}
	if found.Owner != owner {
		t.Errorf("Owner = %v, want %v", found.Owner, owner)
	}
	if len(found.Attendants) != 0 {
		t.Errorf("Attendants = %v, want empty", found.Attendants)
	}
	if found.Location.Type != "Point" || found.Location.Longitude() != 18.9553 || found.Location.Latitude() != 69.6492 {
		t.Errorf("Location = %+v", found.Location)
	}
}

func TestCreateRejectsInvalidEvent(t *testing.T) {
	db := setupTestDB(t)
	event := newTestEvent(primitive.NewObjectID())
	event.Name = ""

	err := db.Event().Create(context.Background(), event)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Create() error = %v, want ErrValidation", err)
	}
}

func TestFindByIdNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Event().FindById(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindById() error = %v, want ErrNotFound", err)
	}
}

func TestAttendantsAreASet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	event := createTestEvent(t, db, primitive.NewObjectID())
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	for _, userId := range []primitive.ObjectID{a, b, b} {
		if err := db.Event().AddAttendant(ctx, event.EventId, userId); err != nil {
			t.Fatalf("AddAttendant() error = %v", err)
		}
	}
	found, err := db.Event().FindById(ctx, event.EventId)
	if err != nil {
		t.Fatalf("FindById() error = %v", err)
	}
	if len(found.Attendants) != 2 || found.Attendants[0] != a || found.Attendants[1] != b {
		t.Fatalf("Attendants = %v, want [%v %v]", found.Attendants, a, b)
	}

	for i := 0; i < 2; i++ {
		if err := db.Event().RemoveAttendant(ctx, event.EventId, b); err != nil {
			t.Fatalf("RemoveAttendant() error = %v", err)
		}
		found, err = db.Event().FindById(ctx, event.EventId)
		if err != nil {
			t.Fatalf("FindById() error = %v", err)
		}
		if len(found.Attendants) != 1 || found.Attendants[0] != a {
			t.Fatalf("after unjoin %d: Attendants = %v, want [%v]", i+1, found.Attendants, a)
		}
	}
}

func TestAttendantOnMissingEvent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	missing := primitive.NewObjectID()

	if err := db.Event().AddAttendant(ctx, missing, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddAttendant() error = %v, want ErrNotFound", err)
	}
	if err := db.Event().RemoveAttendant(ctx, missing, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveAttendant() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateKeepsOwnerAndAttendants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	event := createTestEvent(t, db, owner)
	attendant := primitive.NewObjectID()
	if err := db.Event().AddAttendant(ctx, event.EventId, attendant); err != nil {
		t.Fatalf("AddAttendant() error = %v", err)
	}

	newDate := time.Date(2027, 1, 5, 20, 0, 0, 0, time.UTC)
	updated, err := db.Event().Update(ctx, event.EventId, models.EventPatch{
		Name:        "Moved watch",
		Description: "New fjord",
		Date:        newDate,
		Location:    models.NewPoint(19.5, 70.1),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Moved watch" || updated.Description != "New fjord" || !updated.Date.Equal(newDate) {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.Location.Longitude() != 19.5 || updated.Location.Latitude() != 70.1 {
		t.Errorf("Location = %+v", updated.Location)
	}
	if updated.Owner != owner {
		t.Errorf("Owner = %v, want %v", updated.Owner, owner)
	}
	if len(updated.Attendants) != 1 || updated.Attendants[0] != attendant {
		t.Errorf("Attendants = %v, want [%v]", updated.Attendants, attendant)
	}
}

func TestUpdateValidatesAndReportsMissing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	event := createTestEvent(t, db, primitive.NewObjectID())

	_, err := db.Event().Update(ctx, event.EventId, models.EventPatch{
		Name:     "",
		Date:     event.Date,
		Location: event.Location,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}

	found, err := db.Event().FindById(ctx, event.EventId)
	if err != nil {
		t.Fatalf("FindById() error = %v", err)
	}
	if found.Name != event.Name {
		t.Errorf("rejected update changed the name to %q", found.Name)
	}

	_, err = db.Event().Update(ctx, primitive.NewObjectID(), models.EventPatch{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() on missing id error = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	event := createTestEvent(t, db, primitive.NewObjectID())
	if err := db.Event().AddAttendant(ctx, event.EventId, primitive.NewObjectID()); err != nil {
		t.Fatalf("AddAttendant() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := db.Event().Delete(ctx, event.EventId); err != nil {
			t.Fatalf("Delete() call %d error = %v", i+1, err)
		}
	}
	if _, err := db.Event().FindById(ctx, event.EventId); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindById() after delete error = %v, want ErrNotFound", err)
	}
}

func TestFindByOwnerAndAttendant(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	first := createTestEvent(t, db, alice)
	second := newTestEvent(alice)
	second.Date = first.Date.Add(-24 * time.Hour)
	if err := db.Event().Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	createTestEvent(t, db, bob)
	if err := db.Event().AddAttendant(ctx, first.EventId, bob); err != nil {
		t.Fatalf("AddAttendant() error = %v", err)
	}

	owned, err := db.Event().FindByOwner(ctx, alice)
	if err != nil {
		t.Fatalf("FindByOwner() error = %v", err)
	}
	if len(owned) != 2 || owned[0].EventId != second.EventId {
		t.Errorf("FindByOwner() = %v, want two events ordered by date", owned)
	}

	joined, err := db.Event().FindByAttendant(ctx, bob)
	if err != nil {
		t.Fatalf("FindByAttendant() error = %v", err)
	}
	if len(joined) != 1 || joined[0].EventId != first.EventId {
		t.Errorf("FindByAttendant() = %v, want [%v]", joined, first.EventId)
	}
}
