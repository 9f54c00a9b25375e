package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixed width so the text column sorts chronologically.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectEventsSql = `
SELECT id, name, description, date, longitude, latitude, owner, created_on FROM events
`

const insertEventSql = `
INSERT INTO events (id, name, description, date, longitude, latitude, owner, created_on)
VALUES (:id, :name, :description, :date, :longitude, :latitude, :owner, :created_on);
`

const updateEventSql = `
UPDATE events SET name = ?, description = ?, date = ?, longitude = ?, latitude = ? WHERE id = ?;
`

const selectAttendantsSql = `
SELECT event_id, user_id FROM event_attendants WHERE event_id IN (?) ORDER BY joined_on, rowid;
`

type eventRow struct {
	Id          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Date        string  `db:"date"`
	Longitude   float64 `db:"longitude"`
	Latitude    float64 `db:"latitude"`
	Owner       string  `db:"owner"`
	CreatedOn   int64   `db:"created_on"`
}

type attendantRow struct {
	EventId string `db:"event_id"`
	UserId  string `db:"user_id"`
}

type SqlEventRepository struct {
	db *sqlx.DB
}

func (r *SqlEventRepository) Create(ctx context.Context, event *models.EventModel) error {
	if err := validateEvent(event); err != nil {
		return err
	}
	if event.CreatedOn == 0 {
		event.CreatedOn = time.Now().Unix()
	}
	event.Id()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertEventSql, toEventRow(event)); err != nil {
		return err
	}
	for _, userId := range event.Attendants {
		if err := insertAttendant(ctx, tx, event.EventId, userId); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SqlEventRepository) FindById(ctx context.Context, id primitive.ObjectID) (*models.EventModel, error) {
	events, err := r.selectEvents(ctx, selectEventsSql+"WHERE id = ?", id.Hex())
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return &events[0], nil
}

func (r *SqlEventRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) (*models.EventModel, error) {
	existing, err := r.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Apply(patch)
	if err := validateEvent(existing); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, updateEventSql,
		existing.Name,
		existing.Description,
		existing.Date.UTC().Format(sqlTimeLayout),
		existing.Location.Longitude(),
		existing.Location.Latitude(),
		id.Hex())
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.FindById(ctx, id)
}

func (r *SqlEventRepository) AddAttendant(ctx context.Context, id, userId primitive.ObjectID) error {
	return r.withExistingEvent(ctx, id, func(tx *sqlx.Tx) error {
		return insertAttendant(ctx, tx, id, userId)
	})
}

func (r *SqlEventRepository) RemoveAttendant(ctx context.Context, id, userId primitive.ObjectID) error {
	return r.withExistingEvent(ctx, id, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM event_attendants WHERE event_id = ? AND user_id = ?;",
			id.Hex(), userId.Hex())
		return err
	})
}

func (r *SqlEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM event_attendants WHERE event_id = ?;", id.Hex()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?;", id.Hex()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SqlEventRepository) FindByOwner(ctx context.Context, userId primitive.ObjectID) ([]models.EventModel, error) {
	return r.selectEvents(ctx, selectEventsSql+"WHERE owner = ? ORDER BY date", userId.Hex())
}

func (r *SqlEventRepository) FindByAttendant(ctx context.Context, userId primitive.ObjectID) ([]models.EventModel, error) {
	return r.selectEvents(ctx, selectEventsSql+
		"WHERE id IN (SELECT event_id FROM event_attendants WHERE user_id = ?) ORDER BY date", userId.Hex())
}

func (r *SqlEventRepository) withExistingEvent(ctx context.Context, id primitive.ObjectID, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var found string
	err = tx.GetContext(ctx, &found, "SELECT id FROM events WHERE id = ?;", id.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SqlEventRepository) selectEvents(ctx context.Context, query string, args ...interface{}) ([]models.EventModel, error) {
	rows := []eventRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	events := make([]models.EventModel, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		event, err := row.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
		ids = append(ids, row.Id)
	}
	if len(ids) == 0 {
		return events, nil
	}

	query, inArgs, err := sqlx.In(selectAttendantsSql, ids)
	if err != nil {
		return nil, err
	}
	attendants := []attendantRow{}
	if err := r.db.SelectContext(ctx, &attendants, r.db.Rebind(query), inArgs...); err != nil {
		return nil, err
	}

	byEvent := map[string][]primitive.ObjectID{}
	for _, a := range attendants {
		userId, err := primitive.ObjectIDFromHex(a.UserId)
		if err != nil {
			return nil, fmt.Errorf("attendant of event %s: %w", a.EventId, err)
		}
		byEvent[a.EventId] = append(byEvent[a.EventId], userId)
	}
	for i := range events {
		if list, ok := byEvent[events[i].EventId.Hex()]; ok {
			events[i].Attendants = list
		}
	}
	return events, nil
}

func insertAttendant(ctx context.Context, tx *sqlx.Tx, id, userId primitive.ObjectID) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO event_attendants (event_id, user_id, joined_on) VALUES (?, ?, ?);",
		id.Hex(), userId.Hex(), time.Now().UnixNano())
	return err
}

func toEventRow(event *models.EventModel) eventRow {
	return eventRow{
		Id:          event.EventId.Hex(),
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date.UTC().Format(sqlTimeLayout),
		Longitude:   event.Location.Longitude(),
		Latitude:    event.Location.Latitude(),
		Owner:       event.Owner.Hex(),
		CreatedOn:   event.CreatedOn,
	}
}

func (row eventRow) toModel() (models.EventModel, error) {
	id, err := primitive.ObjectIDFromHex(row.Id)
	if err != nil {
		return models.EventModel{}, fmt.Errorf("event id %q: %w", row.Id, err)
	}
	owner, err := primitive.ObjectIDFromHex(row.Owner)
	if err != nil {
		return models.EventModel{}, fmt.Errorf("owner of event %s: %w", row.Id, err)
	}
	date, err := time.Parse(sqlTimeLayout, row.Date)
	if err != nil {
		return models.EventModel{}, fmt.Errorf("date of event %s: %w", row.Id, err)
	}
	return models.EventModel{
		EventId:     id,
		Name:        row.Name,
		Description: row.Description,
		Date:        date,
		Location:    models.NewPoint(row.Longitude, row.Latitude),
		Owner:       owner,
		Attendants:  []primitive.ObjectID{},
		CreatedOn:   row.CreatedOn,
	}, nil
}
