package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_on INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	date TEXT NOT NULL,
	longitude REAL NOT NULL,
	latitude REAL NOT NULL,
	owner TEXT NOT NULL,
	created_on INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS events_owner ON events (owner);

CREATE TABLE IF NOT EXISTS event_attendants (
	event_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	joined_on INTEGER NOT NULL,
	PRIMARY KEY (event_id, user_id)
);

CREATE INDEX IF NOT EXISTS event_attendants_user ON event_attendants (user_id);
`

// SqliteEventsDb stores events in SQLite. Identifiers are still ObjectID hex
// strings so both backends accept the same ids.
type SqliteEventsDb struct {
	db *sqlx.DB
}

func ConnectSqlite(path string) (*SqliteEventsDb, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite connect: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &SqliteEventsDb{db: db}, nil
}

func (s *SqliteEventsDb) Event() EventRepositoryInterface {
	return &SqlEventRepository{db: s.db}
}

func (s *SqliteEventsDb) User() UserRepositoryInterface {
	return &SqlUserRepository{db: s.db}
}

func (s *SqliteEventsDb) Close(ctx context.Context) error {
	return s.db.Close()
}
