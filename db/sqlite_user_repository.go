package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kotlang/eventsGo/models"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/thoas/go-funk"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const upsertUserSql = `
INSERT INTO users (id, name, email, password_hash, created_on)
VALUES (:id, :name, :email, :password_hash, :created_on)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	email = excluded.email,
	password_hash = excluded.password_hash;
`

const selectUsersSql = `
SELECT id, name, email, password_hash, created_on FROM users
`

type userRow struct {
	Id           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedOn    int64  `db:"created_on"`
}

type SqlUserRepository struct {
	db *sqlx.DB
}

func (r *SqlUserRepository) Save(ctx context.Context, user *models.UserModel) error {
	user.Email = normalizeEmail(user.Email)
	if user.CreatedOn == 0 {
		user.CreatedOn = time.Now().Unix()
	}
	row := userRow{
		Id:           user.Id().Hex(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedOn:    user.CreatedOn,
	}
	_, err := r.db.NamedExecContext(ctx, upsertUserSql, row)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	return err
}

func (r *SqlUserRepository) FindById(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error) {
	return r.getUser(ctx, selectUsersSql+"WHERE id = ?", id.Hex())
}

func (r *SqlUserRepository) FindByIds(ctx context.Context, ids []primitive.ObjectID) ([]models.UserModel, error) {
	if len(ids) == 0 {
		return []models.UserModel{}, nil
	}
	hexIds := funk.Map(ids, func(id primitive.ObjectID) string { return id.Hex() }).([]string)
	query, args, err := sqlx.In(selectUsersSql+"WHERE id IN (?) ORDER BY name", hexIds)
	if err != nil {
		return nil, err
	}

	rows := []userRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	users := make([]models.UserModel, 0, len(rows))
	for _, row := range rows {
		user, err := row.toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *SqlUserRepository) FindByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	return r.getUser(ctx, selectUsersSql+"WHERE email = ?", normalizeEmail(email))
}

func (r *SqlUserRepository) getUser(ctx context.Context, query string, args ...interface{}) (*models.UserModel, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

func (row userRow) toModel() (*models.UserModel, error) {
	id, err := primitive.ObjectIDFromHex(row.Id)
	if err != nil {
		return nil, err
	}
	return &models.UserModel{
		UserId:       id,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedOn:    row.CreatedOn,
	}, nil
}
