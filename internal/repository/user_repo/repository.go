package user_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

const (
	table           = "users"
	colID           = "id"
	colName         = "name"
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colRole         = "role"
	colPhone        = "phone"
	colAvatar       = "avatar"
	colActive       = "active"
)

var ErrNotFound = errors.New("user not found")

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateUser - creates a user row. Returns the created id
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	query := sq.Insert(table).
		Columns(colName, colEmail, colPasswordHash, colRole, colPhone, colAvatar, colActive).
		Values(user.Name, user.Email, user.Password, user.Role, user.Phone, user.Avatar, user.Active).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetUserByEmail - full user row by email
func (r *repo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colEmail: email})
}

// GetUserByID - full user row by id
func (r *repo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colID: id})
}

func (r *repo) getOne(ctx context.Context, where sq.Eq) (*model.User, error) {
	query := sq.Select(colID, colName, colEmail, colPasswordHash, colRole, colPhone, colAvatar, colActive).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Phone, &user.Avatar, &user.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateProfile - updates the mutable profile fields only
func (r *repo) UpdateProfile(ctx context.Context, user *model.User) error {
	query := sq.Update(table).
		Set(colName, user.Name).
		Set(colPhone, user.Phone).
		Set(colAvatar, user.Avatar).
		Where(sq.Eq{colID: user.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// ListUsers - paged listing, optionally filtered by role
func (r *repo) ListUsers(ctx context.Context, role string, limit, offset int) ([]model.User, error) {
	query := sq.Select(colID, colName, colEmail, colPasswordHash, colRole, colPhone, colAvatar, colActive).
		From(table).
		OrderBy(colID).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar)

	if role != "" {
		query = query.Where(sq.Eq{colRole: role})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		err = rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Phone, &user.Avatar, &user.Active)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *repo) SetActive(ctx context.Context, id int, active bool) error {
	return r.setField(ctx, id, colActive, active)
}

func (r *repo) SetRole(ctx context.Context, id int, role string) error {
	return r.setField(ctx, id, colRole, role)
}

func (r *repo) setField(ctx context.Context, id int, column string, value interface{}) error {
	query := sq.Update(table).
		Set(column, value).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
