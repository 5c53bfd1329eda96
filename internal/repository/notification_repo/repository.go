package notification_repo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

const (
	table        = "notifications"
	colID        = "id"
	colUserID    = "user_id"
	colType      = "type"
	colTitle     = "title"
	colMessage   = "message"
	colIsRead    = "is_read"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewNotificationRepository(dbc *pgxpool.Pool) repository.NotificationRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) Create(ctx context.Context, notification *model.Notification) error {
	query := sq.Insert(table).
		Columns(colUserID, colType, colTitle, colMessage).
		Values(notification.UserID, notification.Type, notification.Title, notification.Message).
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

// List - the user's notifications, newest first
func (r *repo) List(ctx context.Context, userID int, unreadOnly bool) ([]model.Notification, error) {
	query := sq.Select(colID, colUserID, colType, colTitle, colMessage, colIsRead, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt + " DESC").
		PlaceholderFormat(sq.Dollar)

	if unreadOnly {
		query = query.Where(sq.Eq{colIsRead: false})
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

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err = rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *repo) UnreadCount(ctx context.Context, userID int) (int, error) {
	query := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{colUserID: userID, colIsRead: false}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkRead - reports false when the row is not the user's
func (r *repo) MarkRead(ctx context.Context, userID, id int) (bool, error) {
	query := sq.Update(table).
		Set(colIsRead, true).
		Where(sq.Eq{colID: id, colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

func (r *repo) MarkAllRead(ctx context.Context, userID int) error {
	query := sq.Update(table).
		Set(colIsRead, true).
		Where(sq.Eq{colUserID: userID, colIsRead: false}).
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

func (r *repo) Delete(ctx context.Context, userID, id int) (bool, error) {
	query := sq.Delete(table).
		Where(sq.Eq{colID: id, colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}
