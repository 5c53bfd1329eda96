package review_repo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

const (
	table        = "reviews"
	colID        = "id"
	colProductID = "product_id"
	colUserID    = "user_id"
	colRating    = "rating"
	colComment   = "comment"
	colStatus    = "status"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewReviewRepository(dbc *pgxpool.Pool) repository.ReviewRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateReview - new reviews always start out pending until moderated
func (r *repo) CreateReview(ctx context.Context, review *model.Review) (int, error) {
	query := sq.Insert(table).
		Columns(colProductID, colUserID, colRating, colComment, colStatus).
		Values(review.ProductID, review.UserID, review.Rating, review.Comment, review.Status).
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

func (r *repo) ListByProduct(ctx context.Context, productID int, status string) ([]model.Review, error) {
	query := sq.Select(colID, colProductID, colUserID, colRating, colComment, colStatus, colCreatedAt).
		From(table).
		Where(sq.Eq{colProductID: productID, colStatus: status}).
		OrderBy(colCreatedAt + " DESC").
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

func (r *repo) ListByStatus(ctx context.Context, status string) ([]model.Review, error) {
	query := sq.Select(colID, colProductID, colUserID, colRating, colComment, colStatus, colCreatedAt).
		From(table).
		Where(sq.Eq{colStatus: status}).
		OrderBy(colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

func (r *repo) list(ctx context.Context, query sq.SelectBuilder) ([]model.Review, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var review model.Review
		err = rows.Scan(&review.ID, &review.ProductID, &review.UserID, &review.Rating, &review.Comment, &review.Status, &review.CreatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *repo) SetStatus(ctx context.Context, id int, status string) (bool, error) {
	query := sq.Update(table).
		Set(colStatus, status).
		Where(sq.Eq{colID: id}).
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
