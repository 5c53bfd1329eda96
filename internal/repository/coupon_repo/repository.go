package coupon_repo

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
	table         = "coupons"
	colID         = "id"
	colCode       = "code"
	colPercentOff = "percent_off"
	colActive     = "active"
	colStartsAt   = "starts_at"
	colEndsAt     = "ends_at"
)

var ErrCouponNotFound = errors.New("coupon not found")

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCouponRepository(dbc *pgxpool.Pool) repository.CouponRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) CreateCoupon(ctx context.Context, coupon *model.Coupon) (int, error) {
	query := sq.Insert(table).
		Columns(colCode, colPercentOff, colActive, colStartsAt, colEndsAt).
		Values(coupon.Code, coupon.PercentOff, coupon.Active, coupon.StartsAt, coupon.EndsAt).
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

func (r *repo) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.getOne(ctx, sq.Eq{colCode: code})
}

func (r *repo) GetCouponByID(ctx context.Context, id int) (*model.Coupon, error) {
	return r.getOne(ctx, sq.Eq{colID: id})
}

func (r *repo) getOne(ctx context.Context, where sq.Eq) (*model.Coupon, error) {
	query := sq.Select(colID, colCode, colPercentOff, colActive, colStartsAt, colEndsAt).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var coupon model.Coupon
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&coupon.ID, &coupon.Code, &coupon.PercentOff, &coupon.Active, &coupon.StartsAt, &coupon.EndsAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	return &coupon, nil
}

func (r *repo) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	query := sq.Select(colID, colCode, colPercentOff, colActive, colStartsAt, colEndsAt).
		From(table).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var coupon model.Coupon
		err = rows.Scan(&coupon.ID, &coupon.Code, &coupon.PercentOff, &coupon.Active, &coupon.StartsAt, &coupon.EndsAt)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, coupon)
	}

	return coupons, rows.Err()
}

func (r *repo) SetCouponActive(ctx context.Context, id int, active bool) error {
	query := sq.Update(table).
		Set(colActive, active).
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
		return ErrCouponNotFound
	}

	return nil
}
