package cart_repo

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
	itemsTable   = "cart_items"
	colID        = "id"
	colUserID    = "user_id"
	colProductID = "product_id"
	colQuantity  = "quantity"
	colAddedAt   = "added_at"

	cartsTable  = "carts"
	colCouponID = "coupon_id"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCartRepository(dbc *pgxpool.Pool) repository.CartRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetItems - cart lines joined with live product name/price/stock.
// The join keeps displayed prices current; snapshots happen at checkout
func (r *repo) GetItems(ctx context.Context, userID int) ([]model.CartItem, error) {
	query := sq.Select("ci.id", "ci.product_id", "p.name", "p.image", "p.price", "p.stock", "ci.quantity", "ci.added_at").
		From(itemsTable + " ci").
		Join("products p ON p.id = ci.product_id").
		Where(sq.Eq{"ci." + colUserID: userID}).
		OrderBy("ci." + colAddedAt + " DESC").
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

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err = rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Image, &item.Price, &item.Stock, &item.Quantity, &item.AddedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// upsertItemQuery - insert-or-bump with the combined quantity capped at
// maxQuantity, so repeated adds cannot push a line past live stock
func upsertItemQuery(userID, productID, quantity, maxQuantity int) (string, []interface{}, error) {
	return sq.Insert(itemsTable).
		Columns(colUserID, colProductID, colQuantity).
		Values(userID, productID, quantity).
		Suffix("ON CONFLICT ("+colUserID+", "+colProductID+") DO UPDATE SET "+
			colQuantity+" = LEAST("+itemsTable+"."+colQuantity+" + EXCLUDED."+colQuantity+", ?)"+
			", "+colAddedAt+" = now()", maxQuantity).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func (r *repo) UpsertItem(ctx context.Context, userID, productID, quantity, maxQuantity int) error {
	sqlStr, args, err := upsertItemQuery(userID, productID, quantity, maxQuantity)
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// UpdateItemQuantity - sets the absolute quantity of one line.
// Reports false when the line does not exist or belongs to someone else
func (r *repo) UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (bool, error) {
	query := sq.Update(itemsTable).
		Set(colQuantity, quantity).
		Where(sq.Eq{colID: itemID, colUserID: userID}).
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

func (r *repo) RemoveItem(ctx context.Context, userID, itemID int) (bool, error) {
	query := sq.Delete(itemsTable).
		Where(sq.Eq{colID: itemID, colUserID: userID}).
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

// Clear - drops every line and the applied coupon in one round trip each
func (r *repo) Clear(ctx context.Context, userID int) error {
	query := sq.Delete(itemsTable).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tr := r.getter.DefaultTrOrDB(ctx, r.dbc)
	_, err = tr.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	reset := sq.Update(cartsTable).
		Set(colCouponID, nil).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = reset.ToSql()
	if err != nil {
		return err
	}

	_, err = tr.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetAppliedCouponID - coupon applied to the user's cart, 0 when none
func (r *repo) GetAppliedCouponID(ctx context.Context, userID int) (int, error) {
	query := sq.Select(colCouponID).
		From(cartsTable).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var couponID *int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&couponID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	if couponID == nil {
		return 0, nil
	}
	return *couponID, nil
}

// SetAppliedCouponID - update-then-insert, same pattern as the other upserts
func (r *repo) SetAppliedCouponID(ctx context.Context, userID, couponID int) error {
	query := sq.Update(cartsTable).
		Set(colCouponID, couponID).
		Where(sq.Eq{colUserID: userID}).
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
		insertQuery := sq.Insert(cartsTable).
			Columns(colUserID, colCouponID).
			Values(userID, couponID).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = insertQuery.ToSql()
		if err != nil {
			return err
		}

		_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
	}

	return nil
}
