package order_repo

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

const (
	ordersTable  = "orders"
	colID        = "id"
	colNumber    = "number"
	colUserID    = "user_id"
	colStatus    = "status"
	colSubtotal  = "subtotal"
	colShipping  = "shipping"
	colTax       = "tax"
	colDiscount  = "discount"
	colTotal     = "total"
	colAddress   = "address"
	colCreatedAt = "created_at"

	itemsTable     = "order_items"
	colOrderID     = "order_id"
	colProductID   = "product_id"
	colVendorID    = "vendor_id"
	colProductName = "product_name"
	colPrice       = "price"
	colQuantity    = "quantity"

	intentsTable    = "payment_intents"
	colClientSecret = "client_secret"
	colIntentStatus = "status"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrIntentNotFound = errors.New("payment intent not found")
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewOrderRepository(dbc *pgxpool.Pool) repository.OrderRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateOrder - inserts the order header and its item snapshots.
// Callers wrap this in a transaction together with the stock decrement
func (r *repo) CreateOrder(ctx context.Context, order *model.Order) (int, error) {
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return 0, err
	}

	query := sq.Insert(ordersTable).
		Columns(colNumber, colUserID, colStatus, colSubtotal, colShipping, colTax, colDiscount, colTotal, colAddress).
		Values(order.Number, order.UserID, order.Status,
			order.Totals.Subtotal, order.Totals.Shipping, order.Totals.Tax, order.Totals.Discount, order.Totals.Total,
			addressJSON).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tr := r.getter.DefaultTrOrDB(ctx, r.dbc)

	var id int
	err = tr.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, item := range order.Items {
		itemQuery := sq.Insert(itemsTable).
			Columns(colOrderID, colProductID, colVendorID, colProductName, colPrice, colQuantity).
			Values(id, item.ProductID, item.VendorID, item.Name, item.Price, item.Quantity).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = itemQuery.ToSql()
		if err != nil {
			return 0, err
		}

		_, err = tr.Exec(ctx, sqlStr, args...)
		if err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (r *repo) GetOrderByID(ctx context.Context, id int) (*model.Order, error) {
	query := sq.Select(colID, colNumber, colUserID, colStatus, colSubtotal, colShipping, colTax, colDiscount, colTotal, colAddress, colCreatedAt).
		From(ordersTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := r.scanOrder(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Items, err = r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *repo) scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	var addressJSON []byte
	err := row.Scan(&order.ID, &order.Number, &order.UserID, &order.Status,
		&order.Totals.Subtotal, &order.Totals.Shipping, &order.Totals.Tax, &order.Totals.Discount, &order.Totals.Total,
		&addressJSON, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(addressJSON, &order.Address); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *repo) getItems(ctx context.Context, orderID int) ([]model.OrderItem, error) {
	query := sq.Select(colID, colProductID, colVendorID, colProductName, colPrice, colQuantity).
		From(itemsTable).
		Where(sq.Eq{colOrderID: orderID}).
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

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err = rows.Scan(&item.ID, &item.ProductID, &item.VendorID, &item.Name, &item.Price, &item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListOrdersByUser - order headers only, newest first.
// Items are loaded on the detail endpoint, not in listings
func (r *repo) ListOrdersByUser(ctx context.Context, userID, limit, offset int) ([]model.Order, error) {
	query := sq.Select(colID, colNumber, colUserID, colStatus, colSubtotal, colShipping, colTax, colDiscount, colTotal, colAddress, colCreatedAt).
		From(ordersTable).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt + " DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar)

	return r.listOrders(ctx, query)
}

// ListOrdersByVendor - orders that contain at least one of the vendor's items
func (r *repo) ListOrdersByVendor(ctx context.Context, vendorID, limit, offset int) ([]model.Order, error) {
	query := sq.Select("o."+colID, "o."+colNumber, "o."+colUserID, "o."+colStatus,
		"o."+colSubtotal, "o."+colShipping, "o."+colTax, "o."+colDiscount, "o."+colTotal,
		"o."+colAddress, "o."+colCreatedAt).
		From(ordersTable + " o").
		Where(sq.Expr("EXISTS (SELECT 1 FROM "+itemsTable+" oi WHERE oi."+colOrderID+" = o."+colID+" AND oi."+colVendorID+" = ?)", vendorID)).
		OrderBy("o." + colCreatedAt + " DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar)

	return r.listOrders(ctx, query)
}

func (r *repo) listOrders(ctx context.Context, query sq.SelectBuilder) ([]model.Order, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

// UpdateStatus - compare-and-set on the status column.
// Reports false when the order was not in the expected state
func (r *repo) UpdateStatus(ctx context.Context, id int, from, to string) (bool, error) {
	query := sq.Update(ordersTable).
		Set(colStatus, to).
		Where(sq.Eq{colID: id, colStatus: from}).
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

func (r *repo) CreatePaymentIntent(ctx context.Context, intent *model.PaymentIntent) error {
	query := sq.Insert(intentsTable).
		Columns(colOrderID, colClientSecret, colIntentStatus).
		Values(intent.OrderID, intent.ClientSecret, intent.Status).
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

func (r *repo) GetPaymentIntent(ctx context.Context, orderID int) (*model.PaymentIntent, error) {
	query := sq.Select(colOrderID, colClientSecret, colIntentStatus).
		From(intentsTable).
		Where(sq.Eq{colOrderID: orderID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var intent model.PaymentIntent
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&intent.OrderID, &intent.ClientSecret, &intent.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntentNotFound
		}
		return nil, err
	}

	return &intent, nil
}

func (r *repo) SetPaymentStatus(ctx context.Context, orderID int, status string) error {
	query := sq.Update(intentsTable).
		Set(colIntentStatus, status).
		Where(sq.Eq{colOrderID: orderID}).
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
		return ErrIntentNotFound
	}

	return nil
}
