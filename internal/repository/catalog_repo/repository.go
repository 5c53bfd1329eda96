package catalog_repo

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
	productsTable  = "products"
	colID          = "id"
	colVendorID    = "vendor_id"
	colCategoryID  = "category_id"
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colStock       = "stock"
	colImage       = "image"
	colStatus      = "status"
	colCreatedAt   = "created_at"

	categoriesTable = "categories"
	colSlug         = "slug"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCatalogRepository(dbc *pgxpool.Pool) repository.CatalogRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

var productColumns = []string{colID, colVendorID, colCategoryID, colName, colDescription, colPrice, colStock, colImage, colStatus, colCreatedAt}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.VendorID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Image, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct - inserts a product row. Returns the created id
func (r *repo) CreateProduct(ctx context.Context, product *model.Product) (int, error) {
	query := sq.Insert(productsTable).
		Columns(colVendorID, colCategoryID, colName, colDescription, colPrice, colStock, colImage, colStatus).
		Values(product.VendorID, product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.Image, product.Status).
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

func (r *repo) GetProductByID(ctx context.Context, id int) (*model.Product, error) {
	query := sq.Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

// ListProducts - filtered, sorted, paged product listing.
// Only active products are visible unless the filter is vendor-scoped
func (r *repo) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := sq.Select(productColumns...).
		From(productsTable).
		PlaceholderFormat(sq.Dollar)

	if filter.VendorID != 0 {
		query = query.Where(sq.Eq{colVendorID: filter.VendorID})
	} else {
		query = query.Where(sq.Eq{colStatus: model.ProductActive})
	}
	if filter.CategoryID != 0 {
		query = query.Where(sq.Eq{colCategoryID: filter.CategoryID})
	}
	if filter.Search != "" {
		query = query.Where(sq.ILike{colName: "%" + filter.Search + "%"})
	}
	if !filter.MinPrice.IsZero() {
		query = query.Where(sq.GtOrEq{colPrice: filter.MinPrice})
	}
	if !filter.MaxPrice.IsZero() {
		query = query.Where(sq.LtOrEq{colPrice: filter.MaxPrice})
	}

	switch filter.Sort {
	case "price_asc":
		query = query.OrderBy(colPrice + " ASC")
	case "price_desc":
		query = query.OrderBy(colPrice + " DESC")
	default:
		query = query.OrderBy(colCreatedAt + " DESC")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query = query.Limit(uint64(limit)).Offset(uint64(filter.Offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *repo) UpdateProduct(ctx context.Context, product *model.Product) error {
	query := sq.Update(productsTable).
		Set(colCategoryID, product.CategoryID).
		Set(colName, product.Name).
		Set(colDescription, product.Description).
		Set(colPrice, product.Price).
		Set(colStock, product.Stock).
		Set(colImage, product.Image).
		Set(colStatus, product.Status).
		Where(sq.Eq{colID: product.ID, colVendorID: product.VendorID}).
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
		return ErrProductNotFound
	}

	return nil
}

func (r *repo) SetProductStatus(ctx context.Context, id int, status string) error {
	query := sq.Update(productsTable).
		Set(colStatus, status).
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
		return ErrProductNotFound
	}

	return nil
}

// DecrementStock - atomically subtracts quantity, guarded by stock >= quantity.
// Zero rows affected means the product ran out between cart and checkout
func (r *repo) DecrementStock(ctx context.Context, id int, quantity int) (bool, error) {
	query := sq.Update(productsTable).
		Set(colStock, sq.Expr(colStock+" - ?", quantity)).
		Where(sq.Eq{colID: id}).
		Where(sq.GtOrEq{colStock: quantity}).
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

func (r *repo) IncrementStock(ctx context.Context, id int, quantity int) error {
	query := sq.Update(productsTable).
		Set(colStock, sq.Expr(colStock+" + ?", quantity)).
		Where(sq.Eq{colID: id}).
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

// CreateCategory - inserts a category row. Returns the created id
func (r *repo) CreateCategory(ctx context.Context, category *model.Category) (int, error) {
	query := sq.Insert(categoriesTable).
		Columns(colName, colSlug).
		Values(category.Name, category.Slug).
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

func (r *repo) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := sq.Select(colID, colName, colSlug).
		From(categoriesTable).
		OrderBy(colName).
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

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repo) UpdateCategory(ctx context.Context, category *model.Category) error {
	query := sq.Update(categoriesTable).
		Set(colName, category.Name).
		Set(colSlug, category.Slug).
		Where(sq.Eq{colID: category.ID}).
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
		return ErrCategoryNotFound
	}

	return nil
}

func (r *repo) DeleteCategory(ctx context.Context, id int) error {
	query := sq.Delete(categoriesTable).
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
		return ErrCategoryNotFound
	}

	return nil
}
