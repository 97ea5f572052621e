package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var productColumns = []string{
	"id", "brand", "sku", "category", "description",
	"inventory", "price", "metafields", "images", "created_at", "updated_at",
}

// ProductRepository implements the product store on PostgreSQL.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) outbound.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	metafields, images, err := marshalDocs(p)
	if err != nil {
		return err
	}

	q, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.Brand, p.SKU, p.Category, p.Description,
			p.Inventory, p.Price, metafields, images, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.Internal("build insert", err)
	}

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return mapStoreError("product create", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	q, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.Internal("build select", err)
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", id)
		}
		return nil, mapStoreError("product get", err)
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	metafields, images, err := marshalDocs(p)
	if err != nil {
		return err
	}

	q, args, err := psql.Update("products").
		Set("brand", p.Brand).
		Set("sku", p.SKU).
		Set("category", p.Category).
		Set("description", p.Description).
		Set("inventory", p.Inventory).
		Set("price", p.Price).
		Set("metafields", metafields).
		Set("images", images).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return apperror.Internal("build update", err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return mapStoreError("product update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapStoreError("product update", err)
	}
	if affected == 0 {
		return apperror.NotFound("product", p.ID)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	q, args, err := psql.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return apperror.Internal("build delete", err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return mapStoreError("product delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapStoreError("product delete", err)
	}
	if affected == 0 {
		return apperror.NotFound("product", id)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, f query.ProductFilter, s query.Sort, pg query.Page) ([]entity.Product, int64, error) {
	pred := productPredicate(f)

	countQuery := psql.Select("COUNT(*)").From("products")
	if pred != nil {
		countQuery = countQuery.Where(pred)
	}
	q, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperror.Internal("build count", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return nil, 0, mapStoreError("product count", err)
	}

	sel := psql.Select(productColumns...).
		From("products").
		OrderBy(orderClause(query.ProductSortColumns[s.Field], s.Desc)...).
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset()))
	if pred != nil {
		sel = sel.Where(pred)
	}
	q, args, err = sel.ToSql()
	if err != nil {
		return nil, 0, apperror.Internal("build list", err)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, mapStoreError("product list", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, mapStoreError("product list", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapStoreError("product list", err)
	}
	return products, total, nil
}

// Iterate walks every matching product through the driver's row cursor in
// stable order. Rows are decoded one at a time; the full set is never held
// in memory.
func (r *ProductRepository) Iterate(ctx context.Context, f query.ProductFilter, fn func(*entity.Product) error) error {
	sel := psql.Select(productColumns...).
		From("products").
		OrderBy("created_at DESC", "id DESC")
	if pred := productPredicate(f); pred != nil {
		sel = sel.Where(pred)
	}
	q, args, err := sel.ToSql()
	if err != nil {
		return apperror.Internal("build iterate", err)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return mapStoreError("product iterate", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return mapStoreError("product iterate", err)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return mapStoreError("product iterate", err)
	}
	return nil
}

// AggregateStats runs the dashboard aggregate as one database-side pass.
// The price sum only counts rows that are in stock with a valid
// non-negative price.
func (r *ProductRepository) AggregateStats(ctx context.Context) (*outbound.StatsAggregate, error) {
	const q = `
		SELECT
			COUNT(*),
			COALESCE(SUM(inventory), 0),
			COUNT(*) FILTER (WHERE inventory = 0),
			COALESCE(SUM(price) FILTER (WHERE inventory > 0 AND price >= 0), 0)
		FROM products`

	var agg outbound.StatsAggregate
	err := r.db.QueryRowContext(ctx, q).Scan(
		&agg.TotalProducts,
		&agg.TotalStock,
		&agg.OutOfStockCount,
		&agg.SumPricesWithStock,
	)
	if err != nil {
		return nil, mapStoreError("stats aggregate", err)
	}
	return &agg, nil
}

// productPredicate translates the canonical filter. Search is a
// case-insensitive substring OR over the four text fields; without search,
// brand and category are case-insensitive exact matches combined with AND.
func productPredicate(f query.ProductFilter) sq.Sqlizer {
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		return sq.Or{
			sq.ILike{"brand": pattern},
			sq.ILike{"sku": pattern},
			sq.ILike{"category": pattern},
			sq.ILike{"description": pattern},
		}
	}

	and := sq.And{}
	if f.Brand != "" {
		and = append(and, sq.Expr("LOWER(brand) = LOWER(?)", f.Brand))
	}
	if f.Category != "" {
		and = append(and, sq.Expr("LOWER(category) = LOWER(?)", f.Category))
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// orderClause appends an id tiebreak so pagination over equal sort keys is
// deterministic.
func orderClause(column string, desc bool) []string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return []string{column + " " + dir, "id " + dir}
}

// escapeLike neutralises LIKE metacharacters in user-supplied search terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p              entity.Product
		metafieldsJSON []byte
		imagesJSON     []byte
	)
	err := row.Scan(
		&p.ID, &p.Brand, &p.SKU, &p.Category, &p.Description,
		&p.Inventory, &p.Price, &metafieldsJSON, &imagesJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metafieldsJSON) > 0 {
		if err := json.Unmarshal(metafieldsJSON, &p.Metafields); err != nil {
			return nil, err
		}
	}
	p.Images = []entity.Image{}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func marshalDocs(p *entity.Product) ([]byte, []byte, error) {
	metafields, err := json.Marshal(p.Metafields)
	if err != nil {
		return nil, nil, apperror.Internal("marshal metafields", err)
	}
	images := p.Images
	if images == nil {
		images = []entity.Image{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, nil, apperror.Internal("marshal images", err)
	}
	return metafields, imagesJSON, nil
}
