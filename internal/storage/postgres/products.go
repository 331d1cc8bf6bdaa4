package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, name, description, category, price, COALESCE(seller_id, 0), created_at`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.SellerID, &p.CreatedAt)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// List filters by exact category and by a case-insensitive substring of name or description.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var (
		conds []string
		args  []any
	)
	if c := strings.TrimSpace(filter.Category); c != "" {
		args = append(args, c)
		conds = append(conds, fmt.Sprintf("category=$%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product model.NewProduct) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, category, price, seller_id)
                   VALUES ($1, $2, $3, $4, NULLIF($5::bigint, 0)) RETURNING id, created_at`
	p := model.Product{
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		SellerID:    product.SellerID,
	}
	if err := r.storage.pool.QueryRow(ctx, query, p.Name, p.Description, p.Category, p.Price, p.SellerID).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products SET name=$1, description=$2, category=$3, price=$4
                   WHERE id=$5 RETURNING ` + productColumns
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Category, product.Price, product.ID))
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Bestsellers skips products that never sold. Order lines of deleted products are ignored.
func (r *productRepository) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	const query = `SELECT p.id, p.name, p.description, p.category, p.price, COALESCE(p.seller_id, 0), p.created_at
                   FROM products p
                   JOIN order_items oi ON oi.product_id = p.id
                   GROUP BY p.id
                   ORDER BY SUM(oi.quantity) DESC, p.id
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}
