package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

const cartItemSelect = `SELECT ci.id, ci.user_id, ci.quantity, ci.added_at,
                   p.id, p.name, p.description, p.category, p.price, p.created_at
                   FROM cart_items ci JOIN products p ON p.id = ci.product_id`

func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var it model.CartItem
	p := &it.Product
	err := row.Scan(&it.ID, &it.UserID, &it.Quantity, &it.AddedAt,
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.CreatedAt)
	return it, err
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return listCartItems(ctx, r.storage.pool, userID)
}

func listCartItems(ctx context.Context, q querier, userID int64) ([]model.CartItem, error) {
	rows, err := q.Query(ctx, cartItemSelect+` WHERE ci.user_id=$1 ORDER BY ci.added_at, ci.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartItem
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Add inserts the product or increments the quantity of the existing line.
func (r *cartRepository) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	var item model.CartItem
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const upsert = `INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)
                        ON CONFLICT (user_id, product_id)
                        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
                        RETURNING id`
		var id int64
		if err := tx.QueryRow(ctx, upsert, userID, productID, quantity).Scan(&id); err != nil {
			if isForeignKeyViolation(err) {
				return domainErrors.ErrInvalidProduct
			}
			return err
		}
		var err error
		item, err = scanCartItem(tx.QueryRow(ctx, cartItemSelect+` WHERE ci.id=$1`, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error) {
	var item model.CartItem
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE cart_items SET quantity=$1 WHERE id=$2 AND user_id=$3`, quantity, itemID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		item, err = scanCartItem(tx.QueryRow(ctx, cartItemSelect+` WHERE ci.id=$1`, itemID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, itemID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE id=$1 AND user_id=$2`, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
