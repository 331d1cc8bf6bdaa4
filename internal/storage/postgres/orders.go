package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, number, user_id, status, delivery_option, subtotal, tax, delivery_fee, total, created_at`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.Status, &o.DeliveryOption,
		&o.Subtotal, &o.Tax, &o.DeliveryFee, &o.Total, &o.CreatedAt)
	return o, err
}

// consumeCart deletes exactly the cart lines an order was priced from. A line that is gone or
// whose quantity moved fails the whole checkout; lines added meanwhile stay in the cart.
const consumeCart = `DELETE FROM cart_items c
                     USING unnest($2::bigint[], $3::int[]) AS priced(id, quantity)
                     WHERE c.user_id=$1 AND c.id=priced.id AND c.quantity=priced.quantity`

// Place persists the order with its items and delivery and consumes the priced cart lines.
// Identifiers and timestamps assigned by the database are written back into order and delivery.
func (r *orderRepository) Place(ctx context.Context, order *model.Order, delivery *model.Delivery) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		ids := make([]int64, len(order.Items))
		quantities := make([]int, len(order.Items))
		for i, item := range order.Items {
			ids[i] = item.CartItemID
			quantities[i] = item.Quantity
		}
		tag, err := tx.Exec(ctx, consumeCart, order.UserID, ids, quantities)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != int64(len(ids)) {
			return domainErrors.ErrCartChanged
		}

		const insertOrder = `INSERT INTO orders (number, user_id, status, delivery_option, subtotal, tax, delivery_fee, total)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
		err = tx.QueryRow(ctx, insertOrder, order.Number, order.UserID, order.Status, order.DeliveryOption,
			order.Subtotal, order.Tax, order.DeliveryFee, order.Total).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, name, quantity, price)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem, item.OrderID, item.ProductID, item.Name, item.Quantity, item.Price).
				Scan(&item.ID); err != nil {
				return err
			}
		}

		delivery.OrderID = order.ID
		delivery.OrderNumber = order.Number
		const insertDelivery = `INSERT INTO deliveries (order_id, tracking_number, status, address, estimated_at)
                                VALUES ($1, $2, $3, $4, $5) RETURNING id, updated_at`
		return tx.QueryRow(ctx, insertDelivery, delivery.OrderID, delivery.TrackingNumber, delivery.Status,
			delivery.Address, delivery.EstimatedAt).Scan(&delivery.ID, &delivery.UpdatedAt)
	})
}

func (r *orderRepository) GetByNumber(ctx context.Context, userID int64, number string) (*model.Order, error) {
	o, err := scanOrder(r.storage.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE number=$1 AND user_id=$2`, number, userID))
	if err != nil {
		return nil, notFound(err)
	}

	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *orderRepository) items(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, name, quantity, price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByUser returns order headers newest first. Items are not loaded.
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
