package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
)

type deliveryRepository struct {
	storage *Storage
}

const deliverySelect = `SELECT d.id, d.order_id, o.number, d.tracking_number, d.status, d.address,
                   d.estimated_at, d.delivered_at, d.synced_at, d.updated_at
                   FROM deliveries d JOIN orders o ON o.id = d.order_id`

func scanDelivery(row pgx.Row) (model.Delivery, error) {
	var d model.Delivery
	err := row.Scan(&d.ID, &d.OrderID, &d.OrderNumber, &d.TrackingNumber, &d.Status, &d.Address,
		&d.EstimatedAt, &d.DeliveredAt, &d.SyncedAt, &d.UpdatedAt)
	return d, err
}

func (r *deliveryRepository) GetByOrderNumber(ctx context.Context, userID int64, number string) (*model.Delivery, error) {
	d, err := scanDelivery(r.storage.pool.QueryRow(ctx, deliverySelect+` WHERE o.number=$1 AND o.user_id=$2`, number, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *deliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Delivery, error) {
	d, err := scanDelivery(r.storage.pool.QueryRow(ctx, deliverySelect+` WHERE d.tracking_number=$1`, trackingNumber))
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

// SelectBatchForSync claims up to limit non-terminal deliveries, least recently synced first,
// and stamps them as synced so concurrent pollers pick different rows.
func (r *deliveryRepository) SelectBatchForSync(ctx context.Context, limit int) ([]model.Delivery, error) {
	var result []model.Delivery
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `SELECT d.id FROM deliveries d
                       WHERE d.status NOT IN ($1, $2)
                       ORDER BY d.synced_at NULLS FIRST, d.id
                       LIMIT $3 FOR UPDATE SKIP LOCKED`
		rows, err := tx.Query(ctx, query, model.DeliveryStatusDelivered, model.DeliveryStatusFailed, limit)
		if err != nil {
			return err
		}
		var ids []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE deliveries SET synced_at=NOW() WHERE id = ANY($1)`, ids); err != nil {
			return err
		}

		rows, err = tx.Query(ctx, deliverySelect+` WHERE d.id = ANY($1) ORDER BY d.id`, ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			d, err := scanDelivery(rows)
			if err != nil {
				return err
			}
			result = append(result, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus stores the carrier status and moves the owning order along with it.
func (r *deliveryRepository) UpdateStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE deliveries SET status=$1, updated_at=NOW(),
                        delivered_at = CASE WHEN $1 = 'DELIVERED' THEN NOW() ELSE delivered_at END
                        WHERE id=$2 RETURNING order_id`
		var orderID int64
		if err := tx.QueryRow(ctx, update, status, deliveryID).Scan(&orderID); err != nil {
			return notFound(err)
		}

		orderStatus, ok := status.OrderStatus()
		if !ok {
			return nil
		}
		tag, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, orderStatus, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}
