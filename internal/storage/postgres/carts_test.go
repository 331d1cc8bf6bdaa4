package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
)

var cartRowColumns = []string{"id", "user_id", "quantity", "added_at",
	"product_id", "name", "description", "category", "price", "created_at"}

func cartRows(now time.Time, price decimal.Decimal) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(cartRowColumns).
		AddRow(int64(10), int64(1), 2, now, int64(5), "Pen", "blue", "office", price, now)
}

func TestCartRepositoryListByUser(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}

	now := time.Now()
	price := decimal.RequireFromString("3.99")

	mock.ExpectQuery("FROM cart_items ci JOIN products p").WithArgs(int64(1)).WillReturnRows(cartRows(now, price))
	items, err := repo.ListByUser(context.Background(), 1)
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected items: %+v err=%v", items, err)
	}
	if items[0].Quantity != 2 || items[0].Product.ID != 5 || !items[0].Product.Price.Equal(price) {
		t.Fatalf("unexpected item: %+v", items[0])
	}

	mock.ExpectQuery("FROM cart_items ci JOIN products p").WithArgs(int64(2)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByUser(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM cart_items ci JOIN products p").WithArgs(int64(3)).WillReturnRows(
		pgxmockv3.NewRows(cartRowColumns).AddRow("bad", int64(3), 1, now, int64(5), "Pen", "", "", price, now))
	if _, err := repo.ListByUser(context.Background(), 3); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryListRowsError(t *testing.T) {
	storage := &Storage{pool: &stubPool{rows: &failingRows{err: errors.New("rows err")}}}
	repo := &cartRepository{storage: storage}

	if _, err := repo.ListByUser(context.Background(), 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestCartRepositoryAdd(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}

	now := time.Now()
	price := decimal.RequireFromString("3.99")

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO cart_items").WithArgs(int64(1), int64(5), 2).WillReturnRows(
		pgxmockv3.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("WHERE ci.id=").WithArgs(int64(10)).WillReturnRows(cartRows(now, price))
	mock.ExpectCommit()
	item, err := repo.Add(context.Background(), 1, 5, 2)
	if err != nil || item.ID != 10 || item.Product.Name != "Pen" {
		t.Fatalf("unexpected item: %+v err=%v", item, err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO cart_items").WithArgs(int64(1), int64(99), 1).WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()
	if _, err := repo.Add(context.Background(), 1, 99, 1); !errors.Is(err, domainErrors.ErrInvalidProduct) {
		t.Fatalf("expected invalid product, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO cart_items").WithArgs(int64(1), int64(5), 1).WillReturnError(errors.New("insert"))
	mock.ExpectRollback()
	if _, err := repo.Add(context.Background(), 1, 5, 1); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryUpdateQuantity(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}

	now := time.Now()
	price := decimal.RequireFromString("3.99")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE cart_items SET quantity=").WithArgs(4, int64(10), int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("WHERE ci.id=").WithArgs(int64(10)).WillReturnRows(cartRows(now, price))
	mock.ExpectCommit()
	if _, err := repo.UpdateQuantity(context.Background(), 1, 10, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE cart_items SET quantity=").WithArgs(4, int64(10), int64(2)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectRollback()
	if _, err := repo.UpdateQuantity(context.Background(), 2, 10, 4); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE cart_items SET quantity=").WithArgs(4, int64(10), int64(1)).WillReturnError(errors.New("update"))
	mock.ExpectRollback()
	if _, err := repo.UpdateQuantity(context.Background(), 1, 10, 4); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryRemoveAndClear(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}

	mock.ExpectExec("DELETE FROM cart_items WHERE id=").WithArgs(int64(10), int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Remove(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM cart_items WHERE id=").WithArgs(int64(10), int64(2)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Remove(context.Background(), 2, 10); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM cart_items WHERE id=").WithArgs(int64(10), int64(1)).WillReturnError(errors.New("delete"))
	if err := repo.Remove(context.Background(), 1, 10); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id=").WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 3))
	if err := repo.Clear(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id=").WithArgs(int64(1)).WillReturnError(errors.New("clear"))
	if err := repo.Clear(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
