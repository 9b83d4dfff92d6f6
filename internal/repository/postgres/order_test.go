package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affirmed-honey/dulin2/internal/domain"
	"github.com/affirmed-honey/dulin2/pkg/database"
	apperrors "github.com/affirmed-honey/dulin2/pkg/errors"
)

func newOrderRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewOrderRepository(mock), mock
}

func sampleOrder() *domain.Order {
	uid := int64(42)
	return &domain.Order{
		UserID:   &uid,
		Status:   domain.OrderStatusPending,
		Subtotal: 9190000,
		Shipping: 0,
		Tax:      689250,
		Total:    9879250,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Wavy Teddy Mirror", Image: "/images/wavy-teddy-mirror.jpg", PriceAtPurchase: 6000000, Quantity: 1},
			{ProductID: 4, Name: "Office Lamp", Image: "/images/office-lamp.jpg", PriceAtPurchase: 3190000, Quantity: 1},
		},
	}
}

func TestOrderRepository_Create_Success(t *testing.T) {
	repo, mock := newOrderRepo(t)

	o := sampleOrder()
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(o.UserID, pgxmock.AnyArg(), o.Subtotal, o.Shipping, o.Tax, o.Total, o.Status).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	err := repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), o.ID)
	assert.Equal(t, now, o.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_AnonymousOrder(t *testing.T) {
	repo, mock := newOrderRepo(t)

	o := sampleOrder()
	o.UserID = nil

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), o.Subtotal, o.Shipping, o.Tax, o.Total, o.Status).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), time.Now().UTC()))

	err := repo.Create(context.Background(), o)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DBError(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), sampleOrder())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert order")
}

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newOrderRepo(t)

	o := sampleOrder()
	itemsJSON, err := json.Marshal(o.Items)
	require.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "user_id", "items", "subtotal", "shipping", "tax", "total", "status", "created_at"}).
			AddRow(int64(7), o.UserID, itemsJSON, o.Subtotal, o.Shipping, o.Tax, o.Total, o.Status, now))

	got, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, o.Items, got.Items)
	assert.Equal(t, o.Total, got.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "items", "subtotal", "shipping", "tax", "total", "status", "created_at"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	repo, mock := newOrderRepo(t)

	o := sampleOrder()
	itemsJSON, err := json.Marshal(o.Items)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(int64(42), 20).
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "user_id", "items", "subtotal", "shipping", "tax", "total", "status", "created_at"}).
			AddRow(int64(9), o.UserID, itemsJSON, o.Subtotal, o.Shipping, o.Tax, o.Total, o.Status, time.Now().UTC()).
			AddRow(int64(7), o.UserID, itemsJSON, o.Subtotal, o.Shipping, o.Tax, o.Total, o.Status, time.Now().UTC()))

	orders, err := repo.ListByUser(context.Background(), 42, 20)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(9), orders[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
