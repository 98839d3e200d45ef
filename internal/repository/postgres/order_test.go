package postgres_test

import (
	"context"
	"testing"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	order := &domain.Order{
		ID:               "ord-1",
		EquipmentID:      "eq-1",
		RenterID:         3,
		ProviderID:       4,
		StartDate:        day("2024-03-01"),
		EndDate:          day("2024-03-04"),
		TotalAmountCents: 30000,
		Status:           domain.OrderStatusPending,
		CreatedOn:        time.Now(),
		UpdatedOn:        time.Now(),
	}

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.EquipmentID, order.RenterID, order.ProviderID, order.StartDate, order.EndDate, order.TotalAmountCents, order.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "equipment_id", "renter_id", "provider_id", "start_date", "end_date", "total_amount_cents", "status", "created_on", "updated_on"}).
			AddRow("ord-1", "eq-1", 3, 4, day("2024-03-01"), day("2024-03-04"), 30000, "PENDING", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs("ord-1").
			WillReturnRows(rows)

		o, err := repo.GetByID(ctx, "ord-1")
		assert.NoError(t, err)
		assert.Equal(t, "ord-1", o.ID)
		assert.Equal(t, domain.OrderStatusPending, o.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		o, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, o)
	})
}

func TestOrderRepository_UpdateStatusIf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Applied", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusCompleted, now, "ord-1", domain.OrderStatusInProgress).
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.UpdateStatusIf(ctx, "ord-1", domain.OrderStatusInProgress, domain.OrderStatusCompleted, now)
		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("Already Transitioned", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusCompleted, now, "ord-1", domain.OrderStatusInProgress).
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.UpdateStatusIf(ctx, "ord-1", domain.OrderStatusInProgress, domain.OrderStatusCompleted, now)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestOrderRepository_FindBlockingOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Conflict Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM orders").
			WithArgs("eq-1", day("2024-03-09"), day("2024-03-12"), "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ord-2"))

		id, err := repo.FindBlockingOverlap(ctx, "eq-1", day("2024-03-09"), day("2024-03-12"), "")
		assert.NoError(t, err)
		assert.Equal(t, "ord-2", id)
	})

	t.Run("No Conflict", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM orders").
			WithArgs("eq-1", day("2024-03-10"), day("2024-03-12"), "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		id, err := repo.FindBlockingOverlap(ctx, "eq-1", day("2024-03-10"), day("2024-03-12"), "")
		assert.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestOrderRepository_ListExpiredInProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	now := day("2024-03-15")

	rows := sqlmock.NewRows([]string{"id", "equipment_id", "renter_id", "provider_id", "start_date", "end_date", "total_amount_cents", "status", "created_on", "updated_on"}).
		AddRow("ord-1", "eq-1", 3, 4, day("2024-03-01"), day("2024-03-04"), 30000, "IN_PROGRESS", time.Now(), time.Now()).
		AddRow("ord-2", "eq-2", 5, 6, day("2024-03-02"), day("2024-03-05"), 15000, "IN_PROGRESS", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE status = 'IN_PROGRESS' AND end_date <= \\$1").
		WithArgs(now).
		WillReturnRows(rows)

	orders, err := repo.ListExpiredInProgress(context.Background(), now)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "ord-1", orders[0].ID)
}

func TestOrderRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM orders").
		WithArgs(int32(3), domain.OrderStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "equipment_id", "renter_id", "provider_id", "start_date", "end_date", "total_amount_cents", "status", "created_on", "updated_on"}).
		AddRow("ord-1", "eq-1", 3, 4, day("2024-03-01"), day("2024-03-04"), 30000, "PENDING", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(int32(3), domain.OrderStatusPending, int32(20), int32(0)).
		WillReturnRows(rows)

	orders, total, err := repo.List(context.Background(), repository.OrderFilter{
		ActorID: 3,
		Status:  domain.OrderStatusPending,
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, orders, 1)
}

func TestEquipmentRepository_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET status").
			WithArgs(domain.EquipmentStatusLocked, "eq-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetStatus(ctx, "eq-1", domain.EquipmentStatusLocked))
	})

	t.Run("Unknown Equipment", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET status").
			WithArgs(domain.EquipmentStatusLocked, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetStatus(ctx, "missing", domain.EquipmentStatusLocked), domain.ErrNotFound)
	})
}
