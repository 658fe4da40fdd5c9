package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

func TestListFinancialEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	customerID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	paidAt := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	factory.CreateFinancialEntry(t, "income", decimal.NewFromInt(500), "paid",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), &paidAt, customerID)
	factory.CreateFinancialEntry(t, "expense", decimal.NewFromInt(200), "pending",
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), nil, uuid.NullUUID{})
	factory.CreatePartialEntry(t, "expense", decimal.NewFromInt(300), decimal.NewFromInt(120),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), customerID)

	t.Run("without filter returns all entries", func(t *testing.T) {
		got, err := storage.ListFinancialEntries(context.Background(), RecordFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, models.EntryTypeIncome, got[0].Type)
		assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(500)))
		require.NotNil(t, got[0].PaidAt)
		assert.True(t, got[0].PaidAt.Equal(paidAt))

		assert.Nil(t, got[1].PaidAt)
		assert.False(t, got[1].CustomerID.Valid)

		require.True(t, got[2].RemainingAmount.Valid)
		assert.True(t, got[2].Outstanding().Equal(decimal.NewFromInt(120)))
	})

	t.Run("date range filter", func(t *testing.T) {
		from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
		got, err := storage.ListFinancialEntries(context.Background(), RecordFilter{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.EntryTypeExpense, got[0].Type)
	})

	t.Run("customer filter", func(t *testing.T) {
		got, err := storage.ListFinancialEntries(context.Background(), RecordFilter{CustomerID: customerID})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := storage.ListFinancialEntries(ctx, RecordFilter{})
		require.Error(t, err)
	})
}

func TestListSubscriptionsAndPayments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	customerID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	endDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	activeID := factory.CreateSubscription(t, customerID, decimal.NewFromInt(200),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, true, 5)
	factory.CreateSubscription(t, uuid.NullUUID{}, decimal.NewFromInt(90),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), &endDate, false, 1)

	paidAt := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	factory.CreateSubscriptionPayment(t, activeID, 2, 2024,
		decimal.NewFromInt(200), "paid", &paidAt, uuid.NullUUID{}, false)
	factory.CreateSubscriptionPayment(t, activeID, 3, 2024,
		decimal.NewFromInt(200), "pending", nil, uuid.NullUUID{}, true)

	t.Run("all subscriptions", func(t *testing.T) {
		got, err := storage.ListSubscriptions(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, got[0].EndDate)
		assert.False(t, got[0].IsActive)
	})

	t.Run("active only", func(t *testing.T) {
		got, err := storage.ListSubscriptions(context.Background(), true)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, activeID, got[0].ID)
		assert.Equal(t, 5, got[0].PaymentDay)
	})

	t.Run("payments ordered by period", func(t *testing.T) {
		got, err := storage.ListSubscriptionPayments(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].Month)
		assert.Equal(t, models.PaymentStatusPaid, got[0].PaymentStatus)
		assert.True(t, got[1].IsSkipped)
		assert.Nil(t, got[1].PaidAt)
	})

	t.Run("duplicate period rejected", func(t *testing.T) {
		_, err := storage.DB.Exec(`INSERT INTO subscription_payments
			(id, subscription_id, month, year, amount, payment_status)
			VALUES ($1, $2, 2, 2024, 200, 'pending')`, uuid.New(), activeID)
		require.Error(t, err)
	})
}

func TestSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	customerID := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	otherID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	paidAt := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	entryID := factory.CreateFinancialEntry(t, "income", decimal.NewFromInt(200), "paid",
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), &paidAt, customerID)
	factory.CreateFinancialEntry(t, "expense", decimal.NewFromInt(80), "paid",
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), &paidAt, otherID)

	subID := factory.CreateSubscription(t, customerID, decimal.NewFromInt(200),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, true, 1)
	factory.CreateSubscriptionPayment(t, subID, 2, 2024, decimal.NewFromInt(200),
		"paid", &paidAt, uuid.NullUUID{UUID: entryID, Valid: true}, false)

	factory.CreateSale(t, customerID, "Setup fee", decimal.NewFromInt(150),
		"paid", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), &paidAt)

	t.Run("full snapshot", func(t *testing.T) {
		got, err := storage.Snapshot(context.Background(), uuid.NullUUID{})
		require.NoError(t, err)
		assert.Len(t, got.Entries, 2)
		assert.Len(t, got.Subscriptions, 1)
		assert.Len(t, got.Payments, 1)
		assert.Len(t, got.Sales, 1)

		require.True(t, got.Payments[0].FinancialEntryID.Valid)
		assert.Equal(t, entryID, got.Payments[0].FinancialEntryID.UUID)
	})

	t.Run("customer scoped snapshot keeps all payments", func(t *testing.T) {
		got, err := storage.Snapshot(context.Background(), customerID)
		require.NoError(t, err)
		// Движения и продажи клиента, платежи и подписки целиком
		assert.Len(t, got.Entries, 1)
		assert.Len(t, got.Sales, 1)
		assert.Len(t, got.Subscriptions, 1)
		assert.Len(t, got.Payments, 1)
	})
}
