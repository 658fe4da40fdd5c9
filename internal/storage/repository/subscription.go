package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// ListSubscriptions возвращает подписки; при activeOnly — только активные.
func (s *Storage) ListSubscriptions(ctx context.Context, activeOnly bool) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	return listSubscriptions(ctx, s.DB, activeOnly)
}

func listSubscriptions(ctx context.Context, q querier, activeOnly bool) ([]models.Subscription, error) {
	const op = "storage.listSubscriptions"

	query := `SELECT id, customer_id, monthly_value, start_date, end_date, is_active, payment_day
			  FROM subscriptions
			  WHERE ($1 = false OR is_active = true)
			  ORDER BY start_date, id`
	rows, err := q.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Subscription
	for rows.Next() {
		var item models.Subscription
		var endDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.MonthlyValue,
			&item.StartDate, &endDate, &item.IsActive, &item.PaymentDay); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if endDate.Valid {
			item.EndDate = &endDate.Time
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSubscriptionPayments возвращает все записи платежей подписок.
func (s *Storage) ListSubscriptionPayments(ctx context.Context) ([]models.SubscriptionPayment, error) {
	const op = "storage.ListSubscriptionPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	return listSubscriptionPayments(ctx, s.DB)
}

func listSubscriptionPayments(ctx context.Context, q querier) ([]models.SubscriptionPayment, error) {
	const op = "storage.listSubscriptionPayments"

	query := `SELECT id, subscription_id, month, year, amount, payment_status,
			      paid_at, financial_entry_id, is_skipped
			  FROM subscription_payments
			  ORDER BY year, month, id`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.SubscriptionPayment
	for rows.Next() {
		var item models.SubscriptionPayment
		var paidAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.SubscriptionID, &item.Month, &item.Year,
			&item.Amount, &item.PaymentStatus, &paidAt,
			&item.FinancialEntryID, &item.IsSkipped); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if paidAt.Valid {
			item.PaidAt = &paidAt.Time
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
