package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// ListFinancialEntries возвращает движения главной книги,
// опционально ограниченные диапазоном дат создания и клиентом.
func (s *Storage) ListFinancialEntries(ctx context.Context, filter RecordFilter) ([]models.FinancialEntry, error) {
	const op = "storage.ListFinancialEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	return listFinancialEntries(ctx, s.DB, filter)
}

func listFinancialEntries(ctx context.Context, q querier, filter RecordFilter) ([]models.FinancialEntry, error) {
	const op = "storage.listFinancialEntries"

	query := `SELECT id, type, amount, payment_status, remaining_amount,
			      created_at, due_date, paid_at, customer_id, category_id
			  FROM financial_entries
			  WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			    AND ($2::timestamptz IS NULL OR created_at <= $2)
			    AND ($3::uuid IS NULL OR customer_id = $3)
			  ORDER BY created_at, id`
	rows, err := q.QueryContext(ctx, query, filter.From, filter.To, filter.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.FinancialEntry
	for rows.Next() {
		var item models.FinancialEntry
		var dueDate, paidAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.Type, &item.Amount, &item.PaymentStatus,
			&item.RemainingAmount, &item.CreatedAt, &dueDate, &paidAt,
			&item.CustomerID, &item.CategoryID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if dueDate.Valid {
			item.DueDate = &dueDate.Time
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

// ListSales возвращает продажи, опционально ограниченные
// диапазоном дат создания и клиентом.
func (s *Storage) ListSales(ctx context.Context, filter RecordFilter) ([]models.Sale, error) {
	const op = "storage.ListSales"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	return listSales(ctx, s.DB, filter)
}

func listSales(ctx context.Context, q querier, filter RecordFilter) ([]models.Sale, error) {
	const op = "storage.listSales"

	query := `SELECT id, customer_id, title, amount, payment_status, created_at, paid_at
			  FROM sales
			  WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			    AND ($2::timestamptz IS NULL OR created_at <= $2)
			    AND ($3::uuid IS NULL OR customer_id = $3)
			  ORDER BY created_at, id`
	rows, err := q.QueryContext(ctx, query, filter.From, filter.To, filter.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Sale
	for rows.Next() {
		var item models.Sale
		var paidAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.Title, &item.Amount,
			&item.PaymentStatus, &item.CreatedAt, &paidAt); err != nil {
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
