package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Snapshot читает все четыре набора записей в одной транзакции
// уровня repeatable read, только для чтения. Инварианты дедупликации
// держатся лишь на согласованном снимке: платёж подписки не должен
// ссылаться на запись главной книги, невидимую в том же чтении.
//
// Если customerID задан, движения и продажи ограничиваются клиентом;
// подписки и платежи читаются целиком, иначе множество теней будет
// неполным.
func (s *Storage) Snapshot(ctx context.Context, customerID uuid.NullUUID) (*models.Snapshot, error) {
	const op = "storage.Snapshot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	filter := RecordFilter{CustomerID: customerID}

	entries, err := listFinancialEntries(ctx, tx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := listSubscriptions(ctx, tx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := listSubscriptionPayments(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sales, err := listSales(ctx, tx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Snapshot{
		Entries:       entries,
		Subscriptions: subs,
		Payments:      payments,
		Sales:         sales,
	}, nil
}
