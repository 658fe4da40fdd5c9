// Package repository реализует адаптер хранилища записей на основе
// PostgreSQL: чтение четырёх наборов данных (финансовые движения,
// подписки, платежи подписок, продажи) для движка агрегации.
// Движок только читает — никакие методы пакета не изменяют записи.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/google/uuid"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы чтения наборов записей.
type Storage struct {
	DB *sql.DB
}

// querier объединяет *sql.DB и *sql.Tx: одни и те же запросы выполняются
// напрямую и внутри снимочной транзакции.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RecordFilter описывает необязательные фильтры выборки:
// диапазон дат создания и клиент.
type RecordFilter struct {
	From       *time.Time
	To         *time.Time
	CustomerID uuid.NullUUID
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'financial_entries'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table financial_entries missing or query error: %w", err)
	}
	return nil
}
