package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TravelBuddy-Client/pkg/psqlbuilder"
)

// DefaultTable таблица по умолчанию, схема в EnsureTable
const DefaultTable = "session_storage"

// Postgres хранилище в таблице PostgreSQL
type Postgres struct {
	db    DBExecutor
	table string
}

// NewPostgres создает хранилище. Пустое имя таблицы означает DefaultTable.
func NewPostgres(db DBExecutor, table string) *Postgres {
	if table == "" {
		table = DefaultTable
	}
	return &Postgres{db: db, table: table}
}

// EnsureTable создает таблицу, если её ещё нет
func (p *Postgres) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, p.table)

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: EnsureTable - create %s: %v", ErrExecQuery, p.table, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := psqlbuilder.Select("value").
		From(p.table).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = p.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query, args, err := psqlbuilder.Insert(p.table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет ключ. Отсутствие ключа ошибкой не считается.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	query, args, err := psqlbuilder.Delete(p.table).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}
