package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

// DefaultStoreTimeout срок одного обращения к хранилищу, если не задан явно.
const DefaultStoreTimeout = 10 * time.Second

// store общая часть адаптеров: пул соединений и срок ответа.
type store struct {
	db      *sqlx.DB
	timeout time.Duration
}

func newStore(db *sqlx.DB, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return store{db: db, timeout: timeout}
}

func (s store) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// translate приводит ошибку драйвера к ошибке приложения. Истёкший срок
// становится NETWORK_TIMEOUT, отмена запроса клиентом REQUEST_CANCELED,
// отсутствие строки становится notFound.
func translate(ctx context.Context, err error, notFound *apperror.AppError, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.Wrap(err, apperror.ErrCodeNetworkTimeout, "хранилище не ответило вовремя")
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return apperror.Wrap(err, apperror.ErrCodeCanceled, "запрос отменён")
	}
	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

// withTransaction выполняет fn в транзакции, откатывая её при ошибке или панике.
func withTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result, notFound *apperror.AppError) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
