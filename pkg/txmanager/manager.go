package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

// DefaultMaxRetries сколько раз повторяется сериализуемая транзакция после serialization failure
const DefaultMaxRetries = 3

// Коды ошибок PostgreSQL, после которых транзакцию можно безопасно повторить целиком
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner источник транзакций (dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver получает уведомление о каждом повторе транзакции
type RetryObserver interface {
	ObserveTxRetry()
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
	observer   RetryObserver
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithMaxRetries задает число повторов сериализуемой транзакции
func WithMaxRetries(n int) Option {
	return func(m *TransactionManager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithRetryObserver подключает наблюдателя за повторами (метрики)
func WithRetryObserver(o RetryObserver) Option {
	return func(m *TransactionManager) {
		m.observer = o
	}
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:         db,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При serialization failure / deadlock транзакция повторяется целиком, не более maxRetries раз:
// fn заново перечитывает состояние, поэтому повтор никогда не выбирает другой слот сам по себе.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		if m.observer != nil && attempt < m.maxRetries {
			m.observer.ObserveTxRetry()
		}
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

// IsRetryable сообщает, что транзакция упала из-за конкурентного доступа и её можно повторить
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
