// Package tr связывает репозитории с транзакцией, положенной в контекст менеджером транзакций.
package tr

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/pkg/e"
)

// DB — всё, что умеет выполнять запросы: пул, соединение или транзакция pgx.
type DB = trmpgx.Tr

// Manager выполняет fn в транзакции. Вложенные вызовы переиспользуют внешнюю.
type Manager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Conn возвращает транзакцию из контекста, если она есть, иначе сам db.
func Conn(ctx context.Context, db DB) DB {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, db)
}

// NewPgxManager создаёт менеджер транзакций поверх пула pgx.
func NewPgxManager(db trmpgx.Transactional) (Manager, error) {
	m, err := manager.New(trmpgx.NewDefaultFactory(db))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return m, nil
}

// NoTx выполняет fn без транзакции. Используется хранилищами без поддержки транзакций (MongoDB standalone).
type NoTx struct{}

func (NoTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
