package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const (
	waitNotificationTimeout = 30 * time.Second
	reconnectDelay          = 2 * time.Second
)

// PgListener подписывается на канал NOTIFY отдельным соединением и будит воркер outbox.
type PgListener struct {
	dsn     string
	channel string
	logger  logger.Logger
}

func NewPgListener(dsn, channel string, logger logger.Logger) *PgListener {
	return &PgListener{dsn: dsn, channel: channel, logger: logger}
}

// Listen блокируется до отмены ctx. Потерянное соединение переоткрывается.
func (l *PgListener) Listen(ctx context.Context, wake chan<- struct{}) error {
	var conn *pgx.Conn

	connect := func() error {
		var err error
		conn, err = pgx.Connect(ctx, l.dsn)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
			conn.Close(ctx)
			conn = nil
			return e.Wrap("failed to LISTEN", err)
		}

		l.logger.Infof("Subscribed to '%s' channel", l.channel)
		return nil
	}

	defer func() {
		if conn != nil {
			conn.Close(context.Background())
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if conn == nil {
			if err := connect(); err != nil {
				l.logger.Warnf("LISTEN connect failed: %v", err)
				if !sleepCtx(ctx, reconnectDelay) {
					return nil
				}
				continue
			}
		}

		waitCtx, cancel := context.WithTimeout(ctx, waitNotificationTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			l.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			conn.Close(context.Background())
			conn = nil
			continue
		}

		if notif != nil && notif.Channel == l.channel {
			select {
			case wake <- struct{}{}:
			default: // воркер уже разбужен
			}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
