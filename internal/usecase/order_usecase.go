package usecase

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/pinkcart/go-backend/pkg/tr"
)

// OrderUseCase сохраняет заказы и в той же транзакции ставит событие order.created в outbox.
type OrderUseCase struct {
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
	trManager  tr.Manager
	formatter  HandoffFormatter
	encoder    EventEncoder
	logger     logger.Logger
	now        func() time.Time
	intn       func(n int) int
}

func NewOrderUC(
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	trManager tr.Manager,
	formatter HandoffFormatter,
	encoder EventEncoder,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		trManager:  trManager,
		formatter:  formatter,
		encoder:    encoder,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		intn:       rand.IntN,
	}
}

// PlaceOrder проверяет заказ, присваивает идентификаторы и статус pending.
// Итоги сохраняются как пришли; если оба нулевые, они считаются по позициям.
func (o *OrderUseCase) PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.PlaceOrder"

	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	if err := domain.ValidateOrderInput(name, phone, req.Items); err != nil {
		return nil, e.Wrap(op, err)
	}

	totalPrice, totalItems := req.TotalPrice, req.TotalItems
	if totalPrice == 0 && totalItems == 0 {
		totalPrice, totalItems = domain.Totals(req.Items)
	}
	if totalPrice < 0 || totalItems < 0 {
		return nil, e.Wrap(op, e.ErrInvalidPrice)
	}

	now := o.now()
	order := &domain.Order{
		ID:            uuid.NewString(),
		OrderID:       domain.NewOrderID(now, o.intn),
		CustomerName:  name,
		CustomerPhone: phone,
		Items:         req.Items,
		TotalPrice:    totalPrice,
		TotalItems:    totalItems,
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var stored *domain.Order
	err := o.trManager.Do(ctx, func(ctx context.Context) error {
		var err error
		stored, err = o.orderRepo.Create(ctx, order)
		if err != nil {
			return err
		}

		summary := o.formatter.Summary(stored)
		payload, err := o.encoder.EncodeOrderCreated(stored, summary, o.formatter.Link(summary))
		if err != nil {
			return err
		}

		_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), OrderCreated, stored.OrderID, payload, now))
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order %s placed: %d items, total %d", stored.OrderID, stored.TotalItems, stored.TotalPrice)
	return stored, nil
}

func (o *OrderUseCase) ListOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}
