// Package checkout превращает корзину и контакты покупателя в сохранённый заказ
// и ссылку для передачи заказа оператору.
package checkout

import (
	"context"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/handoff"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

// OrderDraft — заказ до сохранения.
type OrderDraft struct {
	CustomerName  string
	CustomerPhone string
	Items         []domain.LineItem
	TotalPrice    int64
	TotalItems    int64
}

// Submitter сохраняет заказ и возвращает его с присвоенными идентификаторами.
type Submitter interface {
	CreateOrder(ctx context.Context, draft *OrderDraft) (*domain.Order, error)
}

// Receipt — результат успешного оформления.
type Receipt struct {
	Order   *domain.Order
	Summary string
	Link    string
}

type Composer struct {
	submitter Submitter
	formatter *handoff.Formatter
	logger    logger.Logger
}

func NewComposer(submitter Submitter, formatter *handoff.Formatter, logger logger.Logger) *Composer {
	return &Composer{
		submitter: submitter,
		formatter: formatter,
		logger:    logger,
	}
}

// Submit проверяет данные, сохраняет заказ и только после подтверждения
// сохранения формирует сводку и ссылку. Повторов нет: их предлагает вызывающий.
func (c *Composer) Submit(ctx context.Context, name, phone string, items []domain.LineItem, totalPrice, totalItems int64) (*Receipt, error) {
	const op = "Composer.Submit"

	draft := &OrderDraft{
		CustomerName:  strings.TrimSpace(name),
		CustomerPhone: strings.TrimSpace(phone),
		Items:         items,
		TotalPrice:    totalPrice,
		TotalItems:    totalItems,
	}

	if err := Validate(draft); err != nil {
		return nil, e.Wrap(op, err)
	}

	order, err := c.submitter.CreateOrder(ctx, draft)
	if err != nil {
		c.logger.Warnf("%s: order was not stored, hand-off skipped: %v", op, err)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	summary := c.formatter.Summary(order)
	c.logger.Infof("order %s stored for %s, %d items", order.OrderID, order.CustomerPhone, order.TotalItems)

	return &Receipt{
		Order:   order,
		Summary: summary,
		Link:    c.formatter.Link(summary),
	}, nil
}

// Validate проверяет обязательные поля черновика заказа.
func Validate(d *OrderDraft) error {
	return domain.ValidateOrderInput(d.CustomerName, d.CustomerPhone, d.Items)
}
