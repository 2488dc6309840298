package kafka

import (
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// OrderEventEncoder кодирует событие order.created в protobuf Struct.
// Схема открытая: потребитель читает поля по именам, как в JSON заказа.
type OrderEventEncoder struct {
	now func() time.Time
}

func NewOrderEventEncoder() *OrderEventEncoder {
	return &OrderEventEncoder{now: func() time.Time { return time.Now().UTC() }}
}

func (o *OrderEventEncoder) EncodeOrderCreated(order *domain.Order, summary, link string) ([]byte, error) {
	event, err := structpb.NewStruct(map[string]any{
		"eventId":    uuid.NewString(),
		"eventType":  string(usecase.OrderCreated),
		"occurredAt": o.now().Format(time.RFC3339Nano),
		"order":      orderFields(order),
		"summary":    summary,
		"link":       link,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return proto.Marshal(event)
}

// DecodeOrderEvent разбирает payload, записанный EncodeOrderCreated.
func DecodeOrderEvent(payload []byte) (*structpb.Struct, error) {
	var event structpb.Struct
	if err := proto.Unmarshal(payload, &event); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &event, nil
}

func orderFields(order *domain.Order) map[string]any {
	items := make([]any, 0, len(order.Items))
	for _, it := range order.Items {
		item := map[string]any{
			"productId": it.ProductID,
			"name":      it.Name,
			"price":     it.Price,
			"quantity":  it.Quantity,
			"image":     it.Image,
			"category":  it.Category,
		}
		if it.OriginalPrice != nil {
			item["originalPrice"] = *it.OriginalPrice
		}
		items = append(items, item)
	}

	return map[string]any{
		"_id":           order.ID,
		"orderId":       order.OrderID,
		"customerName":  order.CustomerName,
		"customerPhone": order.CustomerPhone,
		"items":         items,
		"totalPrice":    order.TotalPrice,
		"totalItems":    order.TotalItems,
		"status":        order.Status,
		"createdAt":     order.CreatedAt.Format(time.RFC3339Nano),
	}
}
