package usecase

import (
	"context"

	"github.com/pinkcart/go-backend/internal/domain"
)

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteMessage(ctx context.Context, req *WriteMessageReq) error
}

// EventEncoder кодирует событие заказа для брокера.
type EventEncoder interface {
	EncodeOrderCreated(order *domain.Order, summary, link string) ([]byte, error)
}

// HandoffFormatter готовит сводку заказа для оператора и ссылку на неё.
type HandoffFormatter interface {
	Summary(order *domain.Order) string
	Link(text string) string
}

// CategoryResolver — таблица slug -> имя категории.
type CategoryResolver interface {
	Lookup(slug string) (string, bool)
	SlugFor(name string) string
	Categories() []domain.Category
}
