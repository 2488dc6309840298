package usecase

import (
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
)

// CATALOG USECASE

// ListProductsReq — фильтр каталога в терминах API: категория задаётся slug'ом.
type ListProductsReq struct {
	CategoryID string
	Search     string
	Featured   *bool
	Active     *bool
	MinPrice   *int64
	MaxPrice   *int64
}

// CreateProductReq — запрос на добавление товара администратором.
type CreateProductReq struct {
	Name            string
	Description     string
	Category        string // slug или отображаемое имя
	Price           int64
	OriginalPrice   *int64
	Featured        bool
	MaxParticipants *int64
	Features        []string
	Images          []ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// SeedRes — итог начального заполнения каталога.
type SeedRes struct {
	Skipped    bool
	Categories int
	Products   int
}

// ORDER USECASE

type PlaceOrderReq struct {
	CustomerName  string
	CustomerPhone string
	Items         []domain.LineItem
	TotalPrice    int64
	TotalItems    int64
}

// INFRASTUCTURE

// UploadImagesRes — результат загрузки изображений: ключи в MinIO и публичные адреса.
type UploadImagesRes struct {
	ImagesKeys []string
	ImagesURLs []string
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// WriteMessageReq — сообщение для брокера: ключ партиционирования и готовые байты.
type WriteMessageReq struct {
	Key     string
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const OrderCreated OutboxEventType = "order.created"

// OutboxEvent — событие, записанное в одной транзакции с заказом и отправляемое воркером.
type OutboxEvent struct {
	ID          string
	EventType   OutboxEventType
	AggregateID string // orderId
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(keys, urls []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: keys,
		ImagesURLs: urls,
	}
}

func NewWriteMessageReq(key string, payload []byte) *WriteMessageReq {
	return &WriteMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewOutboxEvent(id string, eventType OutboxEventType, aggregateID string, payload []byte, createdAt time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:          id,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   createdAt,
	}
}
