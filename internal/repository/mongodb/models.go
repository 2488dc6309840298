package mongodb

import (
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/usecase"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	ordersCollection     = "orders"
	outboxCollection     = "outbox_events"
)

// productDoc повторяет документ коллекции products.
type productDoc struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	Description     string    `bson:"description,omitempty"`
	Price           int64     `bson:"price"`
	OriginalPrice   *int64    `bson:"originalPrice,omitempty"`
	Images          []string  `bson:"images"`
	Video           string    `bson:"video,omitempty"`
	HasVideo        bool      `bson:"hasVideo"`
	CategoryID      string    `bson:"categoryId"`
	Category        string    `bson:"category"`
	JoinedCount     int64     `bson:"joinedCount"`
	MaxParticipants *int64    `bson:"maxParticipants,omitempty"`
	IsActive        bool      `bson:"isActive"`
	Featured        bool      `bson:"featured"`
	InStock         *bool     `bson:"inStock,omitempty"`
	Features        []string  `bson:"features,omitempty"`
	Dimensions      string    `bson:"dimensions,omitempty"`
	Weight          string    `bson:"weight,omitempty"`
	Material        string    `bson:"material,omitempty"`
	Quality         string    `bson:"quality,omitempty"`
	ShippingTime    string    `bson:"shippingTime,omitempty"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func toProductDoc(p *domain.Product) *productDoc {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return &productDoc{
		ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price, OriginalPrice: p.OriginalPrice,
		Images: images, Video: p.Video, HasVideo: p.HasVideo, CategoryID: p.CategoryID, Category: p.Category,
		JoinedCount: p.JoinedCount, MaxParticipants: p.MaxParticipants, IsActive: p.IsActive, Featured: p.Featured,
		InStock: p.InStock, Features: p.Features, Dimensions: p.Dimensions, Weight: p.Weight, Material: p.Material,
		Quality: p.Quality, ShippingTime: p.ShippingTime, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (d *productDoc) toEntity() *domain.Product {
	return &domain.Product{
		ID: d.ID, Name: d.Name, Description: d.Description, Price: d.Price, OriginalPrice: d.OriginalPrice,
		Images: d.Images, Video: d.Video, HasVideo: d.HasVideo, CategoryID: d.CategoryID, Category: d.Category,
		JoinedCount: d.JoinedCount, MaxParticipants: d.MaxParticipants, IsActive: d.IsActive, Featured: d.Featured,
		InStock: d.InStock, Features: d.Features, Dimensions: d.Dimensions, Weight: d.Weight, Material: d.Material,
		Quality: d.Quality, ShippingTime: d.ShippingTime, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description"`
	Icon        string    `bson:"icon"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func toCategoryDoc(c *domain.Category) *categoryDoc {
	return &categoryDoc{
		ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description, Icon: c.Icon,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (d *categoryDoc) toEntity() *domain.Category {
	return &domain.Category{
		ID: d.ID, Name: d.Name, Slug: d.Slug, Description: d.Description, Icon: d.Icon,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type lineItemDoc struct {
	ProductID     string `bson:"productId"`
	Name          string `bson:"name"`
	Price         int64  `bson:"price"`
	OriginalPrice *int64 `bson:"originalPrice,omitempty"`
	Image         string `bson:"image,omitempty"`
	Category      string `bson:"category,omitempty"`
	Quantity      int64  `bson:"quantity"`
}

type orderDoc struct {
	ID            string        `bson:"_id"`
	OrderID       string        `bson:"orderId"`
	CustomerName  string        `bson:"customerName"`
	CustomerPhone string        `bson:"customerPhone"`
	Items         []lineItemDoc `bson:"items"`
	TotalPrice    int64         `bson:"totalPrice"`
	TotalItems    int64         `bson:"totalItems"`
	Status        string        `bson:"status"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func toOrderDoc(o *domain.Order) *orderDoc {
	items := make([]lineItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, lineItemDoc(it))
	}

	return &orderDoc{
		ID: o.ID, OrderID: o.OrderID, CustomerName: o.CustomerName, CustomerPhone: o.CustomerPhone,
		Items: items, TotalPrice: o.TotalPrice, TotalItems: o.TotalItems, Status: o.Status,
		CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func (d *orderDoc) toEntity() *domain.Order {
	items := make([]domain.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.LineItem(it))
	}

	return &domain.Order{
		ID: d.ID, OrderID: d.OrderID, CustomerName: d.CustomerName, CustomerPhone: d.CustomerPhone,
		Items: items, TotalPrice: d.TotalPrice, TotalItems: d.TotalItems, Status: d.Status,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type outboxDoc struct {
	ID                  string     `bson:"_id"`
	EventType           string     `bson:"eventType"`
	AggregateID         string     `bson:"aggregateId"`
	Payload             []byte     `bson:"payload"`
	Status              string     `bson:"status"`
	CreatedAt           time.Time  `bson:"createdAt"`
	ProcessingStartedAt *time.Time `bson:"processingStartedAt,omitempty"`
	ProcessedAt         *time.Time `bson:"processedAt,omitempty"`
}

func toOutboxDoc(ev *usecase.OutboxEvent) *outboxDoc {
	return &outboxDoc{
		ID: ev.ID, EventType: string(ev.EventType), AggregateID: ev.AggregateID, Payload: ev.Payload,
		Status: string(ev.Status), CreatedAt: ev.CreatedAt, ProcessedAt: ev.ProcessedAt,
	}
}

func (d *outboxDoc) toEntity() *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID: d.ID, EventType: usecase.OutboxEventType(d.EventType), AggregateID: d.AggregateID, Payload: d.Payload,
		Status: usecase.OutboxStatus(d.Status), CreatedAt: d.CreatedAt, ProcessedAt: d.ProcessedAt,
	}
}
