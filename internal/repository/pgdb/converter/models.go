package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Price           int64     `db:"price"`
	OriginalPrice   *int64    `db:"original_price"`
	Images          []string  `db:"images"`
	Video           string    `db:"video"`
	HasVideo        bool      `db:"has_video"`
	CategoryID      string    `db:"category_id"`
	Category        string    `db:"category"`
	JoinedCount     int64     `db:"joined_count"`
	MaxParticipants *int64    `db:"max_participants"`
	IsActive        bool      `db:"is_active"`
	Featured        bool      `db:"featured"`
	InStock         *bool     `db:"in_stock"`
	Features        []string  `db:"features"`
	Dimensions      string    `db:"dimensions"`
	Weight          string    `db:"weight"`
	Material        string    `db:"material"`
	Quality         string    `db:"quality"`
	ShippingTime    string    `db:"shipping_time"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders. Позиции лежат в JSONB.
type OrderModel struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerPhone string    `db:"customer_phone"`
	Items         []byte    `db:"items"`
	TotalPrice    int64     `db:"total_price"`
	TotalItems    int64     `db:"total_items"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// LineItemModel — позиция заказа внутри JSONB-колонки items.
type LineItemModel struct {
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category,omitempty"`
	Quantity      int64  `json:"quantity"`
}

type OutboxEventModel struct {
	ID          string     `db:"id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
