package converter

import "time"

// ProductRedisModel — снимок товара в кэше, JSON.
type ProductRedisModel struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	OriginalPrice   *int64    `json:"original_price,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Video           string    `json:"video,omitempty"`
	HasVideo        bool      `json:"has_video,omitempty"`
	CategoryID      string    `json:"category_id"`
	Category        string    `json:"category"`
	JoinedCount     int64     `json:"joined_count"`
	MaxParticipants *int64    `json:"max_participants,omitempty"`
	IsActive        bool      `json:"is_active"`
	Featured        bool      `json:"featured"`
	InStock         *bool     `json:"in_stock,omitempty"`
	Features        []string  `json:"features,omitempty"`
	Dimensions      string    `json:"dimensions,omitempty"`
	Weight          string    `json:"weight,omitempty"`
	Material        string    `json:"material,omitempty"`
	Quality         string    `json:"quality,omitempty"`
	ShippingTime    string    `json:"shipping_time,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
