// Package dto описывает JSON-формат HTTP API витрины. Его используют и сервер, и клиент.
package dto

import (
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
)

// Response — успешный ответ с одним объектом.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ListResponse — успешный ответ со списком и его длиной.
type ListResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   int  `json:"count"`
}

// ErrorResponse — ответ с ошибкой. Для 500 в Message лежит текст исходной ошибки.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type Product struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           int64      `json:"price"`
	OriginalPrice   *int64     `json:"originalPrice,omitempty"`
	Image           string     `json:"image,omitempty"`
	Images          []string   `json:"images"`
	Video           string     `json:"video,omitempty"`
	HasVideo        bool       `json:"hasVideo"`
	CategoryID      string     `json:"categoryId,omitempty"`
	Category        string     `json:"category"`
	JoinedCount     int64      `json:"joinedCount"`
	MaxParticipants *int64     `json:"maxParticipants,omitempty"`
	IsActive        bool       `json:"isActive"`
	Featured        bool       `json:"featured"`
	InStock         *bool      `json:"inStock,omitempty"`
	Features        []string   `json:"features,omitempty"`
	Dimensions      string     `json:"dimensions,omitempty"`
	Weight          string     `json:"weight,omitempty"`
	Material        string     `json:"material,omitempty"`
	Quality         string     `json:"quality,omitempty"`
	ShippingTime    string     `json:"shippingTime,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type Category struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// LineItem — позиция корзины в том виде, в каком её шлёт клиент.
type LineItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category,omitempty"`
	Quantity      int64  `json:"quantity"`
}

// CreateOrderRequest — тело POST /api/orders.
// Items хранится указателем на срез, чтобы отличать отсутствующее поле от пустого списка в логах.
type CreateOrderRequest struct {
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	Items         *[]LineItem `json:"items"`
	TotalPrice    int64       `json:"totalPrice"`
	TotalItems    int64       `json:"totalItems"`
}

type Order struct {
	ID            string     `json:"_id"`
	OrderID       string     `json:"orderId"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	Items         []LineItem `json:"items"`
	TotalPrice    int64      `json:"totalPrice"`
	TotalItems    int64      `json:"totalItems"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// SeedResult — данные ответа POST /api/init.
type SeedResult struct {
	Skipped    bool `json:"skipped"`
	Categories int  `json:"categories"`
	Products   int  `json:"products"`
}

func FromProduct(p *domain.Product) Product {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return Product{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		Image:           p.PrimaryImage(),
		Images:          images,
		Video:           p.Video,
		HasVideo:        p.HasVideo,
		CategoryID:      p.CategoryID,
		Category:        p.Category,
		JoinedCount:     p.JoinedCount,
		MaxParticipants: p.MaxParticipants,
		IsActive:        p.IsActive,
		Featured:        p.Featured,
		InStock:         p.InStock,
		Features:        p.Features,
		Dimensions:      p.Dimensions,
		Weight:          p.Weight,
		Material:        p.Material,
		Quality:         p.Quality,
		ShippingTime:    p.ShippingTime,
		CreatedAt:       timePtr(p.CreatedAt),
		UpdatedAt:       timePtr(p.UpdatedAt),
	}
}

func FromProducts(products []domain.Product) []Product {
	res := make([]Product, 0, len(products))
	for i := range products {
		res = append(res, FromProduct(&products[i]))
	}
	return res
}

// ToProduct восстанавливает товар из ответа API. Если images пуст, берётся устаревшее поле image.
func (p Product) ToProduct() *domain.Product {
	images := p.Images
	if len(images) == 0 && p.Image != "" {
		images = []string{p.Image}
	}

	res := &domain.Product{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		Images:          images,
		Video:           p.Video,
		HasVideo:        p.HasVideo,
		CategoryID:      p.CategoryID,
		Category:        p.Category,
		JoinedCount:     p.JoinedCount,
		MaxParticipants: p.MaxParticipants,
		IsActive:        p.IsActive,
		Featured:        p.Featured,
		InStock:         p.InStock,
		Features:        p.Features,
		Dimensions:      p.Dimensions,
		Weight:          p.Weight,
		Material:        p.Material,
		Quality:         p.Quality,
		ShippingTime:    p.ShippingTime,
	}
	if p.CreatedAt != nil {
		res.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		res.UpdatedAt = *p.UpdatedAt
	}

	return res
}

func FromCategories(categories []domain.Category) []Category {
	res := make([]Category, 0, len(categories))
	for _, c := range categories {
		res = append(res, Category{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Icon:        c.Icon,
			CreatedAt:   timePtr(c.CreatedAt),
			UpdatedAt:   timePtr(c.UpdatedAt),
		})
	}
	return res
}

func (c Category) ToCategory() domain.Category {
	res := domain.Category{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description, Icon: c.Icon}
	if c.CreatedAt != nil {
		res.CreatedAt = *c.CreatedAt
	}
	if c.UpdatedAt != nil {
		res.UpdatedAt = *c.UpdatedAt
	}
	return res
}

func FromLineItems(items []domain.LineItem) []LineItem {
	res := make([]LineItem, 0, len(items))
	for _, it := range items {
		res = append(res, LineItem{
			ID:            it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Image:         it.Image,
			Category:      it.Category,
			Quantity:      it.Quantity,
		})
	}
	return res
}

func ToLineItems(items []LineItem) []domain.LineItem {
	res := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		res = append(res, domain.LineItem{
			ProductID:     it.ID,
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Image:         it.Image,
			Category:      it.Category,
			Quantity:      it.Quantity,
		})
	}
	return res
}

func FromOrder(o *domain.Order) Order {
	return Order{
		ID:            o.ID,
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Items:         FromLineItems(o.Items),
		TotalPrice:    o.TotalPrice,
		TotalItems:    o.TotalItems,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func FromOrders(orders []domain.Order) []Order {
	res := make([]Order, 0, len(orders))
	for i := range orders {
		res = append(res, FromOrder(&orders[i]))
	}
	return res
}

func (o Order) ToOrder() *domain.Order {
	return &domain.Order{
		ID:            o.ID,
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Items:         ToLineItems(o.Items),
		TotalPrice:    o.TotalPrice,
		TotalItems:    o.TotalItems,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.CreatedAt,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
