package domain

import (
	"strings"
	"time"

	"github.com/pinkcart/go-backend/pkg/e"
)

// Product описывает товар групповой закупки.
// Цена хранится в целых единицах валюты (KSh), копеек нет.
type Product struct {
	ID              string
	Name            string
	Description     string
	Price           int64
	OriginalPrice   *int64 // цена до скидки, для отображения
	Images          []string
	Video           string
	HasVideo        bool
	CategoryID      string // slug категории
	Category        string // отображаемое имя категории, по нему идёт фильтрация
	JoinedCount     int64  // витринный счётчик, не реальное число участников
	MaxParticipants *int64
	IsActive        bool
	Featured        bool
	InStock         *bool
	Features        []string
	Dimensions      string
	Weight          string
	Material        string
	Quality         string
	ShippingTime    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewProduct(name string, price int64, category string) *Product {
	return &Product{
		Name:     name,
		Price:    price,
		Category: category,
		IsActive: true,
	}
}

// Validate проверяет инварианты товара перед записью.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return e.ErrProductNameRequired
	}

	if strings.TrimSpace(p.Category) == "" {
		return e.ErrCategoryRequired
	}

	if p.Price < 0 {
		return e.ErrInvalidPrice
	}

	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return e.ErrInvalidPrice
	}

	if p.JoinedCount < 0 {
		return e.ErrNegativeJoinedCount
	}

	return nil
}

// PrimaryImage возвращает первое изображение товара или пустую строку.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}

	return p.Images[0]
}

// Discount возвращает размер скидки в процентах, 0 если скидки нет.
func (p *Product) Discount() int64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}

	return (*p.OriginalPrice - p.Price) * 100 / *p.OriginalPrice
}

// ProductFilter описывает фильтр выборки товаров. Пустые поля не фильтруют.
type ProductFilter struct {
	Category string // отображаемое имя, уже сопоставленное по slug
	Search   string // подстрока в name или description без учёта регистра
	Featured *bool
	Active   *bool
	MinPrice *int64
	MaxPrice *int64
}

// Validate проверяет, что диапазон цен не перевёрнут.
func (f ProductFilter) Validate() error {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return e.ErrInvalidPrice
	}

	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return e.ErrInvalidPrice
	}

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return e.ErrInvalidPriceRange
	}

	return nil
}
