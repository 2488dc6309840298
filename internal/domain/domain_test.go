package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Beauty & Self Care Items": "beauty-self-care-items",
		"Shoes":                    "shoes",
		"  Cute   Lighting!! ":     "cute-lighting",
		"Tech & Accessories":       "tech-accessories",
		"---":                      "",
		"Dorm2Go":                  "dorm2go",
		"Café Décor":               "cafe-decor",
		"Naïve Ünïcode":            "naive-unicode",
		"Чехлы для телефона":       "",
		"Lamp ☆ Deluxe":            "lamp-deluxe",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestProduct_Validate(t *testing.T) {
	neg := int64(-1)

	tests := []struct {
		name    string
		product *Product
		wantErr error
	}{
		{"ok", NewProduct("Mirror", 2800, "Cute Lighting"), nil},
		{"free is fine", NewProduct("Sticker", 0, "Journal"), nil},
		{"no name", NewProduct(" ", 100, "Bags"), e.ErrProductNameRequired},
		{"no category", NewProduct("Tote", 100, ""), e.ErrCategoryRequired},
		{"negative price", NewProduct("Tote", -5, "Bags"), e.ErrInvalidPrice},
		{"negative original", &Product{Name: "Tote", Category: "Bags", OriginalPrice: &neg}, e.ErrInvalidPrice},
		{"negative joined", &Product{Name: "Tote", Category: "Bags", JoinedCount: -1}, e.ErrNegativeJoinedCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProduct_Discount(t *testing.T) {
	orig := int64(2500)
	p := &Product{Price: 1200, OriginalPrice: &orig}
	assert.Equal(t, int64(52), p.Discount())

	p.OriginalPrice = nil
	assert.Zero(t, p.Discount())
}

func TestProductFilter_Validate(t *testing.T) {
	lo, hi := int64(500), int64(100)
	assert.ErrorIs(t, ProductFilter{MinPrice: &lo, MaxPrice: &hi}.Validate(), e.ErrInvalidPriceRange)
	assert.NoError(t, ProductFilter{MinPrice: &hi, MaxPrice: &lo}.Validate())
	assert.NoError(t, ProductFilter{}.Validate())
}

func TestNewLineItem_SnapshotsProduct(t *testing.T) {
	orig := int64(2500)
	p := &Product{
		ID:            "p1",
		Name:          "Desk Organizer",
		Price:         1200,
		OriginalPrice: &orig,
		Images:        []string{"/a.jpg", "/b.jpg"},
		Category:      "Organisers",
	}

	item := NewLineItem(p)
	orig = 9999

	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, "/a.jpg", item.Image)
	assert.Equal(t, int64(1), item.Quantity)
	assert.Equal(t, int64(2500), *item.OriginalPrice)
}

func TestTotals(t *testing.T) {
	items := []LineItem{
		{ProductID: "a", Price: 1200, Quantity: 2},
		{ProductID: "b", Price: 2800, Quantity: 1},
	}

	price, count := Totals(items)
	assert.Equal(t, int64(5200), price)
	assert.Equal(t, int64(3), count)
}

func TestNewOrderID(t *testing.T) {
	now := time.UnixMilli(1730000000123)
	i := 0
	id := NewOrderID(now, func(n int) int {
		i++
		return (i * 7) % n
	})

	assert.Regexp(t, regexp.MustCompile(`^ORD-1730000000123-[0-9a-z]{9}$`), id)
}
