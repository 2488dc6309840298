package pgdb

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildProductsQuery_NoFilter(t *testing.T) {
	query, args := buildProductsQuery(domain.ProductFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.True(t, strings.HasSuffix(query, "ORDER BY created_at DESC"))
	assert.Empty(t, args)
}

func TestBuildProductsQuery_AllFields(t *testing.T) {
	featured, active := true, false
	lo, hi := int64(100), int64(3000)

	query, args := buildProductsQuery(domain.ProductFilter{
		Category: "Cute Lighting",
		Search:   "50%_off",
		Featured: &featured,
		Active:   &active,
		MinPrice: &lo,
		MaxPrice: &hi,
	})

	assert.Contains(t, query, "category = $1")
	assert.Contains(t, query, "(name ILIKE $2 OR description ILIKE $2)")
	assert.Contains(t, query, "featured = $3")
	assert.Contains(t, query, "is_active = $4")
	assert.Contains(t, query, "price >= $5")
	assert.Contains(t, query, "price <= $6")
	assert.Equal(t, []any{"Cute Lighting", `%50\%\_off%`, true, false, int64(100), int64(3000)}, args)
}

func TestBuildProductsQuery_SearchOnly(t *testing.T) {
	query, args := buildProductsQuery(domain.ProductFilter{Search: "pink"})

	assert.Contains(t, query, "WHERE (name ILIKE $1 OR description ILIKE $1) ORDER BY")
	assert.Equal(t, []any{"%pink%"}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestPostgresDuplicate(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, postgresDuplicate(dup))
	assert.False(t, postgresDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgresDuplicate(errors.New("boom")))
}
