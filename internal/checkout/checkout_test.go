package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/handoff"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) CreateOrder(ctx context.Context, draft *OrderDraft) (*domain.Order, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func items() []domain.LineItem {
	return []domain.LineItem{
		{ProductID: "a", Name: "Organizer", Price: 1200, Quantity: 2},
		{ProductID: "b", Name: "Mirror", Price: 2800, Quantity: 1},
	}
}

func newComposer(s Submitter) *Composer {
	return NewComposer(s, handoff.NewFormatter("254794269051", "KSh"), logger.NewNop())
}

func TestComposer_Submit(t *testing.T) {
	sub := new(MockSubmitter)
	stored := &domain.Order{
		ID:            "id-1",
		OrderID:       "ORD-1-abcdefghi",
		CustomerName:  "Amina",
		CustomerPhone: "0700000000",
		Items:         items(),
		TotalPrice:    5200,
		TotalItems:    3,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
	sub.On("CreateOrder", mock.Anything, mock.MatchedBy(func(d *OrderDraft) bool {
		return d.CustomerName == "Amina" && d.TotalPrice == 5200 && d.TotalItems == 3 && len(d.Items) == 2
	})).Return(stored, nil).Once()

	r, err := newComposer(sub).Submit(context.Background(), " Amina ", "0700000000", items(), 5200, 3)

	require.NoError(t, err)
	assert.Same(t, stored, r.Order)
	assert.Contains(t, r.Summary, "ORD-1-abcdefghi")
	assert.True(t, strings.HasPrefix(r.Link, "https://wa.me/254794269051?text="))
	sub.AssertExpectations(t)
}

func TestComposer_ValidationNeverSubmits(t *testing.T) {
	tests := []struct {
		name    string
		cname   string
		phone   string
		items   []domain.LineItem
		wantErr error
	}{
		{"empty name", "", "0700000000", items(), e.ErrCustomerNameRequired},
		{"blank phone", "Amina", "   ", items(), e.ErrCustomerPhoneRequired},
		{"no items", "Amina", "0700000000", nil, e.ErrEmptyOrder},
		{"zero quantity", "Amina", "0700000000", []domain.LineItem{{ProductID: "a", Quantity: 0}}, e.ErrInvalidLineItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := new(MockSubmitter)

			r, err := newComposer(sub).Submit(context.Background(), tt.cname, tt.phone, tt.items, 0, 0)

			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.wantErr)
			sub.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestComposer_PersistFailureHasNoLink(t *testing.T) {
	sub := new(MockSubmitter)
	boom := errors.New("connection refused")
	sub.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, boom).Once()

	r, err := newComposer(sub).Submit(context.Background(), "Amina", "0700000000", items(), 5200, 3)

	assert.Nil(t, r)
	assert.ErrorIs(t, err, boom)
	sub.AssertNumberOfCalls(t, "CreateOrder", 1)
}
