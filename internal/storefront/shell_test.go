package storefront

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/internal/cart"
	"github.com/pinkcart/go-backend/internal/checkout"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/handoff"
	"github.com/pinkcart/go-backend/internal/notify"
	"github.com/pinkcart/go-backend/internal/session"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/localstore"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalog struct {
	products []domain.Product
}

func (m *memCatalog) ListProducts(_ context.Context, q ProductQuery) ([]domain.Product, error) {
	var res []domain.Product
	for _, p := range m.products {
		if q.CategoryID != "" && q.CategoryID != "all" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (m *memCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (m *memCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{Name: "Organisers", Slug: "organisers", Icon: "🗂"}}, nil
}

type stubSubmitter struct {
	err    error
	drafts []*checkout.OrderDraft
}

func (s *stubSubmitter) CreateOrder(_ context.Context, d *checkout.OrderDraft) (*domain.Order, error) {
	s.drafts = append(s.drafts, d)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{
		ID: "u", OrderID: "ORD-1-abc", CustomerName: d.CustomerName, CustomerPhone: d.CustomerPhone,
		Items: d.Items, TotalPrice: d.TotalPrice, TotalItems: d.TotalItems, Status: domain.OrderStatusPending,
		CreatedAt: time.Date(2024, 10, 27, 9, 0, 0, 0, time.UTC),
	}, nil
}

// manualScheduler копит отложенные вызовы, тест запускает их сам.
type manualScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func (m *manualScheduler) AfterFunc(_ time.Duration, f func()) notify.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, f)
	return noopTimer{}
}

// drain выполняет отложенные вызовы, включая запланированные по ходу, пока они не кончатся.
func (m *manualScheduler) drain() int {
	ran := 0
	for {
		m.mu.Lock()
		funcs := m.funcs
		m.funcs = nil
		m.mu.Unlock()

		if len(funcs) == 0 {
			return ran
		}
		for _, f := range funcs {
			f()
			ran++
		}
	}
}

func (m *manualScheduler) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.funcs)
}

// syncBuffer — bytes.Buffer для записи из таймеров и чтения из теста.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type shellFixture struct {
	shell     *Shell
	cart      *cart.Cart
	submitter *stubSubmitter
	scheduler *manualScheduler
}

func newShell() *shellFixture {
	orig := int64(2500)
	catalog := &memCatalog{products: []domain.Product{
		{ID: "p1", Name: "Desk Organizer", Price: 1200, OriginalPrice: &orig, CategoryID: "organisers", Category: "Organisers"},
		{ID: "p2", Name: "Vanity Mirror", Price: 2800, CategoryID: "accessories", Category: "Accessories"},
	}}
	c := cart.New(localstore.NewMemory())
	sub := &stubSubmitter{}
	f := handoff.NewFormatter("254794269051", "KSh")
	sched := &manualScheduler{}
	sh := NewShell(catalog, c, session.New(localstore.NewMemory(), logger.NewNop()),
		checkout.NewComposer(sub, f, logger.NewNop()), f, sched, logger.NewNop())
	return &shellFixture{shell: sh, cart: c, submitter: sub, scheduler: sched}
}

func run(t *testing.T, sh *Shell, script string) string {
	t.Helper()
	out := &bytes.Buffer{}
	require.NoError(t, sh.Run(context.Background(), strings.NewReader(script), out))
	return out.String()
}

func TestShell_BrowseAndCart(t *testing.T) {
	fx := newShell()

	out := run(t, fx.shell, "products organisers\nadd p1\nadd p1\nadd p2\nqty p2 3\nremove p1\ncart\n")

	assert.Contains(t, out, "p1  Desk Organizer  KSh 1,200 (-52%, was KSh 2,500)")
	assert.NotContains(t, out, "p2  Vanity Mirror  KSh 2,800\n")
	assert.Contains(t, out, "added Desk Organizer, cart: 2 items, KSh 2,400")
	assert.Contains(t, out, "total: 3 items, KSh 8,400")
	assert.False(t, fx.cart.Contains("p1"))
	assert.Equal(t, int64(3), fx.cart.TotalItems())
}

func TestShell_UnknownProductAndCommand(t *testing.T) {
	fx := newShell()

	out := run(t, fx.shell, "add nope\nfrobnicate\nqty p1 x\n")

	assert.Contains(t, out, "error: product not found")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, `quantity "x"`)
	assert.Equal(t, 0, fx.cart.Len())
}

func TestShell_CheckoutWithSession(t *testing.T) {
	fx := newShell()

	out := run(t, fx.shell, "signin 0700000000 Amina W\nwhoami\nadd p1\nadd p2\ncheckout\ncart\n")

	assert.Contains(t, out, "signed in as Amina W (0700000000)")
	assert.Contains(t, out, "order ORD-1-abc placed")
	assert.Contains(t, out, "https://wa.me/254794269051?text=")
	assert.Contains(t, out, "cart is empty")
	require.Len(t, fx.submitter.drafts, 1)
	assert.Equal(t, "Amina W", fx.submitter.drafts[0].CustomerName)
	assert.Equal(t, int64(4000), fx.submitter.drafts[0].TotalPrice)
}

func TestShell_CheckoutFailureKeepsCart(t *testing.T) {
	fx := newShell()
	fx.submitter.err = errors.New("connection refused")

	out := run(t, fx.shell, "add p1\ncheckout 0700 Amina\n")

	assert.Contains(t, out, "order was not placed, your cart is kept")
	assert.NotContains(t, out, "wa.me")
	assert.Equal(t, 1, fx.cart.Len())
}

func TestShell_CheckoutNeedsContactsAndItems(t *testing.T) {
	fx := newShell()

	out := run(t, fx.shell, "checkout\ncheckout 0700 Amina\n")

	assert.Contains(t, out, "signin first")
	assert.Contains(t, out, "cart is empty")
	assert.Empty(t, fx.submitter.drafts)
}

func TestShell_Watch(t *testing.T) {
	fx := newShell()
	out := &bytes.Buffer{}
	fx.shell.mu.Lock()
	fx.shell.out = out
	fx.shell.mu.Unlock()

	require.NoError(t, fx.shell.Exec(context.Background(), "watch", nil))

	fx.scheduler.mu.Lock()
	first := fx.scheduler.funcs[0]
	scheduled := len(fx.scheduler.funcs)
	fx.scheduler.mu.Unlock()
	first()

	assert.Equal(t, len(notify.Offsets), scheduled)
	assert.Contains(t, out.String(), "notifications scheduled")
	assert.Contains(t, out.String(), "someone just joined")

	require.NoError(t, fx.shell.Exec(context.Background(), "watch", []string{"stop"}))
	assert.Contains(t, out.String(), "notifications stopped")
}

func TestShell_RunOnceWatchWaitsForNotifications(t *testing.T) {
	fx := newShell()
	out := &syncBuffer{}
	done := make(chan error, 1)

	go func() { done <- fx.shell.RunOnce(context.Background(), out, "watch", nil) }()

	require.Eventually(t, func() bool { return fx.scheduler.pending() == len(notify.Offsets) },
		time.Second, 5*time.Millisecond)
	select {
	case <-done:
		t.Fatal("watch returned before notifications were shown")
	default:
	}

	assert.Equal(t, 2*len(notify.Offsets), fx.scheduler.drain())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not return after the last notification")
	}
	assert.Equal(t, len(notify.Offsets), strings.Count(out.String(), "someone just joined"))
}

func TestShell_RunOnceWatchStopsOnCancel(t *testing.T) {
	fx := newShell()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- fx.shell.RunOnce(ctx, &syncBuffer{}, "watch", nil) }()
	require.Eventually(t, func() bool { return fx.scheduler.pending() > 0 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch ignored cancellation")
	}
}

func TestShell_RunOncePrintsOutput(t *testing.T) {
	fx := newShell()
	out := &syncBuffer{}

	require.NoError(t, fx.shell.RunOnce(context.Background(), out, "products", nil))

	assert.Contains(t, out.String(), "Desk Organizer")
}

func TestShell_RunReturnsOnCancelWhileReading(t *testing.T) {
	fx := newShell()
	in, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- fx.shell.Run(ctx, in, &syncBuffer{}) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run blocked on input after cancellation")
	}
}
