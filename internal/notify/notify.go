// Package notify показывает витринные уведомления "кто-то присоединился к закупке".
// События синтетические и не связаны с реальными заказами.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/jitter"
)

const (
	Spread       = time.Second
	DismissAfter = 5 * time.Second

	maxJoinedBump = 3
)

// Offsets — смещения показов от старта симулятора.
var Offsets = []time.Duration{
	3 * time.Second,
	10 * time.Second,
	40 * time.Second,
	43 * time.Second,
	60 * time.Second,
	3 * time.Minute,
	5 * time.Minute,
}

type Timer interface {
	Stop() bool
}

// Scheduler откладывает вызов f на d. В тестах подменяется ручным.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Event — одно показанное уведомление. Product содержит копию с увеличенным JoinedCount.
type Event struct {
	ID      string
	Product domain.Product
	At      time.Time
}

type Option func(*Simulator)

func WithSource(src jitter.Source) Option {
	return func(s *Simulator) {
		s.src = src
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

type Simulator struct {
	scheduler Scheduler
	onShow    func(Event)
	onDismiss func(Event)
	src       jitter.Source
	now       func() time.Time

	mu        sync.Mutex
	timers    []Timer
	seq       int
	remaining int // показы, которые ещё не скрыты
	stopped   bool

	done     chan struct{}
	doneOnce sync.Once
}

func NewSimulator(scheduler Scheduler, onShow, onDismiss func(Event), opts ...Option) *Simulator {
	s := &Simulator{
		scheduler: scheduler,
		onShow:    onShow,
		onDismiss: onDismiss,
		src:       jitter.Global(),
		now:       time.Now,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start планирует показы по Offsets, каждый со смещением ±Spread.
// Для пустого списка товаров ничего не планируется. Возвращает число запланированных показов.
func (s *Simulator) Start(products []domain.Product) int {
	if len(products) == 0 {
		s.finish()
		return 0
	}

	catalog := make([]domain.Product, len(products))
	copy(catalog, products)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return 0
	}

	for _, offset := range Offsets {
		d := jitter.Symmetric(offset, Spread, s.src)
		s.timers = append(s.timers, s.scheduler.AfterFunc(d, func() { s.fire(catalog) }))
	}
	s.remaining += len(Offsets)

	return len(Offsets)
}

// Done закрывается, когда все запланированные показы скрыты или симулятор остановлен.
func (s *Simulator) Done() <-chan struct{} {
	return s.done
}

func (s *Simulator) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Stop отменяет все ожидающие показы и скрытия.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.finish()
}

func (s *Simulator) fire(catalog []domain.Product) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}

	product := catalog[s.intn(len(catalog))]
	product.JoinedCount += int64(1 + s.intn(maxJoinedBump))

	at := s.now()
	s.seq++
	ev := Event{
		ID:      fmt.Sprintf("notification-%d-%d", at.UnixMilli(), s.seq),
		Product: product,
		At:      at,
	}

	s.timers = append(s.timers, s.scheduler.AfterFunc(DismissAfter, func() { s.dismiss(ev) }))
	s.mu.Unlock()

	if s.onShow != nil {
		s.onShow(ev)
	}
}

func (s *Simulator) dismiss(ev Event) {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()

	if !stopped && s.onDismiss != nil {
		s.onDismiss(ev)
	}

	s.mu.Lock()
	s.remaining--
	last := s.remaining <= 0
	s.mu.Unlock()

	if last {
		s.finish()
	}
}

// intn вызывается под s.mu.
func (s *Simulator) intn(n int) int {
	i := int(s.src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}

	return i
}
