package storefront

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pinkcart/go-backend/internal/cart"
	"github.com/pinkcart/go-backend/internal/checkout"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/handoff"
	"github.com/pinkcart/go-backend/internal/notify"
	"github.com/pinkcart/go-backend/internal/session"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

// Catalog — чтение каталога, которое нужно оболочке.
type Catalog interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

var errUsage = errors.New("usage")

const helpText = `commands:
  products [category] [search...]  list products (category "all" lists everything)
  product <id>                     show one product
  categories                       list categories
  add <id>                         add a product to the cart
  remove <id>                      remove a line from the cart
  qty <id> <n>                     set quantity, 0 removes the line
  cart                             show the cart
  clear                            empty the cart
  signin <phone> [name...]         remember who you are
  signout                          forget the current user
  whoami                           show the current user
  checkout [phone name...]         place the order and print the hand-off link
  watch [stop]                     start or stop "someone joined" notifications
  help                             this text
  quit                             exit`

// Shell — построчная оболочка над корзиной, сессией и API. Заменяет веб-интерфейс витрины.
type Shell struct {
	catalog   Catalog
	cart      *cart.Cart
	session   *session.Store
	composer  *checkout.Composer
	formatter *handoff.Formatter
	scheduler notify.Scheduler
	logger    logger.Logger

	mu        sync.Mutex
	out       io.Writer
	oneShot   bool
	simulator *notify.Simulator
}

func NewShell(
	catalog Catalog,
	cart *cart.Cart,
	session *session.Store,
	composer *checkout.Composer,
	formatter *handoff.Formatter,
	scheduler notify.Scheduler,
	logger logger.Logger,
) *Shell {
	return &Shell{
		catalog:   catalog,
		cart:      cart,
		session:   session,
		composer:  composer,
		formatter: formatter,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Run читает команды из in до quit, конца ввода или отмены ctx.
// Отмена ctx завершает Run без ошибки, даже если чтение из in ещё не вернулось.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.setOutput(out, false)
	defer s.stopWatch()

	lines, readErr := readLines(ctx, in)

	s.printf("pinkcart: type \"help\" for commands\n")
	for {
		s.printf("> ")

		var line string
		select {
		case <-ctx.Done():
			s.printf("\n")
			return nil
		case l, ok := <-lines:
			if !ok {
				s.printf("\n")
				return <-readErr
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := s.Exec(ctx, fields[0], fields[1:]); err != nil {
			if errors.Is(err, errUsage) {
				s.printf("%v, see \"help\"\n", err)
				continue
			}
			s.printf("error: %v\n", err)
		}
	}
}

// RunOnce выполняет одну команду из аргументов командной строки.
// watch в этом режиме ждёт, пока все уведомления покажутся и скроются, или отмены ctx.
func (s *Shell) RunOnce(ctx context.Context, out io.Writer, cmd string, args []string) error {
	s.setOutput(out, true)
	defer s.stopWatch()

	return s.Exec(ctx, cmd, args)
}

func (s *Shell) setOutput(out io.Writer, oneShot bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out = out
	s.oneShot = oneShot
}

// readLines читает строки в отдельной горутине. Горутина, заблокированная
// на чтении (например, stdin), живёт до конца ввода или выхода процесса.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

// Exec выполняет одну команду.
func (s *Shell) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		s.printf("%s\n", helpText)
		return nil
	case "products":
		return s.products(ctx, args)
	case "product":
		return s.product(ctx, args)
	case "categories":
		return s.categories(ctx)
	case "add":
		return s.add(ctx, args)
	case "remove":
		return s.remove(args)
	case "qty":
		return s.qty(args)
	case "cart":
		s.printCart()
		return nil
	case "clear":
		if err := s.cart.Clear(); err != nil {
			return err
		}
		s.printf("cart cleared\n")
		return nil
	case "signin":
		return s.signIn(args)
	case "signout":
		if err := s.session.SignOut(); err != nil {
			return err
		}
		s.printf("signed out\n")
		return nil
	case "whoami":
		if u, ok := s.session.Current(); ok {
			s.printf("%s (%s)\n", u.Name, u.Phone)
		} else {
			s.printf("not signed in\n")
		}
		return nil
	case "checkout":
		return s.checkout(ctx, args)
	case "watch":
		return s.watch(ctx, args)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (s *Shell) products(ctx context.Context, args []string) error {
	q := ProductQuery{}
	if len(args) > 0 {
		q.CategoryID = args[0]
	}
	if len(args) > 1 {
		q.Search = strings.Join(args[1:], " ")
	}

	products, err := s.catalog.ListProducts(ctx, q)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		s.printf("no products\n")
		return nil
	}
	for i := range products {
		s.printf("%s\n", s.productLine(&products[i]))
	}
	return nil
}

func (s *Shell) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("product <id>: %w", errUsage)
	}

	p, err := s.catalog.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}

	s.printf("%s\n", s.productLine(p))
	if p.Description != "" {
		s.printf("  %s\n", p.Description)
	}
	if p.MaxParticipants != nil {
		s.printf("  %d of %d joined\n", p.JoinedCount, *p.MaxParticipants)
	} else {
		s.printf("  %d joined\n", p.JoinedCount)
	}
	for _, f := range p.Features {
		s.printf("  - %s\n", f)
	}
	if in := s.cart.Contains(p.ID); in {
		s.printf("  in cart\n")
	}
	return nil
}

func (s *Shell) categories(ctx context.Context) error {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}

	for _, c := range categories {
		s.printf("%-16s %s %s\n", c.Slug, c.Icon, c.Name)
	}
	return nil
}

func (s *Shell) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("add <id>: %w", errUsage)
	}

	p, err := s.catalog.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}
	if err := s.cart.Add(p); err != nil {
		return err
	}

	s.printf("added %s, cart: %d items, %s\n", p.Name, s.cart.TotalItems(), s.formatter.Amount(s.cart.TotalPrice()))
	return nil
}

func (s *Shell) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("remove <id>: %w", errUsage)
	}

	if err := s.cart.Remove(args[0]); err != nil {
		return err
	}
	s.printf("removed, cart: %d items\n", s.cart.TotalItems())
	return nil
}

func (s *Shell) qty(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("qty <id> <n>: %w", errUsage)
	}

	n, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("quantity %q: %w", args[1], errUsage)
	}

	if err := s.cart.UpdateQuantity(args[0], n); err != nil {
		return err
	}
	s.printf("cart: %d items, %s\n", s.cart.TotalItems(), s.formatter.Amount(s.cart.TotalPrice()))
	return nil
}

func (s *Shell) printCart() {
	items := s.cart.Items()
	if len(items) == 0 {
		s.printf("cart is empty\n")
		return
	}

	for _, it := range items {
		s.printf("%s  %s x%d  %s\n", it.ProductID, it.Name, it.Quantity, s.formatter.Amount(it.Subtotal()))
	}
	s.printf("total: %d items, %s\n", s.cart.TotalItems(), s.formatter.Amount(s.cart.TotalPrice()))
}

func (s *Shell) signIn(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("signin <phone> [name...]: %w", errUsage)
	}

	u, err := s.session.SignIn(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	s.printf("signed in as %s (%s)\n", u.Name, u.Phone)
	return nil
}

// checkout берёт контакты из аргументов или из сессии. Корзина очищается только после сохранения заказа.
func (s *Shell) checkout(ctx context.Context, args []string) error {
	var name, phone string
	if len(args) >= 2 {
		phone, name = args[0], strings.Join(args[1:], " ")
	} else if u, ok := s.session.Current(); ok {
		phone, name = u.Phone, u.Name
	} else {
		return fmt.Errorf("checkout <phone> <name...> or signin first: %w", errUsage)
	}

	receipt, err := s.composer.Submit(ctx, name, phone, s.cart.Items(), s.cart.TotalPrice(), s.cart.TotalItems())
	if err != nil {
		if errors.Is(err, e.ErrEmptyOrder) {
			return fmt.Errorf("cart is empty: %w", errUsage)
		}
		return fmt.Errorf("order was not placed, your cart is kept, try again: %w", err)
	}

	if err := s.cart.Clear(); err != nil {
		s.logger.Warnf("clear cart after order %s: %v", receipt.Order.OrderID, err)
	}

	s.printf("order %s placed\n\n%s\n\nsend it to the operator:\n%s\n", receipt.Order.OrderID, receipt.Summary, receipt.Link)
	return nil
}

func (s *Shell) watch(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "stop" {
		s.stopWatch()
		s.printf("notifications stopped\n")
		return nil
	}

	products, err := s.catalog.ListProducts(ctx, ProductQuery{})
	if err != nil {
		return err
	}

	s.stopWatch()
	sim := notify.NewSimulator(s.scheduler, s.onShow, s.onDismiss)
	n := sim.Start(products)

	s.mu.Lock()
	s.simulator = sim
	wait := s.oneShot
	s.mu.Unlock()

	s.printf("%d notifications scheduled\n", n)
	if !wait {
		return nil
	}

	select {
	case <-sim.Done():
	case <-ctx.Done():
		s.stopWatch()
	}
	return nil
}

func (s *Shell) stopWatch() {
	s.mu.Lock()
	sim := s.simulator
	s.simulator = nil
	s.mu.Unlock()

	if sim != nil {
		sim.Stop()
	}
}

func (s *Shell) onShow(ev notify.Event) {
	s.printf("\n* someone just joined %q (%d joined)\n", ev.Product.Name, ev.Product.JoinedCount)
}

func (s *Shell) onDismiss(notify.Event) {}

func (s *Shell) productLine(p *domain.Product) string {
	line := fmt.Sprintf("%s  %s  %s", p.ID, p.Name, s.formatter.Amount(p.Price))
	if d := p.Discount(); d > 0 {
		line += fmt.Sprintf(" (-%d%%, was %s)", d, s.formatter.Amount(*p.OriginalPrice))
	}
	if p.Featured {
		line += " *"
	}
	return line
}

// printf сериализует вывод: уведомления печатаются из таймеров.
func (s *Shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		fmt.Fprintf(s.out, format, args...)
	}
}
