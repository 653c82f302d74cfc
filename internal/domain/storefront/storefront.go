// internal/domain/storefront/storefront.go
package storefront

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/debounce"
	"golang.org/x/sync/errgroup"
)

// SessionSource loads the persisted session
type SessionSource interface {
	Current(ctx context.Context) (*auth.Session, error)
}

// Snapshot is a read-only copy of the page state
type Snapshot struct {
	LoggedIn    bool              `json:"loggedIn"`
	Username    string            `json:"username,omitempty"`
	Balance     decimal.Decimal   `json:"balance"`
	Query       string            `json:"query"`
	CatalogSize int               `json:"catalogSize"`
	Products    []product.Product `json:"products"`
	Items       []cart.LineItem   `json:"items"`
	Totals      cart.CartTotals   `json:"totals"`
}

// Options tunes a Storefront
type Options struct {
	// DebounceWindow is the quiet period before typed search text is sent
	DebounceWindow time.Duration
	// OnSearch, when set, runs after every search has been applied
	OnSearch func(text string)
}

// Storefront holds the state of the product page: the catalog snapshot, the
// filtered product list and the reconciled cart. Each piece is replaced
// wholesale; responses are applied in arrival order.
type Storefront struct {
	products *product.Service
	carts    *cart.Service
	orders   *checkout.Service
	sessions SessionSource
	logger   *logrus.Logger

	debouncer *debounce.Debouncer
	onSearch  func(text string)

	mu       sync.RWMutex
	session  *auth.Session
	catalog  *product.Catalog
	filtered []product.Product
	items    []cart.LineItem
	query    string
}

// New creates a storefront over the given services
func New(products *product.Service, carts *cart.Service, orders *checkout.Service, sessions SessionSource, logger *logrus.Logger, opts Options) *Storefront {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = 800 * time.Millisecond
	}
	return &Storefront{
		products:  products,
		carts:     carts,
		orders:    orders,
		sessions:  sessions,
		logger:    logger,
		debouncer: debounce.New(opts.DebounceWindow),
		onSearch:  opts.OnSearch,
		catalog:   product.NewCatalog(nil),
		filtered:  []product.Product{},
		items:     []cart.LineItem{},
	}
}

// Load is the page load: the catalog and the cart are fetched concurrently,
// then reconciled. A failing cart fetch leaves the cart empty but does not
// fail the load; a failing catalog fetch does.
func (s *Storefront) Load(ctx context.Context) error {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("could not read the persisted session")
		sess = nil
	}

	var (
		catalog *product.Catalog
		records []cart.CartRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.products.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.carts.Fetch(gctx, sess)
		if err != nil {
			s.logger.WithError(err).Warn("cart fetch failed, showing an empty cart")
			records = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.session = sess
		s.catalog = product.NewCatalog(nil)
		s.filtered = []product.Product{}
		s.items = []cart.LineItem{}
		s.mu.Unlock()
		return err
	}

	items := s.carts.Reconcile(records, catalog)

	s.mu.Lock()
	s.session = sess
	s.catalog = catalog
	s.filtered = catalog.Products()
	s.items = items
	s.query = ""
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"products":   catalog.Len(),
		"cart_lines": len(items),
	}).Debug("storefront loaded")
	return nil
}

// SetSession swaps the session (after login or logout) and reloads the cart
func (s *Storefront) SetSession(ctx context.Context, sess *auth.Session) error {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	items, err := s.carts.Load(ctx, sess, s.ensureCatalog(ctx))

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return err
}

// Session returns a copy of the current session, nil when logged out
func (s *Storefront) Session() *auth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// Items returns a copy of the current line items
func (s *Storefront) Items() []cart.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]cart.LineItem{}, s.items...)
}

// Catalog returns the current catalog snapshot
func (s *Storefront) Catalog() *product.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// ensureCatalog returns the current catalog, fetching it first when it is
// empty. A failed page load would otherwise turn every cart record into an
// orphan until the next Load.
func (s *Storefront) ensureCatalog(ctx context.Context) *product.Catalog {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()
	if catalog.Len() > 0 {
		return catalog
	}

	fresh, err := s.products.List(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("catalog still unavailable")
		return catalog
	}

	s.mu.Lock()
	s.catalog = fresh
	if strings.TrimSpace(s.query) == "" {
		s.filtered = fresh.Products()
	}
	s.mu.Unlock()

	s.logger.WithField("products", fresh.Len()).Info("catalog recovered")
	return fresh
}

type mutation func(ctx context.Context, sess *auth.Session, items []cart.LineItem, catalog *product.Catalog) ([]cart.LineItem, error)

// mutate runs fn against the current state and publishes its result. The
// lock is not held across the request, so two concurrent mutations of the
// same product are applied in whatever order their responses arrive.
func (s *Storefront) mutate(ctx context.Context, fn mutation) ([]cart.LineItem, error) {
	catalog := s.ensureCatalog(ctx)

	s.mu.RLock()
	sess := s.session
	items := s.items
	s.mu.RUnlock()

	next, err := fn(ctx, sess, items, catalog)
	if err != nil {
		return append([]cart.LineItem{}, items...), err
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
	return append([]cart.LineItem{}, next...), nil
}

// AddToCart adds one unit of a product that is not yet in the cart
func (s *Storefront) AddToCart(ctx context.Context, productID string) ([]cart.LineItem, error) {
	return s.mutate(ctx, func(ctx context.Context, sess *auth.Session, items []cart.LineItem, catalog *product.Catalog) ([]cart.LineItem, error) {
		return s.carts.AddToCart(ctx, sess, items, catalog, productID)
	})
}

// Increment raises a line's quantity by one
func (s *Storefront) Increment(ctx context.Context, productID string) ([]cart.LineItem, error) {
	return s.mutate(ctx, func(ctx context.Context, sess *auth.Session, items []cart.LineItem, catalog *product.Catalog) ([]cart.LineItem, error) {
		return s.carts.Increment(ctx, sess, items, catalog, productID)
	})
}

// Decrement lowers a line's quantity by one, removing it at zero
func (s *Storefront) Decrement(ctx context.Context, productID string) ([]cart.LineItem, error) {
	return s.mutate(ctx, func(ctx context.Context, sess *auth.Session, items []cart.LineItem, catalog *product.Catalog) ([]cart.LineItem, error) {
		return s.carts.Decrement(ctx, sess, items, catalog, productID)
	})
}

// SetQuantity sets a line's quantity to qty
func (s *Storefront) SetQuantity(ctx context.Context, productID string, qty int) ([]cart.LineItem, error) {
	return s.mutate(ctx, func(ctx context.Context, sess *auth.Session, items []cart.LineItem, catalog *product.Catalog) ([]cart.LineItem, error) {
		return s.carts.SetQuantity(ctx, sess, items, catalog, productID, qty, cart.MutateOptions{})
	})
}

// SearchInput records typed search text. Only the last text entered within
// the debounce window is searched; a search already in flight is not aborted.
func (s *Storefront) SearchInput(ctx context.Context, text string) {
	ctx = context.WithoutCancel(ctx)
	s.debouncer.Debounce(func() {
		_ = s.Search(ctx, text)
	})
}

// CancelSearch discards a pending debounced search
func (s *Storefront) CancelSearch() {
	s.debouncer.Cancel()
}

// SearchPending reports whether typed text is waiting for the debounce window
func (s *Storefront) SearchPending() bool {
	return s.debouncer.Pending()
}

// Search runs a search now and replaces the filtered product list.
// Blank text shows the whole catalog without a request. No match (404)
// empties the list silently. A server error (500) falls back to the whole
// catalog; any other failure leaves the list as it was.
func (s *Storefront) Search(ctx context.Context, text string) error {
	defer s.searched(text)

	if strings.TrimSpace(text) == "" {
		s.mu.Lock()
		s.query = text
		s.filtered = s.catalog.Products()
		s.mu.Unlock()
		return nil
	}

	results, err := s.products.Search(ctx, text)
	if err != nil {
		if backend.IsStatus(err, http.StatusInternalServerError) {
			s.mu.Lock()
			s.query = text
			s.filtered = s.catalog.Products()
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	s.query = text
	s.filtered = results
	s.mu.Unlock()
	return nil
}

func (s *Storefront) searched(text string) {
	if s.onSearch != nil {
		s.onSearch(text)
	}
}

// Checkout places the order for the current cart. On success the cart is
// emptied and the session carries the reduced balance.
func (s *Storefront) Checkout(ctx context.Context, addressID string) (*checkout.Order, error) {
	s.mu.RLock()
	var sess *auth.Session
	if s.session != nil {
		copied := *s.session
		sess = &copied
	}
	items := s.items
	s.mu.RUnlock()

	order, err := s.orders.PlaceOrder(ctx, sess, items, addressID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.session = sess
	s.items = []cart.LineItem{}
	s.mu.Unlock()
	return order, nil
}

// Summary returns the order details for the current cart
func (s *Storefront) Summary() checkout.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return checkout.Summarize(s.items)
}

// Snapshot returns a copy of the page state
func (s *Storefront) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Query:       s.query,
		CatalogSize: s.catalog.Len(),
		Products:    append([]product.Product{}, s.filtered...),
		Items:       append([]cart.LineItem{}, s.items...),
		Totals:      cart.Totals(s.items),
		Balance:     decimal.Zero,
	}
	if s.session.Authenticated() {
		snap.LoggedIn = true
		snap.Username = s.session.Username
		snap.Balance = s.session.Balance
	}
	return snap
}
