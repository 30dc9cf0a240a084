package store_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/NeerajGithb/furniture-client-sub000/internal/api"
	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
)

var errBackendDown = errors.New("backend down")

type price struct {
	final    int64
	original int64
}

// fakeCartBackend keeps server-truth cart state in memory and computes the
// server-owned fields (ids, item totals) the way the real backend would.
// Gates let a test hold a request open to observe optimistic state while the
// call is still in flight.
type fakeCartBackend struct {
	mu           sync.Mutex
	cart         *domain.Cart
	prices       map[int64]price
	nextItemID   int64
	getCartCalls int
	updateCalls  int

	unauthorized bool
	failAdd      bool
	failUpdate   bool
	failClear    bool

	addGate    chan struct{}
	updateGate chan struct{}

	// getGate holds a GetCart response open after its payload has been
	// captured, so a test can land another mutation while the fetch is
	// still in flight.
	getGate chan struct{}
}

func newFakeCartBackend() *fakeCartBackend {
	return &fakeCartBackend{
		cart:   domain.EmptyCart(),
		prices: make(map[int64]price),
	}
}

func (f *fakeCartBackend) setPrice(productID, final, original int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[productID] = price{final: final, original: original}
}

func (f *fakeCartBackend) seedItem(productID, quantity int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.prices[productID]
	f.nextItemID++
	f.cart.Items = append(f.cart.Items, domain.CartItem{
		ID:            f.nextItemID,
		ProductID:     productID,
		Quantity:      quantity,
		FinalPrice:    p.final,
		OriginalPrice: p.original,
		ItemTotal:     p.final * quantity,
		AddedAt:       time.Now(),
	})
	f.cart.RecalculateCounters()
}

func (f *fakeCartBackend) GetCart(_ context.Context) (*domain.Cart, error) {
	f.mu.Lock()
	f.getCartCalls++
	if f.unauthorized {
		f.mu.Unlock()
		return nil, api.ErrUnauthorized
	}
	cart := f.cart.Clone()
	f.mu.Unlock()

	if f.getGate != nil {
		<-f.getGate
	}
	return cart, nil
}

func (f *fakeCartBackend) cartFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCartCalls
}

func (f *fakeCartBackend) AddCartItem(_ context.Context, productID, quantity int64, variant string) (*domain.Cart, error) {
	if f.addGate != nil {
		<-f.addGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAdd {
		return nil, errBackendDown
	}

	p := f.prices[productID]
	f.nextItemID++
	f.cart.Items = append(f.cart.Items, domain.CartItem{
		ID:              f.nextItemID,
		ProductID:       productID,
		Quantity:        quantity,
		SelectedVariant: variant,
		FinalPrice:      p.final,
		OriginalPrice:   p.original,
		ItemTotal:       p.final * quantity,
		AddedAt:         time.Now(),
	})
	f.cart.RecalculateCounters()
	return f.cart.Clone(), nil
}

func (f *fakeCartBackend) UpdateCartItem(_ context.Context, productID, quantity int64) (*domain.Cart, error) {
	if f.updateGate != nil {
		<-f.updateGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++

	if f.failUpdate {
		return nil, errBackendDown
	}

	if quantity == 0 {
		kept := f.cart.Items[:0:0]
		for i := range f.cart.Items {
			if f.cart.Items[i].ProductID != productID {
				kept = append(kept, f.cart.Items[i])
			}
		}
		f.cart.Items = kept
	} else {
		for i := range f.cart.Items {
			if f.cart.Items[i].ProductID == productID {
				f.cart.Items[i].Quantity = quantity
				f.cart.Items[i].ItemTotal = f.cart.Items[i].FinalPrice * quantity
			}
		}
	}
	f.cart.RecalculateCounters()
	return f.cart.Clone(), nil
}

func (f *fakeCartBackend) ClearCart(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failClear {
		return errBackendDown
	}
	f.cart = domain.EmptyCart()
	return nil
}

type fakeOrderBackend struct {
	mu     sync.Mutex
	orders map[int64]domain.Order
	nextID int64

	failPlace  bool
	failCancel bool

	placed []*api.PlaceOrderRequest
}

func newFakeOrderBackend() *fakeOrderBackend {
	return &fakeOrderBackend{orders: make(map[int64]domain.Order), nextID: 100}
}

func (f *fakeOrderBackend) seedOrder(o domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[o.ID] = o
}

func (f *fakeOrderBackend) ListOrders(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	orders := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeOrderBackend) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrderBackend) PlaceOrder(_ context.Context, req *api.PlaceOrderRequest) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPlace {
		return nil, errBackendDown
	}

	f.placed = append(f.placed, req)
	f.nextID++
	order := domain.Order{
		ID:            f.nextID,
		Status:        domain.OrderStatusNew,
		Items:         req.Items,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	f.orders[order.ID] = order
	return &order, nil
}

func (f *fakeOrderBackend) CancelOrder(_ context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCancel {
		return nil, errBackendDown
	}

	o, ok := f.orders[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	now := time.Now()
	o.Status = domain.OrderStatusCancelled
	o.CancelledAt = &now
	f.orders[id] = o
	return &o, nil
}

type fakeAddressBackend struct {
	mu     sync.Mutex
	byID   map[int64]domain.Address
	nextID int64

	failCreate bool
	failUpdate bool
	failDelete bool
}

func newFakeAddressBackend() *fakeAddressBackend {
	return &fakeAddressBackend{byID: make(map[int64]domain.Address)}
}

func (f *fakeAddressBackend) ListAddresses(_ context.Context) ([]domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	addresses := make([]domain.Address, 0, len(f.byID))
	for _, a := range f.byID {
		addresses = append(addresses, a)
	}
	return addresses, nil
}

func (f *fakeAddressBackend) CreateAddress(_ context.Context, address *domain.Address) (*domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate {
		return nil, errBackendDown
	}

	f.nextID++
	created := *address
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.byID[created.ID] = created
	return &created, nil
}

func (f *fakeAddressBackend) UpdateAddress(_ context.Context, address *domain.Address) (*domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate {
		return nil, errBackendDown
	}

	if _, ok := f.byID[address.ID]; !ok {
		return nil, api.ErrNotFound
	}
	updated := *address
	updated.UpdatedAt = time.Now()
	f.byID[updated.ID] = updated
	return &updated, nil
}

func (f *fakeAddressBackend) DeleteAddress(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete {
		return errBackendDown
	}
	delete(f.byID, id)
	return nil
}

type fakeWishlistBackend struct {
	mu     sync.Mutex
	items  []domain.WishlistItem
	nextID int64

	failAdd    bool
	failRemove bool
	addCalls   int
}

func newFakeWishlistBackend() *fakeWishlistBackend {
	return &fakeWishlistBackend{}
}

func (f *fakeWishlistBackend) ListWishlist(_ context.Context) ([]domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := make([]domain.WishlistItem, len(f.items))
	copy(cp, f.items)
	return cp, nil
}

func (f *fakeWishlistBackend) AddWishlistItem(_ context.Context, productID int64) (*domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCalls++
	if f.failAdd {
		return nil, errBackendDown
	}

	f.nextID++
	item := domain.WishlistItem{ID: f.nextID, ProductID: productID, AddedAt: time.Now()}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeWishlistBackend) RemoveWishlistItem(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failRemove {
		return errBackendDown
	}

	kept := f.items[:0:0]
	for i := range f.items {
		if f.items[i].ID != id {
			kept = append(kept, f.items[i])
		}
	}
	f.items = kept
	return nil
}

type fakeCatalogBackend struct {
	mu              sync.Mutex
	products        map[int64]domain.Product
	categories      []domain.Category
	materials       []domain.Material
	priceRanges     []domain.PriceRange
	failFacets      bool
	getProductCalls int
}

func newFakeCatalogBackend() *fakeCatalogBackend {
	return &fakeCatalogBackend{products: make(map[int64]domain.Product)}
}

func (f *fakeCatalogBackend) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	products := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeCatalogBackend) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getProductCalls++
	p, ok := f.products[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalogBackend) ListCategories(_ context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFacets {
		return nil, errBackendDown
	}
	return f.categories, nil
}

func (f *fakeCatalogBackend) ListMaterials(_ context.Context) ([]domain.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFacets {
		return nil, errBackendDown
	}
	return f.materials, nil
}

func (f *fakeCatalogBackend) ListPriceRanges(_ context.Context) ([]domain.PriceRange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFacets {
		return nil, errBackendDown
	}
	return f.priceRanges, nil
}
