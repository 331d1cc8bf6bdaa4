package test

import (
	"context"
	"sort"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	user.CreatedAt = time.Now()
	s.Next++
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile replaces the stored user and re-keys it by email.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	current, ok := s.ByID[user.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if other, taken := s.Users[user.Email]; taken && other.ID != user.ID {
		return nil, domainErrors.ErrAlreadyExists
	}
	delete(s.Users, current.Email)
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// SessionRepositoryStub keeps revoked token ids in memory.
type SessionRepositoryStub struct {
	Revoked   map[string]time.Time
	RevokeErr error
	CheckErr  error
}

// Revoke remembers tokenID.
func (s *SessionRepositoryStub) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.RevokeErr != nil {
		return s.RevokeErr
	}
	if s.Revoked == nil {
		s.Revoked = make(map[string]time.Time)
	}
	s.Revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (s *SessionRepositoryStub) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.CheckErr != nil {
		return false, s.CheckErr
	}
	_, ok := s.Revoked[tokenID]
	return ok, nil
}

// ProductRepositoryStub serves products from a slice. Sold counts units per product id.
type ProductRepositoryStub struct {
	Products []model.Product
	Sold     map[int64]int
	Err      error
}

// List applies category and query filters the way the database does.
func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, p := range s.Products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GetByID returns the product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Create appends the product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.NewProduct) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var id int64
	for _, existing := range s.Products {
		if existing.ID > id {
			id = existing.ID
		}
	}
	p := model.Product{
		ID:          id + 1,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		SellerID:    product.SellerID,
		CreatedAt:   time.Now(),
	}
	s.Products = append(s.Products, p)
	return &p, nil
}

// Update replaces the stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Products {
		if s.Products[i].ID == product.ID {
			s.Products[i] = product
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Delete drops the product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Products {
		if s.Products[i].ID == id {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Bestsellers ranks products found in Sold by units, then by id.
func (s *ProductRepositoryStub) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, p := range s.Products {
		if s.Sold[p.ID] > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.Sold[out[i].ID] != s.Sold[out[j].ID] {
			return s.Sold[out[i].ID] > s.Sold[out[j].ID]
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CartRepositoryStub keeps cart lines in memory.
type CartRepositoryStub struct {
	Products repository.ProductRepository
	Items    []model.CartItem
	Err      error
	next     int64
}

// ListByUser returns the user's lines.
func (s *CartRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.CartItem
	for _, it := range s.Items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

// Add merges quantities for a product already in the cart.
func (s *CartRepositoryStub) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].UserID == userID && s.Items[i].Product.ID == productID {
			s.Items[i].Quantity += quantity
			item := s.Items[i]
			return &item, nil
		}
	}
	product := model.Product{ID: productID}
	if s.Products != nil {
		p, err := s.Products.GetByID(ctx, productID)
		if err != nil {
			return nil, domainErrors.ErrInvalidProduct
		}
		product = *p
	}
	s.next++
	item := model.CartItem{ID: s.next, UserID: userID, Product: product, Quantity: quantity, AddedAt: time.Now()}
	s.Items = append(s.Items, item)
	return &item, nil
}

// UpdateQuantity overwrites the quantity of a user's line.
func (s *CartRepositoryStub) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID && s.Items[i].UserID == userID {
			s.Items[i].Quantity = quantity
			item := s.Items[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Remove deletes a user's line.
func (s *CartRepositoryStub) Remove(ctx context.Context, userID, itemID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID && s.Items[i].UserID == userID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Clear removes every line of the user.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	return nil
}

// consume removes the priced lines, failing when one is gone or its quantity moved.
func (s *CartRepositoryStub) consume(userID int64, items []model.OrderItem) error {
	matched := make(map[int64]bool, len(items))
	for _, priced := range items {
		for _, it := range s.Items {
			if it.ID == priced.CartItemID && it.UserID == userID && it.Quantity == priced.Quantity {
				matched[it.ID] = true
			}
		}
	}
	if len(matched) != len(items) {
		return domainErrors.ErrCartChanged
	}
	kept := s.Items[:0]
	for _, it := range s.Items {
		if !matched[it.ID] {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	return nil
}

// PlaceCall records a Place invocation.
type PlaceCall struct {
	Order    model.Order
	Delivery model.Delivery
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	PlaceFn       func(context.Context, *model.Order, *model.Delivery) error
	GetByNumberFn func(context.Context, int64, string) (*model.Order, error)
	ListByUserFn  func(context.Context, int64) ([]model.Order, error)

	// Carts, when set, has the priced lines consumed on Place like the database does.
	Carts  *CartRepositoryStub
	Orders []model.Order
	Placed []PlaceCall
}

// Place records the order and assigns identifiers.
func (s *OrderRepositoryStub) Place(ctx context.Context, order *model.Order, delivery *model.Delivery) error {
	if s.PlaceFn != nil {
		if err := s.PlaceFn(ctx, order, delivery); err != nil {
			return err
		}
	}
	if s.Carts != nil {
		if err := s.Carts.consume(order.UserID, order.Items); err != nil {
			return err
		}
	}
	order.ID = int64(len(s.Placed) + 1)
	order.CreatedAt = time.Now()
	delivery.ID = order.ID
	delivery.OrderID = order.ID
	delivery.OrderNumber = order.Number
	s.Placed = append(s.Placed, PlaceCall{Order: *order, Delivery: *delivery})
	s.Orders = append(s.Orders, *order)
	return nil
}

// GetByNumber returns a stored order of the user.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, userID int64, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, userID, number)
	}
	for _, o := range s.Orders {
		if o.Number == number && o.UserID == userID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// DeliveryUpdateCall captures arguments passed to UpdateStatus.
type DeliveryUpdateCall struct {
	DeliveryID int64
	Status     model.DeliveryStatus
}

// DeliveryRepositoryStub allows tests to customize behaviour.
type DeliveryRepositoryStub struct {
	GetByOrderNumberFn    func(context.Context, int64, string) (*model.Delivery, error)
	GetByTrackingNumberFn func(context.Context, string) (*model.Delivery, error)
	SelectBatchForSyncFn  func(context.Context, int) ([]model.Delivery, error)
	UpdateStatusFn        func(context.Context, int64, model.DeliveryStatus) error

	Pending     []model.Delivery
	UpdateCalls []DeliveryUpdateCall
}

// GetByOrderNumber uses the override or reports not found.
func (s *DeliveryRepositoryStub) GetByOrderNumber(ctx context.Context, userID int64, number string) (*model.Delivery, error) {
	if s.GetByOrderNumberFn != nil {
		return s.GetByOrderNumberFn(ctx, userID, number)
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTrackingNumber uses the override or reports not found.
func (s *DeliveryRepositoryStub) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Delivery, error) {
	if s.GetByTrackingNumberFn != nil {
		return s.GetByTrackingNumberFn(ctx, trackingNumber)
	}
	return nil, domainErrors.ErrNotFound
}

// SelectBatchForSync returns queued deliveries.
func (s *DeliveryRepositoryStub) SelectBatchForSync(ctx context.Context, limit int) ([]model.Delivery, error) {
	if s.SelectBatchForSyncFn != nil {
		return s.SelectBatchForSyncFn(ctx, limit)
	}
	return s.Pending, nil
}

// UpdateStatus records update invocations.
func (s *DeliveryRepositoryStub) UpdateStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, deliveryID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, DeliveryUpdateCall{DeliveryID: deliveryID, Status: status})
	return nil
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.SessionRepository  = (*SessionRepositoryStub)(nil)
	_ repository.ProductRepository  = (*ProductRepositoryStub)(nil)
	_ repository.CartRepository     = (*CartRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.DeliveryRepository = (*DeliveryRepositoryStub)(nil)
)
