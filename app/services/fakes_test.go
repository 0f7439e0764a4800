package services

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/utils/listquery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type mockCartRepo struct {
	carts map[string]*models.Cart
	saves int
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: map[string]*models.Cart{}}
}

func (m *mockCartRepo) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCartRepo) FindByID(_ context.Context, id string) (*models.Cart, error) {
	return m.carts[id], nil
}

func (m *mockCartRepo) Save(_ context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	m.carts[cart.ID] = cart
	m.saves++
	return nil
}

func (m *mockCartRepo) DeleteByUser(_ context.Context, userID string) (bool, error) {
	for id, c := range m.carts {
		if c.UserID == userID {
			delete(m.carts, id)
			return true, nil
		}
	}
	return false, nil
}

type mockProductRepo struct {
	products map[string]*models.Product
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{products: map[string]*models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	return m.products[id], nil
}

type mockCouponRepo struct {
	coupons map[string]*models.Coupon
}

func (m *mockCouponRepo) FindByName(_ context.Context, name string) (*models.Coupon, error) {
	return m.coupons[name], nil
}

type mockUserRepo struct {
	users    map[string]*models.User
	wishlist map[string][]string
	products map[string]models.Product
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{
		users:    map[string]*models.User{},
		wishlist: map[string][]string{},
		products: map[string]models.Product{},
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Active = true
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByResetCode(_ context.Context, codeHash string, now time.Time) (*models.User, error) {
	for _, u := range m.users {
		if u.PasswordResetCode != nil && *u.PasswordResetCode == codeHash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateFields(_ context.Context, id string, changes map[string]any) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	for k, v := range changes {
		switch k {
		case "password":
			u.Password = v.(string)
		case "password_changed_at":
			t := v.(time.Time)
			u.PasswordChangedAt = &t
		case "password_reset_code":
			if v == nil {
				u.PasswordResetCode = nil
			} else {
				s := v.(string)
				u.PasswordResetCode = &s
			}
		case "password_reset_expires":
			if v == nil {
				u.PasswordResetExpires = nil
			} else {
				t := v.(time.Time)
				u.PasswordResetExpires = &t
			}
		case "password_reset_verified":
			if v == nil {
				u.PasswordResetVerified = nil
			} else {
				b := v.(bool)
				u.PasswordResetVerified = &b
			}
		case "active":
			u.Active = v.(bool)
		case "name":
			u.Name = v.(string)
		case "profile_img":
			u.ProfileImg = v.(string)
		default:
			return nil, errors.New("unexpected column " + k)
		}
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) Wishlist(_ context.Context, userID string) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range m.wishlist[userID] {
		out = append(out, m.products[id])
	}
	return out, nil
}

func (m *mockUserRepo) AddToWishlist(_ context.Context, userID, productID string) error {
	for _, id := range m.wishlist[userID] {
		if id == productID {
			return nil
		}
	}
	m.wishlist[userID] = append(m.wishlist[userID], productID)
	return nil
}

func (m *mockUserRepo) RemoveFromWishlist(_ context.Context, userID, productID string) error {
	ids := m.wishlist[userID][:0]
	for _, id := range m.wishlist[userID] {
		if id != productID {
			ids = append(ids, id)
		}
	}
	m.wishlist[userID] = ids
	return nil
}

type mockAddressRepo struct {
	addresses []models.Address
}

func (m *mockAddressRepo) ListByUser(_ context.Context, userID string) ([]models.Address, error) {
	out := []models.Address{}
	for _, a := range m.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAddressRepo) Create(_ context.Context, address *models.Address) error {
	for _, a := range m.addresses {
		if a.UserID == address.UserID && a.Alias == address.Alias {
			return gorm.ErrDuplicatedKey
		}
	}
	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	m.addresses = append(m.addresses, *address)
	return nil
}

func (m *mockAddressRepo) Update(_ context.Context, userID, addressID string, changes map[string]any) (*models.Address, error) {
	for i := range m.addresses {
		a := &m.addresses[i]
		if a.ID != addressID || a.UserID != userID {
			continue
		}
		if v, ok := changes["city"]; ok {
			a.City = v.(string)
		}
		clone := *a
		return &clone, nil
	}
	return nil, nil
}

func (m *mockAddressRepo) Delete(_ context.Context, userID, addressID string) (bool, error) {
	for i, a := range m.addresses {
		if a.ID == addressID && a.UserID == userID {
			m.addresses = append(m.addresses[:i], m.addresses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type mockOrderRepo struct {
	orders []*models.Order
	carts  *mockCartRepo
}

func (m *mockOrderRepo) PlaceOrder(_ context.Context, order *models.Order, cartID string) error {
	if order.PaymentSessionID != nil {
		for _, o := range m.orders {
			if o.PaymentSessionID != nil && *o.PaymentSessionID == *order.PaymentSessionID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if _, ok := m.carts.carts[cartID]; !ok {
		return repositories.ErrCartAlreadyCheckedOut
	}
	delete(m.carts.carts, cartID)
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepo) FindBySessionID(_ context.Context, sessionID string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.PaymentSessionID != nil && *o.PaymentSessionID == sessionID {
			return o, nil
		}
	}
	return nil, nil
}

// mockResourceRepo keeps documents by id; getID reads a document's key.
type mockResourceRepo[T any] struct {
	docs    map[string]*T
	getID   func(*T) string
	apply   func(*T, map[string]any)
	lastQ   listquery.Query
	created int
}

func (m *mockResourceRepo[T]) Create(_ context.Context, doc *T) error {
	m.docs[m.getID(doc)] = doc
	m.created++
	return nil
}

func (m *mockResourceRepo[T]) FindByID(_ context.Context, id string) (*T, error) {
	return m.docs[id], nil
}

func (m *mockResourceRepo[T]) List(_ context.Context, _ repositories.Scope, q listquery.Query) ([]T, int64, error) {
	m.lastQ = q
	out := []T{}
	for _, d := range m.docs {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (m *mockResourceRepo[T]) Update(_ context.Context, id string, changes map[string]any) (*T, *T, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil, nil
	}
	before := *doc
	m.apply(doc, changes)
	after := *doc
	return &before, &after, nil
}

func (m *mockResourceRepo[T]) Delete(_ context.Context, id string) (*T, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	delete(m.docs, id)
	return doc, nil
}

type mockGateway struct {
	requests []SessionRequest
	event    *PaymentEvent
	parseErr error
}

func (m *mockGateway) CreateSession(_ context.Context, req SessionRequest) (*CheckoutSession, error) {
	m.requests = append(m.requests, req)
	return &CheckoutSession{ID: req.SessionID, Token: "snap-token", RedirectURL: "https://pay.example/" + req.SessionID}, nil
}

func (m *mockGateway) ParseNotification(_ []byte) (*PaymentEvent, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return m.event, nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(to, _, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+"|"+body)
	return nil
}
