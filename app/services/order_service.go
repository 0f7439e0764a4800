package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/utils/format"
	"github.com/Rakhulsr/storefront-api/app/utils/listquery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderPricing struct {
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
}

type OrderService struct {
	orders       repositories.OrderRepository
	documents    repositories.ResourceRepository[models.Order]
	carts        repositories.CartRepository
	users        repositories.UserRepository
	gateway      PaymentGateway
	mailer       Mailer
	pricing      OrderPricing
	now          func() time.Time
	newSessionID func() string
}

func NewOrderService(
	orders repositories.OrderRepository,
	documents repositories.ResourceRepository[models.Order],
	carts repositories.CartRepository,
	users repositories.UserRepository,
	gateway PaymentGateway,
	mailer Mailer,
	pricing OrderPricing,
) *OrderService {
	return &OrderService{
		orders:       orders,
		documents:    documents,
		carts:        carts,
		users:        users,
		gateway:      gateway,
		mailer:       mailer,
		pricing:      pricing,
		now:          time.Now,
		newSessionID: func() string { return "cs_" + uuid.NewString() },
	}
}

// checkoutCart loads the cart and the shipping address an order would use.
func (s *OrderService) checkoutCart(ctx context.Context, user *models.User, cartID, alias string) (*models.Cart, *models.Address, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, helpers.NotFound("There is no such cart with id %s", cartID)
	}
	if cart.IsEmpty() {
		return nil, nil, helpers.BadRequest("You don't have any items in the cart!")
	}
	if cart.UserID != user.ID {
		return nil, nil, helpers.Forbidden("You are not allowed to checkout this cart")
	}

	address := user.AddressByAlias(alias)
	if address == nil {
		return nil, nil, helpers.NotFound("There is no address called '%s' in your addresses list", alias)
	}
	return cart, address, nil
}

func (s *OrderService) total(cart *models.Cart) decimal.Decimal {
	return cart.PayableTotal().Add(s.pricing.TaxPrice).Add(s.pricing.ShippingPrice)
}

// CreateCashOrder places an unpaid cash order and consumes the cart.
func (s *OrderService) CreateCashOrder(ctx context.Context, user *models.User, cartID, alias string) (*models.Order, error) {
	cart, address, err := s.checkoutCart(ctx, user, cartID, alias)
	if err != nil {
		return nil, err
	}

	order := models.NewOrderFromCart(cart, address.Snapshot(), s.pricing.TaxPrice, s.pricing.ShippingPrice, models.PaymentCash)
	if err := s.orders.PlaceOrder(ctx, order, cart.ID); err != nil {
		if errors.Is(err, repositories.ErrCartAlreadyCheckedOut) {
			return nil, helpers.NotFound("There is no such cart with id %s", cartID)
		}
		slog.Error("CreateCashOrder: failed to place order", "cart_id", cartID, "user_id", user.ID, "error", err)
		return nil, err
	}

	s.sendConfirmation(user, order)
	return order, nil
}

// CreateCheckoutSession opens a hosted card payment for the cart. The order is
// only created once the provider reports the payment as completed.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, user *models.User, cartID, alias string) (*CheckoutSession, error) {
	cart, address, err := s.checkoutCart(ctx, user, cartID, alias)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSession(ctx, SessionRequest{
		SessionID:     s.newSessionID(),
		Amount:        s.total(cart),
		CartID:        cart.ID,
		ShippingAlias: address.Alias,
		Customer:      user,
	})
	if err != nil {
		return nil, helpers.Internal("Could not create checkout session")
	}
	return session, nil
}

// HandleWebhook turns a completed card payment into a paid order. Repeated
// notifications for the same session leave exactly one order.
func (s *OrderService) HandleWebhook(ctx context.Context, body []byte) error {
	event, err := s.gateway.ParseNotification(body)
	if err != nil {
		return helpers.BadRequest("Webhook Error: %s", err.Error())
	}
	if !event.Completed {
		slog.Info("HandleWebhook: ignoring notification", "session_id", event.SessionID, "status", event.Status)
		return nil
	}

	existing, err := s.orders.FindBySessionID(ctx, event.SessionID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	cart, err := s.carts.FindByID(ctx, event.CartID)
	if err != nil {
		return err
	}
	if cart == nil {
		slog.Warn("HandleWebhook: cart no longer exists", "session_id", event.SessionID, "cart_id", event.CartID)
		return nil
	}
	user, err := s.users.FindByEmail(ctx, event.CustomerEmail)
	if err != nil {
		return err
	}
	if user == nil {
		slog.Warn("HandleWebhook: customer not found", "session_id", event.SessionID, "email", event.CustomerEmail)
		return nil
	}

	shipping := models.ShippingAddress{Alias: event.ShippingAlias}
	if address := user.AddressByAlias(event.ShippingAlias); address != nil {
		shipping = address.Snapshot()
	}

	// The session charged whole units of the cart total at checkout time.
	due := decimal.NewFromInt(format.WholeUnits(s.total(cart)))
	if !due.Equal(event.Amount) {
		slog.Error("HandleWebhook: paid amount does not match cart, order not created",
			"session_id", event.SessionID, "cart_id", cart.ID, "paid", event.Amount.String(), "due", due.String())
		return nil
	}

	order := models.NewOrderFromCart(cart, shipping, s.pricing.TaxPrice, s.pricing.ShippingPrice, models.PaymentCard)
	order.UserID = user.ID
	order.TotalOrderPrice = event.Amount
	paidAt := s.now()
	order.IsPaid = true
	order.PaidAt = &paidAt
	sessionID := event.SessionID
	order.PaymentSessionID = &sessionID

	if err := s.orders.PlaceOrder(ctx, order, cart.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, repositories.ErrCartAlreadyCheckedOut) {
			slog.Info("HandleWebhook: session already fulfilled", "session_id", event.SessionID)
			return nil
		}
		slog.Error("HandleWebhook: failed to place order", "session_id", event.SessionID, "error", err)
		return err
	}

	slog.Info("HandleWebhook: card order created", "order_id", order.ID, "session_id", event.SessionID)
	s.sendConfirmation(user, order)
	return nil
}

// List returns every order to admins and managers, and only their own to users.
func (s *OrderService) List(ctx context.Context, user *models.User, q listquery.Query) (*Page[models.Order], error) {
	docs, total, err := s.documents.List(ctx, ownerScope(user), q)
	if err != nil {
		return nil, err
	}
	return &Page[models.Order]{Results: len(docs), Pagination: q.Paginate(total), Data: docs}, nil
}

func (s *OrderService) Get(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	order, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, helpers.DocumentNotFound(id)
	}
	if user.Role == models.RoleUser && order.UserID != user.ID {
		return nil, helpers.Forbidden("You are not allowed to access this order")
	}
	return order, nil
}

func (s *OrderService) MarkPaid(ctx context.Context, id string) (*models.Order, error) {
	return s.mark(ctx, id, map[string]any{"is_paid": true, "paid_at": s.now()})
}

func (s *OrderService) MarkDelivered(ctx context.Context, id string) (*models.Order, error) {
	return s.mark(ctx, id, map[string]any{"is_delivered": true, "delivered_at": s.now()})
}

func (s *OrderService) mark(ctx context.Context, id string, changes map[string]any) (*models.Order, error) {
	before, after, err := s.documents.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, helpers.NotFound("There is no such order with this id: %s", id)
	}
	return after, nil
}

func (s *OrderService) sendConfirmation(user *models.User, order *models.Order) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(user.Email, "Your order confirmation", BuildOrderConfirmationEmail(user.Name, order)); err != nil {
		slog.Warn("sendConfirmation: email not sent", "order_id", order.ID, "error", err)
	}
}

func ownerScope(user *models.User) repositories.Scope {
	return func(db *gorm.DB) *gorm.DB {
		if user.Role == models.RoleUser {
			return db.Where("user_id = ?", user.ID)
		}
		return db
	}
}
