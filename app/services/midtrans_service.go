package services

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/utils/format"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrMissingServerKey = errors.New("payment provider server key is not configured")
)

type SessionRequest struct {
	SessionID     string
	Amount        decimal.Decimal
	CartID        string
	ShippingAlias string
	Customer      *models.User
}

type CheckoutSession struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	RedirectURL string `json:"url"`
}

// PaymentEvent is a verified notification from the payment provider.
type PaymentEvent struct {
	SessionID     string
	Status        string
	Completed     bool
	CartID        string
	ShippingAlias string
	CustomerEmail string
	Amount        decimal.Decimal
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*CheckoutSession, error)
	ParseNotification(body []byte) (*PaymentEvent, error)
}

type snapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type MidtransGateway struct {
	client    snapCreator
	serverKey string
	finishURL string
}

func NewMidtransGateway(client snapCreator, serverKey, finishURL string) *MidtransGateway {
	return &MidtransGateway{client: client, serverKey: serverKey, finishURL: finishURL}
}

func (g *MidtransGateway) CreateSession(ctx context.Context, req SessionRequest) (*CheckoutSession, error) {
	gross := format.WholeUnits(req.Amount)
	items := []midtrans.ItemDetails{{
		ID:    req.CartID,
		Name:  truncate("Order total "+format.Money(req.Amount), 50),
		Price: gross,
		Qty:   1,
	}}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.SessionID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Items: &items,
		Callbacks: &snap.Callbacks{
			Finish: g.finishURL,
		},
		CustomField1: req.CartID,
		CustomField2: req.ShippingAlias,
		CustomField3: req.Customer.Email,
	}

	resp, mErr := g.client.CreateTransaction(snapReq)
	if mErr != nil {
		slog.Error("CreateSession: Midtrans CreateTransaction failed", "session_id", req.SessionID, "error", mErr.Error())
		return nil, fmt.Errorf("create midtrans transaction: %s", mErr.Error())
	}
	return &CheckoutSession{ID: req.SessionID, Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

type midtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	CustomField1      string `json:"custom_field1"`
	CustomField2      string `json:"custom_field2"`
	CustomField3      string `json:"custom_field3"`
}

// ParseNotification verifies signature_key = SHA512(order_id+status_code+gross_amount+server_key).
// Notifications are refused outright while no server key is configured.
func (g *MidtransGateway) ParseNotification(body []byte) (*PaymentEvent, error) {
	if g.serverKey == "" {
		return nil, ErrMissingServerKey
	}
	var n midtransNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, ErrInvalidSignature
	}
	if n.OrderID == "" || n.SignatureKey == "" {
		return nil, ErrInvalidSignature
	}
	expected := Signature(n.OrderID, n.StatusCode, n.GrossAmount, g.serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) != 1 {
		return nil, ErrInvalidSignature
	}
	amount, err := decimal.NewFromString(n.GrossAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid gross_amount %q: %w", n.GrossAmount, err)
	}

	completed := n.TransactionStatus == "settlement" ||
		(n.TransactionStatus == "capture" && n.FraudStatus == "accept")
	return &PaymentEvent{
		SessionID:     n.OrderID,
		Status:        n.TransactionStatus,
		Completed:     completed,
		CartID:        n.CustomField1,
		ShippingAlias: n.CustomField2,
		CustomerEmail: n.CustomField3,
		Amount:        amount,
	}, nil
}

func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
