package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnap struct {
	got *snap.Request
}

func (s *stubSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	s.got = req
	return &snap.Response{Token: "tok-1", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/tok-1"}, nil
}

func notification(t *testing.T, fields map[string]string) []byte {
	t.Helper()
	body, err := json.Marshal(fields)
	require.NoError(t, err)
	return body
}

func TestMidtransGateway_CreateSession(t *testing.T) {
	stub := &stubSnap{}
	gw := NewMidtransGateway(stub, "server-key", "https://shop.example/orders")

	session, err := gw.CreateSession(context.Background(), SessionRequest{
		SessionID:     "cs_1",
		Amount:        dec("150000.40"),
		CartID:        "c1",
		ShippingAlias: "home",
		Customer:      &models.User{Name: "Ayu", Email: "ayu@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "tok-1", session.Token)

	require.NotNil(t, stub.got)
	assert.Equal(t, "cs_1", stub.got.TransactionDetails.OrderID)
	assert.Equal(t, int64(150000), stub.got.TransactionDetails.GrossAmt)
	assert.Equal(t, "c1", stub.got.CustomField1)
	assert.Equal(t, "home", stub.got.CustomField2)
	assert.Equal(t, "ayu@example.com", stub.got.CustomField3)
	assert.Equal(t, "https://shop.example/orders", stub.got.Callbacks.Finish)
}

func TestMidtransGateway_ParseNotification(t *testing.T) {
	gw := NewMidtransGateway(&stubSnap{}, "server-key", "")
	base := map[string]string{
		"order_id":           "cs_1",
		"status_code":        "200",
		"gross_amount":       "150000.00",
		"transaction_status": "settlement",
		"custom_field1":      "c1",
		"custom_field2":      "home",
		"custom_field3":      "ayu@example.com",
	}
	signed := func(m map[string]string) map[string]string {
		out := map[string]string{}
		for k, v := range m {
			out[k] = v
		}
		out["signature_key"] = Signature(out["order_id"], out["status_code"], out["gross_amount"], "server-key")
		return out
	}

	event, err := gw.ParseNotification(notification(t, signed(base)))
	require.NoError(t, err)
	assert.True(t, event.Completed)
	assert.Equal(t, "cs_1", event.SessionID)
	assert.Equal(t, "c1", event.CartID)
	assert.Equal(t, "home", event.ShippingAlias)
	assert.Equal(t, "ayu@example.com", event.CustomerEmail)
	assert.True(t, event.Amount.Equal(dec("150000")), event.Amount.String())

	pending := signed(base)
	pending["transaction_status"] = "pending"
	event, err = gw.ParseNotification(notification(t, pending))
	require.NoError(t, err)
	assert.False(t, event.Completed)

	challenged := signed(base)
	challenged["transaction_status"] = "capture"
	challenged["fraud_status"] = "challenge"
	event, err = gw.ParseNotification(notification(t, challenged))
	require.NoError(t, err)
	assert.False(t, event.Completed)

	tampered := signed(base)
	tampered["gross_amount"] = "1.00"
	_, err = gw.ParseNotification(notification(t, tampered))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = gw.ParseNotification([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestMidtransGateway_ParseNotificationRequiresServerKey(t *testing.T) {
	gw := NewMidtransGateway(&stubSnap{}, "", "")
	forged := map[string]string{
		"order_id":           "cs_forged",
		"status_code":        "200",
		"gross_amount":       "1.00",
		"transaction_status": "settlement",
		"signature_key":      Signature("cs_forged", "200", "1.00", ""),
	}

	event, err := gw.ParseNotification(notification(t, forged))
	assert.ErrorIs(t, err, ErrMissingServerKey)
	assert.Nil(t, event)
}
