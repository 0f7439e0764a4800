package configs

import (
	"log/slog"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

func NewMidtransClient(cfg MidtransConfig) snap.Client {
	environment := midtrans.Sandbox
	if cfg.Production {
		environment = midtrans.Production
	}

	var client snap.Client
	client.New(cfg.ServerKey, environment)
	midtrans.ClientKey = cfg.ClientKey
	midtrans.ServerKey = cfg.ServerKey
	midtrans.Environment = environment
	slog.Info("Midtrans Snap client initialized", "production", cfg.Production)
	return client
}
