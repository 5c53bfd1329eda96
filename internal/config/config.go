package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
	// ShortRefreshTokenDuration - session lifetime when the client
	// did not ask to be remembered
	ShortRefreshTokenDuration() time.Duration
}

type PricingConfig interface {
	FreeShippingThreshold() decimal.Decimal
	ShippingFlatRate() decimal.Decimal
	TaxRate() decimal.Decimal
	Currency() string
}
