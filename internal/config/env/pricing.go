package env

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"marketplace_backend/internal/config"
)

type pricingYAML struct {
	Pricing struct {
		FreeShippingThreshold string `yaml:"free_shipping_threshold"`
		ShippingFlatRate      string `yaml:"shipping_flat_rate"`
		TaxRate               string `yaml:"tax_rate"`
		Currency              string `yaml:"currency"`
	} `yaml:"pricing"`
}

type pricingConfig struct {
	freeShippingThreshold decimal.Decimal
	shippingFlatRate      decimal.Decimal
	taxRate               decimal.Decimal
	currency              string
}

// NewPricingConfigFromYAML - loads the money rules from config.yaml.
// Amounts are parsed as decimals, never floats
func NewPricingConfigFromYAML(path string) (config.PricingConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing config: %w", err)
	}

	var parsed pricingYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse pricing config: %w", err)
	}

	threshold, err := decimal.NewFromString(parsed.Pricing.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid free_shipping_threshold: %w", err)
	}

	flatRate, err := decimal.NewFromString(parsed.Pricing.ShippingFlatRate)
	if err != nil {
		return nil, fmt.Errorf("invalid shipping_flat_rate: %w", err)
	}

	taxRate, err := decimal.NewFromString(parsed.Pricing.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax_rate: %w", err)
	}

	if parsed.Pricing.Currency == "" {
		return nil, fmt.Errorf("currency not set")
	}

	return &pricingConfig{
		freeShippingThreshold: threshold,
		shippingFlatRate:      flatRate,
		taxRate:               taxRate,
		currency:              parsed.Pricing.Currency,
	}, nil
}

func (cfg *pricingConfig) FreeShippingThreshold() decimal.Decimal {
	return cfg.freeShippingThreshold
}

func (cfg *pricingConfig) ShippingFlatRate() decimal.Decimal {
	return cfg.shippingFlatRate
}

func (cfg *pricingConfig) TaxRate() decimal.Decimal {
	return cfg.taxRate
}

func (cfg *pricingConfig) Currency() string {
	return cfg.currency
}
