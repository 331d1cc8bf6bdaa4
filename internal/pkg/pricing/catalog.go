// Package pricing holds delivery options and the cart pricing rules shared by
// the cart summary and checkout.
package pricing

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultOptionCode is used when no delivery option is chosen.
const DefaultOptionCode = "standard"

// DeliveryOption is a selectable shipping method.
type DeliveryOption struct {
	Code  string
	Label string
	Fee   decimal.Decimal
}

// Catalog is an immutable, ordered set of delivery options.
type Catalog struct {
	options []DeliveryOption
	byCode  map[string]DeliveryOption
}

// DefaultCatalog returns the built-in delivery options.
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog([]DeliveryOption{
		{Code: "standard", Label: "Standard Delivery", Fee: decimal.Zero},
		{Code: "express", Label: "Express Delivery", Fee: decimal.RequireFromString("9.99")},
		{Code: "free", Label: "Free Delivery", Fee: decimal.Zero},
	})
	return c
}

// NewCatalog validates options and builds a Catalog. The standard option is required.
func NewCatalog(options []DeliveryOption) (*Catalog, error) {
	c := &Catalog{
		options: make([]DeliveryOption, 0, len(options)),
		byCode:  make(map[string]DeliveryOption, len(options)),
	}
	for _, opt := range options {
		opt.Code = strings.ToLower(strings.TrimSpace(opt.Code))
		if opt.Code == "" {
			return nil, errors.New("delivery option code is empty")
		}
		if opt.Fee.IsNegative() {
			return nil, fmt.Errorf("delivery option %q has negative fee", opt.Code)
		}
		if _, dup := c.byCode[opt.Code]; dup {
			return nil, fmt.Errorf("delivery option %q defined twice", opt.Code)
		}
		if opt.Label == "" {
			opt.Label = opt.Code
		}
		c.options = append(c.options, opt)
		c.byCode[opt.Code] = opt
	}
	if _, ok := c.byCode[DefaultOptionCode]; !ok {
		return nil, fmt.Errorf("delivery option %q is required", DefaultOptionCode)
	}
	return c, nil
}

type catalogFile struct {
	Options []struct {
		Code  string `yaml:"code"`
		Label string `yaml:"label"`
		Fee   string `yaml:"fee"`
	} `yaml:"options"`
}

// LoadCatalog reads delivery options from a YAML file:
//
//	options:
//	  - code: express
//	    label: Express Delivery
//	    fee: "9.99"
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read delivery options: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode delivery options: %w", err)
	}

	options := make([]DeliveryOption, 0, len(file.Options))
	for _, o := range file.Options {
		fee := decimal.Zero
		if strings.TrimSpace(o.Fee) != "" {
			if fee, err = decimal.NewFromString(strings.TrimSpace(o.Fee)); err != nil {
				return nil, fmt.Errorf("delivery option %q fee: %w", o.Code, err)
			}
		}
		options = append(options, DeliveryOption{Code: o.Code, Label: o.Label, Fee: fee})
	}
	return NewCatalog(options)
}

// Lookup resolves an option code. An empty code selects the standard option.
func (c *Catalog) Lookup(code string) (DeliveryOption, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = DefaultOptionCode
	}
	opt, ok := c.byCode[code]
	return opt, ok
}

// Options lists the options in definition order.
func (c *Catalog) Options() []DeliveryOption {
	out := make([]DeliveryOption, len(c.options))
	copy(out, c.options)
	return out
}
