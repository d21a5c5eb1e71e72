package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are exchanged as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents an assembled machine in the catalog. Component
// references are optional and point at one row of the matching kind.
type Product struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"`
	Images       ImageList        `json:"images"`
	Price        decimal.Decimal  `json:"price"`
	OldPrice     *decimal.Decimal `json:"old_price"`
	DeliveryTime *int             `json:"delivery_time"`
	SKU          *string          `json:"sku"`

	RAM             *int64 `json:"ram"`
	CoolerAIO       *int64 `json:"cooler_aio"`
	SSD             *int64 `json:"ssd"`
	HardDisk        *int64 `json:"hard_disk"`
	ReaderWriter    *int64 `json:"reader_writer"`
	Motherboard     *int64 `json:"motherboard"`
	GraphicsCard    *int64 `json:"graphics_card"`
	OperatingSystem *int64 `json:"operating_system"`
	Processor       *int64 `json:"processor"`
	Housing         *int64 `json:"housing"`
	CaseFan         *int64 `json:"case_fan"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref returns the address of the reference field for kind, or nil when
// products cannot reference that kind.
func (p *Product) Ref(kind ComponentKind) **int64 {
	switch kind {
	case KindRAM:
		return &p.RAM
	case KindCoolerAIO:
		return &p.CoolerAIO
	case KindSSD:
		return &p.SSD
	case KindHardDisk:
		return &p.HardDisk
	case KindReaderWriter:
		return &p.ReaderWriter
	case KindMotherboard:
		return &p.Motherboard
	case KindGraphicsCard:
		return &p.GraphicsCard
	case KindOperatingSystem:
		return &p.OperatingSystem
	case KindProcessor:
		return &p.Processor
	case KindHousing:
		return &p.Housing
	case KindCaseFan:
		return &p.CaseFan
	}
	return nil
}

// RefID returns the referenced component id for kind, if any.
func (p *Product) RefID(kind ComponentKind) (int64, bool) {
	ref := p.Ref(kind)
	if ref == nil || *ref == nil {
		return 0, false
	}
	return **ref, true
}

// ProductPatch carries a partial product update. Name and Price cannot be
// cleared; every other field may be explicitly nulled.
type ProductPatch struct {
	Name         *string
	Description  Optional[string]
	Image        Optional[string]
	Images       Optional[[]string]
	Price        *decimal.Decimal
	OldPrice     Optional[decimal.Decimal]
	DeliveryTime Optional[int]
	SKU          Optional[string]
	Refs         map[ComponentKind]Optional[int64]
}

// Apply copies the set fields of p onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	p.Description.ApplyTo(&product.Description)
	p.Image.ApplyTo(&product.Image)
	if p.Images.Set {
		if p.Images.Value == nil {
			product.Images = nil
		} else {
			product.Images = ImageList(*p.Images.Value)
		}
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	p.OldPrice.ApplyTo(&product.OldPrice)
	p.DeliveryTime.ApplyTo(&product.DeliveryTime)
	p.SKU.ApplyTo(&product.SKU)
	for kind, ref := range p.Refs {
		if field := product.Ref(kind); field != nil {
			ref.ApplyTo(field)
		}
	}
}

// ImageList is an ordered list of image URLs or paths, stored as JSON text.
type ImageList []string

// Value implements the driver.Valuer interface for database writes
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database reads
func (l *ImageList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan images: unsupported type %T", value)
	}

	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return fmt.Errorf("failed to decode images: %w", err)
	}
	*l = images
	return nil
}
