package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentNames maps a component id to its name for one kind.
type ComponentNames map[int64]string

// ProductView holds the scalar fields shared by listing and detail responses.
type ProductView struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"`
	Price        decimal.Decimal  `json:"price"`
	OldPrice     *decimal.Decimal `json:"old_price"`
	DeliveryTime *int             `json:"delivery_time"`
	Images       ImageList        `json:"images"`
	SKU          *string          `json:"sku"`
}

// ProductSummary is a listing entry. Features holds component names only.
type ProductSummary struct {
	ProductView
	Features  []string  `json:"features"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductDetail is a single product with labelled features.
type ProductDetail struct {
	ProductView
	Features  LabelledFeatures `json:"features"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Feature is one resolved component of a product.
type Feature struct {
	Label string
	Name  string
}

// LabelledFeatures keeps features in declaration order and encodes as a JSON
// object keyed by label.
type LabelledFeatures []Feature

func (f LabelledFeatures) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, feature := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(feature.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(feature.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Map returns the features keyed by label.
func (f LabelledFeatures) Map() map[string]string {
	m := make(map[string]string, len(f))
	for _, feature := range f {
		m[feature.Label] = feature.Name
	}
	return m
}

func newProductView(p *Product) ProductView {
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Image:        p.Image,
		Price:        p.Price,
		OldPrice:     p.OldPrice,
		DeliveryTime: p.DeliveryTime,
		Images:       p.Images,
		SKU:          p.SKU,
	}
}

// NewProductSummary builds a listing entry. names holds the resolved names of
// every summary kind; unresolved references are left out of Features.
func NewProductSummary(p *Product, names map[ComponentKind]ComponentNames) *ProductSummary {
	features := make([]string, 0, len(SummaryFeatureKinds))
	for _, kind := range SummaryFeatureKinds {
		id, ok := p.RefID(kind)
		if !ok {
			continue
		}
		if name, found := names[kind][id]; found && name != "" {
			features = append(features, name)
		}
	}

	return &ProductSummary{
		ProductView: newProductView(p),
		Features:    features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductDetail builds a detail response from the components resolved for
// p, keyed by kind. Missing kinds are left out of Features.
func NewProductDetail(p *Product, resolved map[ComponentKind]*Component) *ProductDetail {
	features := make(LabelledFeatures, 0, len(DetailFeatureKinds))
	for _, kind := range DetailFeatureKinds {
		c := resolved[kind]
		if c == nil || c.Name == "" {
			continue
		}
		features = append(features, Feature{Label: kind.Label(), Name: c.Name})
	}

	return &ProductDetail{
		ProductView: newProductView(p),
		Features:    features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
