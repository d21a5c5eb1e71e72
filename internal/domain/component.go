package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind identifies a component catalog category. The value doubles as
// the URL slug under /components.
type ComponentKind string

const (
	KindRAM             ComponentKind = "rams"
	KindCoolerAIO       ComponentKind = "cooler-aios"
	KindSSD             ComponentKind = "ssds"
	KindHardDisk        ComponentKind = "hard-disks"
	KindReaderWriter    ComponentKind = "reader-writers"
	KindMotherboard     ComponentKind = "motherboards"
	KindGraphicsCard    ComponentKind = "graphics-cards"
	KindOperatingSystem ComponentKind = "operating-systems"
	KindProcessor       ComponentKind = "processors"
	KindHousing         ComponentKind = "housings"
	KindCaseFan         ComponentKind = "case-fans"
	KindAccessory       ComponentKind = "accessories"
)

type kindInfo struct {
	table  string
	column string // products column, empty when products cannot reference the kind
	field  string // JSON field on Product
	label  string
}

var kinds = map[ComponentKind]kindInfo{
	KindRAM:             {table: "rams", column: "ram_id", field: "ram", label: "RAM"},
	KindCoolerAIO:       {table: "cooler_aios", column: "cooler_aio_id", field: "cooler_aio", label: "Refroidisseur AIO"},
	KindSSD:             {table: "ssds", column: "ssd_id", field: "ssd", label: "SSD"},
	KindHardDisk:        {table: "hard_disks", column: "hard_disk_id", field: "hard_disk", label: "Disque dur"},
	KindReaderWriter:    {table: "reader_writers", column: "reader_writer_id", field: "reader_writer", label: "Lecteur graveur"},
	KindMotherboard:     {table: "motherboards", column: "motherboard_id", field: "motherboard", label: "Carte mère"},
	KindGraphicsCard:    {table: "graphics_cards", column: "graphics_card_id", field: "graphics_card", label: "Carte graphique"},
	KindOperatingSystem: {table: "operating_systems", column: "operating_system_id", field: "operating_system", label: "Système d'exploitation"},
	KindProcessor:       {table: "processors", column: "processor_id", field: "processor", label: "Processeur"},
	KindHousing:         {table: "housings", column: "housing_id", field: "housing", label: "Boîtier"},
	KindCaseFan:         {table: "case_fans", column: "case_fan_id", field: "case_fan", label: "Ventilateur de boîtier"},
	KindAccessory:       {table: "accessories", label: "Accessoire"},
}

// AllKinds lists every catalog category.
var AllKinds = []ComponentKind{
	KindRAM, KindCoolerAIO, KindSSD, KindHardDisk, KindReaderWriter, KindMotherboard,
	KindGraphicsCard, KindOperatingSystem, KindProcessor, KindHousing, KindCaseFan, KindAccessory,
}

// ProductComponentKinds lists the kinds a product can reference, in column order.
var ProductComponentKinds = []ComponentKind{
	KindRAM, KindCoolerAIO, KindSSD, KindHardDisk, KindReaderWriter, KindMotherboard,
	KindGraphicsCard, KindOperatingSystem, KindProcessor, KindHousing, KindCaseFan,
}

// SummaryFeatureKinds is the order of the unlabelled features list in product listings.
var SummaryFeatureKinds = []ComponentKind{
	KindRAM, KindCoolerAIO, KindSSD, KindHardDisk, KindReaderWriter, KindMotherboard, KindGraphicsCard,
}

// DetailFeatureKinds is the order of the labelled features map of a single product.
var DetailFeatureKinds = []ComponentKind{
	KindOperatingSystem, KindProcessor, KindMotherboard, KindGraphicsCard, KindHousing, KindCaseFan,
	KindRAM, KindCoolerAIO, KindSSD, KindHardDisk, KindReaderWriter,
}

// ParseComponentKind resolves a URL slug.
func ParseComponentKind(s string) (ComponentKind, bool) {
	k := ComponentKind(s)
	_, ok := kinds[k]
	return k, ok
}

func (k ComponentKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Table is the SQL table holding rows of this kind.
func (k ComponentKind) Table() string { return kinds[k].table }

// ProductColumn is the products column referencing this kind.
func (k ComponentKind) ProductColumn() string { return kinds[k].column }

// ProductField is the JSON field carrying the reference on a product.
func (k ComponentKind) ProductField() string { return kinds[k].field }

// Label is the human-readable feature label.
func (k ComponentKind) Label() string { return kinds[k].label }

// Classified reports whether rows carry a free-form category.
func (k ComponentKind) Classified() bool { return k == KindAccessory }

// Component is a priced catalog item of a single kind.
type Component struct {
	ID          int64           `json:"id"`
	Kind        ComponentKind   `json:"kind"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Category    *string         `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ComponentPatch carries a partial component update. Nil pointers and unset
// Optionals leave the stored value untouched.
type ComponentPatch struct {
	Name        *string
	Description Optional[string]
	Image       Optional[string]
	Price       *decimal.Decimal
	SKU         *string
	Category    *string
}

// Apply copies the set fields of p onto c.
func (p ComponentPatch) Apply(c *Component) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	p.Description.ApplyTo(&c.Description)
	p.Image.ApplyTo(&c.Image)
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.SKU != nil {
		c.SKU = *p.SKU
	}
	if p.Category != nil && c.Kind.Classified() {
		c.Category = p.Category
	}
}
