package entity

import "time"

// Metafields is the fixed set of named watch attributes carried by every
// product. Unset attributes stay as empty strings.
type Metafields struct {
	CaseMaterial    string `json:"caseMaterial"`
	DialColor       string `json:"dialColor"`
	WaterResistance string `json:"waterResistance"`
	WarrantyPeriod  string `json:"warrantyPeriod"`
	Movement        string `json:"movement"`
	Gender          string `json:"gender"`
	CaseSize        string `json:"caseSize"`
}

// Image references a stored product image, either a full URL or a
// storage-relative path. Order is insertion order.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// Product is a single inventory record. SKU, when non-empty, is unique
// across all products; the database index enforces that.
type Product struct {
	ID          string     `json:"id"`
	Brand       string     `json:"brand"`
	SKU         string     `json:"sku"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Inventory   int        `json:"inventory"`
	Price       float64    `json:"price"`
	Metafields  Metafields `json:"metafields"`
	Images      []Image    `json:"images"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
