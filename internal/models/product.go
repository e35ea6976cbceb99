package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item. ProductName is unique across all products.
type Product struct {
	ProductID    uint            `gorm:"primaryKey;autoIncrement" json:"productId"`
	ProductName  string          `gorm:"type:varchar(40);not null;uniqueIndex:uq_products_product_name" json:"productName"`
	CategoryID   uint            `gorm:"not null;index" json:"categoryId"`
	UnitsInStock int             `gorm:"not null" json:"unitsInStock"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
}

// TableName pins the table name used by migrations.
func (Product) TableName() string {
	return "products"
}
