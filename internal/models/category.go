package models

// Category groups products. Categories are seeded at schema creation and are
// read-only afterwards.
type Category struct {
	CategoryID   uint   `gorm:"primaryKey;autoIncrement" json:"categoryId"`
	CategoryName string `gorm:"type:varchar(40);not null" json:"categoryName"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID;references:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"products,omitempty"`
}

// TableName pins the table name used by migrations.
func (Category) TableName() string {
	return "categories"
}

// SeedCategories is the fixed category list created with the schema.
var SeedCategories = []Category{
	{CategoryID: 1, CategoryName: "Beverages"},
	{CategoryID: 2, CategoryName: "Condiments"},
	{CategoryID: 3, CategoryName: "Confections"},
	{CategoryID: 4, CategoryName: "Dairy Products"},
	{CategoryID: 5, CategoryName: "Grains/Cereals"},
	{CategoryID: 6, CategoryName: "Meat/Poultry"},
	{CategoryID: 7, CategoryName: "Produce"},
	{CategoryID: 8, CategoryName: "Seafood"},
}
