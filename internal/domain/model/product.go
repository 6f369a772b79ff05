package model

// Product is a catalog part or accessory.
type Product struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	Category    string   `gorm:"type:varchar(255);not null;index"`
	Brand       string   `gorm:"type:varchar(255);not null;index"`
	BrandType   string   `gorm:"type:varchar(255)"`
	ItemName    string   `gorm:"type:varchar(255);not null"`
	AlsoKnownAs string   `gorm:"type:varchar(255)"`
	OemPartNo   string   `gorm:"type:varchar(255)"`
	ItemCode    string   `gorm:"type:varchar(255);not null;index"`
	ListPrice   *float64 `gorm:"column:list_price"`
	MRP         float64  `gorm:"column:mrp;not null;default:0"`
	Cost        float64  `gorm:"not null;default:0"`
	SalePrice   float64  `gorm:"default:0"`
	PackSize    string   `gorm:"type:varchar(255)"`
	HsnCode     string   `gorm:"type:varchar(64)"`
	Description string   `gorm:"type:text"`
	IsArchived  bool     `gorm:"not null;default:false;index"`

	CompatibleBikes []Bike `gorm:"many2many:product_bike_association;"`
}

// BikeNames returns the compatible bike names in stored order.
func (p Product) BikeNames() []string {
	names := make([]string, 0, len(p.CompatibleBikes))
	for _, b := range p.CompatibleBikes {
		names = append(names, b.Name)
	}
	return names
}
