package model

type OrderItem struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	OrderID   int64    `gorm:"not null;index"`
	ProductID int64    `gorm:"not null;index"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	Quantity  int
	UnitPrice float64
	TaxAmount float64
	LineTotal float64
}
