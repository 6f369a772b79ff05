package model

// OrderStatusDraft is the only status assigned by the server.
const OrderStatusDraft = "Draft"

// OrderDateLayout is the stored order_date format.
const OrderDateLayout = "2006-01-02 15:04:05"

// Order owns its Items: they are created, replaced and deleted with it.
type Order struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	InvoiceNumber   *string   `gorm:"type:varchar(64);uniqueIndex"`
	CustomerID      *int64    `gorm:"index"`
	Customer        *Customer `gorm:"foreignKey:CustomerID"`
	OrderDate       string    `gorm:"type:varchar(32)"`
	DeliveryCharges float64   `gorm:"default:0"`
	TotalAmount     float64
	Status          string `gorm:"type:varchar(64);default:'Draft';index"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"`
}
