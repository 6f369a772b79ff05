package model

type Customer struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null;index" json:"name"`
	Phone        string `gorm:"type:varchar(64)" json:"phone"`
	City         string `gorm:"type:varchar(255)" json:"city"`
	State        string `gorm:"type:varchar(255)" json:"state"`
	Pincode      string `gorm:"type:varchar(32)" json:"pincode"`
	MapLocation  string `gorm:"type:text" json:"map_location"`
	Street       string `gorm:"type:varchar(255)" json:"street"`
	OwnerName    string `gorm:"type:varchar(255)" json:"owner_name"`
	ContactType  string `gorm:"type:varchar(64)" json:"contact_type"`
	CustomerType string `gorm:"type:varchar(64)" json:"customer_type"`
	CustomerSize string `gorm:"type:varchar(64)" json:"customer_size"`
	GST          string `gorm:"column:gst;type:varchar(64)" json:"gst"`
	IsArchived   bool   `gorm:"not null;default:false;index" json:"is_archived"`
}
