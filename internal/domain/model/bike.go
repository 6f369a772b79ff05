package model

// Name is the business key; lookups take the first match.
type Bike struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255);not null;index" json:"name"`
	Brand string `gorm:"type:varchar(255);index" json:"brand"`
	Model string `gorm:"type:varchar(255)" json:"model"`
}

// BikeBrandOther groups bikes stored without a brand.
const BikeBrandOther = "Other"
