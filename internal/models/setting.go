package models

// Setting is the store-wide settings record. Only the row with the highest id
// is authoritative.
type Setting struct {
	ID      uint   `gorm:"primaryKey" json:"id,omitempty"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	MapsURL string `gorm:"column:maps_url;size:512" json:"maps_url"`
	AboutUs string `gorm:"column:about_us;type:text" json:"about_us"`
}

func (Setting) TableName() string { return "settings" }
