package models

type OwnerDetail struct {
	ID        uint   `gorm:"primaryKey" json:"owner_id"`
	OwnerName string `gorm:"uniqueIndex;not null" json:"owner_name"`
	Password  string `gorm:"not null" json:"-"`
}

func (OwnerDetail) TableName() string {
	return "owner_details"
}
