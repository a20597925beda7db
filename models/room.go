package models

type Room struct {
	ID              uint    `gorm:"primaryKey" json:"room_id"`
	FloorNumber     int     `json:"floor_number"`
	RoomNumber      string  `gorm:"uniqueIndex;not null" json:"room_number"`
	RoomType        string  `json:"room_type"`
	Capacity        int     `gorm:"not null" json:"capacity"`
	CurrentCapacity int     `gorm:"not null;default:0" json:"current_capacity"`
	IsACAvailable   bool    `gorm:"column:is_ac_available" json:"is_ac_available"`
	Price           float64 `gorm:"not null" json:"price"`
	PerDayPrice     float64 `json:"per_day_price"`
}
