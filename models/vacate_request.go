package models

import "time"

type VacateRequest struct {
	ID           uint      `gorm:"primaryKey" json:"vacate_request_id"`
	CheckOutDate time.Time `json:"check_out_date"`
	VacateReason string    `json:"vacate_reason"`
	IsRead       bool      `gorm:"default:false" json:"is_read"`
	RoommateID   uint      `gorm:"uniqueIndex;not null" json:"roommate_id"`
}
