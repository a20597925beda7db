package models

import "time"

type Grievance struct {
	ID               uint      `gorm:"primaryKey" json:"grievance_id"`
	GrievanceContent string    `gorm:"not null" json:"grievance_content"`
	CreatedAt        time.Time `json:"created_at"`
	IsRead           bool      `gorm:"default:false" json:"is_read"`
	RoommateID       uint      `gorm:"index;not null" json:"roommate_id"`
}
