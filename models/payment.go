package models

import "time"

type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentStatus string    `gorm:"not null" json:"payment_status"`
	PaymentDate   time.Time `json:"payment_date"`
	TransactionID string    `gorm:"index;not null" json:"transaction_id"`
	PaymentMethod string    `json:"payment_method"`
	Username      string    `gorm:"index" json:"username"`
	RoomNumber    string    `json:"room_number"`
	RoommateID    uint      `gorm:"index" json:"roommate_id"`
}

func (Payment) TableName() string {
	return "payments"
}
