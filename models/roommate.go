package models

import "time"

// RentStatus tracks the lifecycle of the current billing cycle's payment.
type RentStatus string

const (
	PaymentPending RentStatus = "PAYMENT_PENDING"
	PaymentCreated RentStatus = "PAYMENT_CREATED"
	PaymentDone    RentStatus = "PAYMENT_DONE"
)

type Roommate struct {
	ID               uint       `gorm:"primaryKey" json:"roommate_id"`
	RoommateUniqueID string     `gorm:"uniqueIndex;not null" json:"roommate_unique_id"`
	Username         string     `gorm:"uniqueIndex;not null" json:"username"`
	Password         string     `gorm:"not null" json:"-"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Gender           string     `json:"gender"`
	RentAmount       float64    `json:"rent_amount"`
	RentStatus       RentStatus `gorm:"type:varchar(20)" json:"rent_status"`
	WithFood         bool       `json:"with_food"`
	CheckInDate      time.Time  `json:"check_in_date"`
	CheckOutDate     *time.Time `json:"check_out_date,omitempty"`
	LastModifiedDate time.Time  `json:"last_modified_date"`
	ReferralID       string     `gorm:"uniqueIndex" json:"referral_id"`
	ReferralCount    int        `gorm:"default:0" json:"referral_count"`
	RoomNumber       string     `gorm:"index" json:"room_number"`
}
