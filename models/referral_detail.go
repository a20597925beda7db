package models

import "time"

// ReferralDetail records that a new tenant joined using the referrer's code.
// RoommateUniqueID is a soft reference to the referred tenant: it is not a
// foreign key, so the record survives the referred tenant's deletion and is
// pruned during the monthly rent recalculation instead.
type ReferralDetail struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReferrerID       uint      `gorm:"index;not null" json:"referrer_id"`
	Username         string    `json:"username"`
	ReferralDate     time.Time `json:"referral_date"`
	RoommateUniqueID string    `gorm:"index" json:"roommate_unique_id"`
}
