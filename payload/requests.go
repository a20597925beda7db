package payload

import "time"

// BookingRequest is the tenant registration payload for booking a room.
type BookingRequest struct {
	Username     string     `json:"username" binding:"required,min=6"`
	Password     string     `json:"password" binding:"required,min=6"`
	Email        string     `json:"email" binding:"required,email"`
	Gender       string     `json:"gender"`
	WithFood     bool       `json:"with_food"`
	ReferralID   string     `json:"referral_id"`
	CheckInDate  time.Time  `json:"check_in_date" binding:"required"`
	CheckOutDate *time.Time `json:"check_out_date"`
}

// AvailabilityCheck filters rooms by type, AC and remaining capacity.
type AvailabilityCheck struct {
	RoomType string `json:"room_type"`
	WithAC   bool   `json:"with_ac"`
	WithFood bool   `json:"with_food"`
	Capacity int    `json:"capacity"`
}

// RoomUpdate carries a partial room edit; nil fields are left untouched.
type RoomUpdate struct {
	FloorNumber     *int     `json:"floor_number"`
	RoomNumber      *string  `json:"room_number"`
	RoomType        *string  `json:"room_type"`
	Capacity        *int     `json:"capacity"`
	CurrentCapacity *int     `json:"current_capacity"`
	IsACAvailable   *bool    `json:"is_ac_available"`
	Price           *float64 `json:"price"`
	PerDayPrice     *float64 `json:"per_day_price"`
}

// LoginDetails is a username/password credential check.
type LoginDetails struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OwnerLogin is the owner dashboard credential check.
type OwnerLogin struct {
	OwnerName string `json:"ownerName" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// UpdateDetails carries a partial tenant self-service update.
type UpdateDetails struct {
	Username     *string    `json:"username"`
	Password     *string    `json:"password"`
	Email        *string    `json:"email"`
	WithFood     *bool      `json:"with_food"`
	CheckOutDate *time.Time `json:"check_out_date"`
}

// PaymentCallbackRequest is the gateway's redirect/callback payload. It is
// also returned from order creation so the client can hand it to the gateway.
type PaymentCallbackRequest struct {
	PaymentID string  `json:"paymentId"`
	OrderID   string  `json:"orderId"`
	Amount    float64 `json:"amount"`
	Email     string  `json:"email"`
}

// VacateRequestInput is a tenant's notice of intended move-out.
type VacateRequestInput struct {
	CheckOutDate time.Time `json:"check_out_date" binding:"required"`
	VacateReason string    `json:"vacate_reason"`
}

// GrievanceInput is the body of a raised grievance.
type GrievanceInput struct {
	GrievanceContent string `json:"grievance_content" binding:"required"`
}

// RoommateSort selects a page of tenants, optionally filtered by rent status.
type RoommateSort struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	RentStatus string `json:"rent_status"`
	SortField  string `json:"sort_field"`
	SortOrder  string `json:"sort_order"`
}
