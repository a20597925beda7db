package payload

import (
	"time"

	"room-rental-server/models"
)

// RoomDTO is the tenant-facing view of a room.
type RoomDTO struct {
	RoomID          uint    `json:"room_id"`
	FloorNumber     int     `json:"floor_number"`
	RoomNumber      string  `json:"room_number"`
	RoomType        string  `json:"room_type"`
	Capacity        int     `json:"capacity"`
	CurrentCapacity int     `json:"current_capacity"`
	IsACAvailable   bool    `json:"is_ac_available"`
	Price           float64 `json:"price"`
	PerDayPrice     float64 `json:"per_day_price"`
}

// RoommateDTO is a tenant record without credentials.
type RoommateDTO struct {
	RoommateID       uint              `json:"roommate_id"`
	RoommateUniqueID string            `json:"roommate_unique_id"`
	Username         string            `json:"username"`
	Email            string            `json:"email"`
	Gender           string            `json:"gender"`
	RentAmount       float64           `json:"rent_amount"`
	RentStatus       models.RentStatus `json:"rent_status"`
	WithFood         bool              `json:"with_food"`
	CheckInDate      time.Time         `json:"check_in_date"`
	CheckOutDate     *time.Time        `json:"check_out_date,omitempty"`
	ReferralID       string            `json:"referral_id"`
	ReferralCount    int               `json:"referral_count"`
	RoomNumber       string            `json:"room_number"`
}

// OwnerRoomDTO is the owner dashboard view: a room plus its occupants.
type OwnerRoomDTO struct {
	RoomDTO
	Roommates []RoommateDTO `json:"roommates"`
}

// PaymentDTO flattens a payment with its owning tenant's username and room.
type PaymentDTO struct {
	ID            uint      `json:"id"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	PaymentDate   time.Time `json:"payment_date"`
	TransactionID string    `json:"transaction_id"`
	PaymentMethod string    `json:"payment_method"`
	Username      string    `json:"username"`
	RoomNumber    string    `json:"room_number"`
}

// GrievanceDTO is an unread grievance with its tenant's name and room.
type GrievanceDTO struct {
	GrievanceID      uint      `json:"grievance_id"`
	GrievanceContent string    `json:"grievance_content"`
	CreatedAt        time.Time `json:"created_at"`
	RoommateName     string    `json:"roommate_name"`
	RoomNumber       string    `json:"room_number"`
}

// VacateResponseDTO is a pending vacate request with tenant details.
type VacateResponseDTO struct {
	VacateRequestID uint      `json:"vacate_request_id"`
	CheckOutDate    time.Time `json:"check_out_date"`
	VacateReason    string    `json:"vacate_reason"`
	RoommateName    string    `json:"roommate_name"`
	RoomNumber      string    `json:"room_number"`
	CreatedAt       time.Time `json:"created_at"`
}

// MailResponse reports the outcome of a notification run.
type MailResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// Page wraps a paged result set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewRoomDTO maps a room record to its DTO.
func NewRoomDTO(r models.Room) RoomDTO {
	return RoomDTO{
		RoomID:          r.ID,
		FloorNumber:     r.FloorNumber,
		RoomNumber:      r.RoomNumber,
		RoomType:        r.RoomType,
		Capacity:        r.Capacity,
		CurrentCapacity: r.CurrentCapacity,
		IsACAvailable:   r.IsACAvailable,
		Price:           r.Price,
		PerDayPrice:     r.PerDayPrice,
	}
}

// NewRoommateDTO maps a tenant record to its DTO.
func NewRoommateDTO(r models.Roommate) RoommateDTO {
	return RoommateDTO{
		RoommateID:       r.ID,
		RoommateUniqueID: r.RoommateUniqueID,
		Username:         r.Username,
		Email:            r.Email,
		Gender:           r.Gender,
		RentAmount:       r.RentAmount,
		RentStatus:       r.RentStatus,
		WithFood:         r.WithFood,
		CheckInDate:      r.CheckInDate,
		CheckOutDate:     r.CheckOutDate,
		ReferralID:       r.ReferralID,
		ReferralCount:    r.ReferralCount,
		RoomNumber:       r.RoomNumber,
	}
}

// NewPaymentDTO maps a payment record to its DTO.
func NewPaymentDTO(p models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID,
		Amount:        p.Amount,
		PaymentStatus: p.PaymentStatus,
		PaymentDate:   p.PaymentDate,
		TransactionID: p.TransactionID,
		PaymentMethod: p.PaymentMethod,
		Username:      p.Username,
		RoomNumber:    p.RoomNumber,
	}
}
