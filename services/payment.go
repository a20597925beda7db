package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/gateway"
	"room-rental-server/metrics"
	"room-rental-server/models"
	"room-rental-server/payload"
)

const (
	paymentStatusCreated = "PAYMENT_CREATED"
	paymentStatusDone    = "PAYMENT_DONE"
)

var paymentSortFields = map[string]string{
	"amount":         "amount",
	"payment_date":   "payment_date",
	"payment_status": "payment_status",
	"username":       "username",
}

// PaymentService creates gateway orders for rent and reconciles callbacks.
type PaymentService struct {
	db    *gorm.DB
	gw    gateway.PaymentGateway
	clock func() time.Time
}

func NewPaymentService(db *gorm.DB, gw gateway.PaymentGateway) *PaymentService {
	return &PaymentService{db: db, gw: gw, clock: time.Now}
}

// CreatePaymentForUser opens a gateway order for the tenant's current rent,
// stores the pending payment keyed by the order id and moves the tenant to
// PAYMENT_CREATED. The caller redirects the tenant to the gateway with the
// returned reference.
func (s *PaymentService) CreatePaymentForUser(username string) (*payload.PaymentCallbackRequest, error) {
	if username == "" {
		return nil, Errorf("Username cannot be null or empty")
	}

	var roommate models.Roommate
	if err := s.db.Where("username = ?", username).First(&roommate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errorf("No User found under this name : %s", username)
		}
		return nil, err
	}

	order, err := s.gw.CreateOrder(roommate.RentAmount, "inr", roommate.Email)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		Amount:        order.Amount,
		PaymentStatus: paymentStatusCreated,
		PaymentDate:   startOfDay(s.clock()),
		TransactionID: order.OrderID,
		PaymentMethod: order.Entity,
		Username:      roommate.Username,
		RoomNumber:    roommate.RoomNumber,
		RoommateID:    roommate.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Roommate{}).Where("id = ?", roommate.ID).
			Update("rent_status", models.PaymentCreated).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsCreatedTotal.Inc()
	logrus.WithFields(logrus.Fields{
		"username": username,
		"order_id": order.OrderID,
	}).Info("Payment created successfully")

	return &payload.PaymentCallbackRequest{
		OrderID: payment.TransactionID,
		Amount:  payment.Amount,
		Email:   roommate.Email,
	}, nil
}

// UpdateStatus handles the gateway callback: the payment is re-fetched from
// the gateway and must match the callback's payment id before the local
// payment and tenant are marked done.
func (s *PaymentService) UpdateStatus(req payload.PaymentCallbackRequest) (string, error) {
	record, err := s.gw.FetchPayment(req.PaymentID)
	if err != nil {
		return "", err
	}
	if req.PaymentID != record.PaymentID {
		return "", Errorf("Payment was not Processed with correct Order Id")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("transaction_id = ?", req.OrderID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Errorf("Payment not found")
			}
			return err
		}

		payment.PaymentStatus = paymentStatusDone
		payment.PaymentMethod = record.Method
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Roommate{}).Where("username = ?", payment.Username).
			Update("rent_status", models.PaymentDone).Error
	})
	if err != nil {
		return "", err
	}

	logrus.WithField("order_id", req.OrderID).Info("Payment status updated successfully")
	return "Payment Successful", nil
}

// AllPayments lists every payment row.
func (s *PaymentService) AllPayments() ([]payload.PaymentDTO, error) {
	var payments []models.Payment
	if err := s.db.Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, Errorf("No Payments have been done so far")
	}
	out := make([]payload.PaymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, payload.NewPaymentDTO(p))
	}
	logrus.WithField("payments", len(out)).Info("Fetched payments")
	return out, nil
}

// AddPayment stores a payment row directly, used by the owner for offline
// settlements.
func (s *PaymentService) AddPayment(payment *models.Payment) (*payload.PaymentDTO, error) {
	if err := s.db.Create(payment).Error; err != nil {
		return nil, err
	}
	logrus.WithField("transaction_id", payment.TransactionID).Info("Payment added successfully")
	dto := payload.NewPaymentDTO(*payment)
	return &dto, nil
}

// SortPayments returns a page of payments ordered by the requested field,
// optionally filtered to a payment date.
func (s *PaymentService) SortPayments(page, limit int, paymentDate *time.Time, sortField, sortOrder string) (*payload.Page[payload.PaymentDTO], error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	field, ok := paymentSortFields[sortField]
	if !ok {
		field = "payment_date"
	}
	order := field + " desc"
	if strings.EqualFold(sortOrder, "asc") {
		order = field + " asc"
	}

	query := s.db.Model(&models.Payment{})
	if paymentDate != nil {
		query = query.Where("payment_date = ?", *paymentDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := query.Order(order).Offset(page * limit).Limit(limit).Find(&payments).Error; err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, Errorf("No Payment available")
	}

	items := make([]payload.PaymentDTO, 0, len(payments))
	for _, p := range payments {
		items = append(items, payload.NewPaymentDTO(p))
	}
	logrus.WithField("payments", total).Info("Fetched payment details")
	return &payload.Page[payload.PaymentDTO]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// SearchUsername finds payments by username, or by room number when the term
// is too short to be a username.
func (s *PaymentService) SearchUsername(term string) ([]payload.PaymentDTO, error) {
	var payments []models.Payment
	var err error
	if len(term) < 3 {
		err = s.db.Where("room_number = ?", term).Find(&payments).Error
	} else {
		err = s.db.Where("username = ?", term).Find(&payments).Error
	}
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, Errorf("No Payments available under - %s", term)
	}
	out := make([]payload.PaymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, payload.NewPaymentDTO(p))
	}
	return out, nil
}
