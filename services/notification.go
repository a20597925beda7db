package services

import (
	"bytes"
	"html/template"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/config"
	"room-rental-server/metrics"
	"room-rental-server/models"
	"room-rental-server/payload"
)

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// mailWorkers bounds the fan-out when mailing every tenant at once.
const mailWorkers = 4

const reminderSubject = "Payment Reminder from Room Rental"

var reminderTemplate = template.Must(template.New("reminder").Parse(`<html>
<body>
<p>Dear {{.Username}},</p>
<p>Your rent of <b>{{printf "%.2f" .RentAmount}}</b> for {{.Month}} is pending.
Kindly complete the payment before <b>{{.DueDate}}</b>.</p>
<p>Regards,<br>The Room Rental Team</p>
</body>
</html>`))

// NotificationService renders and sends rent reminders and runs the monthly
// rent recalculation.
type NotificationService struct {
	db     *gorm.DB
	mailer Mailer
	rules  config.RentRules
	clock  func() time.Time
}

func NewNotificationService(db *gorm.DB, mailer Mailer, rules config.RentRules) *NotificationService {
	return &NotificationService{db: db, mailer: mailer, rules: rules, clock: time.Now}
}

// SendMailToAll sends the reminder to every tenant through a bounded worker
// pool. Any transport failure fails the whole call; sends are not retried.
func (s *NotificationService) SendMailToAll() (*payload.MailResponse, error) {
	var roommates []models.Roommate
	if err := s.db.Find(&roommates).Error; err != nil {
		return nil, err
	}
	if len(roommates) == 0 {
		return nil, Errorf("No Roommates details present")
	}

	jobs := make(chan models.Roommate)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed int

	for i := 0; i < mailWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for roommate := range jobs {
				if err := s.sendReminder(roommate); err != nil {
					logrus.WithFields(logrus.Fields{
						"username": roommate.Username,
						"error":    err.Error(),
					}).Error("Failed to send reminder mail")
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		}()
	}
	for _, roommate := range roommates {
		jobs <- roommate
	}
	close(jobs)
	wg.Wait()

	if failed > 0 {
		return nil, Errorf("Failed to send email notification")
	}
	return &payload.MailResponse{Message: "Mail sent successfully", Status: true}, nil
}

// SendPendingMail reminds only tenants whose rent is still pending. When no
// tenant is pending the response reports that without an error.
func (s *NotificationService) SendPendingMail() (*payload.MailResponse, error) {
	var roommates []models.Roommate
	if err := s.db.Find(&roommates).Error; err != nil {
		return nil, err
	}
	if len(roommates) == 0 {
		return nil, Errorf("No Roommates Available")
	}

	sent := false
	for _, roommate := range roommates {
		if roommate.RentStatus != models.PaymentPending {
			continue
		}
		if err := s.sendReminder(roommate); err != nil {
			return nil, Errorf("Failed to send email notification")
		}
		sent = true
	}
	if !sent {
		return &payload.MailResponse{Message: "There are no Payment Pending from Roommates", Status: false}, nil
	}
	return &payload.MailResponse{Message: "Mail sent successfully to the Remaining Roommates", Status: true}, nil
}

// RunMonthlyRecalculation resets every tenant to pending, recomputes rent
// from the room's base price applying still-valid referral credits, prunes
// credits whose referred tenant no longer exists, and mails each tenant.
// The run is best-effort: per-tenant failures are logged, not rolled back,
// and recomputing twice in a month cannot compound discounts because rent is
// always derived from the base price.
func (s *NotificationService) RunMonthlyRecalculation() *payload.MailResponse {
	logrus.Info("Starting automatic mail sending process for roommates")

	var roommates []models.Roommate
	if err := s.db.Find(&roommates).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Monthly recalculation aborted")
		return &payload.MailResponse{Message: "Mail sent successfully", Status: true}
	}
	if len(roommates) == 0 {
		logrus.Error("No Roommates details present")
		return &payload.MailResponse{Message: "Mail sent successfully", Status: true}
	}

	live := make(map[string]struct{}, len(roommates))
	for _, roommate := range roommates {
		live[roommate.RoommateUniqueID] = struct{}{}
	}

	updated := 0
	for i := range roommates {
		if err := s.recalculateRoommate(&roommates[i], live); err != nil {
			logrus.WithFields(logrus.Fields{
				"username": roommates[i].Username,
				"error":    err.Error(),
			}).Error("Error in recalculating rent")
			continue
		}
		updated++
	}
	logrus.WithField("roommates", updated).Info("Updated rent status and amount")

	for _, roommate := range roommates {
		if err := s.sendReminder(roommate); err != nil {
			logrus.WithFields(logrus.Fields{
				"username": roommate.Username,
				"error":    err.Error(),
			}).Error("Failed to send reminder mail")
		}
	}
	return &payload.MailResponse{Message: "Mail sent successfully", Status: true}
}

// recalculateRoommate recomputes one tenant's rent inside its own
// transaction so a failure does not roll back tenants already updated.
func (s *NotificationService) recalculateRoommate(roommate *models.Roommate, live map[string]struct{}) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Where("room_number = ?", roommate.RoomNumber).First(&room).Error; err != nil {
			return Errorf("Room not found for room number: %s", roommate.RoomNumber)
		}

		var credits []models.ReferralDetail
		if err := tx.Where("referrer_id = ?", roommate.ID).Find(&credits).Error; err != nil {
			return err
		}

		validCount := 0
		for _, credit := range credits {
			if _, ok := live[credit.RoommateUniqueID]; ok {
				validCount++
				continue
			}
			// The referred tenant left; the credit no longer counts.
			if err := tx.Delete(&models.ReferralDetail{}, credit.ID).Error; err != nil {
				return err
			}
		}

		rent := room.Price - room.Price*s.rules.ReferralPercent*float64(validCount)
		if !roommate.WithFood {
			rent -= s.rules.FoodDeduction
		}

		roommate.RentStatus = models.PaymentPending
		roommate.RentAmount = rent
		roommate.ReferralCount = validCount
		return tx.Model(&models.Roommate{}).Where("id = ?", roommate.ID).Updates(map[string]interface{}{
			"rent_status":    models.PaymentPending,
			"rent_amount":    rent,
			"referral_count": validCount,
		}).Error
	})
}

func (s *NotificationService) sendReminder(roommate models.Roommate) error {
	now := s.clock()
	data := struct {
		Username   string
		RentAmount float64
		Month      string
		DueDate    string
	}{
		Username:   roommate.Username,
		RentAmount: roommate.RentAmount,
		Month:      now.Month().String(),
		DueDate:    now.AddDate(0, 0, 5).Format("2006-01-02"),
	}
	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, data); err != nil {
		return err
	}
	if err := s.mailer.Send(roommate.Email, reminderSubject, body.String()); err != nil {
		return err
	}
	metrics.MailsSentTotal.Inc()
	return nil
}
