package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/config"
	"room-rental-server/models"
	"room-rental-server/payload"
	"room-rental-server/utils"
)

// foodChangeLock is how long a tenant must wait between food-preference
// changes, since the change adjusts the current month's rent.
const foodChangeLock = 28 * 24 * time.Hour

var roommateSortFields = map[string]string{
	"username":    "username",
	"rent_amount": "rent_amount",
	"rent_status": "rent_status",
	"room_number": "room_number",
	"check_in":    "check_in_date",
}

// RoommateService manages tenant records and vacate requests.
type RoommateService struct {
	db    *gorm.DB
	rdb   *redis.Client
	rules config.RentRules
	clock func() time.Time
}

func NewRoommateService(db *gorm.DB, rdb *redis.Client, rules config.RentRules) *RoommateService {
	return &RoommateService{db: db, rdb: rdb, rules: rules, clock: time.Now}
}

// AllRoommates lists every tenant.
func (s *RoommateService) AllRoommates() ([]payload.RoommateDTO, error) {
	var roommates []models.Roommate
	if err := s.db.Order("id").Find(&roommates).Error; err != nil {
		return nil, err
	}
	if len(roommates) == 0 {
		return nil, Errorf("No Roommate available")
	}
	out := make([]payload.RoommateDTO, 0, len(roommates))
	for _, r := range roommates {
		out = append(out, payload.NewRoommateDTO(r))
	}
	logrus.WithField("roommates", len(out)).Info("Fetched roommates")
	return out, nil
}

// SortRoommates returns a page of tenants, optionally filtered by rent status.
func (s *RoommateService) SortRoommates(req payload.RoommateSort) (*payload.Page[payload.RoommateDTO], error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 10
	}
	field, ok := roommateSortFields[req.SortField]
	if !ok {
		field = "id"
	}
	order := field + " asc"
	if strings.EqualFold(req.SortOrder, "desc") {
		order = field + " desc"
	}

	query := s.db.Model(&models.Roommate{})
	if req.RentStatus != "" {
		query = query.Where("rent_status = ?", req.RentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var roommates []models.Roommate
	if err := query.Order(order).Offset(req.Page * req.Limit).Limit(req.Limit).Find(&roommates).Error; err != nil {
		return nil, err
	}
	if len(roommates) == 0 {
		return nil, Errorf("No Roommates available")
	}

	items := make([]payload.RoommateDTO, 0, len(roommates))
	for _, r := range roommates {
		items = append(items, payload.NewRoommateDTO(r))
	}
	return &payload.Page[payload.RoommateDTO]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
	}, nil
}

// Login verifies a tenant's credentials and returns the record.
func (s *RoommateService) Login(details payload.LoginDetails) (*payload.RoommateDTO, error) {
	var roommate models.Roommate
	if err := s.db.Where("username = ?", details.Username).First(&roommate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errorf("Username is invalid")
		}
		return nil, err
	}
	if !utils.CheckPassword(roommate.Password, details.Password) {
		return nil, Errorf("Password was invalid")
	}
	logrus.WithField("username", details.Username).Info("Roommate authenticated")
	dto := payload.NewRoommateDTO(roommate)
	return &dto, nil
}

// UpdateEmail changes a tenant's email address.
func (s *RoommateService) UpdateEmail(roommateID uint, email string) (*payload.RoommateDTO, error) {
	if email == "" {
		return nil, Errorf("Email cannot be null or empty")
	}
	var roommate models.Roommate
	if err := s.db.First(&roommate, roommateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errorf("Roommate not found with id %d", roommateID)
		}
		return nil, err
	}
	roommate.Email = email
	if err := s.db.Save(&roommate).Error; err != nil {
		return nil, err
	}
	s.invalidateRoomCache()
	logrus.WithField("roommate_id", roommateID).Info("Email updated successfully")
	dto := payload.NewRoommateDTO(roommate)
	return &dto, nil
}

// UpdateDetails applies a tenant's self-service update. Toggling the food
// preference is locked for 28 days after the last change and adjusts the
// current rent by the food deduction.
func (s *RoommateService) UpdateDetails(roommateID uint, update payload.UpdateDetails) (*payload.RoommateDTO, error) {
	now := s.clock()
	var out payload.RoommateDTO

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var roommate models.Roommate
		if err := tx.First(&roommate, roommateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Errorf("No Roommate found under this Id")
			}
			return err
		}

		if update.Username != nil && *update.Username != roommate.Username {
			var count int64
			if err := tx.Model(&models.Roommate{}).
				Where("LOWER(username) = ?", strings.ToLower(*update.Username)).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return Errorf("Username already exists")
			}
			roommate.Username = *update.Username
		}
		if update.Email != nil && *update.Email != roommate.Email {
			var count int64
			if err := tx.Model(&models.Roommate{}).
				Where("LOWER(email) = ?", strings.ToLower(*update.Email)).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return Errorf("Email already exists")
			}
			roommate.Email = *update.Email
		}
		if update.Password != nil && len(*update.Password) > 5 {
			hash, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			roommate.Password = hash
		}
		if update.WithFood != nil && roommate.WithFood != *update.WithFood {
			unlockAt := roommate.LastModifiedDate.Add(foodChangeLock)
			if now.Before(unlockAt) {
				return Errorf("You can edit the Food service only after : %s", unlockAt.Format("2006-01-02"))
			}
			roommate.LastModifiedDate = startOfDay(now)
			roommate.WithFood = *update.WithFood
			if *update.WithFood {
				roommate.RentAmount += s.rules.FoodDeduction
			} else {
				roommate.RentAmount -= s.rules.FoodDeduction
			}
		}
		if update.CheckOutDate != nil {
			roommate.CheckOutDate = update.CheckOutDate
		}

		if err := tx.Save(&roommate).Error; err != nil {
			return err
		}
		out = payload.NewRoommateDTO(roommate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateRoomCache()
	logrus.WithField("roommate_id", roommateID).Info("Details updated successfully")
	return &out, nil
}

// DeleteRoommate removes a tenant and frees their spot in the room.
func (s *RoommateService) DeleteRoommate(username string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var roommate models.Roommate
		if err := tx.Where("username = ?", username).First(&roommate).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Errorf("No Roommate present under this Username")
			}
			return err
		}

		res := tx.Model(&models.Room{}).
			Where("room_number = ? AND current_capacity > 0", roommate.RoomNumber).
			Update("current_capacity", gorm.Expr("current_capacity - 1"))
		if res.Error != nil {
			return res.Error
		}

		// The tenant's own referral credits go with them; credits they earned
		// for others are pruned lazily by the monthly recalculation.
		if err := tx.Where("referrer_id = ?", roommate.ID).Delete(&models.ReferralDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("roommate_id = ?", roommate.ID).Delete(&models.Grievance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("roommate_id = ?", roommate.ID).Delete(&models.VacateRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&roommate).Error
	})
	if err != nil {
		return err
	}

	s.invalidateRoomCache()
	logrus.WithField("username", username).Info("Roommate deleted successfully")
	return nil
}

// invalidateRoomCache drops the cached all-rooms listing; occupant fields are
// rendered in it, so every tenant mutation clears it.
func (s *RoommateService) invalidateRoomCache() {
	if s.rdb == nil {
		return
	}
	_ = utils.DeleteCache(context.Background(), s.rdb, allRoomsCacheKey)
}

// SendVacateRequest records a tenant's move-out notice. A tenant can have at
// most one open request.
func (s *RoommateService) SendVacateRequest(roommateID uint, input payload.VacateRequestInput) (string, error) {
	now := s.clock()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var roommate models.Roommate
		if err := tx.First(&roommate, roommateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Errorf("No Roommate found under this Id")
			}
			return err
		}
		if input.CheckOutDate.Before(startOfDay(now)) {
			return Errorf("CheckOut Date can't be in Past : %s", input.CheckOutDate.Format("2006-01-02"))
		}
		var existing int64
		if err := tx.Model(&models.VacateRequest{}).Where("roommate_id = ?", roommateID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return Errorf("Already Vacate Request have been sent")
		}

		request := models.VacateRequest{
			CheckOutDate: input.CheckOutDate,
			VacateReason: input.VacateReason,
			IsRead:       false,
			RoommateID:   roommateID,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		checkOut := input.CheckOutDate
		roommate.CheckOutDate = &checkOut
		return tx.Save(&roommate).Error
	})
	if err != nil {
		return "", err
	}
	logrus.WithField("roommate_id", roommateID).Info("Vacate request sent successfully")
	return "Vacate Request Sent Successfully", nil
}

// PendingVacateRequests lists unread vacate requests with tenant details.
func (s *RoommateService) PendingVacateRequests() ([]payload.VacateResponseDTO, error) {
	var requests []models.VacateRequest
	if err := s.db.Where("is_read = ?", false).Find(&requests).Error; err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, Errorf("No Vacate Request so Far")
	}

	out := make([]payload.VacateResponseDTO, 0, len(requests))
	for _, req := range requests {
		var roommate models.Roommate
		if err := s.db.First(&roommate, req.RoommateID).Error; err != nil {
			return nil, err
		}
		out = append(out, payload.VacateResponseDTO{
			VacateRequestID: req.ID,
			CheckOutDate:    req.CheckOutDate,
			VacateReason:    req.VacateReason,
			RoommateName:    roommate.Username,
			RoomNumber:      roommate.RoomNumber,
			CreatedAt:       s.clock(),
		})
	}
	return out, nil
}

// MarkVacateRead consumes a vacate request once the owner has seen it.
func (s *RoommateService) MarkVacateRead(requestID uint) error {
	var request models.VacateRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Errorf("Vacate request not found")
		}
		return err
	}
	if err := s.db.Delete(&request).Error; err != nil {
		return err
	}
	logrus.WithField("request_id", requestID).Info("Vacate request marked as read and deleted")
	return nil
}
