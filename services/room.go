package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/config"
	"room-rental-server/metrics"
	"room-rental-server/models"
	"room-rental-server/payload"
	"room-rental-server/utils"
)

const allRoomsCacheKey = "rooms:all"
const allRoomsCacheTTL = 60 * time.Second

// RoomService holds the room inventory and the booking workflow.
type RoomService struct {
	db    *gorm.DB
	rdb   *redis.Client
	rules config.RentRules
	// clock is swapped in tests to pin the booking date
	clock func() time.Time
}

// NewRoomService builds a room service. rdb may be nil to disable the
// all-rooms cache.
func NewRoomService(db *gorm.DB, rdb *redis.Client, rules config.RentRules) *RoomService {
	return &RoomService{db: db, rdb: rdb, rules: rules, clock: time.Now}
}

// AllRoomDetails returns every room with its occupants, through a 60s
// read-through cache. The cache is invalidated on every room mutation.
func (s *RoomService) AllRoomDetails() ([]payload.OwnerRoomDTO, error) {
	ctx := context.Background()
	if s.rdb != nil {
		var cached []payload.OwnerRoomDTO
		if found, err := utils.GetCache(ctx, s.rdb, allRoomsCacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	var rooms []models.Room
	if err := s.db.Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, Errorf("No Rooms are Added in the System")
	}

	out := make([]payload.OwnerRoomDTO, 0, len(rooms))
	for _, room := range rooms {
		var occupants []models.Roommate
		if err := s.db.Where("room_number = ?", room.RoomNumber).Find(&occupants).Error; err != nil {
			return nil, err
		}
		dto := payload.OwnerRoomDTO{RoomDTO: payload.NewRoomDTO(room), Roommates: make([]payload.RoommateDTO, 0, len(occupants))}
		for _, occupant := range occupants {
			dto.Roommates = append(dto.Roommates, payload.NewRoommateDTO(occupant))
		}
		out = append(out, dto)
	}
	logrus.WithField("rooms", len(out)).Info("Fetched room details")

	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, allRoomsCacheKey, out, allRoomsCacheTTL)
	}
	return out, nil
}

// GetRoomByID returns a single room.
func (s *RoomService) GetRoomByID(roomID uint) (*payload.RoomDTO, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errorf("Mentioned Room Id is not available")
		}
		return nil, err
	}
	dto := payload.NewRoomDTO(room)
	return &dto, nil
}

// CheckAvailability lists rooms matching the requested type, AC flag and
// remaining capacity.
func (s *RoomService) CheckAvailability(check payload.AvailabilityCheck) ([]payload.RoomDTO, error) {
	var rooms []models.Room
	if err := s.db.Find(&rooms).Error; err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, Errorf("No Rooms are Added in the System")
	}

	var matching []payload.RoomDTO
	for _, room := range rooms {
		free := room.Capacity - room.CurrentCapacity
		if strings.EqualFold(check.RoomType, room.RoomType) &&
			check.Capacity <= free &&
			check.WithAC == room.IsACAvailable {
			matching = append(matching, payload.NewRoomDTO(room))
		}
	}
	if len(matching) == 0 {
		return nil, Errorf("Rooms are not available with your Condition")
	}
	logrus.WithField("rooms", len(matching)).Info("Found matching rooms")
	return matching, nil
}

// BookRoom runs the booking workflow in a single transaction: availability,
// uniqueness checks, optional referral, rent computation and persistence.
// Nothing is written if any step fails.
func (s *RoomService) BookRoom(roomID uint, req payload.BookingRequest) (string, error) {
	now := s.clock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Errorf("Mentioned Room ID is not available")
			}
			return err
		}

		if req.CheckOutDate != nil && req.CheckOutDate.Before(startOfDay(now)) {
			return Errorf("Checkout date can't be entered as past date")
		}
		if room.CurrentCapacity == room.Capacity {
			return Errorf("Room was Full")
		}

		if err := s.checkUsernameEmail(tx, req.Username, req.Email); err != nil {
			return err
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return err
		}

		roommate := models.Roommate{
			RoommateUniqueID: generateRoommateUniqueID(req.Username),
			Username:         req.Username,
			Password:         hash,
			Email:            req.Email,
			Gender:           req.Gender,
			WithFood:         req.WithFood,
			CheckInDate:      req.CheckInDate,
			CheckOutDate:     req.CheckOutDate,
			LastModifiedDate: startOfDay(now),
			ReferralID:       generateReferralID(req.Username),
			ReferralCount:    0,
			RentStatus:       models.PaymentPending,
			RoomNumber:       room.RoomNumber,
		}

		if len(req.ReferralID) > s.rules.ReferralCodeMinLen {
			if err := s.referralProcess(tx, &roommate, req.ReferralID, now); err != nil {
				return err
			}
		}

		roommate.RentAmount = s.computeBookingRent(room, req.CheckInDate, req.WithFood, now)

		// Guarded increment so concurrent bookings cannot exceed capacity.
		res := tx.Model(&models.Room{}).
			Where("id = ? AND current_capacity < capacity", room.ID).
			Update("current_capacity", gorm.Expr("current_capacity + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return Errorf("Room was Full")
		}

		return tx.Create(&roommate).Error
	})
	if err != nil {
		return "", err
	}

	s.invalidateRoomCache()
	metrics.BookingsTotal.Inc()
	logrus.WithFields(logrus.Fields{
		"username": req.Username,
		"room_id":  roomID,
	}).Info("Room booked successfully")
	return "Room booked successfully for roommate: " + req.Username, nil
}

// referralProcess credits the referring tenant for the newcomer.
func (s *RoomService) referralProcess(tx *gorm.DB, newcomer *models.Roommate, code string, now time.Time) error {
	var referrer models.Roommate
	if err := tx.Where("referral_id = ?", code).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Errorf("No Roommate matches with the entered Referral ID")
		}
		return err
	}
	if referrer.ReferralCount >= s.rules.MaxReferrals {
		return Errorf("Already %s have reached max referrals", referrer.Username)
	}

	if err := tx.Model(&models.Roommate{}).Where("id = ?", referrer.ID).
		Update("referral_count", gorm.Expr("referral_count + 1")).Error; err != nil {
		return err
	}
	detail := models.ReferralDetail{
		ReferrerID:       referrer.ID,
		Username:         newcomer.Username,
		ReferralDate:     startOfDay(now),
		RoommateUniqueID: newcomer.RoommateUniqueID,
	}
	if err := tx.Create(&detail).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"referrer": referrer.Username,
		"newcomer": newcomer.Username,
	}).Info("Referral processed successfully")
	return nil
}

// computeBookingRent prorates rent when check-in falls after the cutoff day
// within the current month, otherwise charges the full monthly price. The
// no-food deduction applies in both cases.
func (s *RoomService) computeBookingRent(room models.Room, checkIn time.Time, withFood bool, now time.Time) float64 {
	cutoff := time.Date(now.Year(), now.Month(), s.rules.RentCutoffDay, 0, 0, 0, 0, checkIn.Location())

	var rent float64
	if checkIn.After(cutoff) && checkIn.Month() == cutoff.Month() && checkIn.Year() == cutoff.Year() {
		lastDay := time.Date(checkIn.Year(), checkIn.Month()+1, 0, 0, 0, 0, 0, checkIn.Location())
		days := lastDay.Day() - checkIn.Day()
		rent = room.PerDayPrice * float64(days)
	} else {
		rent = room.Price
	}
	if !withFood {
		rent -= s.rules.FoodDeduction
	}
	return rent
}

func (s *RoomService) checkUsernameEmail(tx *gorm.DB, username, email string) error {
	var count int64
	if err := tx.Model(&models.Roommate{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return Errorf("Username Already Exists!!!")
	}
	if err := tx.Model(&models.Roommate{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return Errorf("Email ID Already Exists!!!")
	}
	return nil
}

// AddRoom validates and stores a new room.
func (s *RoomService) AddRoom(room *models.Room) (string, error) {
	if room == nil {
		return "", Errorf("Invalid Room Details")
	}
	exists, err := s.roomNumberExists(room.RoomNumber)
	if err != nil {
		return "", err
	}
	if exists {
		return "", Errorf("Already this Room number : %s was taken", room.RoomNumber)
	}
	if room.Capacity <= 0 {
		return "", Errorf("Total Capacity must be greater than 0. Provided : %d", room.Capacity)
	}
	if room.CurrentCapacity > room.Capacity {
		return "", Errorf("Current capacity cannot be more than total capacity")
	}
	if room.Price < s.rules.FoodDeduction {
		return "", Errorf("Room rent should be more than %.0f", s.rules.FoodDeduction)
	}

	if err := s.db.Create(room).Error; err != nil {
		return "", err
	}
	s.invalidateRoomCache()
	logrus.WithField("room_number", room.RoomNumber).Info("Room added successfully")
	return "Room have been added Successfully", nil
}

// EditRoom applies a partial update to a room.
func (s *RoomService) EditRoom(roomID uint, update payload.RoomUpdate) (*payload.RoomDTO, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errorf("No Room found under this %d Id", roomID)
		}
		return nil, err
	}

	if update.RoomNumber != nil {
		exists, err := s.roomNumberExists(*update.RoomNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, Errorf("Already this room number exists")
		}
		room.RoomNumber = *update.RoomNumber
	}
	if update.RoomType != nil {
		room.RoomType = *update.RoomType
	}
	if update.Price != nil {
		room.Price = *update.Price
	}
	if update.PerDayPrice != nil {
		room.PerDayPrice = *update.PerDayPrice
	}
	if update.FloorNumber != nil {
		room.FloorNumber = *update.FloorNumber
	}
	if update.Capacity != nil {
		if *update.Capacity < 0 {
			return nil, Errorf("Capacity cannot be less than 0")
		}
		if *update.Capacity < room.CurrentCapacity {
			return nil, Errorf("Current capacity cannot exceed total capacity")
		}
		room.Capacity = *update.Capacity
	}
	if update.CurrentCapacity != nil {
		if *update.CurrentCapacity > room.Capacity {
			return nil, Errorf("Current capacity cannot exceed total capacity")
		}
		room.CurrentCapacity = *update.CurrentCapacity
	}
	if update.IsACAvailable != nil {
		room.IsACAvailable = *update.IsACAvailable
	}

	if err := s.db.Save(&room).Error; err != nil {
		return nil, err
	}
	s.invalidateRoomCache()
	logrus.WithField("room_id", roomID).Info("Room updated successfully")
	dto := payload.NewRoomDTO(room)
	return &dto, nil
}

// DeleteRoom removes an empty room.
func (s *RoomService) DeleteRoom(roomID uint) (string, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", Errorf("Mentioned Room Id is not available")
		}
		return "", err
	}
	var occupants int64
	if err := s.db.Model(&models.Roommate{}).Where("room_number = ?", room.RoomNumber).Count(&occupants).Error; err != nil {
		return "", err
	}
	if occupants > 0 {
		return "", Errorf("This room is not empty to delete")
	}

	if err := s.db.Delete(&room).Error; err != nil {
		return "", err
	}
	s.invalidateRoomCache()
	logrus.WithField("room_id", roomID).Info("Room deleted successfully")
	return "Room deleted Successfully", nil
}

func (s *RoomService) roomNumberExists(roomNumber string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Room{}).Where("room_number = ?", roomNumber).Count(&count).Error
	return count > 0, err
}

func (s *RoomService) invalidateRoomCache() {
	if s.rdb == nil {
		return
	}
	_ = utils.DeleteCache(context.Background(), s.rdb, allRoomsCacheKey)
}

func generateRoommateUniqueID(username string) string {
	return username[:4] + uuid.NewString()[:4]
}

func generateReferralID(username string) string {
	return username + "-" + uuid.NewString()[:8]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
