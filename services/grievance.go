package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/models"
	"room-rental-server/payload"
)

// GrievanceService records tenant grievances and the owner's review of them.
type GrievanceService struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewGrievanceService(db *gorm.DB) *GrievanceService {
	return &GrievanceService{db: db, clock: time.Now}
}

// Raise files a grievance for a tenant.
func (s *GrievanceService) Raise(roommateID uint, input payload.GrievanceInput) (string, error) {
	if input.GrievanceContent == "" {
		return "", Errorf("Invalid data in Grievance")
	}
	var roommate models.Roommate
	if err := s.db.First(&roommate, roommateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", Errorf("Entered Roommate id was invalid")
		}
		return "", err
	}

	grievance := models.Grievance{
		GrievanceContent: input.GrievanceContent,
		CreatedAt:        startOfDay(s.clock()),
		IsRead:           false,
		RoommateID:       roommate.ID,
	}
	if err := s.db.Create(&grievance).Error; err != nil {
		return "", err
	}
	logrus.WithField("roommate_id", roommateID).Info("Raised an Grievance Successfully")
	return "Raised an Grievance Successfully", nil
}

// Pending lists unread grievances with the raising tenant's name and room.
func (s *GrievanceService) Pending() ([]payload.GrievanceDTO, error) {
	var grievances []models.Grievance
	if err := s.db.Where("is_read = ?", false).Find(&grievances).Error; err != nil {
		return nil, err
	}
	if len(grievances) == 0 {
		return nil, Errorf("No Grievances so Far")
	}

	out := make([]payload.GrievanceDTO, 0, len(grievances))
	for _, grievance := range grievances {
		var roommate models.Roommate
		if err := s.db.First(&roommate, grievance.RoommateID).Error; err != nil {
			return nil, err
		}
		out = append(out, payload.GrievanceDTO{
			GrievanceID:      grievance.ID,
			GrievanceContent: grievance.GrievanceContent,
			CreatedAt:        grievance.CreatedAt,
			RoommateName:     roommate.Username,
			RoomNumber:       roommate.RoomNumber,
		})
	}
	logrus.WithField("grievances", len(out)).Info("Fetched pending grievances")
	return out, nil
}

// MarkRead marks a grievance as handled.
func (s *GrievanceService) MarkRead(grievanceID uint) (string, error) {
	var grievance models.Grievance
	if err := s.db.First(&grievance, grievanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", Errorf("Entered Grievance Id was invalid")
		}
		return "", err
	}
	grievance.IsRead = true
	if err := s.db.Save(&grievance).Error; err != nil {
		return "", err
	}
	logrus.WithField("grievance_id", grievanceID).Info("Marked grievance as read")
	return "Marked as Read", nil
}
