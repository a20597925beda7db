package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/models"
	"room-rental-server/payload"
	"room-rental-server/utils"
)

// OwnerService authenticates the property owner.
type OwnerService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewOwnerService(db *gorm.DB, jwtSecret string) *OwnerService {
	return &OwnerService{db: db, jwtSecret: jwtSecret}
}

// Login verifies the owner's credentials and issues a dashboard token.
func (s *OwnerService) Login(details payload.OwnerLogin) (string, string, error) {
	logrus.WithField("owner", details.OwnerName).Info("Owner login attempt")

	var owner models.OwnerDetail
	if err := s.db.Where("owner_name = ?", details.OwnerName).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", Errorf("Owner name is invalid")
		}
		return "", "", err
	}
	if !utils.CheckPassword(owner.Password, details.Password) {
		return "", "", Errorf("Password is Invalid")
	}

	token, err := utils.GenerateOwnerToken(s.jwtSecret, owner.ID)
	if err != nil {
		return "", "", err
	}
	logrus.Info("Owner Authenticated Successfully")
	return "Owner Authenticated Successfully", token, nil
}

// AddOwner stores the owner record if it does not already exist. Called from
// startup seeding, so it is idempotent.
func (s *OwnerService) AddOwner(ownerName, password string) error {
	if ownerName == "" || password == "" {
		return Errorf("Owner details are invalid")
	}
	var count int64
	if err := s.db.Model(&models.OwnerDetail{}).Where("owner_name = ?", ownerName).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	owner := models.OwnerDetail{OwnerName: ownerName, Password: hash}
	if err := s.db.Create(&owner).Error; err != nil {
		return err
	}
	logrus.Info("Successfully saved the Owner details")
	return nil
}

// FindOwner fetches an owner by id, used by the dashboard token middleware.
func (s *OwnerService) FindOwner(ownerID uint) (*models.OwnerDetail, error) {
	var owner models.OwnerDetail
	if err := s.db.First(&owner, ownerID).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}
