package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"room-rental-server/config"
	"room-rental-server/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.Roommate{},
		&models.Payment{},
		&models.ReferralDetail{},
		&models.Grievance{},
		&models.VacateRequest{},
		&models.OwnerDetail{},
	))
	return db
}

func testRules() config.RentRules {
	return config.RentRules{
		ReferralPercent:    0.05,
		MaxReferrals:       2,
		FoodDeduction:      1000,
		RentCutoffDay:      5,
		ReferralCodeMinLen: 5,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// septemberTenth is a mid-month reference date in a 30-day month.
var septemberTenth = time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

func seedTestRoom(t *testing.T, db *gorm.DB, roomNumber string, capacity int, price, perDay float64) models.Room {
	t.Helper()
	room := models.Room{
		FloorNumber:   1,
		RoomNumber:    roomNumber,
		RoomType:      "Standard",
		Capacity:      capacity,
		IsACAvailable: true,
		Price:         price,
		PerDayPrice:   perDay,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedTestRoommate(t *testing.T, db *gorm.DB, username, roomNumber string, rent float64) models.Roommate {
	t.Helper()
	roommate := models.Roommate{
		RoommateUniqueID: username + "-uid",
		Username:         username,
		Password:         "not-a-real-hash",
		Email:            username + "@example.com",
		RentAmount:       rent,
		RentStatus:       models.PaymentPending,
		WithFood:         true,
		CheckInDate:      septemberTenth.AddDate(0, -1, 0),
		LastModifiedDate: septemberTenth.AddDate(0, -1, 0),
		ReferralID:       username + "-ref12345",
		RoomNumber:       roomNumber,
	}
	require.NoError(t, db.Create(&roommate).Error)
	return roommate
}
