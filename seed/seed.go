package seed

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/models"
	"room-rental-server/services"
)

// Seed loads the initial room inventory and the owner account. Safe to run
// on every startup.
func Seed(db *gorm.DB, ownerSvc *services.OwnerService) error {
	if err := seedRooms(db); err != nil {
		return err
	}
	if err := ownerSvc.AddOwner("Sacchin", "1234"); err != nil {
		return err
	}
	return seedPayments(db)
}

func seedRooms(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rooms := []models.Room{
		{FloorNumber: 1, RoomNumber: "F1", RoomType: "Deluxe", Capacity: 2, IsACAvailable: true, Price: 8500, PerDayPrice: 285},
		{FloorNumber: 1, RoomNumber: "F2", RoomType: "Standard", Capacity: 3, IsACAvailable: true, Price: 7500, PerDayPrice: 250},
		{FloorNumber: 1, RoomNumber: "F3", RoomType: "Economy", Capacity: 4, IsACAvailable: false, Price: 6500, PerDayPrice: 215},
		{FloorNumber: 2, RoomNumber: "S1", RoomType: "Deluxe", Capacity: 2, IsACAvailable: true, Price: 8000, PerDayPrice: 270},
		{FloorNumber: 2, RoomNumber: "S2", RoomType: "Standard", Capacity: 3, IsACAvailable: false, Price: 7000, PerDayPrice: 235},
		{FloorNumber: 2, RoomNumber: "S3", RoomType: "Economy", Capacity: 4, IsACAvailable: false, Price: 6000, PerDayPrice: 200},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return err
	}
	logrus.WithField("rooms", len(rooms)).Info("Seeded room inventory")
	return nil
}

// seedPayments loads a handful of settled payments so the owner dashboard's
// sort and search views have data on a fresh install.
func seedPayments(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Payment{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	base := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		{Amount: 8500, PaymentStatus: "PAYMENT_DONE", PaymentDate: base, TransactionID: "seed_order_1", PaymentMethod: "card", Username: "sample_tenant_1", RoomNumber: "F1"},
		{Amount: 7500, PaymentStatus: "PAYMENT_DONE", PaymentDate: base.AddDate(0, 0, 1), TransactionID: "seed_order_2", PaymentMethod: "card", Username: "sample_tenant_2", RoomNumber: "F2"},
		{Amount: 6000, PaymentStatus: "PAYMENT_DONE", PaymentDate: base.AddDate(0, 0, 2), TransactionID: "seed_order_3", PaymentMethod: "upi", Username: "sample_tenant_3", RoomNumber: "S3"},
	}
	if err := db.Create(&payments).Error; err != nil {
		return err
	}
	logrus.WithField("payments", len(payments)).Info("Seeded sample payments")
	return nil
}
