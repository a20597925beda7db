package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-rental-server/models"
	"room-rental-server/payload"
)

func newTestRoomService(t *testing.T) *RoomService {
	t.Helper()
	svc := NewRoomService(newTestDB(t), nil, testRules())
	svc.clock = fixedClock(septemberTenth)
	return svc
}

func bookingReq(username string) payload.BookingRequest {
	return payload.BookingRequest{
		Username:    username,
		Password:    "secret-pass",
		Email:       username + "@example.com",
		Gender:      "male",
		WithFood:    true,
		CheckInDate: time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestBookRoomChargesFullPriceBeforeCutoff(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)

	msg, err := svc.BookRoom(room.ID, bookingReq("johndoe"))
	require.NoError(t, err)
	assert.Contains(t, msg, "johndoe")

	var roommate models.Roommate
	require.NoError(t, svc.db.Where("username = ?", "johndoe").First(&roommate).Error)
	assert.Equal(t, 7500.0, roommate.RentAmount)
	assert.Equal(t, models.PaymentPending, roommate.RentStatus)
	assert.Equal(t, "S2", roommate.RoomNumber)

	var updated models.Room
	require.NoError(t, svc.db.First(&updated, room.ID).Error)
	assert.Equal(t, 1, updated.CurrentCapacity)
}

func TestBookRoomProratesAfterCutoff(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)

	req := bookingReq("janedoe")
	req.CheckInDate = time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)
	_, err := svc.BookRoom(room.ID, req)
	require.NoError(t, err)

	// 10 remaining days of a 30-day month at 250 a day.
	var roommate models.Roommate
	require.NoError(t, svc.db.Where("username = ?", "janedoe").First(&roommate).Error)
	assert.Equal(t, 2500.0, roommate.RentAmount)
}

func TestBookRoomDeductsFoodOptOut(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)

	req := bookingReq("johndoe")
	req.WithFood = false
	_, err := svc.BookRoom(room.ID, req)
	require.NoError(t, err)

	var roommate models.Roommate
	require.NoError(t, svc.db.Where("username = ?", "johndoe").First(&roommate).Error)
	assert.Equal(t, 6500.0, roommate.RentAmount)
}

func TestBookRoomRejectsWhenFull(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S1", 1, 8000, 270)

	_, err := svc.BookRoom(room.ID, bookingReq("johndoe"))
	require.NoError(t, err)

	_, err = svc.BookRoom(room.ID, bookingReq("janedoe"))
	require.Error(t, err)
	assert.True(t, IsDomain(err))
	assert.Equal(t, "Room was Full", err.Error())

	var updated models.Room
	require.NoError(t, svc.db.First(&updated, room.ID).Error)
	assert.Equal(t, 1, updated.CurrentCapacity)

	var count int64
	require.NoError(t, svc.db.Model(&models.Roommate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookRoomRejectsDuplicateUsernameCaseInsensitive(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)

	_, err := svc.BookRoom(room.ID, bookingReq("JohnDoe"))
	require.NoError(t, err)

	dup := bookingReq("johndoe")
	dup.Email = "other@example.com"
	_, err = svc.BookRoom(room.ID, dup)
	require.Error(t, err)
	assert.Equal(t, "Username Already Exists!!!", err.Error())

	// The failed booking must leave no writes behind.
	var updated models.Room
	require.NoError(t, svc.db.First(&updated, room.ID).Error)
	assert.Equal(t, 1, updated.CurrentCapacity)
	var count int64
	require.NoError(t, svc.db.Model(&models.Roommate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookRoomRejectsPastCheckout(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)

	past := septemberTenth.AddDate(0, 0, -1)
	req := bookingReq("johndoe")
	req.CheckOutDate = &past
	_, err := svc.BookRoom(room.ID, req)
	require.Error(t, err)
	assert.Equal(t, "Checkout date can't be entered as past date", err.Error())
}

func TestBookRoomCreditsReferrer(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)
	referrer := seedTestRoommate(t, svc.db, "aliceal", "S2", 7500)

	req := bookingReq("bobbybb")
	req.ReferralID = referrer.ReferralID
	_, err := svc.BookRoom(room.ID, req)
	require.NoError(t, err)

	var updated models.Roommate
	require.NoError(t, svc.db.First(&updated, referrer.ID).Error)
	assert.Equal(t, 1, updated.ReferralCount)

	var detail models.ReferralDetail
	require.NoError(t, svc.db.Where("referrer_id = ?", referrer.ID).First(&detail).Error)
	assert.Equal(t, "bobbybb", detail.Username)
}

func TestBookRoomRejectsReferrerAtLimit(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)
	referrer := seedTestRoommate(t, svc.db, "aliceal", "S2", 7500)
	require.NoError(t, svc.db.Model(&models.Roommate{}).Where("id = ?", referrer.ID).
		Update("referral_count", testRules().MaxReferrals).Error)

	req := bookingReq("bobbybb")
	req.ReferralID = referrer.ReferralID
	_, err := svc.BookRoom(room.ID, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max referrals")

	var updated models.Roommate
	require.NoError(t, svc.db.First(&updated, referrer.ID).Error)
	assert.Equal(t, testRules().MaxReferrals, updated.ReferralCount)

	var count int64
	require.NoError(t, svc.db.Model(&models.Roommate{}).Where("username = ?", "bobbybb").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestBookRoomIgnoresShortReferralCode(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S2", 3, 7500, 250)

	req := bookingReq("bobbybb")
	req.ReferralID = "abc"
	_, err := svc.BookRoom(room.ID, req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.db.Model(&models.ReferralDetail{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestBookRoomUnknownRoom(t *testing.T) {
	svc := newTestRoomService(t)
	_, err := svc.BookRoom(42, bookingReq("johndoe"))
	require.Error(t, err)
	assert.Equal(t, "Mentioned Room ID is not available", err.Error())
}

func TestCheckAvailabilityFilters(t *testing.T) {
	svc := newTestRoomService(t)
	seedTestRoom(t, svc.db, "S1", 2, 8000, 270)
	economy := seedTestRoom(t, svc.db, "S3", 4, 6000, 200)
	require.NoError(t, svc.db.Model(&models.Room{}).Where("id = ?", economy.ID).
		Update("is_ac_available", false).Error)

	rooms, err := svc.CheckAvailability(payload.AvailabilityCheck{RoomType: "standard", WithAC: true, Capacity: 2})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "S1", rooms[0].RoomNumber)

	_, err = svc.CheckAvailability(payload.AvailabilityCheck{RoomType: "Deluxe", WithAC: true, Capacity: 1})
	require.Error(t, err)
	assert.Equal(t, "Rooms are not available with your Condition", err.Error())
}

func TestAddRoomValidation(t *testing.T) {
	svc := newTestRoomService(t)
	seedTestRoom(t, svc.db, "S1", 2, 8000, 270)

	_, err := svc.AddRoom(&models.Room{RoomNumber: "S1", Capacity: 2, Price: 5000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S1")

	_, err = svc.AddRoom(&models.Room{RoomNumber: "S9", Capacity: 0, Price: 5000})
	require.Error(t, err)

	_, err = svc.AddRoom(&models.Room{RoomNumber: "S9", Capacity: 2, Price: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1000")

	msg, err := svc.AddRoom(&models.Room{RoomNumber: "S9", Capacity: 2, Price: 5000, PerDayPrice: 170})
	require.NoError(t, err)
	assert.Equal(t, "Room have been added Successfully", msg)
}

func TestEditRoomPartialUpdate(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S1", 2, 8000, 270)

	newPrice := 8200.0
	dto, err := svc.EditRoom(room.ID, payload.RoomUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 8200.0, dto.Price)
	assert.Equal(t, "S1", dto.RoomNumber)

	tooMany := 5
	_, err = svc.EditRoom(room.ID, payload.RoomUpdate{CurrentCapacity: &tooMany})
	require.Error(t, err)
}

func TestEditRoomCannotShrinkBelowOccupancy(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S1", 3, 8000, 270)
	require.NoError(t, svc.db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("current_capacity", 2).Error)

	smaller := 1
	_, err := svc.EditRoom(room.ID, payload.RoomUpdate{Capacity: &smaller})
	require.Error(t, err)
	assert.Equal(t, "Current capacity cannot exceed total capacity", err.Error())

	var updated models.Room
	require.NoError(t, svc.db.First(&updated, room.ID).Error)
	assert.Equal(t, 3, updated.Capacity)
	assert.LessOrEqual(t, updated.CurrentCapacity, updated.Capacity)

	grown := 4
	dto, err := svc.EditRoom(room.ID, payload.RoomUpdate{Capacity: &grown})
	require.NoError(t, err)
	assert.Equal(t, 4, dto.Capacity)
}

func TestDeleteRoomRequiresEmpty(t *testing.T) {
	svc := newTestRoomService(t)
	room := seedTestRoom(t, svc.db, "S1", 2, 8000, 270)
	seedTestRoommate(t, svc.db, "aliceal", "S1", 8000)

	_, err := svc.DeleteRoom(room.ID)
	require.Error(t, err)
	assert.Equal(t, "This room is not empty to delete", err.Error())

	require.NoError(t, svc.db.Where("room_number = ?", "S1").Delete(&models.Roommate{}).Error)
	msg, err := svc.DeleteRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Room deleted Successfully", msg)
}
