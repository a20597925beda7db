package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-rental-server/models"
	"room-rental-server/payload"
)

func newTestGrievanceService(t *testing.T) *GrievanceService {
	t.Helper()
	svc := NewGrievanceService(newTestDB(t))
	svc.clock = fixedClock(septemberTenth)
	return svc
}

func TestRaiseGrievance(t *testing.T) {
	svc := newTestGrievanceService(t)
	roommate := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)

	msg, err := svc.Raise(roommate.ID, payload.GrievanceInput{GrievanceContent: "leaky tap"})
	require.NoError(t, err)
	assert.Equal(t, "Raised an Grievance Successfully", msg)

	_, err = svc.Raise(roommate.ID, payload.GrievanceInput{})
	require.Error(t, err)
	assert.Equal(t, "Invalid data in Grievance", err.Error())

	_, err = svc.Raise(999, payload.GrievanceInput{GrievanceContent: "noise"})
	require.Error(t, err)
	assert.Equal(t, "Entered Roommate id was invalid", err.Error())
}

func TestPendingGrievancesIncludeRoommate(t *testing.T) {
	svc := newTestGrievanceService(t)
	roommate := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	_, err := svc.Raise(roommate.ID, payload.GrievanceInput{GrievanceContent: "leaky tap"})
	require.NoError(t, err)

	pending, err := svc.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "leaky tap", pending[0].GrievanceContent)
	assert.Equal(t, "johndoe", pending[0].RoommateName)
	assert.Equal(t, "S1", pending[0].RoomNumber)
}

func TestMarkGrievanceRead(t *testing.T) {
	svc := newTestGrievanceService(t)
	roommate := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	_, err := svc.Raise(roommate.ID, payload.GrievanceInput{GrievanceContent: "leaky tap"})
	require.NoError(t, err)

	var grievance models.Grievance
	require.NoError(t, svc.db.First(&grievance).Error)

	msg, err := svc.MarkRead(grievance.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marked as Read", msg)

	_, err = svc.Pending()
	require.Error(t, err)
	assert.Equal(t, "No Grievances so Far", err.Error())

	_, err = svc.MarkRead(999)
	require.Error(t, err)
	assert.Equal(t, "Entered Grievance Id was invalid", err.Error())
}
