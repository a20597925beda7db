package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-rental-server/models"
)

// recordingMailer captures sends; fail makes every send error out.
type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (m *recordingMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return Errorf("smtp unreachable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestNotificationService(t *testing.T, mailer Mailer) *NotificationService {
	t.Helper()
	svc := NewNotificationService(newTestDB(t), mailer, testRules())
	svc.clock = fixedClock(septemberTenth)
	return svc
}

func TestSendMailToAll(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestNotificationService(t, mailer)
	seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	seedTestRoommate(t, svc.db, "aliceal", "S1", 7500)

	resp, err := svc.SendMailToAll()
	require.NoError(t, err)
	assert.True(t, resp.Status)
	assert.Equal(t, 2, mailer.count())
}

func TestSendMailToAllFailure(t *testing.T) {
	mailer := &recordingMailer{fail: true}
	svc := newTestNotificationService(t, mailer)
	seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)

	_, err := svc.SendMailToAll()
	require.Error(t, err)
	assert.Equal(t, "Failed to send email notification", err.Error())
}

func TestSendPendingMailOnlyPendingTenants(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestNotificationService(t, mailer)
	seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	paid := seedTestRoommate(t, svc.db, "aliceal", "S1", 7500)
	require.NoError(t, svc.db.Model(&models.Roommate{}).Where("id = ?", paid.ID).
		Update("rent_status", models.PaymentDone).Error)

	resp, err := svc.SendPendingMail()
	require.NoError(t, err)
	assert.True(t, resp.Status)
	require.Equal(t, 1, mailer.count())
	assert.Equal(t, "johndoe@example.com", mailer.sent[0])
}

func TestSendPendingMailNothingPending(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestNotificationService(t, mailer)
	paid := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	require.NoError(t, svc.db.Model(&models.Roommate{}).Where("id = ?", paid.ID).
		Update("rent_status", models.PaymentDone).Error)

	resp, err := svc.SendPendingMail()
	require.NoError(t, err)
	assert.False(t, resp.Status)
	assert.Equal(t, "There are no Payment Pending from Roommates", resp.Message)
	assert.Equal(t, 0, mailer.count())
}

func TestMonthlyRecalculationAppliesReferralCredits(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestNotificationService(t, mailer)
	seedTestRoom(t, svc.db, "S1", 3, 7500, 250)

	referrer := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	referred := seedTestRoommate(t, svc.db, "aliceal", "S1", 7500)
	require.NoError(t, svc.db.Model(&models.Roommate{}).Where("id = ?", referrer.ID).
		Updates(map[string]interface{}{"referral_count": 2, "rent_status": models.PaymentDone}).Error)

	// One live credit and one whose referred tenant already left.
	require.NoError(t, svc.db.Create(&models.ReferralDetail{
		ReferrerID:       referrer.ID,
		Username:         referred.Username,
		RoommateUniqueID: referred.RoommateUniqueID,
	}).Error)
	require.NoError(t, svc.db.Create(&models.ReferralDetail{
		ReferrerID:       referrer.ID,
		Username:         "ghost",
		RoommateUniqueID: "ghost-uid",
	}).Error)

	resp := svc.RunMonthlyRecalculation()
	assert.True(t, resp.Status)

	var updated models.Roommate
	require.NoError(t, svc.db.First(&updated, referrer.ID).Error)
	// 7500 minus one 5% credit, with food so no deduction.
	assert.Equal(t, 7125.0, updated.RentAmount)
	assert.Equal(t, 1, updated.ReferralCount)
	assert.Equal(t, models.PaymentPending, updated.RentStatus)

	var credits int64
	require.NoError(t, svc.db.Model(&models.ReferralDetail{}).Where("referrer_id = ?", referrer.ID).Count(&credits).Error)
	assert.EqualValues(t, 1, credits)

	assert.Equal(t, 2, mailer.count())
}

func TestMonthlyRecalculationIsIdempotent(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestNotificationService(t, mailer)
	seedTestRoom(t, svc.db, "S1", 3, 7500, 250)
	referrer := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	referred := seedTestRoommate(t, svc.db, "aliceal", "S1", 7500)
	require.NoError(t, svc.db.Create(&models.ReferralDetail{
		ReferrerID:       referrer.ID,
		Username:         referred.Username,
		RoommateUniqueID: referred.RoommateUniqueID,
	}).Error)

	svc.RunMonthlyRecalculation()
	svc.RunMonthlyRecalculation()

	// Discounts derive from the base price, so running twice cannot compound.
	var updated models.Roommate
	require.NoError(t, svc.db.First(&updated, referrer.ID).Error)
	assert.Equal(t, 7125.0, updated.RentAmount)
	assert.Equal(t, 1, updated.ReferralCount)
}

func TestMonthlyRecalculationNoFoodDeduction(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestNotificationService(t, mailer)
	seedTestRoom(t, svc.db, "S1", 3, 7500, 250)
	roommate := seedTestRoommate(t, svc.db, "johndoe", "S1", 7500)
	require.NoError(t, svc.db.Model(&models.Roommate{}).Where("id = ?", roommate.ID).
		Update("with_food", false).Error)

	svc.RunMonthlyRecalculation()

	var updated models.Roommate
	require.NoError(t, svc.db.First(&updated, roommate.ID).Error)
	assert.Equal(t, 6500.0, updated.RentAmount)
}
