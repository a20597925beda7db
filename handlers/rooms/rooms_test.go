package rooms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"room-rental-server/config"
	"room-rental-server/models"
	"room-rental-server/payload"
	"room-rental-server/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.Roommate{}, &models.ReferralDetail{}))

	r := gin.New()
	RegisterRoomRoutes(r, services.NewRoomService(db, nil, config.DefaultRentRules()))
	return r, db
}

func TestAllRoomsEmptyReturnsErrorEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/room/all-rooms", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp payload.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No Rooms are Added in the System", resp.Message)
	assert.False(t, resp.Status)
}

func TestBookRoomValidationMessage(t *testing.T) {
	r, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.Room{RoomNumber: "S1", Capacity: 2, Price: 8000, PerDayPrice: 270}).Error)

	// Username shorter than six characters fails validation.
	body := `{"username":"joe","password":"secret-pass","email":"joe@example.com","check_in_date":"2025-09-03T00:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/room/book/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp payload.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed for field : username", resp.Message)
}

func TestBookRoomHappyPath(t *testing.T) {
	r, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.Room{RoomNumber: "S1", Capacity: 2, Price: 8000, PerDayPrice: 270}).Error)

	body := `{"username":"johndoe","password":"secret-pass","email":"johndoe@example.com","with_food":true,"check_in_date":"2025-09-03T00:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/room/book/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp payload.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Contains(t, resp.Message, "johndoe")
}

func TestGetRoomInvalidParam(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/room/get-room/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp payload.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid roomId", resp.Message)
}
