package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"gigmarket_backend/internal/models"
	"gigmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func createNotification(t *testing.T, ts *helpers.TestServer, userID, message string) *models.Notification {
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeSystem,
		Message: message,
	}
	assert.NoError(t, ts.DB.Create(n).Error)
	return n
}

func TestGetNotifications(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	createNotification(t, ts, user.ID, "first")
	createNotification(t, ts, user.ID, "second")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var list struct {
		Notifications []models.Notification `json:"notifications"`
		Total         int64                 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &list))
	assert.Equal(t, int64(2), list.Total)
}

func TestMarkNotificationRead_Idempotent(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	n := createNotification(t, ts, user.ID, "unread")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/notifications/"+n.ID+"/read", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var fresh models.Notification
	assert.NoError(t, ts.DB.First(&fresh, "id = ?", n.ID).Error)
	assert.True(t, fresh.IsRead)
	assert.NotNil(t, fresh.ReadAt)
	firstReadAt := *fresh.ReadAt

	// Повторная пометка - no-op, readAt не переписывается
	res, _ = ts.SendRequest(t, "PUT", "/api/v1/notifications/"+n.ID+"/read", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.NoError(t, ts.DB.First(&fresh, "id = ?", n.ID).Error)
	assert.True(t, fresh.IsRead)
	assert.Equal(t, firstReadAt.UnixMilli(), fresh.ReadAt.UnixMilli())
}

func TestMarkNotificationRead_ForeignNotificationHidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, victim := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	attackerToken, _ := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	n := createNotification(t, ts, victim.ID, "private")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/notifications/"+n.ID+"/read", attackerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var fresh models.Notification
	assert.NoError(t, ts.DB.First(&fresh, "id = ?", n.ID).Error)
	assert.False(t, fresh.IsRead)
}

func TestMarkAllRead(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	createNotification(t, ts, user.ID, "one")
	createNotification(t, ts, user.ID, "two")
	createNotification(t, ts, user.ID, "three")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/notifications/read-all", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var unread int64
	ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", user.ID).
		Count(&unread)
	assert.Equal(t, int64(0), unread)
}

func TestUnreadCount(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	createNotification(t, ts, user.ID, "one")
	read := createNotification(t, ts, user.ID, "two")
	assert.NoError(t, ts.DB.Model(&models.Notification{}).
		Where("id = ?", read.ID).
		Update("is_read", true).Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count struct {
		Count int64 `json:"unread_count"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &count))
	assert.Equal(t, int64(1), count.Count)
}

func TestDeleteNotification_OwnerScoped(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	strangerToken, _ := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	n := createNotification(t, ts, user.ID, "to delete")

	res, _ := ts.SendRequest(t, "DELETE", "/api/v1/notifications/"+n.ID, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/notifications/"+n.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	ts.DB.Model(&models.Notification{}).Where("id = ?", n.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
