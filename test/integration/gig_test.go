package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gigmarket_backend/internal/models"
	"gigmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestCreateGig_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	body := map[string]interface{}{
		"title":       "Build a landing page",
		"description": "Responsive, one page, Figma design provided",
		"budget":      750.0,
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/gigs", token, body)

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var gig models.Gig
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &gig))
	assert.Equal(t, owner.ID, gig.OwnerID)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	assert.Equal(t, int64(0), gig.ViewCount)
}

func TestCreateGig_ValidationFails(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	body := map[string]interface{}{
		"title":       "",
		"description": "No title and negative budget",
		"budget":      -5.0,
	}
	res, _ := ts.SendRequest(t, "POST", "/api/v1/gigs", token, body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestListGigs_SearchAndPagination(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	marker := fmt.Sprintf("uniquestack%d", time.Now().UnixNano())
	for i := 0; i < 3; i++ {
		helpers.CreateGig(t, ts.DB, owner.ID, fmt.Sprintf("Gig %s number %d", marker, i))
	}

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/gigs?search="+marker+"&page=1&limit=2", "", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var list struct {
		Items      []models.Gig `json:"items"`
		Page       int          `json:"page"`
		Limit      int          `json:"limit"`
		Total      int64        `json:"total"`
		TotalPages int          `json:"totalPages"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &list))
	assert.Len(t, list.Items, 2)
	assert.Equal(t, int64(3), list.Total)
	assert.Equal(t, 2, list.TotalPages)
}

func TestListGigs_ExcludesAssigned(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	marker := fmt.Sprintf("assignedmarker%d", time.Now().UnixNano())
	open := helpers.CreateGig(t, ts.DB, owner.ID, "Open "+marker)
	assigned := helpers.CreateGig(t, ts.DB, owner.ID, "Assigned "+marker)
	assert.NoError(t, ts.DB.Model(&models.Gig{}).
		Where("id = ?", assigned.ID).
		Update("status", models.GigStatusAssigned).Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/gigs?search="+marker, "", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, open.ID)
	assert.NotContains(t, bodyStr, assigned.ID)
}

func TestDeleteGig_OnlyOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	strangerToken, _ := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Not yours to delete")

	res, _ := ts.SendRequest(t, "DELETE", "/api/v1/gigs/"+gig.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	var count int64
	ts.DB.Model(&models.Gig{}).Where("id = ?", gig.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteGig_AssignedGigIsKept(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Already assigned")
	assert.NoError(t, ts.DB.Model(&models.Gig{}).
		Where("id = ?", gig.ID).
		Update("status", models.GigStatusAssigned).Error)

	res, bodyStr := ts.SendRequest(t, "DELETE", "/api/v1/gigs/"+gig.ID, ownerToken, nil)

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	t.Logf("УДАЛЕНИЕ (ASSIGNED): Успешно провалилось. Ответ: %s", bodyStr)
}

func TestGetGig_NotFound(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/gigs/b7e2f4a0-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
