package integration_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"gigmarket_backend/internal/models"
	"gigmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestTrackView_CountsOncePerViewer(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	viewerToken, _ := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Watch me")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/gigs/"+gig.ID+"/view", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var first struct {
		ViewCount int64 `json:"viewCount"`
		Counted   bool  `json:"counted"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &first))
	assert.True(t, first.Counted)
	assert.Equal(t, int64(1), first.ViewCount)

	// Повторный просмотр в окне дедупликации не считается
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/gigs/"+gig.ID+"/view", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var second struct {
		ViewCount int64 `json:"viewCount"`
		Counted   bool  `json:"counted"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &second))
	assert.False(t, second.Counted)
	assert.Equal(t, int64(1), second.ViewCount)
}

func TestTrackView_AnonymousCounts(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Anonymous traffic")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/gigs/"+gig.ID+"/view", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var first struct {
		Counted bool `json:"counted"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &first))
	assert.True(t, first.Counted)

	// Анонимные просмотры дедуплицируются между собой
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/gigs/"+gig.ID+"/view", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var second struct {
		Counted bool `json:"counted"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &second))
	assert.False(t, second.Counted)
}

func TestTrackView_GigNotFound(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/gigs/b7e2f4a0-0000-0000-0000-000000000002/view", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestTrackView_ConcurrentDistinctViewers: 50 разных зрителей одновременно,
// счетчик растет ровно на 50.
func TestTrackView_ConcurrentDistinctViewers(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Traffic spike")

	const viewers = 50
	tokens := make([]string, viewers)
	for i := 0; i < viewers; i++ {
		tokens[i], _ = helpers.CreateAndLoginFreelancer(t, ts, ts.DB)
	}

	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, "POST", "/api/v1/gigs/"+gig.ID+"/view", tokens[i], nil)
			assert.Equal(t, http.StatusOK, res.StatusCode)
		}(i)
	}
	wg.Wait()

	var freshGig models.Gig
	assert.NoError(t, ts.DB.First(&freshGig, "id = ?", gig.ID).Error)
	assert.Equal(t, int64(viewers), freshGig.ViewCount)
}
