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

func TestHire_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	_, winner := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)
	_, loser := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Pick one")
	winnerBid := helpers.CreateBid(t, ts.DB, gig.ID, winner.ID, 250)
	loserBid := helpers.CreateBid(t, ts.DB, gig.ID, loser.ID, 300)

	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/bids/"+winnerBid.ID+"/hire", ownerToken, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var hired models.Bid
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &hired))
	assert.Equal(t, models.BidStatusHired, hired.Status)

	// Гиг переходит в assigned, проигравшая ставка - в rejected
	var freshGig models.Gig
	assert.NoError(t, ts.DB.First(&freshGig, "id = ?", gig.ID).Error)
	assert.Equal(t, models.GigStatusAssigned, freshGig.Status)

	var freshLoser models.Bid
	assert.NoError(t, ts.DB.First(&freshLoser, "id = ?", loserBid.ID).Error)
	assert.Equal(t, models.BidStatusRejected, freshLoser.Status)

	// Победитель получает уведомление, проигравший - нет
	var winnerNotifs, loserNotifs int64
	ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", winner.ID, models.NotificationTypeHired).
		Count(&winnerNotifs)
	ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", loser.ID, models.NotificationTypeHired).
		Count(&loserNotifs)
	assert.Equal(t, int64(1), winnerNotifs)
	assert.Equal(t, int64(0), loserNotifs)
}

func TestHire_OnlyOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	_, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	freelancerToken, freelancer := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Not your call")
	bid := helpers.CreateBid(t, ts.DB, gig.ID, freelancer.ID, 250)

	// Фрилансер пытается нанять сам себя
	res, _ := ts.SendRequest(t, "PATCH", "/api/v1/bids/"+bid.ID+"/hire", freelancerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	var fresh models.Bid
	assert.NoError(t, ts.DB.First(&fresh, "id = ?", bid.ID).Error)
	assert.Equal(t, models.BidStatusPending, fresh.Status)
}

func TestHire_BidNotFound(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	ownerToken, _ := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "PATCH", "/api/v1/bids/b7e2f4a0-0000-0000-0000-000000000001/hire", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHire_AlreadyResolvedBid(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	_, freelancer := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Stale bid")
	bid := helpers.CreateBid(t, ts.DB, gig.ID, freelancer.ID, 250)
	assert.NoError(t, ts.DB.Model(&models.Bid{}).
		Where("id = ?", bid.ID).
		Update("status", models.BidStatusRejected).Error)

	res, _ := ts.SendRequest(t, "PATCH", "/api/v1/bids/"+bid.ID+"/hire", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

// TestHire_ConcurrentSameBid: N конкурентных наймов одной ставки, ровно один
// проходит, состояние консистентно.
func TestHire_ConcurrentSameBid(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)
	_, freelancer := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Race to hire")
	bid := helpers.CreateBid(t, ts.DB, gig.ID, freelancer.ID, 250)

	const attempts = 10
	statuses := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, "PATCH", "/api/v1/bids/"+bid.ID+"/hire", ownerToken, nil)
			statuses[i] = res.StatusCode
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, s := range statuses {
		switch s {
		case http.StatusOK:
			okCount++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", s)
		}
	}
	assert.Equal(t, 1, okCount, "ровно один найм должен пройти")

	var freshGig models.Gig
	assert.NoError(t, ts.DB.First(&freshGig, "id = ?", gig.ID).Error)
	assert.Equal(t, models.GigStatusAssigned, freshGig.Status)

	var freshBid models.Bid
	assert.NoError(t, ts.DB.First(&freshBid, "id = ?", bid.ID).Error)
	assert.Equal(t, models.BidStatusHired, freshBid.Status)

	// Победитель уведомлен ровно один раз
	var notifs int64
	ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", freelancer.ID, models.NotificationTypeHired).
		Count(&notifs)
	assert.Equal(t, int64(1), notifs)
}

// TestHire_ConcurrentDifferentBids: конкурентный найм разных ставок одного
// гига, побеждает ровно одна.
func TestHire_ConcurrentDifferentBids(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginOwner(t, ts, ts.DB)

	gig := helpers.CreateGig(t, ts.DB, owner.ID, "Two horses")

	const rivals = 5
	bidIDs := make([]string, rivals)
	for i := 0; i < rivals; i++ {
		_, freelancer := helpers.CreateAndLoginFreelancer(t, ts, ts.DB)
		bidIDs[i] = helpers.CreateBid(t, ts.DB, gig.ID, freelancer.ID, float64(100+i)).ID
	}

	statuses := make([]int, rivals)
	var wg sync.WaitGroup
	for i := 0; i < rivals; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, "PATCH", "/api/v1/bids/"+bidIDs[i]+"/hire", ownerToken, nil)
			statuses[i] = res.StatusCode
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, s := range statuses {
		if s == http.StatusOK {
			okCount++
		}
	}
	assert.Equal(t, 1, okCount, "гиг можно отдать только одной ставке")

	var hiredCount int64
	ts.DB.Model(&models.Bid{}).
		Where("gig_id = ? AND status = ?", gig.ID, models.BidStatusHired).
		Count(&hiredCount)
	assert.Equal(t, int64(1), hiredCount)

	var pendingCount int64
	ts.DB.Model(&models.Bid{}).
		Where("gig_id = ? AND status = ?", gig.ID, models.BidStatusPending).
		Count(&pendingCount)
	assert.Equal(t, int64(0), pendingCount, "остальные ставки отклонены")
}
