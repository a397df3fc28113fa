package helpers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"gigmarket_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, rawPassword string) error {
	if rawPassword != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, db *gorm.DB, username, email, password string) (string, *models.User) {
	user := &models.User{
		Username: username,
		Email:    email,
	}
	err := CreateUser(t, db, user, password)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	log.Printf("✅ [Helper] Создан и залогинен пользователь %s", email)

	return loginResponse.Token, user
}

// CreateAndLoginOwner создает заказчика с уникальным email
func CreateAndLoginOwner(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("owner_%d@test.com", suffix)
	username := fmt.Sprintf("owner_%d", suffix)
	return CreateAndLoginUser(t, ts, db, username, email, "password123")
}

// CreateAndLoginFreelancer создает фрилансера с уникальным email
func CreateAndLoginFreelancer(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("freelancer_%d@test.com", suffix)
	username := fmt.Sprintf("freelancer_%d", suffix)
	return CreateAndLoginUser(t, ts, db, username, email, "password123")
}

// CreateGig создает открытый гиг напрямую в БД
func CreateGig(t *testing.T, db *gorm.DB, ownerID string, title string) *models.Gig {
	gig := &models.Gig{
		Title:       title,
		Description: "Test gig description",
		Budget:      500,
		OwnerID:     ownerID,
		Status:      models.GigStatusOpen,
	}
	result := db.Create(gig)
	assert.NoError(t, result.Error, "Не удалось создать гиг")
	return gig
}

// CreateBid создает ставку напрямую в БД
func CreateBid(t *testing.T, db *gorm.DB, gigID, freelancerID string, price float64) *models.Bid {
	bid := &models.Bid{
		GigID:        gigID,
		FreelancerID: freelancerID,
		Message:      "I can do this",
		Price:        price,
		Status:       models.BidStatusPending,
	}
	result := db.Create(bid)
	assert.NoError(t, result.Error, "Не удалось создать ставку")
	return bid
}
