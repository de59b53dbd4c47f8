package handlers

import (
	"context"
	"time"

	"tpo_system/internal/models"
	"tpo_system/internal/ratelimit"
	"tpo_system/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    int
	signUpErr   error
	signInToken string
	signInUser  *models.User
	signInErr   error
	parseClaims *service.Claims
	parseErr    error
	getUser     *models.User
	getUserErr  error
	updateUser  *models.User
	updateErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignUpName     string
	lastSignInUsername string
	lastSignInPassword string
	lastParseToken     string
	lastUpdateName     string
}

var _ service.Authorization = (*mockAuth)(nil)

func (m *mockAuth) SignUp(username, password, name string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	m.lastSignUpName = name
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) SignIn(username, password string) (string, *models.User, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInToken, m.signInUser, m.signInErr
}

func (m *mockAuth) ParseToken(token string) (*service.Claims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}

func (m *mockAuth) GetUser(id int) (*models.User, error) {
	return m.getUser, m.getUserErr
}

func (m *mockAuth) UpdateName(id int, name string) (*models.User, error) {
	m.lastUpdateName = name
	return m.updateUser, m.updateErr
}

type mockTPO struct {
	records   []models.TPORecord
	listErr   error
	addID     int
	addErr    error
	updateErr error
	deleteErr error

	lastAdded   models.TPORecord
	lastUpdated models.TPORecord
	lastDeleted int
}

var _ service.TPO = (*mockTPO)(nil)

func (m *mockTPO) List(ctx context.Context) ([]models.TPORecord, error) {
	return m.records, m.listErr
}

func (m *mockTPO) Add(ctx context.Context, rec models.TPORecord) (int, error) {
	m.lastAdded = rec
	return m.addID, m.addErr
}

func (m *mockTPO) Update(ctx context.Context, rec models.TPORecord) error {
	m.lastUpdated = rec
	return m.updateErr
}

func (m *mockTPO) Delete(ctx context.Context, id int) error {
	m.lastDeleted = id
	return m.deleteErr
}

// ---- Router helpers ----

// generous limits so rate limiting never interferes with unrelated tests
func unboundedLimits() (ratelimit.Limiter, ratelimit.Limiter) {
	cfg := ratelimit.Config{Max: 1_000_000, Window: time.Minute}
	return ratelimit.NewFixedWindow(cfg), ratelimit.NewFixedWindow(cfg)
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	general, auth := unboundedLimits()
	return NewHandler(s, nil, general, auth).InitRoutes()
}
