package handlers

import (
	"context"
	"net/http"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	parseID       int
	parseErr      error
	user          *models.User
	userErr       error

	lastRegisterEmail string
	lastLoginEmail    string
	lastParseToken    string
	lastUserID        int
}

func (m *mockAuth) Register(_ context.Context, username, email, password string) (string, error) {
	m.lastRegisterEmail = email
	return m.registerToken, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) UserByID(_ context.Context, id int) (*models.User, error) {
	m.lastUserID = id
	return m.user, m.userErr
}

type mockExpenses struct {
	createResp models.Expense
	createErr  error
	updateResp models.Expense
	updateErr  error
	deleteErr  error
	listResp   []models.Expense
	listErr    error

	lastOwnerID   int
	lastCallerID  int
	lastExpenseID int
	lastInput     service.ExpenseInput
	deleteCalls   int
}

func (m *mockExpenses) Create(_ context.Context, ownerID int, in service.ExpenseInput) (models.Expense, error) {
	m.lastOwnerID = ownerID
	m.lastInput = in
	return m.createResp, m.createErr
}

func (m *mockExpenses) Update(_ context.Context, callerID, expenseID int, in service.ExpenseInput) (models.Expense, error) {
	m.lastCallerID = callerID
	m.lastExpenseID = expenseID
	m.lastInput = in
	return m.updateResp, m.updateErr
}

func (m *mockExpenses) Delete(_ context.Context, callerID, expenseID int) error {
	m.deleteCalls++
	m.lastCallerID = callerID
	m.lastExpenseID = expenseID
	return m.deleteErr
}

func (m *mockExpenses) ListByOwner(_ context.Context, ownerID int) ([]models.Expense, error) {
	m.lastOwnerID = ownerID
	return m.listResp, m.listErr
}

type mockChart struct {
	png []byte
	err error

	lastNow time.Time
}

func (m *mockChart) WeeklyPNG(_ context.Context, now time.Time) ([]byte, error) {
	m.lastNow = now
	return m.png, m.err
}

// ---- Shared Test Helpers ----

// authedMock returns a mockAuth that resolves any bearer token to the given user.
func authedMock(u *models.User) *mockAuth {
	return &mockAuth{parseID: u.ID, user: u}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, "")
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
