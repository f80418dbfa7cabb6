package service

import (
	"context"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

// Authorization covers registration, login and per-request identity
// resolution. Register and Login both return a signed access token.
type Authorization interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// ExpenseInput carries the mutable fields of an expense. A zero Date means
// "stamp server time now".
type ExpenseInput struct {
	Title    string
	Amount   float64
	Category string
	Date     time.Time
}

// Expenses is the CRUD surface over expense rows. Update and Delete enforce
// the ownership protocol: existence first, then owner, then mutate.
type Expenses interface {
	Create(ctx context.Context, ownerID int, in ExpenseInput) (models.Expense, error)
	Update(ctx context.Context, callerID, expenseID int, in ExpenseInput) (models.Expense, error)
	Delete(ctx context.Context, callerID, expenseID int) error
	ListByOwner(ctx context.Context, ownerID int) ([]models.Expense, error)
}

// Chart renders the trailing-week spending plot as PNG bytes.
type Chart interface {
	WeeklyPNG(ctx context.Context, now time.Time) ([]byte, error)
}

type Service struct {
	Authorization
	Expenses
	Chart
}

// AuthConfig is the injected token configuration; there is no package-level
// signing key.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, auth),
		Expenses:      NewExpenseService(repos.Expenses),
		Chart:         NewChartService(repos.Expenses),
	}
}
