package repository

import (
	"context"
	"database/sql"
	"time"

	"expense_tracker/internal/models"
	dbinit "expense_tracker/internal/repository/db"
)

// Users is the persistence contract for user records. Lookups return
// (nil, nil) when no row matches.
type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Expenses is the persistence contract for expense rows. Ownership is not
// enforced here; the service layer checks it before calling Update/Delete.
type Expenses interface {
	Create(ctx context.Context, e models.Expense) (models.Expense, error)
	GetByID(ctx context.Context, id int) (*models.Expense, error)
	Update(ctx context.Context, id int, title string, amount float64, category string, date time.Time) (models.Expense, error)
	Delete(ctx context.Context, id int) error
	ListByUser(ctx context.Context, userID int) ([]models.Expense, error)
	ListInDateRange(ctx context.Context, from, to time.Time) ([]models.Expense, error)
}

type Repository struct {
	Users    Users
	Expenses Expenses
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Expenses: NewExpenseRepository(db),
	}
}

// InitDB opens the SQLite store and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return dbinit.InitDB(path)
}
