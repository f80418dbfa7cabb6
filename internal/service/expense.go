package service

import (
	"context"
	"errors"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

// Domain errors for expense flows.
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotOwner        = errors.New("caller does not own this expense")
)

// ExpenseService implements CRUD with the ownership protocol on mutations.
type ExpenseService struct {
	expenses repository.Expenses
	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewExpenseService(expenses repository.Expenses) *ExpenseService {
	return &ExpenseService{expenses: expenses, now: time.Now}
}

// authorizeOwner is the reusable guard behind every mutation: it must run
// strictly after the existence check so that "doesn't exist" and "exists but
// not yours" stay distinguishable.
func authorizeOwner(e *models.Expense, callerID int) error {
	if e.UserID != callerID {
		return ErrNotOwner
	}
	return nil
}

// Create persists a new expense owned by ownerID. A zero input date is
// stamped with server time.
func (s *ExpenseService) Create(ctx context.Context, ownerID int, in ExpenseInput) (models.Expense, error) {
	return s.expenses.Create(ctx, models.Expense{
		Title:    in.Title,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     s.dateOrNow(in.Date),
		UserID:   ownerID,
	})
}

// Update overwrites the mutable fields of an expense the caller owns.
func (s *ExpenseService) Update(ctx context.Context, callerID, expenseID int, in ExpenseInput) (models.Expense, error) {
	e, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return models.Expense{}, err
	}
	if e == nil {
		return models.Expense{}, ErrExpenseNotFound
	}
	if err := authorizeOwner(e, callerID); err != nil {
		return models.Expense{}, err
	}
	return s.expenses.Update(ctx, expenseID, in.Title, in.Amount, in.Category, s.dateOrNow(in.Date))
}

// Delete removes an expense the caller owns.
func (s *ExpenseService) Delete(ctx context.Context, callerID, expenseID int) error {
	e, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}
	if err := authorizeOwner(e, callerID); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, expenseID)
}

// ListByOwner returns the owner's expenses. The owner id always comes from
// the resolved token, never from the client.
func (s *ExpenseService) ListByOwner(ctx context.Context, ownerID int) ([]models.Expense, error) {
	return s.expenses.ListByUser(ctx, ownerID)
}

func (s *ExpenseService) dateOrNow(d time.Time) time.Time {
	if d.IsZero() {
		return s.now().UTC()
	}
	return d.UTC()
}
