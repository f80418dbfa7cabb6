package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense_tracker/internal/models"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

var _ Expenses = (*ExpenseRepository)(nil)

// SQLite TIMESTAMP format; sub-second precision is not kept.
const sqliteTimestamp = "2006-01-02 15:04:05"

const (
	insertExpenseSQL = `INSERT INTO expenses (title, amount, category, date, user_id) VALUES (?, ?, ?, ?, ?)`
	selectExpenseSQL = `SELECT id, title, amount, category, date, user_id FROM expenses WHERE id = ?`
	updateExpenseSQL = `UPDATE expenses SET title = ?, amount = ?, category = ?, date = ? WHERE id = ?`
	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ?`
	listByUserSQL    = `SELECT id, title, amount, category, date, user_id FROM expenses WHERE user_id = ? ORDER BY id ASC`
	listInRangeSQL   = `SELECT id, title, amount, category, date, user_id FROM expenses WHERE date >= ? AND date <= ? ORDER BY date ASC`
)

// Create inserts a new expense row owned by e.UserID and returns the stored row.
func (r *ExpenseRepository) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.Date = e.Date.UTC()
	res, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.Title, e.Amount, e.Category, e.Date.Format(sqliteTimestamp), e.UserID)
	if err != nil {
		return models.Expense{}, fmt.Errorf("insert expense %q: %w", e.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Expense{}, fmt.Errorf("get last insert id for expense %q: %w", e.Title, err)
	}
	e.ID = int(lastID)
	e.Date = e.Date.Truncate(time.Second)
	return e, nil
}

// GetByID fetches one expense. Returns (nil, nil) if not found.
func (r *ExpenseRepository) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	var e models.Expense
	err := r.db.QueryRowContext(ctx, selectExpenseSQL, id).
		Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select expense %d: %w", id, err)
	}
	e.Date = e.Date.UTC()
	return &e, nil
}

// Update overwrites the mutable fields of an existing row and returns the
// result. Ownership must already have been verified by the caller.
func (r *ExpenseRepository) Update(ctx context.Context, id int, title string, amount float64, category string, date time.Time) (models.Expense, error) {
	date = date.UTC()
	if _, err := r.db.ExecContext(ctx, updateExpenseSQL,
		title, amount, category, date.Format(sqliteTimestamp), id); err != nil {
		return models.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Expense{}, err
	}
	if e == nil {
		return models.Expense{}, fmt.Errorf("expense %d vanished after update", id)
	}
	return *e, nil
}

// Delete removes a row. No ownership check at this layer.
func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteExpenseSQL, id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

// ListByUser returns all expenses owned by userID, oldest row first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses for user %d: %w", userID, err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ListInDateRange returns expenses across all users with date in [from, to],
// ascending by date. Feeds the weekly chart.
func (r *ExpenseRepository) ListInDateRange(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, listInRangeSQL,
		from.UTC().Format(sqliteTimestamp), to.UTC().Format(sqliteTimestamp))
	if err != nil {
		return nil, fmt.Errorf("list expenses in range: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	out := make([]models.Expense, 0, 16)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.UserID); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.Date = e.Date.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return out, nil
}
