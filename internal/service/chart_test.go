package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"expense_tracker/internal/models"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func weeklyRows(now time.Time, amounts ...float64) []models.Expense {
	out := make([]models.Expense, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, models.Expense{
			ID:     i + 1,
			Title:  "row",
			Amount: a,
			Date:   now.Add(-time.Duration(len(amounts)-i) * time.Hour),
			UserID: i + 1, // chart is deliberately cross-user
		})
	}
	return out
}

func TestChartService_WeeklyPNG(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		amounts []float64
	}{
		{name: "no expenses", amounts: nil},
		{name: "single expense", amounts: []float64{12.5}},
		{name: "several expenses", amounts: []float64{12.5, 3, 40, 7.25}},
		{name: "flat series", amounts: []float64{5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockExpenseRepo{
				ListInDateRangeFn: func(from, to time.Time) ([]models.Expense, error) {
					if want := now.Add(-weeklyRange); !from.Equal(want) {
						t.Errorf("expected from=%v, got %v", want, from)
					}
					if !to.Equal(now) {
						t.Errorf("expected to=%v, got %v", now, to)
					}
					return weeklyRows(now, tt.amounts...), nil
				},
			}
			svc := NewChartService(repo)

			img, err := svc.WeeklyPNG(context.Background(), now)
			if err != nil {
				t.Fatalf("WeeklyPNG returned error: %v", err)
			}
			if !bytes.HasPrefix(img, pngSignature) {
				t.Fatalf("output is not a PNG (first bytes: %x)", img[:min(len(img), 8)])
			}
		})
	}
}

func TestChartService_WeeklyPNG_StoreError(t *testing.T) {
	repo := &mockExpenseRepo{
		ListInDateRangeFn: func(from, to time.Time) ([]models.Expense, error) {
			return nil, errors.New("db unavailable")
		},
	}
	svc := NewChartService(repo)

	if _, err := svc.WeeklyPNG(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when the store fails")
	}
}
