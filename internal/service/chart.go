package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"expense_tracker/internal/repository"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 800
	chartHeight = 500
	weeklyRange = 7 * 24 * time.Hour
)

// ChartService renders the trailing-week spending line chart. The window
// deliberately spans all users (documented behavior of the graph endpoint).
type ChartService struct {
	expenses repository.Expenses
}

func NewChartService(expenses repository.Expenses) *ChartService {
	return &ChartService{expenses: expenses}
}

// WeeklyPNG plots each expense of the last 7 days as one point (x labeled
// with the day-of-week abbreviation, y = amount), connected in ascending
// date order, and returns the PNG bytes.
func (s *ChartService) WeeklyPNG(ctx context.Context, now time.Time) ([]byte, error) {
	rows, err := s.expenses.ListInDateRange(ctx, now.Add(-weeklyRange), now)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		// go-chart refuses an empty series; the endpoint still owes an image.
		return blankPNG(chartWidth, chartHeight)
	}

	xs := make([]float64, 0, len(rows)+1)
	ys := make([]float64, 0, len(rows)+1)
	ticks := make([]chart.Tick, 0, len(rows)+1)
	maxAmount := 0.0
	for i, e := range rows {
		xs = append(xs, float64(i))
		ys = append(ys, e.Amount)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: e.Date.Format("Mon")})
		if e.Amount > maxAmount {
			maxAmount = e.Amount
		}
	}
	if len(rows) == 1 {
		// A single point renders as nothing; double it so the marker shows.
		xs = append(xs, 1)
		ys = append(ys, ys[0])
		ticks = append(ticks, chart.Tick{Value: 1, Label: ticks[0].Label})
	}

	graph := chart.Chart{
		Title:  "Weekly Expenses",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:  "Day",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: xs[len(xs)-1]},
		},
		YAxis: chart.YAxis{
			Name: "Amount",
			// Fixed non-zero span keeps flat series renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: maxAmount*1.1 + 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					DotColor:    drawing.ColorBlue,
					DotWidth:    4,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render weekly chart: %w", err)
	}
	return buf.Bytes(), nil
}

func blankPNG(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode blank chart: %w", err)
	}
	return buf.Bytes(), nil
}
