package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
)

// RenderStandingsChart produces a PNG bar chart of team points.
func (s *LeaderboardService) RenderStandingsChart(ctx context.Context, tripID uuid.UUID) ([]byte, error) {
	board, err := s.Standings(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(board.Standings) == 0 {
		return renderNoDataPlaceholder()
	}

	bars := make([]chart.Value, len(board.Standings))
	for i, standing := range board.Standings {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.1f)", standing.Name, standing.Points),
			Value: standing.Points,
		}
	}

	graph := chart.BarChart{
		Title:    "Trip Standings",
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render standings chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No completed matches yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
