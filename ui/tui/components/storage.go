package components

import (
	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

// StorageWidget charts overlay storage usage over the poll window.
type StorageWidget struct {
	Chart   linechart.Model
	History []float64
	Width   int
	Height  int
}

func NewStorageWidget(width, height int) *StorageWidget {
	// width, height, minX, maxX, minY, maxY
	lc := linechart.New(width, height, 0, 30, 0, 100)
	return &StorageWidget{
		Chart:   lc,
		History: make([]float64, 0, 31),
		Width:   width,
		Height:  height,
	}
}

// SetHistory replaces the sample window; the state owns the real history.
func (w *StorageWidget) SetHistory(samples []float64) {
	w.History = samples
}

func (w *StorageWidget) Resize(width, height int) {
	w.Width = width
	w.Height = height
	w.Chart.Resize(width, height)
}

func (w *StorageWidget) View() string {
	w.Chart.Clear()
	for i := 0; i < len(w.History)-1; i++ {
		y1 := w.History[i]
		y2 := w.History[i+1]
		w.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: y1},
			canvas.Float64Point{X: float64(i + 1), Y: y2},
		)
	}
	w.Chart.DrawXYAxisAndLabel()

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Usage History"),
		w.Chart.View(),
	)
}
