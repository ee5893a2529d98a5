package series

// ScatterPoint is one bubble of a scatter chart
type ScatterPoint struct {
	ID    string   `json:"id"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Size  float64  `json:"size,omitempty"`
	Color *float64 `json:"color,omitempty"`
}

// ScatterSeries is a named set of scatter points
type ScatterSeries struct {
	Name   string         `json:"name"`
	XLabel string         `json:"x_label"`
	YLabel string         `json:"y_label"`
	Points []ScatterPoint `json:"points"`
}

// XValues returns the x coordinates in order
func (s ScatterSeries) XValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.X
	}
	return out
}

// YValues returns the y coordinates in order
func (s ScatterSeries) YValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}
