package series

import (
	"errors"
	"testing"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(name string, labels []string, values []float64) Series {
	points := make([]Point, len(labels))
	for i := range labels {
		points[i] = Point{Label: labels[i], Value: values[i]}
	}
	return Series{Name: name, Points: points}
}

func TestZipMultiSeries_Aligned(t *testing.T) {
	labels := []string{"1", "2", "3", "4", "5"}
	credit := seriesOf("c", labels, []float64{70, 71, 72, 73, 74})
	esg := seriesOf("e", labels, []float64{50, 51, 52, 53, 54})

	multi, err := ZipMultiSeries([]string{"Credit Score", "ESG Score"}, []Series{credit, esg})
	require.NoError(t, err)

	assert.Equal(t, labels, multi.Labels)
	require.Len(t, multi.Series, 2)
	assert.Equal(t, "Credit Score", multi.Series[0].Name)
	assert.Equal(t, "ESG Score", multi.Series[1].Name)
	for i, l := range multi.Labels {
		assert.Equal(t, l, multi.Series[0].Points[i].Label)
		assert.Equal(t, l, multi.Series[1].Points[i].Label)
	}
}

func TestZipMultiSeries_AlignsByLabelNotIndex(t *testing.T) {
	a := seriesOf("a", []string{"Jan", "Feb", "Mar", "Apr", "May"}, []float64{1, 2, 3, 4, 5})
	b := seriesOf("b", []string{"May", "Apr", "Mar", "Feb", "Jan"}, []float64{50, 40, 30, 20, 10})

	multi, err := ZipMultiSeries([]string{"a", "b"}, []Series{a, b})
	require.NoError(t, err)

	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May"}, multi.Labels)
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, multi.Series[1].Values())
}

func TestZipMultiSeries_Mismatch(t *testing.T) {
	base := seriesOf("a", []string{"x", "y", "z"}, []float64{1, 2, 3})

	tests := []struct {
		name   string
		names  []string
		list   []Series
		series string
	}{
		{
			name:   "different label sets",
			names:  []string{"a", "b"},
			list:   []Series{base, seriesOf("b", []string{"x", "y", "w"}, []float64{1, 2, 3})},
			series: "b",
		},
		{
			name:   "different lengths",
			names:  []string{"a", "b"},
			list:   []Series{base, seriesOf("b", []string{"x", "y"}, []float64{1, 2})},
			series: "b",
		},
		{
			name:   "duplicate label in later series",
			names:  []string{"a", "b"},
			list:   []Series{base, seriesOf("b", []string{"x", "x", "y"}, []float64{1, 2, 3})},
			series: "b",
		},
		{
			name:   "duplicate label in first series",
			names:  []string{"a", "b"},
			list:   []Series{seriesOf("a", []string{"x", "x"}, []float64{1, 2}), seriesOf("b", []string{"x", "x"}, []float64{1, 2})},
			series: "a",
		},
		{
			name:  "names and series count differ",
			names: []string{"a"},
			list:  []Series{base, base},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ZipMultiSeries(tt.names, tt.list)
			require.Error(t, err)

			var shapeErr *domain.ShapeMismatchError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.series, shapeErr.Series)
		})
	}
}

func TestZipMultiSeries_Empty(t *testing.T) {
	multi, err := ZipMultiSeries(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, multi.Labels)
	assert.Empty(t, multi.Series)
}
