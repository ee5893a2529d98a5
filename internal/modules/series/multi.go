package series

import (
	"fmt"

	"github.com/aristath/ecoledger/internal/domain"
)

// MultiSeries is several series plotted against shared x-axis labels
type MultiSeries struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// ZipMultiSeries aligns several series on a shared label axis.
//
// Every series must carry exactly the label set of the first one, with no
// duplicate labels. The first series fixes the label order and the others
// are aligned to it by label, never by position. Any divergence returns a
// *domain.ShapeMismatchError.
func ZipMultiSeries(names []string, list []Series) (MultiSeries, error) {
	if len(names) != len(list) {
		return MultiSeries{}, &domain.ShapeMismatchError{
			Reason: fmt.Sprintf("%d names for %d series", len(names), len(list)),
		}
	}
	if len(list) == 0 {
		return MultiSeries{Labels: []string{}, Series: []Series{}}, nil
	}

	labels := list[0].Labels()
	position := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := position[l]; dup {
			return MultiSeries{}, &domain.ShapeMismatchError{
				Series: names[0],
				Reason: fmt.Sprintf("duplicate label %q", l),
			}
		}
		position[l] = i
	}

	out := MultiSeries{
		Labels: labels,
		Series: make([]Series, len(list)),
	}

	for si, s := range list {
		if s.Len() != len(labels) {
			return MultiSeries{}, &domain.ShapeMismatchError{
				Series: names[si],
				Reason: fmt.Sprintf("has %d labels, expected %d", s.Len(), len(labels)),
			}
		}

		aligned := make([]Point, len(labels))
		seen := make([]bool, len(labels))
		for _, p := range s.Points {
			idx, ok := position[p.Label]
			if !ok {
				return MultiSeries{}, &domain.ShapeMismatchError{
					Series: names[si],
					Reason: fmt.Sprintf("unexpected label %q", p.Label),
				}
			}
			if seen[idx] {
				return MultiSeries{}, &domain.ShapeMismatchError{
					Series: names[si],
					Reason: fmt.Sprintf("duplicate label %q", p.Label),
				}
			}
			seen[idx] = true
			aligned[idx] = p
		}

		out.Series[si] = Series{Name: names[si], Points: aligned}
	}

	return out, nil
}
