package report

import (
	"errors"
	"slices"

	"github.com/idudko/login-checker/internal/model"
)

// ErrUnknownMetric is returned by Series for a metric it cannot extract.
var ErrUnknownMetric = errors.New("unknown metric")

// Metrics lists the metrics Series accepts.
func Metrics() []string {
	return []string{
		model.MetricAddTime,
		model.MetricLookupTime,
		model.MetricAddComparisonsAvg,
		model.MetricLookupComparisonsAvg,
	}
}

// Series groups the run's results by algorithm, in order of first
// appearance, with one point per size. Algorithms in exclude are skipped;
// excluding the linear baseline gives the zoomed view.
func Series(run *model.Run, metric string, exclude ...string) ([]model.Series, error) {
	if !slices.Contains(Metrics(), metric) {
		return nil, ErrUnknownMetric
	}

	var out []model.Series
	index := make(map[string]int)
	for _, r := range run.Results {
		if slices.Contains(exclude, r.Algorithm) {
			continue
		}
		i, ok := index[r.Algorithm]
		if !ok {
			i = len(out)
			index[r.Algorithm] = i
			out = append(out, model.Series{Algorithm: r.Algorithm, Metric: metric})
		}
		v, _ := r.Value(metric)
		out[i].Points = append(out[i].Points, model.Point{Size: r.NumLogins, Value: v})
	}

	for i := range out {
		slices.SortStableFunc(out[i].Points, func(a, b model.Point) int { return a.Size - b.Size })
	}
	return out, nil
}
