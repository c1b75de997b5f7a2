package model

import "time"

const (
	// MetricAddTime is the wall time spent adding all logins, in seconds.
	MetricAddTime = "add_time"
	// MetricLookupTime is the wall time spent on all lookups, in seconds.
	MetricLookupTime = "lookup_time"
	// MetricAddComparisonsAvg is the average number of comparisons per add.
	MetricAddComparisonsAvg = "add_comparisons_avg"
	// MetricLookupComparisonsAvg is the average number of comparisons per lookup.
	MetricLookupComparisonsAvg = "lookup_comparisons_avg"
)

// Result holds the measurements of one checker at one input size.
//
// Example:
//
//	model.Result{
//		Algorithm:         "HashTable",
//		NumLogins:         1000,
//		NumLookups:        1000,
//		AddTime:           312 * time.Microsecond,
//		AddComparisons:    1000,
//		LookupTime:        140 * time.Microsecond,
//		LookupComparisons: 1000,
//		LookupsFound:      500,
//	}
type Result struct {
	// Algorithm is the checker name, e.g. "SortedArrayBinarySearch".
	Algorithm string `json:"algorithm"`

	// NumLogins is the number of logins actually added. It is lower than
	// the requested size when the dataset is smaller.
	NumLogins int `json:"num_logins"`

	// NumLookups is the number of Exists calls performed.
	NumLookups int `json:"num_lookups"`

	AddTime        time.Duration `json:"add_time_ns"`
	AddComparisons int64         `json:"add_comparisons"`

	LookupTime        time.Duration `json:"lookup_time_ns"`
	LookupComparisons int64         `json:"lookup_comparisons"`

	// LookupsFound counts lookups that reported the login as present.
	LookupsFound int `json:"lookups_found"`
}

// AvgAddComparisons returns comparisons per added login, or 0 for an empty run.
func (r Result) AvgAddComparisons() float64 {
	if r.NumLogins == 0 {
		return 0
	}
	return float64(r.AddComparisons) / float64(r.NumLogins)
}

// AvgLookupComparisons returns comparisons per lookup, or 0 for an empty run.
func (r Result) AvgLookupComparisons() float64 {
	if r.NumLookups == 0 {
		return 0
	}
	return float64(r.LookupComparisons) / float64(r.NumLookups)
}

// Value returns the result's value for one of the Metric* names.
func (r Result) Value(metric string) (float64, bool) {
	switch metric {
	case MetricAddTime:
		return r.AddTime.Seconds(), true
	case MetricLookupTime:
		return r.LookupTime.Seconds(), true
	case MetricAddComparisonsAvg:
		return r.AvgAddComparisons(), true
	case MetricLookupComparisonsAvg:
		return r.AvgLookupComparisons(), true
	default:
		return 0, false
	}
}

// Host describes the machine a run was measured on.
type Host struct {
	OS          string `json:"os,omitempty"`
	Platform    string `json:"platform,omitempty"`
	CPUModel    string `json:"cpu_model,omitempty"`
	LogicalCPUs int    `json:"logical_cpus,omitempty"`
	TotalMemory uint64 `json:"total_memory,omitempty"`
}

// Run is one complete benchmark execution over all sizes and algorithms.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Dataset    string    `json:"dataset,omitempty"`
	Host       Host      `json:"host"`
	Results    []Result  `json:"results"`
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	Dataset    string    `json:"dataset,omitempty"`
	NumResults int       `json:"num_results"`
}

// Summary builds the listing view of the run.
func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		Dataset:    r.Dataset,
		NumResults: len(r.Results),
	}
}

// Point is one (size, value) sample of a series.
type Point struct {
	Size  int     `json:"size"`
	Value float64 `json:"value"`
}

// Series is the data behind one line of a comparison plot.
type Series struct {
	Algorithm string  `json:"algorithm"`
	Metric    string  `json:"metric"`
	Points    []Point `json:"points"`
}
