package domain

import (
	"math/rand"
	"testing"
)

func TestWorstStatusOrdering(t *testing.T) {
	cases := []struct {
		name    string
		results []ConstraintResult
		want    Status
	}{
		{"empty", nil, StatusPass},
		{"all pass", []ConstraintResult{{Status: StatusPass}, {Status: StatusPass}}, StatusPass},
		{"warn beats pass", []ConstraintResult{{Status: StatusPass}, {Status: StatusWarn}}, StatusWarn},
		{"fail beats warn", []ConstraintResult{{Status: StatusWarn}, {Status: StatusFail}, {Status: StatusPass}}, StatusFail},
	}
	for _, tc := range cases {
		if got := WorstStatus(tc.results); got != tc.want {
			t.Errorf("%s: WorstStatus = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestWorstStatusOrderInsensitive(t *testing.T) {
	results := []ConstraintResult{
		{Status: StatusPass}, {Status: StatusWarn}, {Status: StatusFail},
		{Status: StatusPass}, {Status: StatusWarn},
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		rng.Shuffle(len(results), func(a, b int) { results[a], results[b] = results[b], results[a] })
		if got := WorstStatus(results); got != StatusFail {
			t.Fatalf("shuffle %d: WorstStatus = %s, want fail", i, got)
		}
	}
}

func TestReportMergeAndWorst(t *testing.T) {
	var report Report
	report.Merge(Report{})
	if len(report.Evaluations) != 0 {
		t.Fatalf("merging an empty report should be a no-op")
	}
	report.Merge(Report{Evaluations: []Evaluation{{PlanID: "a", Status: StatusPass}}})
	report.Merge(Report{Evaluations: []Evaluation{{PlanID: "b", Status: StatusWarn}}})
	if len(report.Evaluations) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(report.Evaluations))
	}
	if got := report.Worst(); got != StatusWarn {
		t.Fatalf("Worst = %s, want warn", got)
	}
}
