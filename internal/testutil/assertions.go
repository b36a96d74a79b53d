package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertEvaluatedBefore checks that first precedes second in the evaluation
// order of a successful configuration pass.
func AssertEvaluatedBefore(t *testing.T, result *HarnessResult, first, second string) {
	t.Helper()
	require.NotNil(t, result.Report, "configuration pass did not produce a report")

	pos := make(map[string]int, len(result.Report.Order))
	for i, name := range result.Report.Order {
		pos[name] = i
	}
	a, okA := pos[first]
	b, okB := pos[second]
	require.True(t, okA, "project %q was not evaluated", first)
	require.True(t, okB, "project %q was not evaluated", second)
	require.Less(t, a, b, "expected %q to be evaluated before %q, order was %v", first, second, result.Report.Order)
}

// AssertLogged checks that the captured log output contains substr.
func AssertLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.Contains(t, result.LogOutput, substr, "expected log output to mention %q", substr)
}
