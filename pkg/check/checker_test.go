package check

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
)

// newTable builds an in-memory dataset for tests.
func newTable(t *testing.T, schema dataset.Schema, rows ...[]any) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTable(schema, rows)
	require.NoError(t, err)
	return tbl
}

// newChecker returns a checker writing diagnostics into the returned buffer.
func newChecker() (*Checker, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WithOutput(&buf)), &buf
}

func TestUnique(t *testing.T) {
	got := unique([]string{"a", "b", "a", "c", "b"})
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Empty(t, unique(nil))
}

func TestOutcomeOf(t *testing.T) {
	require.Equal(t, "pass", outcomeOf(true, nil))
	require.Equal(t, "fail", outcomeOf(false, nil))
	require.Equal(t, "error", outcomeOf(true, errors.New("boom")))
}
