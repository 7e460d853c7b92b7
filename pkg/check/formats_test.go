package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

func formatsTable(t *testing.T) *dataset.Table {
	t.Helper()
	return newTable(t,
		dataset.Schema{
			{Name: "zip", Type: dataset.TypeString},
			{Name: "born", Type: dataset.TypeString},
			{Name: "email", Type: dataset.TypeString},
		},
		[]any{"28001", "31-12-1990", "a@example.com"},
		[]any{"2800", "01-01-2000", "b@example.com"},
		[]any{nil, nil, "not-an-email"},
	)
}

func TestFormats(t *testing.T) {
	tests := []struct {
		name  string
		rules []FormatRule
		want  []string
	}{
		{
			name:  "regex must match whole value",
			rules: []FormatRule{{Column: "zip", Format: `\d{4}`}},
			want:  []string{"zip"},
		},
		{
			name:  "regex matches",
			rules: []FormatRule{{Column: "zip", Format: `\d{4,5}`}},
			want:  []string{},
		},
		{
			name:  "date layout",
			rules: []FormatRule{{Column: "born", Format: "date:02-01-2006"}},
			want:  []string{},
		},
		{
			name:  "wrong date layout",
			rules: []FormatRule{{Column: "born", Format: "date:2006-01-02"}},
			want:  []string{"born"},
		},
		{
			name: "rule order kept",
			rules: []FormatRule{
				{Column: "email", Format: `[^@]+@[^@]+`},
				{Column: "zip", Format: `\d{5}`},
			},
			want: []string{"email", "zip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newChecker()
			got, err := c.Formats(formatsTable(t), tt.rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats_TemporalColumns(t *testing.T) {
	tbl := newTable(t,
		dataset.Schema{
			{Name: "ts", Type: dataset.TypeTimestamp},
			{Name: "day", Type: dataset.TypeDate},
		},
		[]any{time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		[]any{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	)

	tests := []struct {
		name  string
		rules []FormatRule
		want  []string
	}{
		{
			name:  "midnight timestamp keeps its time",
			rules: []FormatRule{{Column: "ts", Format: "date:2006-01-02 15:04:05"}},
			want:  []string{},
		},
		{
			name:  "timestamp is not a bare date",
			rules: []FormatRule{{Column: "ts", Format: "date:2006-01-02"}},
			want:  []string{"ts"},
		},
		{
			name:  "date column renders as date",
			rules: []FormatRule{{Column: "day", Format: `\d{4}-\d{2}-\d{2}`}},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newChecker()
			got, err := c.Formats(tbl, tt.rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if len(tt.want) == 0 {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestFormats_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		rule FormatRule
	}{
		{"unknown column", FormatRule{Column: "ghost", Format: ".*"}},
		{"invalid regex", FormatRule{Column: "zip", Format: "("}},
		{"empty format", FormatRule{Column: "zip"}},
		{"empty date layout", FormatRule{Column: "zip", Format: DateFormatPrefix}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newChecker()
			_, err := c.Formats(formatsTable(t), []FormatRule{tt.rule})
			require.Error(t, err)
			assert.True(t, dqerrors.IsConfig(err))
		})
	}
}
