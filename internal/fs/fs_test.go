package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fedragon/go-unitysweep/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingLogAppend(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		lines    []string
		expected string
	}{
		{
			name:     "creates the file and terminates each line with a space and CRLF",
			lines:    []string{"proj1/revision/AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA/unityAssets.json"},
			expected: "proj1/revision/AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA/unityAssets.json \r\n",
		},
		{
			name:     "appends to an existing file without truncating it",
			existing: "old \r\n",
			lines:    []string{"a", "b"},
			expected: "old \r\na \r\nb \r\n",
		},
	}

	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "missing.txt")
		if c.existing != "" {
			require.NoError(t, os.WriteFile(path, []byte(c.existing), 0o644))
		}

		l, err := NewMissingLog(path)
		require.NoError(t, err)
		assert.Equal(t, path, l.Location())

		for _, line := range c.lines {
			require.NoError(t, l.Append(line), c.name)
		}

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, c.expected, string(content), c.name)
	}
}

func TestMissingLogAppendFailsOnUnwritablePath(t *testing.T) {
	l, err := NewMissingLog(filepath.Join(t.TempDir(), "no-such-dir", "missing.txt"))
	require.NoError(t, err)

	assert.Error(t, l.Append("a"))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	err := WriteReport(path, Report{
		DryRun:     true,
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
		MissingLog: "/tmp/missing.txt",
		Counts:     metrics.Tally{Databases: 2, Found: 3, WouldDelete: 3, Missing: 1},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(content, &got))
	assert.True(t, got.DryRun)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, "/tmp/missing.txt", got.MissingLog)
	assert.EqualValues(t, 3, got.Counts.WouldDelete)
	assert.EqualValues(t, 1, got.Counts.Missing)
}
