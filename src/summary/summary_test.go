package summary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"benchmark-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() models.MRunSummary {
	return models.MRunSummary{
		Counters: models.MCountersSnapshot{
			TotalExecTimeNew:  1.5,
			TotalExecTimeOld:  3,
			Calls:             4,
			ClientDisconnects: 1,
		},
		StartedAt: "202401010000",
		EndedAt:   "202401010130",
	}
}

func TestFormat(t *testing.T) {
	want := "\n========\n" +
		"tot. exec time on new db: 1.5\n" +
		"tot. exec time on old db: 3.0\n" +
		"nr calls: 4\n" +
		"logging started at 202401010000 and ended at 202401010130\n" +
		"===\n\n"
	assert.Equal(t, want, Format(sampleSummary()))
}

func TestAppendToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testruns.txt")
	require.NoError(t, AppendToFile(path, sampleSummary()))
	require.NoError(t, AppendToFile(path, sampleSummary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "nr calls: 4\n"))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, sampleSummary())
	assert.Contains(t, buf.String(), "nr exceptions: 1\n")
	assert.Contains(t, buf.String(), "tot. exec time on old db: 3.0\n")
}
