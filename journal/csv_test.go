package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	condPath := filepath.Join(dir, "conditions.csv")
	sizePath := filepath.Join(dir, "sizings.csv")

	j, err := NewCSV(condPath, sizePath)
	require.NoError(t, err)

	at := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordCondition(ConditionRecord{
		ID: "01J0", Time: at, Symbol: "EURUSD",
		Condition: "trending", Trend: "up", Volatility: "normal",
	}))
	require.NoError(t, j.RecordSizing(SizingRecord{
		ID: "01J1", Time: at, Symbol: "EURUSD",
		EntryPrice: 1.105, StopLoss: 1.1, RiskPercent: 1, Lots: 0.2, Policy: "risk",
	}))
	require.NoError(t, j.Close())

	cf, err := os.Open(condPath)
	require.NoError(t, err)
	defer cf.Close()
	rows, err := csv.NewReader(cf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "time", "symbol", "condition", "trend", "volatility"}, rows[0])
	assert.Equal(t, []string{"01J0", "2024-06-05T12:00:00Z", "EURUSD", "trending", "up", "normal"}, rows[1])

	sf, err := os.Open(sizePath)
	require.NoError(t, err)
	defer sf.Close()
	rows, err = csv.NewReader(sf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0.2", rows[1][6])
	assert.Equal(t, "risk", rows[1][7])
}
