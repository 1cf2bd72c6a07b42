package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/sitelog/internal/tally"
)

func TestPurge_RequiresAll(t *testing.T) {
	cmd := &PurgeCommand{Force: true, globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestPurge_Force(t *testing.T) {
	store := testStore(t)
	saveTotals(t, store, "2024-03-06", tally.Site{Label: "youtube", Seconds: 10})
	saveTotals(t, store, "2024-03-07", tally.Site{Label: "github", Seconds: 20})

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	cmd.setStore(store)

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Purged all data.")

	days, err := store.ListDays(context.Background())
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestPurge_JSON(t *testing.T) {
	store := testStore(t)
	saveTotals(t, store, "2024-03-07", tally.Site{Label: "github", Seconds: 20})

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{JSON: true}}
	cmd.setStore(store)

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["purged"])
}
