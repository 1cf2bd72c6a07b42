package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/sitelog/internal/classify"
)

func TestClassify_Human(t *testing.T) {
	cmd := &ClassifyCommand{globals: &GlobalFlags{}}
	cmd.Args.Titles = []string{"Funny cats - YouTube", "Rust docs - Mozilla Firefox", "!!!"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithClassifier(classify.Default()))
	})

	assert.Contains(t, out, "youtube")
	assert.Contains(t, out, "Mozilla Firefox")
	assert.Contains(t, out, `"!!!"`)
	assert.Contains(t, out, string(classify.SourceKnown))
	assert.Contains(t, out, string(classify.SourceSeparator))
}

func TestClassify_JSON(t *testing.T) {
	cmd := &ClassifyCommand{globals: &GlobalFlags{JSON: true}}
	cmd.Args.Titles = []string{"Search - Google", ""}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithClassifier(classify.Default()))
	})

	var got []classifyJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "google", got[0].Site)
	assert.Equal(t, string(classify.SourceKnown), got[0].Source)
	assert.Equal(t, classify.Unknown, got[1].Site)
	assert.Equal(t, string(classify.SourceUnknown), got[1].Source)
}

func TestClassify_NoTitles(t *testing.T) {
	cmd := &ClassifyCommand{globals: &GlobalFlags{}}
	assert.Error(t, cmd.executeWithClassifier(classify.Default()))
}
