package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPopcornXML(t *testing.T) {
	path := writeTempFile(t, "chat.xml", `<?xml version="1.0"?>
<popcorn>
  <chattimeline in="0.0" name="a" message="hi"/>
  <chattimeline in="5.0" name="b" message="yo"/>
</popcorn>`)

	timeline, err := Load(path)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	assert.Equal(t, 0.0, timeline[0].Time)
	assert.Equal(t, "a", timeline[0].Author)
	assert.Equal(t, "hi", timeline[0].Text)
	assert.Equal(t, 5.0, timeline[1].Time)
	assert.Equal(t, "b", timeline[1].Author)
	assert.Equal(t, "yo", timeline[1].Text)
}

func TestLoadSortsOutOfOrderEntries(t *testing.T) {
	path := writeTempFile(t, "chat.xml", `<popcorn>
  <chattimeline in="9.5" name="late" message="z"/>
  <chattimeline in="1.0" name="early" message="a"/>
  <chattimeline in="4.0" name="middle" message="m"/>
</popcorn>`)

	timeline, err := Load(path)
	require.NoError(t, err)
	require.Len(t, timeline, 3)

	assert.Equal(t, "early", timeline[0].Author)
	assert.Equal(t, "middle", timeline[1].Author)
	assert.Equal(t, "late", timeline[2].Author)
}

func TestLoadMissingAttributesDefaultToZero(t *testing.T) {
	path := writeTempFile(t, "chat.xml", `<popcorn>
  <chattimeline name="a"/>
  <chattimeline in="2.0"/>
</popcorn>`)

	timeline, err := Load(path)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	assert.Equal(t, 0.0, timeline[0].Time)
	assert.Equal(t, "a", timeline[0].Author)
	assert.Empty(t, timeline[0].Text)
	assert.Equal(t, 2.0, timeline[1].Time)
	assert.Empty(t, timeline[1].Author)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		content string
	}{
		{
			name: "missing_file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.xml")
			},
		},
		{
			name: "malformed_xml",
			path: func(t *testing.T) string {
				return writeTempFile(t, "bad.xml", `<popcorn><chattimeline in="1.0"`)
			},
		},
		{
			name: "malformed_time_attribute",
			path: func(t *testing.T) string {
				return writeTempFile(t, "bad.xml",
					`<popcorn><chattimeline in="soon" name="a" message="m"/></popcorn>`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeline, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, timeline)

			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestLoadJSONLines(t *testing.T) {
	path := writeTempFile(t, "chat.jsonl", `{"in":0.0,"name":"a","message":"hi"}
{"in":5.0,"name":"b","message":"yo"}

not json at all
{"in":2.5,"name":"c","message":"mid"}`)

	timeline, err := Load(path)
	require.NoError(t, err)
	// Invalid lines are skipped, valid ones survive and get sorted
	require.Len(t, timeline, 3)
	assert.Equal(t, "a", timeline[0].Author)
	assert.Equal(t, "c", timeline[1].Author)
	assert.Equal(t, "b", timeline[2].Author)
}

func TestLoadJSONLinesMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jsonl"))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "nope.jsonl")
}
