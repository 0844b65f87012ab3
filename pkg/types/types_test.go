package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecord_FileName(t *testing.T) {
	tests := []struct {
		name   string
		record FileRecord
		want   string
	}{
		{"with extension", FileRecord{Name: "app", Extension: "js"}, "app.js"},
		{"without extension", FileRecord{Name: "LICENSE"}, "LICENSE"},
		{"dotted name", FileRecord{Name: "jquery.min", Extension: "js"}, "jquery.min.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.FileName())
			assert.Equal(t, tt.record.Extension != "", tt.record.HasExtension())
		})
	}
}

func TestBuckets(t *testing.T) {
	assert.Len(t, AllBuckets, 7)

	seen := make(map[Bucket]bool)
	for _, b := range AllBuckets {
		assert.True(t, b.Valid(), b)
		assert.False(t, seen[b], "duplicate bucket %s", b)
		seen[b] = true
		assert.NotContains(t, b.Description(), "unknown")
	}

	b, err := ParseBucket("jsFiles")
	require.NoError(t, err)
	assert.Equal(t, BucketJSFiles, b)

	_, err = ParseBucket("nope")
	assert.Error(t, err)
	assert.False(t, Bucket("nope").Valid())
}

func TestMarkupAnalyzerFunc(t *testing.T) {
	var gotPath, gotDir string
	var analyzer MarkupAnalyzer = MarkupAnalyzerFunc(func(filePath, relDir string) ([]string, error) {
		gotPath, gotDir = filePath, relDir
		return []string{"app.js"}, nil
	})

	scripts, err := analyzer.Analyze("/src/index.html", "web")
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js"}, scripts)
	assert.Equal(t, "/src/index.html", gotPath)
	assert.Equal(t, "web", gotDir)
}
