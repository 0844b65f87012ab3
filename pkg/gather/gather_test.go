package gather

import (
	"context"
	"io/fs"
	"regexp"
	"testing"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/testutil"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/arthur-debert/resgather/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func overlayFS(t *testing.T) *testutil.MemoryFS {
	t.Helper()
	return testutil.NewMemoryFS().AddTree(t, "/proj", testutil.Tree{
		"Resources/app.js":              "shared",
		"Resources/index.html":          `<script src="ui.js"></script>`,
		"Resources/ui.js":               "shared ui",
		"Resources/images/logo.png":     "shared",
		"Resources/ios/images/logo.png": "ios",
		"Resources/android/only.txt":    "android",
		"Resources/iphone/extra.txt":    "iphone",
		"platform/iphone/app.js":        "platform",
	})
}

func overlaySources() []Source {
	platforms := regexp.MustCompile(`^(android|ios|iphone|windows)$`)
	return []Source{
		{Path: "/proj/Resources", Dest: "/build", Ignore: platforms},
		{Path: "/proj/Resources/ios", Dest: "/build"},
		{Path: "/proj/Resources/iphone", Dest: "/build"},
		{Path: "/proj/platform/iphone", Dest: "/build"},
	}
}

func TestRun_Overlay(t *testing.T) {
	w := walker.New(walker.Options{FS: overlayFS(t)})

	report, err := Run(context.Background(), w, overlaySources(), Options{})
	require.NoError(t, err)
	res := report.Result

	// Later sources win on colliding paths
	require.Contains(t, res.ResourcesToCopy, "images/logo.png")
	assert.Equal(t, "/proj/Resources/ios/images/logo.png", res.ResourcesToCopy["images/logo.png"].SourcePath)
	require.Contains(t, res.JSFiles, "app.js")
	assert.Equal(t, "/proj/platform/iphone/app.js", res.JSFiles["app.js"].SourcePath)

	// Ignored platform directories contribute only through their own source
	assert.NotContains(t, res.ResourcesToCopy, "only.txt")
	assert.NotContains(t, res.ResourcesToCopy, "android/only.txt")
	assert.Contains(t, res.ResourcesToCopy, "extra.txt")

	// Markup-referenced scripts are reclassified
	assert.Equal(t, []string{"ui.js"}, report.Reclassified)
	assert.NotContains(t, res.JSFiles, "ui.js")
	assert.Contains(t, res.ResourcesToCopy, "ui.js")
	assert.NoError(t, res.Validate())
}

func TestRun_SkipReclassify(t *testing.T) {
	w := walker.New(walker.Options{FS: overlayFS(t)})

	report, err := Run(context.Background(), w, overlaySources(), Options{SkipReclassify: true})
	require.NoError(t, err)
	assert.Empty(t, report.Reclassified)
	assert.Contains(t, report.Result.JSFiles, "ui.js")
	assert.True(t, report.Result.IsReferencedByMarkup("ui.js"))
}

func TestRun_MissingSource(t *testing.T) {
	w := walker.New(walker.Options{FS: overlayFS(t)})

	report, err := Run(context.Background(), w, []Source{
		{Path: "/proj/Resources/windows"},
		{Path: "/proj/platform/iphone"},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Result.Len())
}

func TestRun_NoSources(t *testing.T) {
	report, err := Run(context.Background(), walker.New(walker.Options{FS: testutil.NewMemoryFS()}), nil, Options{})
	require.NoError(t, err)
	assert.True(t, report.Result.IsEmpty())
}

func TestRun_SourceWithoutPath(t *testing.T) {
	_, err := Run(context.Background(), walker.New(walker.Options{FS: testutil.NewMemoryFS()}), []Source{{Dest: "/build"}}, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRun_FailingSourceAborts(t *testing.T) {
	mfs := overlayFS(t)
	mfs.WithError("/proj/platform/iphone", fs.ErrPermission)
	w := walker.New(walker.Options{FS: mfs})

	report, err := Run(context.Background(), w, overlaySources(), Options{})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

// orderedWalker returns canned results regardless of timing
type orderedWalker map[string]*result.Result

func (o orderedWalker) WalkWithOptions(_ context.Context, opts walker.WalkOptions) (*result.Result, error) {
	return o[opts.Root], nil
}

func TestRun_MergeOrderFollowsSources(t *testing.T) {
	first := result.New()
	first.Add(types.BucketResourcesToCopy, "a.txt", types.FileRecord{Name: "a", SourcePath: "/first/a.txt"})
	second := result.New()
	second.Add(types.BucketResourcesToCopy, "a.txt", types.FileRecord{Name: "a", SourcePath: "/second/a.txt"})
	w := orderedWalker{"/first": first, "/second": second}

	report, err := Run(context.Background(), w, []Source{{Path: "/first"}, {Path: "/second"}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "/second/a.txt", report.Result.ResourcesToCopy["a.txt"].SourcePath)

	report, err = Run(context.Background(), w, []Source{{Path: "/second"}, {Path: "/first"}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "/first/a.txt", report.Result.ResourcesToCopy["a.txt"].SourcePath)
}
