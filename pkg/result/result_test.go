package result

import (
	"testing"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, ext, src string) types.FileRecord {
	return types.FileRecord{Name: name, Extension: ext, SourcePath: "/src/" + src, DestPath: "/dest/" + src}
}

func TestNew_IsEmpty(t *testing.T) {
	r := New()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())
	for _, b := range types.AllBuckets {
		assert.NotNil(t, r.Bucket(b), b)
		assert.Empty(t, r.Bucket(b), b)
	}
	assert.Empty(t, r.ReferencedScripts())
}

func TestAddAndLocate(t *testing.T) {
	r := New()
	r.Add(types.BucketCSSFiles, "style/app.css", rec("app", "css", "style/app.css"))

	b, got, ok := r.Locate("style/app.css")
	require.True(t, ok)
	assert.Equal(t, types.BucketCSSFiles, b)
	assert.Equal(t, "app", got.Name)

	_, _, ok = r.Locate("missing.css")
	assert.False(t, ok)

	assert.Equal(t, 1, r.Counts()[types.BucketCSSFiles])
	assert.False(t, r.IsEmpty())

	assert.Panics(t, func() { r.Add(types.Bucket("bogus"), "x", types.FileRecord{}) })
	assert.Nil(t, r.Bucket(types.Bucket("bogus")))
}

func TestMerge_DisjointIsCommutative(t *testing.T) {
	a := New()
	a.Add(types.BucketJSFiles, "app.js", rec("app", "js", "app.js"))
	a.AddReferencedScripts("app.js")

	b := New()
	b.Add(types.BucketResourcesToCopy, "data/readme.txt", rec("readme", "txt", "data/readme.txt"))
	b.Add(types.BucketJSFiles, "lib/util.js", rec("util", "js", "lib/util.js"))
	b.AddReferencedScripts("lib/util.js")

	ab := Merge(a, b)
	ba := Merge(b, a)

	if diff := cmp.Diff(ab, ba); diff != "" {
		t.Errorf("Merge(a, b) != Merge(b, a) (-ab +ba):\n%s", diff)
	}
	assert.Equal(t, 3, ab.Len())
	assert.Equal(t, []string{"app.js", "lib/util.js"}, ab.ReferencedScripts())

	// Sources are left untouched
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestMerge_CollisionLaterWins(t *testing.T) {
	base := New()
	base.Add(types.BucketResourcesToCopy, "images/bg.png", rec("bg", "png", "base/images/bg.png"))

	overlay := New()
	overlay.Add(types.BucketResourcesToCopy, "images/bg.png", rec("bg", "png", "overlay/images/bg.png"))

	got := Merge(base, overlay)
	assert.Equal(t, "/src/overlay/images/bg.png", got.ResourcesToCopy["images/bg.png"].SourcePath)

	got = Merge(overlay, base)
	assert.Equal(t, "/src/base/images/bg.png", got.ResourcesToCopy["images/bg.png"].SourcePath)
}

func TestMerge_IntoReceiver(t *testing.T) {
	r := New()
	child := New()
	child.Add(types.BucketLaunchLogos, "LaunchLogo.png", rec("LaunchLogo", "png", "LaunchLogo.png"))

	out := r.Merge(nil, child, r)
	assert.Same(t, r, out)
	assert.Len(t, r.LaunchLogos, 1)
}

func TestReclassifyMarkupReferencedScripts(t *testing.T) {
	r := New()
	foo := rec("foo", "js", "foo.js")
	r.Add(types.BucketJSFiles, "foo.js", foo)
	r.Add(types.BucketJSFiles, "bar.js", rec("bar", "js", "bar.js"))
	r.Add(types.BucketResourcesToCopy, "index.html", rec("index", "html", "index.html"))
	r.AddReferencedScripts("foo.js", "never/gathered.js")

	moved := r.ReclassifyMarkupReferencedScripts()

	assert.Equal(t, []string{"foo.js"}, moved)
	assert.NotContains(t, r.JSFiles, "foo.js")
	assert.Equal(t, foo, r.ResourcesToCopy["foo.js"])
	assert.Contains(t, r.JSFiles, "bar.js")
	assert.Contains(t, r.ResourcesToCopy, "index.html")
	assert.NotContains(t, r.ResourcesToCopy, "never/gathered.js")
	assert.True(t, r.IsReferencedByMarkup("never/gathered.js"))
	assert.NoError(t, r.Validate())

	// Running it again is a no-op
	assert.Empty(t, r.ReclassifyMarkupReferencedScripts())
}

func TestValidate_ReportsDuplicates(t *testing.T) {
	r := New()
	r.Add(types.BucketJSFiles, "dup.js", rec("dup", "js", "dup.js"))
	r.Add(types.BucketResourcesToCopy, "dup.js", rec("dup", "js", "dup.js"))

	err := r.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
	assert.Contains(t, err.Error(), "dup.js (jsFiles, resourcesToCopy)")
}

func TestSortedPaths(t *testing.T) {
	r := New()
	for _, p := range []string{"c.js", "a.js", "b/z.js"} {
		r.Add(types.BucketJSFiles, p, types.FileRecord{})
	}
	assert.Equal(t, []string{"a.js", "b/z.js", "c.js"}, r.SortedPaths(types.BucketJSFiles))
}
