package result

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/types"
)

// Files maps relative path to record
type Files map[string]types.FileRecord

// Result is the aggregate of a traversal or subtree
type Result struct {
	AppIcons        Files `json:"appIcons" yaml:"appIcons" toml:"appIcons"`
	CSSFiles        Files `json:"cssFiles" yaml:"cssFiles" toml:"cssFiles"`
	JSFiles         Files `json:"jsFiles" yaml:"jsFiles" toml:"jsFiles"`
	LaunchImages    Files `json:"launchImages" yaml:"launchImages" toml:"launchImages"`
	LaunchLogos     Files `json:"launchLogos" yaml:"launchLogos" toml:"launchLogos"`
	ImageAssets     Files `json:"imageAssets" yaml:"imageAssets" toml:"imageAssets"`
	ResourcesToCopy Files `json:"resourcesToCopy" yaml:"resourcesToCopy" toml:"resourcesToCopy"`

	// ScriptsReferencedByMarkup is independent of which bucket holds each path
	ScriptsReferencedByMarkup map[string]struct{} `json:"-" yaml:"-" toml:"-"`
}

// New returns an empty Result with every bucket allocated
func New() *Result {
	return &Result{
		AppIcons:                  make(Files),
		CSSFiles:                  make(Files),
		JSFiles:                   make(Files),
		LaunchImages:              make(Files),
		LaunchLogos:               make(Files),
		ImageAssets:               make(Files),
		ResourcesToCopy:           make(Files),
		ScriptsReferencedByMarkup: make(map[string]struct{}),
	}
}

// Bucket returns the map backing b, or nil for an unknown bucket
func (r *Result) Bucket(b types.Bucket) Files {
	switch b {
	case types.BucketAppIcons:
		return r.AppIcons
	case types.BucketCSSFiles:
		return r.CSSFiles
	case types.BucketJSFiles:
		return r.JSFiles
	case types.BucketLaunchImages:
		return r.LaunchImages
	case types.BucketLaunchLogos:
		return r.LaunchLogos
	case types.BucketImageAssets:
		return r.ImageAssets
	case types.BucketResourcesToCopy:
		return r.ResourcesToCopy
	}
	return nil
}

// Add records rec under relPath in bucket b
func (r *Result) Add(b types.Bucket, relPath string, rec types.FileRecord) {
	files := r.Bucket(b)
	if files == nil {
		panic(fmt.Sprintf("result: unknown bucket %q", string(b)))
	}
	files[relPath] = rec
}

// AddReferencedScripts marks paths as referenced directly by markup
func (r *Result) AddReferencedScripts(paths ...string) {
	for _, p := range paths {
		r.ScriptsReferencedByMarkup[p] = struct{}{}
	}
}

// IsReferencedByMarkup reports whether relPath was found in a markup file
func (r *Result) IsReferencedByMarkup(relPath string) bool {
	_, ok := r.ScriptsReferencedByMarkup[relPath]
	return ok
}

// ReferencedScripts returns the markup-referenced script paths, sorted
func (r *Result) ReferencedScripts() []string {
	paths := make([]string, 0, len(r.ScriptsReferencedByMarkup))
	for p := range r.ScriptsReferencedByMarkup {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Locate returns the first bucket (in AllBuckets order) holding relPath
func (r *Result) Locate(relPath string) (types.Bucket, types.FileRecord, bool) {
	for _, b := range types.AllBuckets {
		if rec, ok := r.Bucket(b)[relPath]; ok {
			return b, rec, true
		}
	}
	return "", types.FileRecord{}, false
}

// Len returns the number of classified files across all buckets
func (r *Result) Len() int {
	n := 0
	for _, b := range types.AllBuckets {
		n += len(r.Bucket(b))
	}
	return n
}

// IsEmpty reports whether no file is classified and no script is referenced
func (r *Result) IsEmpty() bool {
	return r.Len() == 0 && len(r.ScriptsReferencedByMarkup) == 0
}

// Counts returns the number of entries per bucket
func (r *Result) Counts() map[types.Bucket]int {
	counts := make(map[types.Bucket]int, len(types.AllBuckets))
	for _, b := range types.AllBuckets {
		counts[b] = len(r.Bucket(b))
	}
	return counts
}

// SortedPaths returns the relative paths in bucket b in lexical order
func (r *Result) SortedPaths(b types.Bucket) []string {
	files := r.Bucket(b)
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Merge unions every bucket of each source into r, in argument order.
// On a colliding relative path the later source wins. Nil sources are
// skipped. Merge returns r.
func (r *Result) Merge(sources ...*Result) *Result {
	for _, src := range sources {
		if src == nil || src == r {
			continue
		}
		for _, b := range types.AllBuckets {
			from := src.Bucket(b)
			if len(from) == 0 {
				continue
			}
			to := r.Bucket(b)
			for p, rec := range from {
				to[p] = rec
			}
		}
		for p := range src.ScriptsReferencedByMarkup {
			r.ScriptsReferencedByMarkup[p] = struct{}{}
		}
	}
	return r
}

// Merge returns a fresh Result holding the union of results, later
// arguments overwriting earlier ones on colliding paths
func Merge(results ...*Result) *Result {
	return New().Merge(results...)
}

// ReclassifyMarkupReferencedScripts moves every markup-referenced script
// out of JSFiles into ResourcesToCopy, carrying the record over unchanged.
// Referenced paths not present in JSFiles are left alone. It returns the
// moved paths, sorted.
func (r *Result) ReclassifyMarkupReferencedScripts() []string {
	var moved []string
	for p := range r.ScriptsReferencedByMarkup {
		rec, ok := r.JSFiles[p]
		if !ok {
			continue
		}
		delete(r.JSFiles, p)
		r.ResourcesToCopy[p] = rec
		moved = append(moved, p)
	}
	sort.Strings(moved)
	return moved
}

// Validate reports relative paths held by more than one bucket
func (r *Result) Validate() error {
	owners := make(map[string][]string)
	for _, b := range types.AllBuckets {
		for p := range r.Bucket(b) {
			owners[p] = append(owners[p], b.String())
		}
	}

	var conflicts []string
	for p, bs := range owners {
		if len(bs) > 1 {
			conflicts = append(conflicts, fmt.Sprintf("%s (%s)", p, strings.Join(bs, ", ")))
		}
	}
	if len(conflicts) == 0 {
		return nil
	}
	sort.Strings(conflicts)
	return errors.Newf(errors.ErrInternal, "paths classified into more than one bucket: %s", strings.Join(conflicts, "; ")).
		WithDetail("conflicts", conflicts)
}
