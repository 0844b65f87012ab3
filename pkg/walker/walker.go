package walker

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/resgather/pkg/classifier"
	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/filesystem"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/arthur-debert/resgather/pkg/markup"
	"github.com/arthur-debert/resgather/pkg/patterns"
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options are fixed when the Walker is created
type Options struct {
	// AppIcon is the icon base filename, e.g. "appicon.png"
	AppIcon string

	// AppThinning routes qualifying images to the image asset bucket
	AppThinning bool

	// IgnoreDirs prunes directories whose name matches, at any depth
	IgnoreDirs *regexp.Regexp

	// IgnoreFiles skips files whose name matches, at any depth
	IgnoreFiles *regexp.Regexp

	// FanOut limits concurrent entries per directory; <= 0 is unlimited
	FanOut int

	// FS defaults to the OS filesystem
	FS types.FS

	// Analyzer defaults to markup.NewAnalyzer over FS
	Analyzer types.MarkupAnalyzer
}

// WalkOptions describe a single walk
type WalkOptions struct {
	// Root is the directory to walk
	Root string

	// Dest is the destination root used to build each record's DestPath.
	// Empty leaves DestPath unset.
	Dest string

	// Ignore skips entries of Root whose name matches. It does not apply
	// below Root.
	Ignore *regexp.Regexp

	// Prefix replaces the root in relative paths: "<prefix>/<path>"
	Prefix string
}

// Walker walks resource trees. It is safe for concurrent use.
type Walker struct {
	fs          types.FS
	classifier  *classifier.Classifier
	ignoreDirs  *regexp.Regexp
	ignoreFiles *regexp.Regexp
	fanOut      int
	logger      zerolog.Logger
}

// New creates a Walker
func New(opts Options) *Walker {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = markup.NewAnalyzer(fsys)
	}

	return &Walker{
		fs: fsys,
		classifier: classifier.New(classifier.Options{
			Patterns:    patterns.NewSet(opts.AppIcon),
			AppThinning: opts.AppThinning,
			Analyzer:    analyzer,
		}),
		ignoreDirs:  opts.IgnoreDirs,
		ignoreFiles: opts.IgnoreFiles,
		fanOut:      opts.FanOut,
		logger:      logging.GetLogger("walker"),
	}
}

// Classifier returns the classifier the walker delegates to
func (w *Walker) Classifier() *classifier.Classifier {
	return w.classifier
}

// Walk walks root and returns the merged Result. A missing root yields an
// empty Result.
func (w *Walker) Walk(ctx context.Context, root, dest string, ignore *regexp.Regexp) (*result.Result, error) {
	return w.WalkWithOptions(ctx, WalkOptions{Root: root, Dest: dest, Ignore: ignore})
}

// walkCall holds what stays fixed across the recursion of one walk
type walkCall struct {
	root   string
	dest   string
	prefix string
}

// WalkWithOptions is Walk with a relative path prefix
func (w *Walker) WalkWithOptions(ctx context.Context, opts WalkOptions) (*result.Result, error) {
	if opts.Root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "walk root is required")
	}

	call, err := newWalkCall(opts)
	if err != nil {
		return nil, err
	}

	logger := w.logger.With().Str("root", call.root).Logger()
	done := logging.LogOperationStart(logger, "walk")
	defer done()

	info, err := w.fs.Stat(call.root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("Root does not exist, nothing to walk")
			return result.New(), nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to stat walk root").
			WithDetail("path", call.root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "walk root is not a directory: %s", call.root).
			WithDetail("path", call.root)
	}

	res, err := w.walkDir(ctx, call, call.root, "", true, opts.Ignore)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("files", res.Len()).
		Int("referencedScripts", len(res.ScriptsReferencedByMarkup)).
		Msg("Walk complete")
	return res, nil
}

func newWalkCall(opts WalkOptions) (*walkCall, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to resolve walk root").
			WithDetail("path", opts.Root)
	}

	dest := opts.Dest
	if dest != "" {
		if dest, err = filepath.Abs(dest); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to resolve destination").
				WithDetail("path", opts.Dest)
		}
	}

	return &walkCall{
		root:   root,
		dest:   dest,
		prefix: strings.Trim(filepath.ToSlash(opts.Prefix), "/"),
	}, nil
}

// relPath is the bucket key for a path below the root
func (c *walkCall) relPath(below string) string {
	if c.prefix == "" {
		return below
	}
	return c.prefix + "/" + below
}

func (c *walkCall) destPath(below string) string {
	if c.dest == "" {
		return ""
	}
	return filepath.Join(c.dest, filepath.FromSlash(below))
}

// outcome is what one directory entry contributes
type outcome struct {
	relPath string
	cls     *classifier.Classification
	sub     *result.Result
}

// walkDir processes every entry of dir concurrently and assembles the
// directory's Result in entry order once all of them finish. below is
// dir's slash-separated path under the root, "" for the root itself.
func (w *Walker) walkDir(ctx context.Context, call *walkCall, dir, below string, rootLevel bool, ignore *regexp.Regexp) (*result.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirRead, "failed to read directory").
			WithDetail("path", dir)
	}

	outcomes := make([]outcome, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	if w.fanOut > 0 {
		g.SetLimit(w.fanOut)
	}

	for i, entry := range entries {
		name := entry.Name()
		if ignore != nil && ignore.MatchString(name) {
			w.logger.Trace().Str("dir", dir).Str("entry", name).Msg("Entry ignored for this walk")
			continue
		}

		i, entry := i, entry
		g.Go(func() error {
			out, err := w.visit(gctx, call, dir, below, rootLevel, entry)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := result.New()
	files, dirs := 0, 0
	for _, out := range outcomes {
		switch {
		case out.cls != nil:
			res.Add(out.cls.Bucket, out.relPath, out.cls.Record)
			res.AddReferencedScripts(out.cls.Scripts...)
			files++
		case out.sub != nil:
			res.Merge(out.sub)
			dirs++
		}
	}

	w.logger.Debug().
		Str("dir", dir).
		Int("entries", len(entries)).
		Int("files", files).
		Int("subdirs", dirs).
		Msg("Directory walked")

	return res, nil
}

// visit handles a single directory entry
func (w *Walker) visit(ctx context.Context, call *walkCall, dir, below string, rootLevel bool, entry fs.DirEntry) (outcome, error) {
	if err := ctx.Err(); err != nil {
		return outcome{}, err
	}

	name := entry.Name()
	full := filepath.Join(dir, name)
	childBelow := name
	if below != "" {
		childBelow = path.Join(below, name)
	}

	mode := entry.Type()
	if mode&fs.ModeSymlink != 0 {
		info, err := w.fs.Stat(full)
		if err != nil {
			return outcome{}, errors.Wrap(err, errors.ErrSymlinkResolve, "failed to resolve symlink").
				WithDetail("path", full)
		}
		mode = info.Mode().Type()
	}

	switch {
	case mode.IsDir():
		if w.ignoreDirs != nil && w.ignoreDirs.MatchString(name) {
			w.logger.Trace().Str("dir", full).Msg("Directory pruned")
			return outcome{}, nil
		}
		sub, err := w.walkDir(ctx, call, full, childBelow, false, nil)
		if err != nil {
			return outcome{}, err
		}
		return outcome{sub: sub}, nil

	case mode.IsRegular():
		if w.ignoreFiles != nil && w.ignoreFiles.MatchString(name) {
			w.logger.Trace().Str("file", full).Msg("File ignored")
			return outcome{}, nil
		}
		rel := call.relPath(childBelow)
		cls, err := w.classifier.Classify(classifier.NewCandidate(
			name, rel, full, call.destPath(childBelow), rootLevel,
		))
		if err != nil {
			return outcome{}, err
		}
		return outcome{relPath: rel, cls: &cls}, nil

	default:
		w.logger.Trace().
			Str("path", full).
			Str("mode", mode.String()).
			Msg("Skipping entry that is neither file nor directory")
		return outcome{}, nil
	}
}
