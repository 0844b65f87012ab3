package classifier

import (
	"path"
	"strings"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/arthur-debert/resgather/pkg/patterns"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/rs/zerolog"
)

// Candidate is one file presented for classification
type Candidate struct {
	// FileName is the entry name including its extension
	FileName string

	// Name and Extension are FileName split on its last dot; Extension is
	// lowercased and empty when there is no dot
	Name      string
	Extension string

	// RelPath is the slash-separated key used across all buckets
	RelPath string

	SourcePath string
	DestPath   string

	// RootLevel is set for direct children of the originally requested root
	RootLevel bool
}

// NewCandidate splits fileName into name and extension
func NewCandidate(fileName, relPath, sourcePath, destPath string, rootLevel bool) Candidate {
	name, ext := SplitExtension(fileName)
	return Candidate{
		FileName:   fileName,
		Name:       name,
		Extension:  ext,
		RelPath:    relPath,
		SourcePath: sourcePath,
		DestPath:   destPath,
		RootLevel:  rootLevel,
	}
}

// SplitExtension splits on the last dot. The extension is lowercased and
// empty when the name has no dot.
func SplitExtension(fileName string) (name, ext string) {
	i := strings.LastIndexByte(fileName, '.')
	if i < 0 {
		return fileName, ""
	}
	return fileName[:i], strings.ToLower(fileName[i+1:])
}

// Classification is the outcome of classifying one Candidate
type Classification struct {
	Bucket types.Bucket
	Record types.FileRecord

	// Rule is the name of the rule that matched
	Rule string

	// Scripts holds the script paths the markup analyzer reported
	Scripts []string
}

// Options configure a Classifier
type Options struct {
	// Patterns holds the precompiled matchers. Nil builds the defaults.
	Patterns *patterns.Set

	// AppThinning routes qualifying images to the image asset bucket
	AppThinning bool

	// Analyzer is consulted for HTML files. Nil skips markup analysis.
	Analyzer types.MarkupAnalyzer
}

// Classifier evaluates the ordered rule list. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	patterns *patterns.Set
	thinning bool
	analyzer types.MarkupAnalyzer
	rules    []Rule
	logger   zerolog.Logger
}

// New creates a Classifier
func New(opts Options) *Classifier {
	set := opts.Patterns
	if set == nil {
		set = patterns.NewSet("")
	}
	cl := &Classifier{
		patterns: set,
		thinning: opts.AppThinning,
		analyzer: opts.Analyzer,
		logger:   logging.GetLogger("classifier"),
	}
	cl.rules = cl.buildRules()
	return cl
}

// Rules returns the rule list in evaluation order
func (cl *Classifier) Rules() []Rule {
	return cl.rules
}

// Classify assigns c to exactly one bucket. The only error comes from the
// markup analyzer failing to read an HTML file.
func (cl *Classifier) Classify(c Candidate) (Classification, error) {
	rec := types.FileRecord{
		Name:       c.Name,
		Extension:  c.Extension,
		SourcePath: c.SourcePath,
		DestPath:   c.DestPath,
	}

	for _, rule := range cl.rules {
		// Captures from a failed predicate must not leak into the record
		attempt := rec
		if !rule.Match(&c, &attempt) {
			continue
		}

		out := Classification{
			Bucket: rule.Bucket,
			Record: attempt,
			Rule:   rule.Name,
		}

		if rule.ScanMarkup && cl.analyzer != nil {
			scripts, err := cl.analyzer.Analyze(c.SourcePath, relDir(c.RelPath))
			if err != nil {
				return Classification{}, errors.Wrap(err, errors.ErrMarkupAnalyze, "failed to analyze markup").
					WithDetail("path", c.SourcePath)
			}
			out.Scripts = scripts
			cl.logger.Trace().
				Str("file", c.RelPath).
				Strs("scripts", scripts).
				Msg("Markup references scripts")
		}

		cl.logger.Trace().
			Str("file", c.RelPath).
			Str("rule", rule.Name).
			Str("bucket", rule.Bucket.String()).
			Bool("rootLevel", c.RootLevel).
			Msg("File classified")

		return out, nil
	}

	// Unreachable: the last rule matches everything
	return Classification{Bucket: types.BucketResourcesToCopy, Record: rec, Rule: RuleResource}, nil
}

// relDir returns the directory part of a relative path, "" at the root
func relDir(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
