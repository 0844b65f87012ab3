package output

import (
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/types"
)

// Document is the serializable view of a Result
type Document struct {
	Summary Summary `json:"summary" yaml:"summary" toml:"summary"`

	// Buckets maps bucket name to its files; every bucket is present
	Buckets map[string]result.Files `json:"buckets" yaml:"buckets" toml:"buckets"`

	// ScriptsReferencedByMarkup is sorted
	ScriptsReferencedByMarkup []string `json:"scriptsReferencedByMarkup" yaml:"scriptsReferencedByMarkup" toml:"scriptsReferencedByMarkup"`
}

// Summary holds per-bucket counts
type Summary struct {
	Files   int            `json:"files" yaml:"files" toml:"files"`
	Buckets map[string]int `json:"buckets" yaml:"buckets" toml:"buckets"`
}

// NewDocument builds the serializable view of res
func NewDocument(res *result.Result) *Document {
	doc := &Document{
		Summary: Summary{
			Files:   res.Len(),
			Buckets: make(map[string]int, len(types.AllBuckets)),
		},
		Buckets:                   make(map[string]result.Files, len(types.AllBuckets)),
		ScriptsReferencedByMarkup: res.ReferencedScripts(),
	}
	for _, b := range types.AllBuckets {
		files := res.Bucket(b)
		if files == nil {
			files = result.Files{}
		}
		doc.Buckets[b.String()] = files
		doc.Summary.Buckets[b.String()] = len(files)
	}
	return doc
}
