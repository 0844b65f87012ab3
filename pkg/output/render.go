package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Render writes res to w in the given format
func Render(w io.Writer, res *result.Result, format string, noColor bool) error {
	format = strings.ToLower(format)
	if format == FormatText {
		tr, err := NewTextRenderer(w, noColor)
		if err != nil {
			return err
		}
		return tr.Render(res)
	}

	doc := NewDocument(res)
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatXML:
		err = writeXML(w, doc, bucketNames())
	default:
		return errors.Newf(errors.ErrOutputFormat, "unknown output format %q", format).
			WithDetail("valid", Formats)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrOutputFormat, "failed to write %s output", format)
	}
	return nil
}

func bucketNames() []string {
	names := make([]string, len(types.AllBuckets))
	for i, b := range types.AllBuckets {
		names[i] = b.String()
	}
	return names
}
