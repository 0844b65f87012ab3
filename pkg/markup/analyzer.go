package markup

import (
	"bytes"
	"path"
	"strings"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/arthur-debert/resgather/pkg/types"
	"golang.org/x/net/html"
)

// appScheme addresses files relative to the resource root
const appScheme = "app://"

var scriptTypes = map[string]bool{
	"":                         true,
	"module":                   true,
	"text/javascript":          true,
	"text/ecmascript":          true,
	"text/x-javascript":        true,
	"application/javascript":   true,
	"application/ecmascript":   true,
	"application/x-javascript": true,
}

// Analyzer implements types.MarkupAnalyzer over an FS
type Analyzer struct {
	fs types.FS
}

// NewAnalyzer creates an analyzer reading files through fs
func NewAnalyzer(fs types.FS) *Analyzer {
	return &Analyzer{fs: fs}
}

// Analyze returns the root-relative paths of the scripts loaded by the
// markup file at filePath, in document order and without duplicates.
func (a *Analyzer) Analyze(filePath, relDir string) ([]string, error) {
	logger := logging.GetLogger("markup")

	data, err := a.fs.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read markup file").
			WithDetail("path", filePath)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMarkupAnalyze, "failed to parse markup file").
			WithDetail("path", filePath)
	}

	var scripts []string
	seen := make(map[string]bool)

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			if src, ok := scriptSource(n); ok {
				if rel, ok := ResolveSource(src, relDir); ok && !seen[rel] {
					seen[rel] = true
					scripts = append(scripts, rel)
				} else if !ok {
					logger.Trace().
						Str("file", filePath).
						Str("src", src).
						Msg("Skipping unresolvable script source")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	logger.Debug().
		Str("file", filePath).
		Int("scripts", len(scripts)).
		Msg("Analyzed markup")

	return scripts, nil
}

// scriptSource returns the src of a JavaScript <script> element
func scriptSource(n *html.Node) (string, bool) {
	var src, typ string
	hasSrc := false
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "src":
			src = strings.TrimSpace(attr.Val)
			hasSrc = true
		case "type":
			typ = attr.Val
		}
	}
	if !hasSrc || src == "" {
		return "", false
	}
	return src, IsScriptType(typ)
}

// IsScriptType reports whether a <script type> value denotes JavaScript.
// Parameters such as "; charset=utf-8" are ignored.
func IsScriptType(typ string) bool {
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = typ[:i]
	}
	return scriptTypes[strings.ToLower(strings.TrimSpace(typ))]
}

// ResolveSource turns a script src into a path relative to the resource
// root. relDir is the markup file's directory relative to the root. The
// second result is false for remote, inline or out-of-root sources.
func ResolveSource(src, relDir string) (string, bool) {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	if src == "" || strings.HasPrefix(src, "//") {
		return "", false
	}

	var p string
	switch {
	case strings.HasPrefix(strings.ToLower(src), appScheme):
		p = src[len(appScheme):]
	case hasScheme(src):
		return "", false
	case strings.HasPrefix(src, "/"):
		p = src
	default:
		p = path.Join(relDir, src)
		if p == ".." || strings.HasPrefix(p, "../") {
			return "", false
		}
	}

	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "", false
	}
	return p, true
}

// hasScheme reports whether s starts with a URL scheme such as "https:"
func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}
