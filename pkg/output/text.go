package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// TextRenderer writes the terminal view of a Result
type TextRenderer struct {
	writer  io.Writer
	noColor bool
	styles  StyleSet
}

// NewTextRenderer creates a renderer writing to w. With noColor all
// styling is dropped; otherwise the colour profile is detected from w.
func NewTextRenderer(w io.Writer, noColor bool) (*TextRenderer, error) {
	log := logging.GetLogger("output")

	renderer := lipgloss.NewRenderer(w)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	log.Debug().
		Bool("noColor", noColor).
		Str("colorProfile", fmt.Sprintf("%v", renderer.ColorProfile())).
		Msg("Text renderer created")

	cfg, err := ParseStyles(defaultStyles)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load styles")
	}

	return &TextRenderer{
		writer:  w,
		noColor: noColor,
		styles:  cfg.Build(renderer),
	}, nil
}

// Render writes res
func (t *TextRenderer) Render(res *result.Result) error {
	var sb strings.Builder

	referenced := len(res.ScriptsReferencedByMarkup)
	sb.WriteString(t.styles.Get("Heading").Render(
		fmt.Sprintf("Resources: %d files, %d referenced by markup", res.Len(), referenced)))
	sb.WriteString("\n")

	if res.IsEmpty() && referenced == 0 {
		sb.WriteString(t.styles.Get("Empty").Render("No resources found"))
		sb.WriteString("\n")
		return t.write(sb.String())
	}

	table, err := t.summaryTable(res)
	if err != nil {
		return err
	}
	sb.WriteString(table)
	sb.WriteString("\n")

	for _, b := range types.AllBuckets {
		paths := res.SortedPaths(b)
		if len(paths) == 0 {
			continue
		}
		sb.WriteString(t.styles.Get("Bucket").Render(fmt.Sprintf("%s (%d)", b, len(paths))))
		sb.WriteString("\n")
		files := res.Bucket(b)
		for _, p := range paths {
			sb.WriteString(t.styles.Get("Path").Render(p))
			if detail := recordDetail(files[p]); detail != "" {
				sb.WriteString(" ")
				sb.WriteString(t.styles.Get("Detail").Render(detail))
			}
			if res.IsReferencedByMarkup(p) {
				sb.WriteString(" ")
				sb.WriteString(t.styles.Get("Marker").Render("(markup)"))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if referenced > 0 {
		sb.WriteString(t.styles.Get("Bucket").Render(fmt.Sprintf("scriptsReferencedByMarkup (%d)", referenced)))
		sb.WriteString("\n")
		for _, p := range res.ReferencedScripts() {
			sb.WriteString(t.styles.Get("Path").Render(p))
			sb.WriteString("\n")
		}
	}

	return t.write(sb.String())
}

func (t *TextRenderer) summaryTable(res *result.Result) (string, error) {
	data := pterm.TableData{{"Bucket", "Files", "Contents"}}
	for _, b := range types.AllBuckets {
		data = append(data, []string{b.String(), strconv.Itoa(len(res.Bucket(b))), b.Description()})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render summary table")
	}
	if t.noColor {
		table = pterm.RemoveColorFromString(table)
	}
	return table, nil
}

func (t *TextRenderer) write(s string) error {
	if _, err := io.WriteString(t.writer, s); err != nil {
		return errors.Wrap(err, errors.ErrOutputFormat, "failed to write output")
	}
	return nil
}

// recordDetail lists the pattern captures of rec
func recordDetail(rec types.FileRecord) string {
	var parts []string
	if rec.Tag != "" {
		parts = append(parts, "tag="+rec.Tag)
	}
	if rec.Scale != "" {
		parts = append(parts, "scale="+rec.Scale)
	}
	if rec.Device != "" {
		parts = append(parts, "device="+rec.Device)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}
