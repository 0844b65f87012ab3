package classifier

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/resgather/pkg/types"
)

// Rule names
const (
	RuleScript      = "script"
	RuleStylesheet  = "stylesheet"
	RuleAppIcon     = "app-icon"
	RuleLaunchImage = "launch-image"
	RuleLaunchLogo  = "launch-logo"
	RuleImageAsset  = "image-asset"
	RuleMarkup      = "markup"
	RuleResource    = "resource"
)

// Rule is one (predicate, action) pair of the ordered rule list
type Rule struct {
	Name        string
	Description string

	// Bucket receives the file when Match holds
	Bucket types.Bucket

	// Match reports whether the rule applies. It may fill captures on rec.
	Match func(c *Candidate, rec *types.FileRecord) bool

	// ScanMarkup runs the markup analyzer on the file before it is recorded
	ScanMarkup bool
}

func hasExt(c *Candidate, exts ...string) bool {
	for _, ext := range exts {
		if c.Extension == ext {
			return true
		}
	}
	return false
}

// buildRules returns the rule list in evaluation order
func (cl *Classifier) buildRules() []Rule {
	return []Rule{
		{
			Name:        RuleScript,
			Description: "`.js` files",
			Bucket:      types.BucketJSFiles,
			Match: func(c *Candidate, _ *types.FileRecord) bool {
				return hasExt(c, "js")
			},
		},
		{
			Name:        RuleStylesheet,
			Description: "`.css` files",
			Bucket:      types.BucketCSSFiles,
			Match: func(c *Candidate, _ *types.FileRecord) bool {
				return hasExt(c, "css")
			},
		},
		{
			Name:        RuleAppIcon,
			Description: fmt.Sprintf("root-level `.png` matching the app icon `%s`; the suffix becomes the tag", cl.patterns.AppIconName()),
			Bucket:      types.BucketAppIcons,
			Match: func(c *Candidate, rec *types.FileRecord) bool {
				if !c.RootLevel || !hasExt(c, "png") {
					return false
				}
				tag, ok := cl.patterns.MatchAppIcon(c.FileName)
				if ok {
					rec.Tag = tag
				}
				return ok
			},
		},
		{
			Name:        RuleLaunchImage,
			Description: "root-level `Default[-Landscape|-Portrait][-<n>h][@<n>x].png`",
			Bucket:      types.BucketLaunchImages,
			Match: func(c *Candidate, _ *types.FileRecord) bool {
				return c.RootLevel && hasExt(c, "png") && cl.patterns.MatchLaunchImage(c.FileName)
			},
		},
		{
			Name:        RuleLaunchLogo,
			Description: "`LaunchLogo[@2x|@3x][~iphone|~ipad].(png|jpg)` at any depth",
			Bucket:      types.BucketLaunchLogos,
			Match: func(c *Candidate, rec *types.FileRecord) bool {
				if !hasExt(c, "png", "jpg") {
					return false
				}
				m, ok := cl.patterns.MatchLaunchLogo(c.FileName)
				if ok {
					rec.Scale = m.Scale
					rec.Device = m.Device
				}
				return ok
			},
		},
		{
			Name:        RuleImageAsset,
			Description: "`.png`/`.jpg` outside any `*.bundle/` directory, when app thinning is on",
			Bucket:      types.BucketImageAssets,
			Match: func(c *Candidate, _ *types.FileRecord) bool {
				return cl.thinning && hasExt(c, "png", "jpg") && !cl.patterns.InBundle(c.RelPath)
			},
		},
		{
			Name:        RuleMarkup,
			Description: "`.html` files, copied verbatim after their `<script>` references are collected",
			Bucket:      types.BucketResourcesToCopy,
			Match: func(c *Candidate, _ *types.FileRecord) bool {
				return hasExt(c, "html")
			},
			ScanMarkup: true,
		},
		{
			Name:        RuleResource,
			Description: "everything else, copied verbatim",
			Bucket:      types.BucketResourcesToCopy,
			Match: func(*Candidate, *types.FileRecord) bool {
				return true
			},
		},
	}
}

// RulesMarkdown renders the rule list as a markdown table
func RulesMarkdown(rules []Rule) string {
	var sb strings.Builder
	sb.WriteString("| # | Rule | Matches | Bucket |\n|---|---|---|---|\n")
	for i, r := range rules {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", i+1, r.Name, r.Description, r.Bucket)
	}
	return sb.String()
}
