package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Classify application resources for packaging"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
	MsgWalkShort    = "Walk a resource root and classify its files"
	MsgGatherShort  = "Walk the configured overlay sources and merge them"
	MsgConfigShort  = "Print the effective configuration as TOML"
	MsgRulesShort   = "Show the classification rules"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Configuration file, read after resgather.toml"
	MsgFlagNoColor      = "Disable coloured output"
	MsgFlagDest         = "Destination root used for each file's destination path"
	MsgFlagIgnore       = "Regular expression for root entries to skip"
	MsgFlagPrefix       = "Prefix for relative paths instead of the root"
	MsgFlagIcon         = "App icon base filename (default from config: appicon.png)"
	MsgFlagThinning     = "Route images to the asset catalog bucket"
	MsgFlagNoReclassify = "Keep markup-referenced scripts in jsFiles"
	MsgFlagFormat       = "Output format: text, json, yaml, toml, xml"

	// Status messages
	MsgNoSources       = "no sources configured; add [[sources]] to resgather.toml"
	MsgReclassifiedFmt = "Moved %d markup-referenced scripts to resourcesToCopy"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/walk-long.txt
	msgWalkLongRaw string
	MsgWalkLong    = strings.TrimSpace(msgWalkLongRaw)

	//go:embed msgs/walk-example.txt
	msgWalkExampleRaw string
	MsgWalkExample    = strings.TrimRight(msgWalkExampleRaw, "\n")

	//go:embed msgs/gather-long.txt
	msgGatherLongRaw string
	MsgGatherLong    = strings.TrimSpace(msgGatherLongRaw)

	//go:embed msgs/gather-example.txt
	msgGatherExampleRaw string
	MsgGatherExample    = strings.TrimRight(msgGatherExampleRaw, "\n")

	//go:embed msgs/rules-intro.md
	MsgRulesIntro string
)

//go:embed msgs/usage.tmpl
var MsgUsageTemplate string
