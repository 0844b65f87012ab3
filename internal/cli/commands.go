package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/resgather/internal/version"
	"github.com/arthur-debert/resgather/pkg/classifier"
	"github.com/arthur-debert/resgather/pkg/config"
	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/gather"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/arthur-debert/resgather/pkg/output"
	"github.com/arthur-debert/resgather/pkg/patterns"
	"github.com/arthur-debert/resgather/pkg/result"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/arthur-debert/resgather/pkg/walker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command
type globalFlags struct {
	verbosity  int
	configFile string
	noColor    bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "resgather",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWalkCmd(flags))
	rootCmd.AddCommand(newGatherCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newRulesCmd(flags))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

// loadConfig loads the layered configuration. overrides carries flag
// values the user set explicitly.
func loadConfig(flags *globalFlags, overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		ConfigFile: flags.configFile,
		Overrides:  overrides,
	})
}

// noColorFor reports whether styling must be dropped when writing to w
func noColorFor(flags *globalFlags, w io.Writer) bool {
	if flags.noColor {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !logging.ColorEnabled(f)
}

type walkFlags struct {
	dest         string
	ignore       string
	prefix       string
	icon         string
	thinning     bool
	noReclassify bool
	format       string
}

func newWalkCmd(global *globalFlags) *cobra.Command {
	flags := &walkFlags{}

	cmd := &cobra.Command{
		Use:     "walk [root]",
		Short:   MsgWalkShort,
		Long:    MsgWalkLong,
		Example: MsgWalkExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("icon") {
				overrides["app_icon"] = flags.icon
			}
			if cmd.Flags().Changed("thinning") {
				overrides["app_thinning"] = flags.thinning
			}
			if cmd.Flags().Changed("no-reclassify") {
				overrides["reclassify_markup_scripts"] = !flags.noReclassify
			}
			if cmd.Flags().Changed("format") {
				overrides["output.format"] = flags.format
			}

			cfg, err := loadConfig(global, overrides)
			if err != nil {
				return err
			}

			ignore, err := patterns.Compile(flags.ignore)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --ignore pattern")
			}

			opts, err := cfg.WalkerOptions(nil)
			if err != nil {
				return err
			}

			res, err := walker.New(opts).WalkWithOptions(cmd.Context(), walker.WalkOptions{
				Root:   root,
				Dest:   flags.dest,
				Ignore: ignore,
				Prefix: flags.prefix,
			})
			if err != nil {
				return err
			}

			if cfg.ReclassifyMarkupScripts {
				reclassify(res)
			}

			out := cmd.OutOrStdout()
			return output.Render(out, res, cfg.Output.Format, noColorFor(global, out))
		},
	}

	cmd.Flags().StringVar(&flags.dest, "dest", "", MsgFlagDest)
	cmd.Flags().StringVar(&flags.ignore, "ignore", "", MsgFlagIgnore)
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", MsgFlagPrefix)
	cmd.Flags().StringVar(&flags.icon, "icon", "", MsgFlagIcon)
	cmd.Flags().BoolVar(&flags.thinning, "thinning", false, MsgFlagThinning)
	cmd.Flags().BoolVar(&flags.noReclassify, "no-reclassify", false, MsgFlagNoReclassify)
	cmd.Flags().StringVarP(&flags.format, "format", "f", output.FormatText, MsgFlagFormat)

	return cmd
}

func reclassify(res *result.Result) {
	moved := res.ReclassifyMarkupReferencedScripts()
	if len(moved) > 0 {
		log.Info().Strs("scripts", moved).Msgf(MsgReclassifiedFmt, len(moved))
	}
}

func newGatherCmd(global *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "gather",
		Short:   MsgGatherShort,
		Long:    MsgGatherLong,
		Example: MsgGatherExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("format") {
				overrides["output.format"] = format
			}

			cfg, err := loadConfig(global, overrides)
			if err != nil {
				return err
			}
			if len(cfg.Sources) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgNoSources)
			}

			sources, err := cfg.GatherSources()
			if err != nil {
				return err
			}
			opts, err := cfg.WalkerOptions(nil)
			if err != nil {
				return err
			}

			report, err := gather.Run(cmd.Context(), walker.New(opts), sources, gather.Options{
				SkipReclassify: !cfg.ReclassifyMarkupScripts,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return output.Render(out, report.Result, cfg.Output.Format, noColorFor(global, out))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatText, MsgFlagFormat)
	return cmd
}

func newConfigCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global, nil)
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newRulesCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: MsgRulesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global, nil)
			if err != nil {
				return err
			}

			cl := classifier.New(classifier.Options{
				Patterns:    patterns.NewSet(cfg.AppIcon),
				AppThinning: cfg.AppThinning,
			})

			var sb strings.Builder
			sb.WriteString(MsgRulesIntro)
			sb.WriteString("\n")
			sb.WriteString(classifier.RulesMarkdown(cl.Rules()))
			sb.WriteString("\n## Buckets\n\n")
			for _, b := range types.AllBuckets {
				fmt.Fprintf(&sb, "- **%s**: %s\n", b, b.Description())
			}

			out := cmd.OutOrStdout()
			_, err = io.WriteString(out, renderMarkdown(sb.String(), !noColorFor(global, out)))
			return err
		},
	}
}
