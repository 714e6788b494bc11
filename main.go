// rebrand rewrites a Chromium source tree with a product's branding.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/minios-linux/rebrand/config"
	"github.com/minios-linux/rebrand/i18n"
	"github.com/minios-linux/rebrand/langmeta"
	"github.com/minios-linux/rebrand/rebrand"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// errNotReconciled is returned when at least one manifest kept its snapshots.
var errNotReconciled = errors.New("some manifests were not reconciled")

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

type rootFlags struct {
	chromeSrc   string
	jobs        int
	verbose     bool
	quiet       bool
	showVersion bool
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "rebrand [flags] <config_dir>",
		Short: i18n.T("Rebrand a Chromium source tree"),
		Long: i18n.T(`rebrand rewrites a Chromium source tree with the names and resources
found in a config dir.

The config dir may contain:
  BRANDING          key=value pairs merged into chrome/app/theme/chromium/BRANDING
  BRANDING_<lang>   per-locale brand names used for *_<lang>.xtb bundles
  grd_files.txt     GRD manifests to rewrite, one per line
  grd_filter.map    substitutions for GRD, GRDP and XTB files
  grd_reserved.txt  literals that must never be substituted
  src_files.txt     plain source files to rewrite
  src_filter.map    substitutions for plain source files
  res/              files copied over the same paths in the tree
  rebrand.yaml      optional overrides of the names above

The Chromium source dir is taken from --chrome-src, then $REBRAND_CHROME_SRC
(also read from a .env file), then the nearest parent of the working
directory containing chrome/VERSION.`),
		Args: func(cmd *cobra.Command, args []string) error {
			if f.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(cmd.ErrOrStderr(), f)
			if _, err := config.LoadEnv(); err != nil {
				log.Warn().Err(err).Msg(i18n.T("ignoring .env file"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return runRebrand(cmd.Context(), f, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&f.chromeSrc, "chrome-src", "c", "", i18n.T("Chromium source dir"))
	root.PersistentFlags().BoolVar(&f.verbose, "verbose", false, i18n.T("Log every file, including unchanged ones"))
	root.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, i18n.T("Log warnings and errors only"))
	root.Flags().IntVarP(&f.jobs, "jobs", "j", 1, i18n.T("Number of manifests processed in parallel"))
	root.Flags().BoolVarP(&f.showVersion, "version", "v", false, i18n.T("Print version and exit"))

	root.AddCommand(
		newStatusCmd(&f),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg(i18n.T("rebrand failed"))
		os.Exit(1)
	}
}

func setupLogger(w io.Writer, f rootFlags) {
	level := zerolog.InfoLevel
	switch {
	case f.verbose:
		level = zerolog.DebugLevel
	case f.quiet:
		level = zerolog.WarnLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// ---------------------------------------------------------------------------
// rebrand (default action)
// ---------------------------------------------------------------------------

func newRunner(f rootFlags, configDir string) (*rebrand.Runner, error) {
	src, err := config.ResolveChromeSrc(f.chromeSrc)
	if err != nil {
		return nil, err
	}
	cfg, err := filepath.Abs(configDir)
	if err != nil {
		return nil, err
	}
	return rebrand.New(rebrand.Options{
		ChromeSrc: src,
		ConfigDir: cfg,
		Jobs:      f.jobs,
		Logger:    log.Logger,
	})
}

func runRebrand(ctx context.Context, f rootFlags, configDir string) error {
	r, err := newRunner(f, configDir)
	if err != nil {
		return err
	}

	sum, err := r.Run(ctx)
	log.Info().
		Int("filtered", sum.Filtered).
		Int("unchanged", sum.Unmodified).
		Int("renamed", sum.Renamed).
		Int("copied", sum.Copied).
		Int("missing", sum.Missing).
		Int("failed", sum.Failed).
		Msg(i18n.T("done"))
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%w: %d", errNotReconciled, sum.Failed)
	}
	return nil
}

// ---------------------------------------------------------------------------
// status (read-only: config dir validation)
// ---------------------------------------------------------------------------

func newStatusCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <config_dir>",
		Short: i18n.T("Validate a config dir without modifying anything"),
		Long: i18n.T(`Parse every file of a config dir, check that the listed files exist in
the Chromium source tree and print a summary. Does not modify any files.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(*f, args[0])
			if err != nil {
				return err
			}
			st, err := r.Inspect()
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}

	return cmd
}

func printStatus(w io.Writer, st *rebrand.Status) {
	fmt.Fprintf(w, "\n%s%s%s\n", colorBlue, i18n.T("Rebrand"), colorReset)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  %-12s %s\n", i18n.T("Chromium:"), st.ChromeSrc)
	fmt.Fprintf(w, "  %-12s %s\n", i18n.T("Config:"), st.ConfigDir)
	fmt.Fprintf(w, "  %-12s %s\n", i18n.T("Company:"), valueOrNone(st.Brand["COMPANY_FULLNAME"]))
	fmt.Fprintf(w, "  %-12s %s\n", i18n.T("Product:"), valueOrNone(st.Brand["PRODUCT_FULLNAME"]))

	if len(st.Locales) > 0 {
		names := make([]string, len(st.Locales))
		for i, l := range st.Locales {
			names[i] = fmt.Sprintf("%s (%s)", l, langmeta.Name(l))
		}
		fmt.Fprintf(w, "  %-12s %s\n", i18n.T("Locales:"), strings.Join(names, ", "))
	} else {
		fmt.Fprintf(w, "  %-12s %s\n", i18n.T("Locales:"), i18n.T("none"))
	}
	fmt.Fprintln(w)

	printMap(w, "grd_filter", st.GRDFilter)
	printMap(w, "src_filter", st.SrcFilter)
	printList(w, "grd_files", st.GRDFiles)
	printList(w, "src_files", st.SrcFiles)
	fmt.Fprintf(w, "  %-12s %s\n", "reserved", fmt.Sprintf(i18n.N("%d literal", "%d literals", st.Reserved), st.Reserved))
	fmt.Fprintf(w, "  %-12s %s\n", "res", fmt.Sprintf(i18n.N("%d file", "%d files", st.Resources), st.Resources))
	fmt.Fprintln(w)
}

func printMap(w io.Writer, name string, ms rebrand.MapStatus) {
	if !ms.Present {
		fmt.Fprintf(w, "  %-12s %s%s%s\n", name, colorYellow, i18n.T("missing"), colorReset)
		return
	}
	fmt.Fprintf(w, "  %-12s %s, %s\n", name,
		fmt.Sprintf(i18n.N("%d default", "%d defaults", ms.Defaults), ms.Defaults),
		fmt.Sprintf(i18n.N("%d file section", "%d file sections", ms.Sections), ms.Sections))
}

func printList(w io.Writer, name string, ls rebrand.ListStatus) {
	if !ls.Present {
		fmt.Fprintf(w, "  %-12s %s%s%s\n", name, colorYellow, i18n.T("missing"), colorReset)
		return
	}
	color := colorGreen
	if len(ls.Missing) > 0 {
		color = colorRed
	}
	fmt.Fprintf(w, "  %-12s %s%d/%d%s %s\n", name, color, ls.Files-len(ls.Missing), ls.Files, colorReset, i18n.T("present"))
	for _, m := range ls.Missing {
		fmt.Fprintf(w, "    %s- %s%s\n", colorRed, m, colorReset)
	}
}

func valueOrNone(v string) string {
	if v == "" {
		return i18n.T("none")
	}
	return v
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Long:  i18n.T(`Display version, commit hash, and build date.`),
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}

	return cmd
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "rebrand version %s\n", version)
	fmt.Fprintf(w, "  commit:    %s\n", commit)
	fmt.Fprintf(w, "  built:     %s\n", date)
}
