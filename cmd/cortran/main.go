package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kdudkov/cortran/internal/config"
	"github.com/kdudkov/cortran/pkg/coord"
)

var exampleUsage = strings.TrimSpace(`
  cortran xy2ll 4452988 8458594
  cortran ll2xy 40.2094272 44.5123968 --h 1000
  cortran shift --from sk42 40.2095414 44.5136365
  cortran dist --from yerevan
  cortran parse "x4452988 y8458594"
  cortran validate --oracle proj --points points.yml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

// cli keeps the state shared by the subcommands.
type cli struct {
	cfg     *config.AppConfig
	cfgPath string
	debug   bool
}

func (c *cli) converter() (*coord.Converter, error) {
	return c.cfg.Converter()
}

func (c *cli) setup(cmd *cobra.Command) {
	level := slog.LevelWarn
	if c.debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	c.cfg.Load(c.cfgPath)
	c.cfg.LoadEnv(config.EnvPrefix)
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{cfg: config.NewAppConfig()}

	root := &cobra.Command{
		Use:           "cortran",
		Short:         "SK42 Gauss-Kruger / WGS84 coordinate converter",
		Long:          "Converts coordinates between WGS84 and the SK42 datum with its Gauss-Kruger grid,\ncomputes distances and validates the datum shift against reference points.",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.setup(cmd)
		},
	}

	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "cortran.yml", "path to config file")
	pf.BoolVar(&c.debug, "debug", false, "debug logging")
	pf.String("profile", coord.DefaultProfile, "datum shift profile")
	pf.Bool("legacy", false, "historic truncated forward series")
	pf.Bool("strict", true, "reject points outside of the profile region")

	if err := c.cfg.BindFlags(pf, map[string]string{
		"profile": "profile",
		"legacy":  "legacy_series",
		"strict":  "strict_region",
	}); err != nil {
		panic(err)
	}

	root.AddCommand(
		newXyToLlCmd(c),
		newLlToXyCmd(c),
		newShiftCmd(c),
		newDistCmd(c),
		newParseCmd(c),
		newProfilesCmd(c),
		newValidateCmd(c),
	)

	return root
}

func main() {
	root := newRootCmd(os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
