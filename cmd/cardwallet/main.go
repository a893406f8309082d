// Cardwallet keeps loyalty and membership cards in a terminal wallet.
//
// Running without a subcommand opens the interactive wallet. The list,
// export and discover subcommands work without a terminal, which makes them
// usable from scripts.
//
// Usage:
//
//	cardwallet [command] [flags]
//
// See 'cardwallet --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/cardwallet/internal/app"
)

// Set at build time with -ldflags "-X main.version=v1.2.3 -X main.commit=abc123".
var (
	version = ""
	commit  = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cardwallet: %v\n", err)
		return 1
	}
	return 0
}

// globalOptions are shared by every command.
type globalOptions struct {
	configPath     string
	prefsPath      string
	cardConfigPath string
	demo           bool
}

var errNotTerminal = errors.New("the wallet needs an interactive terminal (try 'cardwallet list')")

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var pollSeconds int

	cmd := &cobra.Command{
		Use:   "cardwallet",
		Short: "Loyalty and membership cards in your terminal",
		Long: `A terminal wallet for loyalty and membership cards.

Cards are stored on your Home Assistant server and can be shared with the
other people on it. Open a card to show its barcode or QR code at the till.

If no command is specified, the interactive wallet opens.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errNotTerminal
			}
			return app.Run(cmd.Context(), app.Options{
				ConfigPath:     opts.configPath,
				PrefsPath:      opts.prefsPath,
				CardConfigPath: opts.cardConfigPath,
				PollEvery:      pollSeconds,
				Demo:           opts.demo,
			})
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/cardwallet/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "UI preferences file (default ~/.config/cardwallet/prefs.toml)")
	flags.StringVar(&opts.cardConfigPath, "card-config", "", "card settings YAML (overrides card_config)")
	flags.BoolVar(&opts.demo, "demo", false, "use built-in sample cards instead of the server")
	cmd.Flags().IntVar(&pollSeconds, "poll", 0, "background reload interval in seconds (default from config)")

	cmd.AddCommand(
		newListCmd(opts),
		newExportCmd(opts),
		newDiscoverCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cardwallet %s\n", buildVersion())
		},
	}
}

func buildVersion() string {
	v, c := version, commit
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && c == "" && len(s.Value) >= 7 {
				c = s.Value[:7]
			}
		}
	}
	if v == "" {
		v = "dev"
	}
	if c == "" {
		return v
	}
	return v + " (commit: " + c + ")"
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
