package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/five82/cardwallet/internal/app"
	"github.com/five82/cardwallet/internal/config"
	"github.com/five82/cardwallet/internal/discovery"
	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/wallet"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	title = color.New(color.Bold, color.Underline).SprintFunc()
)

// openSession loads config and the card store for the non-interactive
// commands. Logs go to stderr.
func openSession(opts *globalOptions) (config.Config, wallet.Session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, wallet.Session{}, fmt.Errorf("load config: %w", err)
	}
	if err := logging.Initialize(cfg.LogLevel, ""); err != nil {
		return config.Config{}, wallet.Session{}, fmt.Errorf("init logging: %w", err)
	}
	session, err := app.NewSession(cfg, opts.demo)
	if err != nil {
		return config.Config{}, wallet.Session{}, err
	}
	return cfg, session, nil
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your cards and the cards shared with you",
		Example: `  cardwallet list
  cardwallet list --ids`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.Sync()
			_, session, err := openSession(opts)
			if err != nil {
				return err
			}
			cards, err := session.Store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list cards: %w", err)
			}
			own, others := state.Partition(cards, session.User.ID)
			printCards(color.Output, own, others, showIDs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "show card ids (needed by export)")
	return cmd
}

// printCards writes both card lists as aligned tables.
func printCards(w io.Writer, own, others []wallet.Card, showIDs bool) {
	section := func(heading string, cards []wallet.Card, withOwner bool) {
		fmt.Fprintln(w, title(heading)+faint(fmt.Sprintf(" - %d", len(cards))))
		if len(cards) == 0 {
			fmt.Fprintln(w, faint("  none"))
			fmt.Fprintln(w)
			return
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 48
		header := []any{bold("Name"), bold("Format"), bold("Code")}
		if withOwner {
			header = append(header, bold("Shared by"))
		}
		if showIDs {
			header = append([]any{bold("ID")}, header...)
		}
		tbl.AddRow(header...)

		for _, c := range cards {
			row := []any{c.Name, formatLabel(c.Format), c.Code}
			if withOwner {
				row = append(row, c.OwnerDisplayName)
			}
			if showIDs {
				row = append([]any{faint(c.ID)}, row...)
			}
			tbl.AddRow(row...)
		}
		fmt.Fprintln(w, tbl)
		fmt.Fprintln(w)
	}

	section("My cards", own, false)
	section("Shared with me", others, true)
}

func formatLabel(f symbol.Format) string {
	if f == "" {
		return string(symbol.DefaultFormat)
	}
	return string(f)
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		out    string
		mode   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export <card-id>",
		Short: "Write a card's barcode or QR code to a PNG file",
		Example: `  cardwallet export 3f2a... --out library.png
  cardwallet export 3f2a... --mode qr
  cardwallet export 3f2a... --format EAN13`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.Sync()
			renderMode, err := parseMode(mode, format)
			if err != nil {
				return err
			}
			cfg, session, err := openSession(opts)
			if err != nil {
				return err
			}
			card, err := findCard(cmd.Context(), session.Store, args[0])
			if err != nil {
				return err
			}
			if renderMode.Kind == symbol.KindBarcode && renderMode.Format == "" {
				renderMode.Format = card.Format
			}

			data, err := exportCard(symbol.NewRenderer(), card, renderMode, cfg.Render)
			if err != nil {
				return err
			}
			if out == "" {
				out = card.ID + ".png"
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", out, describeMode(renderMode))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <card-id>.png)")
	cmd.Flags().StringVar(&mode, "mode", "barcode", "code to draw: barcode or qr")
	cmd.Flags().StringVar(&format, "format", "", "barcode symbology (default the card's own)")
	return cmd
}

func parseMode(mode, format string) (symbol.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "qr":
		return symbol.QR(), nil
	case "", "barcode":
		if format == "" {
			return symbol.Mode{Kind: symbol.KindBarcode}, nil
		}
		f, err := symbol.ParseFormat(format)
		if err != nil {
			return symbol.Mode{}, err
		}
		return symbol.Barcode(f), nil
	default:
		return symbol.Mode{}, fmt.Errorf("unknown mode %q (want barcode or qr)", mode)
	}
}

func describeMode(mode symbol.Mode) string {
	if mode.Kind == symbol.KindQR {
		return "QR"
	}
	return formatLabel(mode.Format)
}

// findCard matches id exactly, then falls back to a unique id prefix or a
// case-insensitive name.
func findCard(ctx context.Context, lister state.Lister, id string) (wallet.Card, error) {
	cards, err := lister.List(ctx)
	if err != nil {
		return wallet.Card{}, fmt.Errorf("list cards: %w", err)
	}
	var matches []wallet.Card
	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
		if strings.HasPrefix(c.ID, id) || strings.EqualFold(c.Name, id) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return wallet.Card{}, fmt.Errorf("card %q: %w", id, wallet.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return wallet.Card{}, fmt.Errorf("card %q is ambiguous (%d matches)", id, len(matches))
	}
}

// exportCard renders card to PNG bytes. Nothing is returned on failure so a
// half-written file never lands on disk.
func exportCard(r *symbol.Renderer, card wallet.Card, mode symbol.Mode, opts symbol.Options) ([]byte, error) {
	var buf bytes.Buffer
	target := symbol.NewPNGTarget(&buf)
	res := r.Render(target, card.Code, mode, opts, nil)
	if !res.OK {
		return nil, fmt.Errorf("render %s: %s", card.Name, res.Message)
	}
	return buf.Bytes(), nil
}

func newDiscoverCmd() *cobra.Command {
	var timeoutSeconds int
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find Home Assistant servers on the local network",
		Long: `Find Home Assistant servers using mDNS/DNS-SD.

Use the printed URL as base_url in config.toml.`,
		Example: `  cardwallet discover
  cardwallet discover --timeout 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Initialize("", ""); err != nil {
				return err
			}
			defer logging.Sync()

			scanner := discovery.NewScanner()
			if timeoutSeconds > 0 {
				scanner.Timeout = time.Duration(timeoutSeconds) * time.Second
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Scanning for %s (timeout: %s)...\n\n", discovery.ServiceType, scanner.Timeout)

			instances, err := scanner.Scan(cmd.Context())
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			printInstances(w, instances)
			return nil
		},
	}
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "scan timeout in seconds (default 5)")
	return cmd
}

func printInstances(w io.Writer, instances []discovery.Instance) {
	if len(instances) == 0 {
		fmt.Fprintln(w, "No servers found.")
		fmt.Fprintln(w, faint("Check that this machine is on the same network, or raise --timeout."))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Name"), bold("URL"), bold("Version"))
	for _, inst := range instances {
		tbl.AddRow(inst.Name, inst.BaseURL(), inst.Version)
	}
	fmt.Fprintf(w, "Found %d server(s):\n\n", len(instances))
	fmt.Fprintln(w, tbl)
}
