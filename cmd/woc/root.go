package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/whatsonchain-mcp-server/internal/config"
	"github.com/olgasafonova/whatsonchain-mcp-server/internal/logging"
	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

var version = "1.0.0"

// cli holds the flags shared by every subcommand and the client they build
type cli struct {
	network     string
	apiKey      string
	userAgent   string
	timeout     time.Duration
	noCache     bool
	legacy      bool
	baseURL     string
	explorerURL string
	verbose     bool

	client *woc.Client
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "woc",
		Short: "Query the BSV blockchain through WhatsOnChain",
		Long: `woc is a command-line client for the WhatsOnChain BSV API.

Defaults come from WOC_* environment variables and can be overridden by flags.
Without an API key requests are spaced to 3 per second.

Examples:
  woc status                          # Check that the API is reachable
  woc block 800000                    # Block by height
  woc tx <txid>                       # Decoded transaction
  woc balance <address> --usd         # Balance in BSV and USD
  woc statement <address> -o out.pdf  # Download an address statement
  woc --network test chain-info       # Query testnet`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.client != nil {
				c.client.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.network, "network", "n", "", "network: main, test or stn (default from WOC_NETWORK)")
	flags.StringVar(&c.apiKey, "api-key", "", "WhatsOnChain API key (default from WOC_API_KEY)")
	flags.StringVar(&c.userAgent, "user-agent", "", "User-Agent header")
	flags.DurationVar(&c.timeout, "timeout", 0, "request timeout (default from WOC_TIMEOUT)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVar(&c.legacy, "legacy", false, "use the legacy endpoint profile")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")
	flags.StringVar(&c.baseURL, "base-url", "", "override the API base URL")
	flags.StringVar(&c.explorerURL, "explorer-url", "", "override the explorer URL")
	_ = flags.MarkHidden("base-url")
	_ = flags.MarkHidden("explorer-url")

	root.AddCommand(
		c.statusCmd(),
		c.chainInfoCmd(),
		c.blockCmd(),
		c.headerCmd(),
		c.txCmd(),
		c.rawTxCmd(),
		c.broadcastCmd(),
		c.balanceCmd(),
		c.utxosCmd(),
		c.historyCmd(),
		c.exchangeRateCmd(),
		c.searchCmd(),
		c.statementCmd(),
		versionCmd(),
	)
	return root
}

// setup merges env config with the flags the user set and builds the client
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	env, err := config.Load()
	if err != nil {
		return err
	}
	cfg := env.ClientConfig()

	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network = woc.ParseNetwork(c.network)
	}
	if flags.Changed("api-key") {
		cfg.APIKey = c.apiKey
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = c.userAgent
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	if c.noCache {
		cfg.EnableCache = false
	}
	if c.legacy {
		cfg.Profile = woc.ProfileLegacy
	}

	level := logging.ParseLevel(env.LogLevel)
	if c.verbose {
		level = logging.ParseLevel("debug")
	}
	opts := []woc.Option{woc.WithLogger(logging.New(cmd.ErrOrStderr(), level))}
	if c.baseURL != "" {
		opts = append(opts, woc.WithBaseURL(c.baseURL))
	}
	if c.explorerURL != "" {
		opts = append(opts, woc.WithExplorerURL(c.explorerURL))
	}

	c.client = woc.NewWithConfig(cfg, opts...)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "woc v%s\n", version)
		},
	}
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
