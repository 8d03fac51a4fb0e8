package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	labelColor = color.New(color.FgCyan)
)

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			online, err := c.client.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			labelColor.Fprintf(out, "%s: ", c.client.Network())
			if online {
				okColor.Fprintln(out, "online")
				return nil
			}
			errColor.Fprintln(out, "offline")
			return fmt.Errorf("unexpected status response from %s", c.client.BaseURL())
		},
	}
}

func (c *cli) chainInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain-info",
		Short: "Show the current chain state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := c.client.ChainInfo(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func (c *cli) blockCmd() *cobra.Command {
	var withTxs bool
	cmd := &cobra.Command{
		Use:   "block <hash|height>",
		Short: "Show a block by hash or height",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				block *woc.Block
				err   error
			)
			if height, perr := strconv.ParseInt(args[0], 10, 64); perr == nil && len(args[0]) < 64 {
				block, err = c.client.BlockByHeight(cmd.Context(), height)
			} else {
				if verr := woc.ValidateHash("hash", args[0]); verr != nil {
					return verr
				}
				block, err = c.client.BlockByHash(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if !withTxs {
				block.Tx = nil
			}
			return printJSON(cmd.OutOrStdout(), block)
		},
	}
	cmd.Flags().BoolVar(&withTxs, "txs", false, "include the transaction id list")
	return cmd
}

func (c *cli) headerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header <hash>",
		Short: "Show a block header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateHash("hash", args[0]); err != nil {
				return err
			}
			header, err := c.client.BlockHeaderByHash(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), header)
		},
	}
}

func (c *cli) txCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tx <txid>",
		Short: "Show a decoded transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateHash("txid", args[0]); err != nil {
				return err
			}
			tx, err := c.client.TxByHash(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tx)
		},
	}
}

func (c *cli) rawTxCmd() *cobra.Command {
	var output int
	cmd := &cobra.Command{
		Use:   "raw-tx <txid>",
		Short: "Print the raw hex of a transaction or one output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateHash("txid", args[0]); err != nil {
				return err
			}
			var (
				txhex string
				err   error
			)
			if cmd.Flags().Changed("output") {
				txhex, err = c.client.RawTxOutput(cmd.Context(), args[0], output)
			} else {
				txhex, err = c.client.RawTx(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), txhex)
			return nil
		},
	}
	cmd.Flags().IntVar(&output, "output", 0, "print only this output")
	return cmd
}

func (c *cli) broadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <hex>",
		Short: "Broadcast a signed raw transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateHex("txhex", args[0]); err != nil {
				return err
			}
			txid, err := c.client.Broadcast(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			okColor.Fprint(out, "broadcast ")
			fmt.Fprintln(out, txid)
			return nil
		},
	}
}

func (c *cli) balanceCmd() *cobra.Command {
	var usd bool
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Show an address balance in BSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := args[0]
			if err := woc.ValidateAddress(c.client.Network(), "address", address); err != nil {
				return err
			}
			bal, err := c.client.Balance(cmd.Context(), address)
			if err != nil {
				return err
			}

			total := woc.SatoshisToBSV(bal.Confirmed + bal.Unconfirmed)
			out := cmd.OutOrStdout()
			labelColor.Fprintln(out, address)
			fmt.Fprintf(out, "  confirmed:   %s BSV\n", woc.FormatBSV(bal.Confirmed))
			fmt.Fprintf(out, "  unconfirmed: %s BSV\n", woc.FormatBSV(bal.Unconfirmed))
			fmt.Fprint(out, "  total:       ")
			okColor.Fprintf(out, "%s BSV\n", total.StringFixed(8))

			if usd {
				rate, err := c.client.ExchangeRate(cmd.Context())
				if err != nil {
					return fmt.Errorf("exchange rate: %w", err)
				}
				value := total.Mul(decimal.NewFromFloat(rate.Rate))
				fmt.Fprintf(out, "  value:       $%s (at $%s/BSV)\n",
					value.StringFixed(2), decimal.NewFromFloat(rate.Rate).StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&usd, "usd", false, "also show the value in USD")
	return cmd
}

func (c *cli) utxosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "utxos <address>",
		Short: "List unspent outputs of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateAddress(c.client.Network(), "address", args[0]); err != nil {
				return err
			}
			utxos, err := c.client.UTXOs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), utxos)
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <address>",
		Short: "List transactions of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateAddress(c.client.Network(), "address", args[0]); err != nil {
				return err
			}
			history, err := c.client.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if limit > 0 && len(history) > limit {
				history = history[len(history)-limit:]
			}
			return printJSON(cmd.OutOrStdout(), history)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent entries")
	return cmd
}

func (c *cli) exchangeRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange-rate",
		Short: "Show the BSV/USD exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := c.client.ExchangeRate(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rate)
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find explorer pages for a hash, height or address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func (c *cli) statementCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "statement <address>",
		Short: "Download the PDF statement of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := woc.ValidateAddress(c.client.Network(), "address", args[0]); err != nil {
				return err
			}
			pdf, err := c.client.StatementPDF(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = args[0] + ".pdf"
			}
			if err := os.WriteFile(outPath, pdf, 0644); err != nil {
				return fmt.Errorf("failed to write statement: %w", err)
			}
			okColor.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <address>.pdf)")
	return cmd
}
