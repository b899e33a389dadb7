package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/app/provider"
	"wallet_gateway/internal/app/service"
	"wallet_gateway/internal/config"
	"wallet_gateway/internal/domain/entity"
	networkdefinition "wallet_gateway/internal/infrastructure/network/definition"
	"wallet_gateway/internal/infrastructure/tokenloader"
	"wallet_gateway/internal/pkg/logger"
	"wallet_gateway/internal/pkg/units"
)

type app struct {
	networks port.NetworkDefinitionProvider
	amounts  port.AmountConverter
	prices   port.TokenPriceService
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		a          app
	)

	root := &cobra.Command{
		Use:           "convert",
		Short:         "Convert wallet amounts between decimal and base-unit form",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logLevel, "console"); err != nil {
				return err
			}
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			a = buildApp(cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yml (built-in networks only when empty)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newDecimalsCmd(&a),
		newBaseUnitCmd(&a),
		newFormatCmd(),
		newFiatCmd(&a),
	)
	return root
}

func buildApp(cfg *config.Config) app {
	l := logger.NewSlogAdapter()
	tokens := provider.NewTokenProvider(tokenloader.NewTokenLoader(cfg.TokensDir, l), l)
	networks := networkdefinition.NewNetworkDefinitionProvider(l, cfg.Networks, tokens)
	return app{
		networks: networks,
		amounts:  service.NewAmountService(networks, l),
		prices:   service.NewTokenPriceService(networks, nil, l, cfg.Prices),
	}
}

func newDecimalsCmd(a *app) *cobra.Command {
	var network, token string
	cmd := &cobra.Command{
		Use:   "decimals",
		Short: "Print the precision of a network's native asset or token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.amounts.GetDecimals(network, token))
			return nil
		},
	}
	cmd.Flags().StringVarP(&network, "network", "n", "", "network identifier")
	cmd.Flags().StringVarP(&token, "token", "t", "", "token contract address")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}

func newBaseUnitCmd(a *app) *cobra.Command {
	var (
		network, token string
		strict         bool
	)
	cmd := &cobra.Command{
		Use:   "base-unit AMOUNT",
		Short: "Convert a decimal amount to base units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strict {
				_, baseUnit := a.amounts.PrepareTransferValue(network, token, args[0])
				fmt.Fprintln(cmd.OutOrStdout(), baseUnit)
				return nil
			}
			value, err := a.amounts.ParseBaseUnit(args[0], a.amounts.GetDecimals(network, token))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&network, "network", "n", "", "network identifier")
	cmd.Flags().StringVarP(&token, "token", "t", "", "token contract address")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed amounts instead of printing 0")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}

func newFormatCmd() *cobra.Command {
	var decimals int
	cmd := &cobra.Command{
		Use:   "format VALUE",
		Short: "Format a base-unit integer as a decimal amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return fmt.Errorf("invalid base-unit value %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), units.FromBaseUnit(value, decimals))
			return nil
		},
	}
	cmd.Flags().IntVarP(&decimals, "decimals", "d", entity.DefaultDecimals, "asset precision")
	return cmd
}

func newFiatCmd(a *app) *cobra.Command {
	var asset, currency string
	cmd := &cobra.Command{
		Use:   "fiat AMOUNT",
		Short: "Value an asset amount in fiat using the mock rate table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.prices.GetFiatValue(args[0], asset, entity.FiatCurrency(currency))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(value, 'f', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringVarP(&asset, "asset", "a", "", "asset ticker (BTC, USDT, XAUT, ETH)")
	cmd.Flags().StringVar(&currency, "currency", string(entity.FiatUSD), "fiat currency (USD, EUR)")
	_ = cmd.MarkFlagRequired("asset")
	return cmd
}
