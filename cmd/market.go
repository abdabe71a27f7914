package cmd

import (
	"strings"

	"lever/core"

	"github.com/spf13/cobra"
)

var addMarketCmd = &cobra.Command{
	Use:     "add-market",
	Aliases: []string{"am"},
	Short:   "add market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		symbol, e := cmd.Flags().GetString("s")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}
		collateralAsset, e := cmd.Flags().GetString("c")
		if e != nil || collateralAsset == "" {
			panic("invalid collateral asset")
		}
		loanAsset, e := cmd.Flags().GetString("l")
		if e != nil || loanAsset == "" {
			panic("invalid loan asset")
		}

		borrowLTV, _ := cmd.Flags().GetInt64("borrow-ltv")
		liquidationLTV, _ := cmd.Flags().GetInt64("liquidation-ltv")
		if borrowLTV <= 0 || liquidationLTV <= borrowLTV {
			panic("liquidation ltv must be greater than borrow ltv")
		}

		rate, _ := cmd.Flags().GetInt64("rate")
		bonus, _ := cmd.Flags().GetInt64("bonus")

		basis := core.TimeBasis(strings.ToLower(cmd.Flag("basis").Value.String()))
		if basis != core.TimeBasisBlock && basis != core.TimeBasisSecond {
			panic("basis must be block or second")
		}

		genesis, _ := cmd.Flags().GetInt64("genesis")
		secondsPerBlock, _ := cmd.Flags().GetInt64("seconds-per-block")
		if basis == core.TimeBasisBlock && secondsPerBlock <= 0 {
			panic("seconds-per-block required for block basis")
		}

		market := &core.Market{
			Symbol:           strings.ToLower(symbol),
			CollateralAsset:  collateralAsset,
			LoanAsset:        loanAsset,
			BorrowLTV:        borrowLTV,
			LiquidationLTV:   liquidationLTV,
			RatePerPeriod:    rate,
			LiquidationBonus: bonus,
			TimeBasis:        basis,
			Genesis:          genesis,
			SecondsPerBlock:  secondsPerBlock,
		}

		marketStore := provideMarketStore(database)
		if err := marketStore.Create(ctx, market); err != nil {
			panic(err)
		}

		cmd.Println("market", market.Symbol, "created")
	},
}

var marketStatusCmd = &cobra.Command{
	Use:     "market-status",
	Aliases: []string{"ms"},
	Short:   "authorize or suspend a market against the pool",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		symbol, e := cmd.Flags().GetString("s")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}
		enabled, _ := cmd.Flags().GetBool("enable")

		poolStore := providePoolStore(database)
		if err := poolStore.SetMarketStatus(ctx, strings.ToLower(symbol), enabled); err != nil {
			panic(err)
		}

		if enabled {
			cmd.Println("market", strings.ToLower(symbol), "authorized")
		} else {
			cmd.Println("market", strings.ToLower(symbol), "suspended")
		}
	},
}

func init() {
	rootCmd.AddCommand(addMarketCmd)
	rootCmd.AddCommand(marketStatusCmd)

	addMarketCmd.Flags().String("s", "", "market symbol")
	addMarketCmd.Flags().String("c", "", "collateral asset id")
	addMarketCmd.Flags().String("l", "", "loan asset id")
	addMarketCmd.Flags().Int64("borrow-ltv", 0, "max initial borrow ltv in basis points")
	addMarketCmd.Flags().Int64("liquidation-ltv", 0, "liquidation threshold in basis points")
	addMarketCmd.Flags().Int64("rate", 0, "interest rate per accrual period in basis points")
	addMarketCmd.Flags().Int64("bonus", 0, "liquidation bonus in basis points")
	addMarketCmd.Flags().String("basis", "block", "accrual time basis, block or second")
	addMarketCmd.Flags().Int64("genesis", 0, "genesis timestamp for block basis")
	addMarketCmd.Flags().Int64("seconds-per-block", 0, "seconds per synthetic block")

	marketStatusCmd.Flags().String("s", "", "market symbol")
	marketStatusCmd.Flags().Bool("enable", true, "enable or disable the market")
}
