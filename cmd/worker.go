package cmd

import (
	"sync"

	"lever/worker"
	"lever/worker/pricewatch"
	"lever/worker/sentinel"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lever job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		marketStore := provideMarketStore(database)
		positionStore := providePositionStore(database)

		blockService := provideBlockService()
		priceService := providePriceService()

		watcher := pricewatch.New(cfg.App.Location, marketStore, priceService)
		watcher.Start()
		defer watcher.Stop()

		workers := []worker.Worker{
			sentinel.New(marketStore, positionStore, priceService, blockService, propertyStore, cfg.Sentinel),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
