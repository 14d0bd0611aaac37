// main.go
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"bforest/internal/app/backtester"
	"bforest/internal/config"
	"bforest/internal/datasource"
	"bforest/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		tickers    []string
		start      string
		end        string
		split      string
		capital    float64
		model      string
		estimators int
		seed       int64
		modelPath  string
		dbPath     string
		outDir     string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "backtester",
		Short: "Бэктест стратегий на полосах Боллинджера",
		Long: `Прогоняет по дневным свечам две стратегии: классическую (вход по нижней
полосе, выход по верхней) и улучшенную, где вход и выход управляются
прогнозом тренда WMA от регрессионной модели. Результаты сравниваются
с Buy & Hold и сохраняются в CSV.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Флаги командной строки приоритетнее файла конфигурации
			if cmd.Flags().Changed("tickers") {
				cfg.Tickers = tickers
			}
			if cmd.Flags().Changed("start") {
				cfg.Start = start
			}
			if cmd.Flags().Changed("end") {
				cfg.End = end
			}
			if cmd.Flags().Changed("split") {
				cfg.Split = split
			}
			if cmd.Flags().Changed("capital") {
				cfg.InitialCapital = capital
			}
			if cmd.Flags().Changed("model") {
				cfg.Model.Name = model
			}
			if cmd.Flags().Changed("estimators") {
				cfg.Model.Estimators = estimators
			}
			if cmd.Flags().Changed("seed") {
				cfg.Model.Seed = seed
			}
			if cmd.Flags().Changed("model_path") {
				cfg.Model.DumpPath = modelPath
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.SQLitePath = dbPath
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outDir
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cfg, debug)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Путь к YAML-файлу конфигурации")
	cmd.Flags().StringSliceVar(&tickers, "tickers", nil, "Список тикеров через запятую")
	cmd.Flags().StringVar(&start, "start", "", "Начало периода данных (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Конец периода данных (YYYY-MM-DD)")
	cmd.Flags().StringVar(&split, "split", "", "Дата разделения train/test (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&capital, "capital", 0, "Начальный капитал")
	cmd.Flags().StringVar(&model, "model", "", "Модель тренда: forest или xgboost")
	cmd.Flags().IntVar(&estimators, "estimators", 0, "Число деревьев в лесу")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Зерно генератора случайных чисел")
	cmd.Flags().StringVar(&modelPath, "model_path", "", "Путь к JSON-дампу модели xgboost")
	cmd.Flags().StringVar(&dbPath, "db", "", "Путь к SQLite-кэшу свечей")
	cmd.Flags().StringVar(&outDir, "out", "", "Каталог для CSV с результатами")
	cmd.Flags().BoolVar(&debug, "debug", false, "Включить детальное логирование")

	return cmd
}

func run(cfg *config.Config, debug bool) error {
	start, end, split, err := cfg.Dates()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Database.SQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	provider := datasource.NewProvider(store,
		datasource.NewYahooFetcher(),
		datasource.NewChartAPIFetcher(),
	)

	runConfig := backtester.Config{
		Tickers:        cfg.Tickers,
		Start:          start,
		End:            end,
		Split:          split,
		InitialCapital: cfg.InitialCapital,
		Model:          cfg.Model.Name,
		Estimators:     cfg.Model.Estimators,
		Seed:           cfg.Model.Seed,
		ModelPath:      cfg.Model.DumpPath,
		Debug:          debug,
	}

	runner := backtester.NewRunner(
		runConfig,
		provider,
		backtester.NewConsolePrinter(),
		backtester.NewFileSaver(cfg.OutputDir),
	)

	results, err := runner.Run()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Println("⚠️ Ни один тикер не обработан")
		os.Exit(1)
	}
	return nil
}
