package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/civiclens/docpipe/internal/app"
	"github.com/civiclens/docpipe/internal/extract"
	"github.com/civiclens/docpipe/internal/validate"
)

func main() {
	_ = godotenv.Load()

	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		urlFlag    string
		fileFlag   string
		configPath string
		cacheDir   string
		timeout    time.Duration
		retries    int
		maxPages   int
		showStats  bool
		verbose    bool
	)

	flag.StringVar(&urlFlag, "url", "", "Document URL to fetch and extract")
	flag.StringVar(&fileFlag, "file", "", "Local PDF file to extract (skips fetching)")
	flag.StringVar(&configPath, "config", os.Getenv("DOCPIPE_CONFIG"), "Path to YAML/JSON config file")
	flag.StringVar(&cacheDir, "cache.dir", os.Getenv("DOCPIPE_CACHE_DIR"), "Directory for the download cache (empty disables)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-attempt download timeout")
	flag.IntVar(&retries, "retries", 3, "Download attempts including the first")
	flag.IntVar(&maxPages, "max.pages", 1000, "Maximum pages to walk per document")
	flag.BoolVar(&showStats, "stats", false, "Print diagnostic text statistics")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.DefaultConfig()
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	// Flags the user set explicitly win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			cfg.DownloadTimeout = timeout
		case "retries":
			cfg.MaxRetries = retries
		case "max.pages":
			cfg.MaxPages = maxPages
		case "cache.dir":
			cfg.CacheDir = cacheDir
		}
	})

	if (urlFlag == "") == (fileFlag == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -url or -file is required")
		flag.Usage()
		os.Exit(2)
	}

	pipeline := app.New(cfg)

	var (
		result *extract.Result
		err    error
	)
	if urlFlag != "" {
		result, err = pipeline.ExtractFromURL(context.Background(), urlFlag)
	} else {
		var data []byte
		data, err = os.ReadFile(fileFlag)
		if err == nil {
			result, err = pipeline.ExtractFromBytes(data)
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("extraction failed")
		os.Exit(2)
	}
	if result == nil {
		log.Warn().Msg("document rejected: no usable text")
		os.Exit(1)
	}

	log.Info().Int("pageCount", result.PageCount).
		Int("pagesProcessed", result.PagesProcessed).
		Int("chars", len(result.Text)).Msg("document accepted")

	if showStats {
		stats := pipeline.Stats(result.Text)
		fmt.Printf("chars=%d letters=%d letterRatio=%.2f words=%d recognizable=%d\n",
			stats.TotalChars, stats.LetterCount, stats.LetterRatio,
			stats.WordCount, stats.RecognizableWords)
		if lang, ok := validate.DetectLanguage(result.Text); ok {
			fmt.Printf("language=%s\n", lang)
		}
	}
	fmt.Print(result.Text)
}
