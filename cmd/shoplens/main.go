package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/shoplens/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/shoplens/config.toml)")
	envFile := flag.String("env", "", "dotenv file to load (optional, defaults to ./.env)")
	apiURL := flag.String("api", "", "recommendation service URL (optional, overrides config)")
	pollSeconds := flag.Int("poll", 0, "forecast refresh interval in seconds (optional, defaults to 30s)")
	csvPath := flag.String("csv", "", "CSV file to pre-fill in the upload field (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		EnvFile:    *envFile,
		APIURL:     *apiURL,
		CSVPath:    *csvPath,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "shoplens: %v\n", err)
		return 1
	}
	return 0
}
