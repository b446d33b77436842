package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/tui"
	"github.com/hilthontt/huddle/pkg/apisdk"
	"github.com/hilthontt/huddle/pkg/apisdk/option"
	"github.com/hilthontt/huddle/pkg/session"
)

const appName = "huddle-cli"

func main() {
	baseURL := flag.String("url", "", "API base URL, e.g. http://localhost:3000/api (defaults to HUDDLE_BASE_URL)")
	interval := flag.Duration("poll", session.DefaultPollInterval, "poll interval")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	logDir := flag.String("log-dir", "", "directory for the client log file (defaults to LOGGER_FILE_PATH or ./logs/)")
	flag.Parse()

	logCfg := logging.NewDefaultConfig(appName)
	// stdout belongs to the TUI
	logCfg.Console = false
	if *logDir != "" {
		logCfg.FilePath = *logDir
	}
	logger := logging.NewLogger(logCfg)
	defer logger.Sync()

	opts := []option.RequestOption{option.WithRequestTimeout(*timeout)}
	if *baseURL != "" {
		opts = append(opts, option.WithBaseURL(*baseURL))
	}
	client := apisdk.NewClient(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(session.NewAPI(client), logger)
	if err := tui.Run(ctx, sess, *interval); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		os.Exit(1)
	}

	leaveCtx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	_ = sess.Leave(leaveCtx)
}
