package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/veridoc/portal/internal/buildinfo"
	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/cli"
	"github.com/veridoc/portal/internal/portal/config"
	"github.com/veridoc/portal/internal/portal/ocr"
	"github.com/veridoc/portal/internal/portal/session"
	"github.com/veridoc/portal/internal/portal/upload"

	_ "modernc.org/sqlite"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	db, err := session.InitDatabase(ctx, cfg.TokenDBPath)
	if err != nil {
		log.Fatalf("error initializing database: %s", err.Error())
	}
	defer db.Close()

	// The session service owns the token; the API client reads it through
	// the closure, so the two can be built in either order.
	var sess *session.Service
	client := api.New(cfg.BackendBaseURL, cfg.RequestTimeout, func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	}, logger)
	sess = session.NewService(client, session.NewSQLiteStore(db), logger)

	flow := upload.NewWorkflow(client, ocr.New(cfg.OCRBaseURL, cfg.RequestTimeout), logger)

	app := cli.NewApp(client, sess, flow, logger)
	app.Run(ctx)
}
