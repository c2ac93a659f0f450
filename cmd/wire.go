package cmd

import (
	"fmt"
	"os"
	"time"

	configadapter "github.com/bnema/keytrack/internal/adapters/config"
	"github.com/bnema/keytrack/internal/adapters/daylog"
	summaryrender "github.com/bnema/keytrack/internal/adapters/render/summary"
	"github.com/bnema/keytrack/internal/application"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type app struct {
	config        *configadapter.Config
	store         *daylog.Store
	logger        *log.Logger
	renderSummary func(application.Summary) (string, error)
	now           func() time.Time
	verbose       bool
}

func wireApp() (*app, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "keytrack",
	})

	cfg, err := configadapter.Load(viper.New(), logger)
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	return &app{
		config:        cfg,
		store:         daylog.NewStore(cfg.LogDir),
		logger:        logger,
		renderSummary: summaryrender.Render,
		now:           time.Now,
	}, nil
}

// storeFor honors a --log-dir override without rewiring the app.
func (a *app) storeFor(logDir string) *daylog.Store {
	if logDir == "" || logDir == a.config.LogDir {
		return a.store
	}
	return daylog.NewStore(logDir)
}
