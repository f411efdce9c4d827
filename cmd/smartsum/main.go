package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/smartsum/config"
	"github.com/mohammad-safakhou/smartsum/internal/apiclient"
	"github.com/mohammad-safakhou/smartsum/internal/history"
	"github.com/mohammad-safakhou/smartsum/internal/orchestrate"
	"github.com/mohammad-safakhou/smartsum/internal/resolver"
	"github.com/mohammad-safakhou/smartsum/internal/session"
	"github.com/mohammad-safakhou/smartsum/internal/summarize"
)

func main() {
	var cfgPath string
	root := &cobra.Command{
		Use:   "smartsum",
		Short: "Summarize text or web pages via the SmartSum backend",
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ~/.smartsum/config.json)")

	root.AddCommand(
		loginCMD(&cfgPath),
		logoutCMD(&cfgPath),
		registerCMD(&cfgPath),
		summarizeCMD(&cfgPath),
		historyCMD(&cfgPath),
		mockapiCMD(&cfgPath),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the wired object graph behind every subcommand.
type app struct {
	cfg      *config.Config
	sessions session.Provider
	client   *apiclient.Client
	hist     *history.Cache
	orch     *orchestrate.Orchestrator
	logger   *log.Logger
}

func buildApp(cfgPath string) (*app, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	logger := log.New(os.Stderr, "[SMARTSUM] ", log.LstdFlags)

	sessions := session.NewFileStore(cfg.Session.TokenPath)
	nav := loginNavigator{logger: logger}
	client := apiclient.New(cfg.Server.BaseURL, sessions, nav)

	res, err := resolver.New(resolver.Mode(cfg.Resolver.Mode), client, cfg.Resolver.Timeout)
	if err != nil {
		return nil, err
	}
	inv := summarize.NewInvoker(client, cfg.Summarizer.Timeout)

	hist := history.NewCache(history.NewFileBacking(cfg.History.Path), cfg.History.Capacity)
	hist.Load()

	orch := orchestrate.New(res, inv, hist, systemClipboard{}, nav, logger)
	return &app{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		hist:     hist,
		orch:     orch,
		logger:   logger,
	}, nil
}

// loginNavigator is the CLI's stand-in for a login redirect.
type loginNavigator struct {
	logger *log.Logger
}

func (n loginNavigator) GoToLogin() {
	n.logger.Println("session expired; run `smartsum login` to authenticate")
}
