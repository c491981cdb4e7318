package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legislativas/internal/adapters/driving/http"
	"github.com/custodia-labs/legislativas/internal/config"
)

var (
	servePort      int
	serveVerifyLLM bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Starts the answer API on PORT (default 3000).

Redis is used for the document cache when REDIS_URL is set and PostgreSQL
for the query log when DATABASE_URL is set. Admin routes are enabled only
when ADMIN_JWT_SECRET is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveVerifyLLM, "verify-llm", false, "ping the LLM provider at startup and refuse to start if it fails")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Printf("legislativas %s starting", version)

	cfg := config.Load()
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, appOptions{needLLM: true, verifyLLM: serveVerifyLLM, needBackends: true})
	if err != nil {
		return err
	}
	defer a.Close()

	if a.auth == nil {
		log.Println("ADMIN_JWT_SECRET not set, admin routes disabled")
	}

	// Typed nils must not reach the Pinger interfaces
	var db, cache http.Pinger
	if a.db != nil {
		db = a.db
	}
	if a.redisCache != nil {
		cache = a.redisCache
	}

	server := http.NewServer(
		http.Config{
			Host:        "0.0.0.0",
			Port:        cfg.Port,
			Version:     version,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      a.logger,
		},
		a.answers,
		a.admin,
		a.auth,
		db,
		cache,
	)

	return server.Start()
}
