package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"refi_engine/pkg/api/admin"
	"refi_engine/pkg/api/calc"
	"refi_engine/pkg/api/clients"
	"refi_engine/pkg/api/rates"
	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/pricing"
	"refi_engine/pkg/core/store"
	"refi_engine/pkg/engine"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// File defaults first; stored admin settings override them below.
	defaults, err := params.LoadDefaults("config/defaults.yaml")
	if err != nil {
		fmt.Printf("[CONFIG] No defaults file, using built-ins: %v\n", err)
	}

	eng := &engine.Engine{Defaults: defaults}

	// Persistence is optional: without DATABASE_URL the API still serves the
	// calculation endpoints.
	ctx := context.Background()
	var clientsRepo *store.ClientsRepo
	var settingsRepo *store.SettingsRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[FATAL] Database init failed: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		clientsRepo = store.NewClientsRepo()
		settingsRepo = store.NewSettingsRepo()

		if stored, err := settingsRepo.LoadDefaults(ctx, eng.Defaults); err != nil {
			fmt.Printf("[CONFIG] Failed to load stored defaults: %v\n", err)
		} else {
			eng.Defaults = stored
		}
		if grid, err := settingsRepo.LoadGrid(ctx, pricing.LoanConventional); err == nil {
			eng.GridConventional = grid
		}
		if grid, err := settingsRepo.LoadGrid(ctx, pricing.LoanFHA); err == nil {
			eng.GridFHA = grid
		}
		fmt.Println("[STORE] Database connected")
	} else {
		fmt.Println("[STORE] DATABASE_URL not set, running without persistence")
	}

	// Decision cache: Redis when configured, in-memory otherwise.
	var cache store.DecisionCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = store.NewRedisDecisionCache(addr)
		fmt.Printf("[CACHE] Redis decision cache at %s\n", addr)
	} else {
		cache = store.NewMockDecisionCache()
		fmt.Println("[CACHE] REDIS_ADDR not set, using in-memory cache")
	}
	eng.Cache = cache

	// Calculation endpoints
	calcHandler := calc.NewHandler(eng)
	http.HandleFunc("/api/threshold", calcHandler.HandleThreshold)
	http.HandleFunc("/api/sensitivity", calcHandler.HandleSensitivity)

	// Rate quoting
	ratesHandler := rates.NewHandler(eng)
	http.HandleFunc("/api/rates", ratesHandler.HandleRates)

	// Client readiness and bulk recalculation
	clientsHandler := clients.NewHandler(eng, clientsRepo, cache)
	http.HandleFunc("/api/readiness", clientsHandler.HandleReadiness)
	http.HandleFunc("/api/recalculate", clientsHandler.HandleRecalculate)

	// Admin configuration
	adminHandler := admin.NewHandler(eng, settingsRepo)
	http.HandleFunc("/api/admin/settings", adminHandler.HandleSettings)
	http.HandleFunc("/api/admin/grid", adminHandler.HandleGrid)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/threshold")
	fmt.Println("  - POST /api/sensitivity")
	fmt.Println("  - POST /api/rates")
	fmt.Println("  - GET  /api/readiness?id=<client>")
	fmt.Println("  - POST /api/recalculate")
	fmt.Println("  - GET/PUT /api/admin/settings")
	fmt.Println("  - POST /api/admin/grid")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
