/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the workforce engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration
  2. Parse command-line flags (flags override env)
  3. Initialize SQLite store
  4. Build the payroll window and the two facades
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default from SERVER_PORT, else 8080)
  -db      SQLite database path (default from DATABASE_PATH)
           Use ":memory:" for an in-memory database

ENVIRONMENT:
  SERVER_*   port and timeouts
  DATABASE_PATH
  PAYROLL_WINDOW_MONTHS, PAYROLL_WINDOW_END (pin for reproducible demos)
  WORKDAY_START_HOUR, WORKDAY_END_HOUR

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (configurable timeout)
  3. Close the store
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/workforce-engine/api"
	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/config"
	"github.com/warp/workforce-engine/engine"
	"github.com/warp/workforce-engine/payroll"
	"github.com/warp/workforce-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override environment
	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	windowEnd := cfg.Payroll.WindowEnd
	if windowEnd == "" {
		windowEnd = engine.MonthOf(time.Now())
	}
	window, err := engine.WindowEnding(windowEnd, cfg.Payroll.WindowMonths)
	if err != nil {
		log.Fatalf("Invalid payroll window end %q: %v", windowEnd, err)
	}

	pay := payroll.NewService(store, store, window)
	att := attendance.NewService(store, store, store)
	att.Policy = attendance.WorkdayPolicy{
		StartHour: cfg.Workday.StartHour,
		EndHour:   cfg.Workday.EndHour,
	}

	handler := api.NewHandler(pay, att, store, store, store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		log.Printf("💰 Payroll window: %s .. %s", window[0], window.Latest())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
