// Command server binds internal/httpapi to a SQLite-backed internal/store
// and serves spec.md §6's control message surface over HTTP, the process
// collaborators actually run.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"evocell/internal/httpapi"
	"evocell/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "evocell.db", "SQLite database path for completed GA runs")
	flag.Parse()

	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	server := httpapi.NewServerWithStore(db)

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("evocell server listening on %s (db: %s)", *addr, *dbPath)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
