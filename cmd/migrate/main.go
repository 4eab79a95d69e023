package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"taskboard/config"
	"taskboard/database"

	"github.com/joho/godotenv"
)

// Usage: migrate [up|down|status|version|redo|reset] [args...]
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		DatabaseURL:    cfg.DatabaseURL,
		Path:           cfg.DBPath,
		SkipMigrations: true,
	})
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer db.Close()

	log.Printf("Running migration command %q on %s", command, db.Dialect)
	if err := db.Migrate(ctx, command, args...); err != nil {
		log.Fatalf("Migration %s failed: %v", command, err)
	}

	fmt.Println("\nMigrations completed!")
}
