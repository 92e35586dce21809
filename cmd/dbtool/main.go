package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"pictoroute/internal/adapters/cache"
	"pictoroute/internal/adapters/repositories"
	"pictoroute/internal/config"
	"pictoroute/internal/platform/db"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := flag.String("driver", config.Get("DB_DRIVER", db.DriverSQLite), "database driver (sqlite or pgx)")
	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/addresses.json"), "JSON file of geocoded addresses; empty skips seeding")
	flag.Parse()

	dsn := config.Get("DB_PATH", "data/app.db")
	if *driver == db.DriverPostgres {
		dsn = config.Get("DATABASE_URL", "")
		if dsn == "" {
			log.Fatal("DATABASE_URL is required")
		}
	}

	conn, err := db.Open(*driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, *driver, *seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		return nil
	}

	c, err := cache.NewSQLCacheForDriver(driver, conn)
	if err != nil {
		return err
	}

	log.Printf("Seeding geocode cache from %s...", seedPath)
	n, err := repositories.SeedFromJSON(ctx, c, seedPath)
	if err != nil {
		return err
	}
	log.Printf("Seeding complete. entries=%d", n)

	return nil
}
