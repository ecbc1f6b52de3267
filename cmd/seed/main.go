// Command seed populates the Ripple database with demo data.
package main

import (
	"flag"
	"log"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	maxDays := flag.Int("max-days", 90, "Spread generated timestamps over this many days")
	flag.Parse()

	log.Printf("Seeding target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
	}

	if err := seed.NewSeeder(db, opts).Run(opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
