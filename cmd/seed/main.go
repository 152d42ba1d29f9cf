// Command seed fills a development database with demo users and prompts.
package main

import (
	"flag"
	"log"

	"prompthub/internal/config"
	"prompthub/internal/database"
	"prompthub/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of demo users to create")
	flag.IntVar(&opts.PromptsPerUser, "prompts", opts.PromptsPerUser, "prompts per user")
	flag.IntVar(&opts.CommentsOnShared, "comments", opts.CommentsOnShared, "total comments to scatter")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for every demo account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
