// Command seed populates both service databases with demo data.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean databases before seeding")
	dryRun := flag.Bool("dry-run", false, "Generate without writing to the databases")
	flag.Parse()

	log.Println("Quill Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	identityDB, err := database.Connect(cfg, cfg.IdentityDBName, &models.User{}, &models.Follow{})
	if err != nil {
		log.Fatalf("Failed to connect to identity database: %v", err)
	}
	contentDB, err := database.Connect(cfg, cfg.ContentDBName, &models.Post{}, &models.Comment{})
	if err != nil {
		log.Fatalf("Failed to connect to content database: %v", err)
	}

	seeder := seed.NewSeeder(identityDB, contentDB, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		DryRun:      *dryRun,
	})

	if *shouldClean {
		if err := seeder.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := seeder.Run()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. %d users seeded; log in with any of them using password %q", len(users), seed.DemoPassword)
}
