package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/demo"
	"github.com/mrlokans/bookreviews/internal/services"
)

// SeedDemoCommand populates the database with the demo dataset.
type SeedDemoCommand struct {
	DatabasePath string
}

func NewSeedDemoCommand() *SeedDemoCommand {
	return &SeedDemoCommand{}
}

func (cmd *SeedDemoCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-demo [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seed the database with demo users, books, reviews and votes.\n")
		fmt.Fprintf(os.Stderr, "Running twice is safe; existing demo data is left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedDemoCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	bookRepo := books.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)

	cfg := config.NewConfig()
	authService, err := auth.NewService(userRepo, cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}

	checker := services.NewChecker(bookRepo, userRepo)
	bookService := services.NewBookService(bookRepo)
	reviewService := services.NewReviewService(reviewRepo, checker)

	seeder := demo.NewSeeder(authService, userRepo, bookService, reviewService)
	if err := seeder.Seed(); err != nil {
		return err
	}

	fmt.Printf("Demo data ready in %s\n", cmd.DatabasePath)
	return nil
}
