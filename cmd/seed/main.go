// Package main implements a standalone seed command that populates the
// catalog with the storefront's demo products. Seeding is idempotent: rerun
// it freely and existing rows are refreshed in place.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/affirmed-honey/dulin2/internal/config"
	"github.com/affirmed-honey/dulin2/migrations"
	"github.com/affirmed-honey/dulin2/pkg/database"
	"github.com/affirmed-honey/dulin2/pkg/logger"
	"github.com/affirmed-honey/dulin2/pkg/slug"
)

type seedProduct struct {
	Name        string
	Category    string
	Price       int64
	Image       string
	Images      []string
	Description string
	Stock       int
}

// Prices are in kobo.
var products = []seedProduct{
	{
		Name:        "Wavy Teddy Mirror",
		Category:    "Bedroom Items",
		Price:       60000,
		Image:       "img/Mirror 1.jpeg",
		Images:      []string{"img/Mirror 1.jpeg"},
		Description: "Stylish wavy teddy mirror for modern bedrooms.",
		Stock:       20,
	},
	{
		Name:        "Electric Kettle",
		Category:    "Kitchen",
		Price:       29900,
		Image:       "img/kettle1-removebg-preview.png",
		Images:      []string{"img/kettle1-removebg-preview.png"},
		Description: "Fast-boil electric kettle with auto shutoff.",
		Stock:       50,
	},
	{
		Name:        "Decorative Ornament",
		Category:    "Ornaments",
		Price:       51900,
		Image:       "img/ornanent1.jpg",
		Images:      []string{"img/ornanent1.jpg"},
		Description: "Minimalist decorative ornament for living spaces.",
		Stock:       35,
	},
	{
		Name:        "Office Lamp",
		Category:    "Lamps",
		Price:       92100,
		Image:       "img/lamp1.jpg",
		Images:      []string{"img/lamp1.jpg"},
		Description: "Adjustable office lamp with warm light.",
		Stock:       15,
	},
	{
		Name:        "Flower Vase",
		Category:    "Decoration",
		Price:       8900,
		Image:       "img/flowervase3.jpg",
		Images:      []string{"img/flowervase3.jpg"},
		Description: "Elegant glass flower vase.",
		Stock:       60,
	},
	{
		Name:        "Storage Rack",
		Category:    "Storage",
		Price:       19900,
		Image:       "img/storagerack1.jpg",
		Images:      []string{"img/storagerack1.jpg"},
		Description: "Space-saving storage rack.",
		Stock:       40,
	},
}

const upsertQuery = `
	INSERT INTO products (slug, name, category, description, price, image, images, stock)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (slug) DO UPDATE
	SET name = EXCLUDED.name,
	    category = EXCLUDED.category,
	    description = EXCLUDED.description,
	    price = EXCLUDED.price,
	    image = EXCLUDED.image,
	    images = EXCLUDED.images,
	    stock = EXCLUDED.stock,
	    updated_at = NOW()`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("dulin-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSL

	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, p := range products {
		s := slug.Generate(p.Name)
		_, err := pool.Exec(ctx, upsertQuery,
			s, p.Name, p.Category, p.Description, p.Price, p.Image, p.Images, p.Stock)
		if err != nil {
			log.Error("failed to seed product",
				slog.String("slug", s),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		log.Info("seeded product", slog.String("slug", s))
	}

	log.Info("seed complete", slog.Int("products", len(products)))
}
