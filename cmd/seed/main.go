// Package main provides a CLI tool for creating the schema and seeding
// the database with an admin user and optional demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema is up to date")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@localhost.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, role, is_active)
		VALUES ($1, $2, 'System Admin', $3, 'admin', true)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	type productSeed struct {
		name     string
		unit     string
		price    string
		minStock int
		stock    int
	}
	categories := map[string][]productSeed{
		"Beverages": {
			{"Still water 1.5L", "bottle", "0.80", 24, 120},
			{"Orange juice 1L", "carton", "2.40", 12, 30},
		},
		"Dry goods": {
			{"Flour T55 1kg", "bag", "1.10", 20, 75},
			{"Sugar 1kg", "bag", "1.35", 15, 8},
		},
		"Dairy": {
			{"Whole milk 1L", "bottle", "1.20", 30, 18},
		},
	}

	today := calendar.Today(time.Local)
	for catName, seeds := range categories {
		catID := id.New()
		tag, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, catID, catName)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", catName, err)
		}
		if tag.RowsAffected() == 0 {
			if err := pool.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1`, catName).Scan(&catID); err != nil {
				return fmt.Errorf("fetch category %s: %w", catName, err)
			}
		}

		for _, p := range seeds {
			productID := id.New()
			tag, err := pool.Exec(ctx, `
				INSERT INTO products (id, category_id, name, unit, unit_price, min_stock, actual_stock)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (name) DO NOTHING
			`, productID, catID, p.name, p.unit, p.price, p.minStock, p.stock)
			if err != nil {
				return fmt.Errorf("seed product %s: %w", p.name, err)
			}
			if tag.RowsAffected() == 0 {
				continue
			}
			// Opening entry so the ledger starts from a persisted snapshot.
			_, err = pool.Exec(ctx, `
				INSERT INTO stock_entries (id, product_id, entry_date, quantity_in, quantity_out, current_stock, notes)
				VALUES ($1, $2, $3, $4, 0, $4, 'opening stock')
				ON CONFLICT (product_id, entry_date) DO NOTHING
			`, id.New(), productID, string(today), p.stock)
			if err != nil {
				return fmt.Errorf("seed opening entry for %s: %w", p.name, err)
			}
		}
	}

	log.Info("demo data seeded")
	return nil
}
