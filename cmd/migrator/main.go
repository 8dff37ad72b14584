package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/linemk/sattvik-shop/internal/config"
	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/storage"
)

const migrationTableName = "migrations"

// buildMigrateDSN добавляет к DSN имя таблицы версий
func buildMigrateDSN(dbCfg config.DatabaseConfig, migrationTable string) string {
	return dbCfg.DSN() + "&x-migrations-table=" + migrationTable
}

func main() {
	var (
		configPath         string
		migrationsPathFlag string
		down               bool
		grantAdmin         string
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&migrationsPathFlag, "migrations-path", "", "path to migration files")
	flag.BoolVar(&down, "down", false, "roll back all migrations")
	flag.StringVar(&grantAdmin, "grant-admin", "", "email of an existing user to grant the admin role")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		log.Fatal("config path is required: -config or CONFIG_PATH")
	}
	cfg := config.MustLoadByPath(configPath)

	migrationsPath := cfg.Migrations.Path
	if migrationsPathFlag != "" {
		migrationsPath = migrationsPathFlag
	}

	if cfg.Database.Password == "" {
		log.Fatal("DB_PASSWORD environment variable is required")
	}

	// Создаем объект мигратора
	m, err := migrate.New("file://"+migrationsPath, buildMigrateDSN(cfg.Database, migrationTableName))
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	apply, action := m.Up, "applied"
	if down {
		apply, action = m.Down, "rolled back"
	}
	if err := apply(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Println("No migrations to apply")
	} else {
		log.Printf("Migrations %s successfully", action)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if grantAdmin != "" {
		if err := grantAdminRole(db, grantAdmin); err != nil {
			log.Fatalf("failed to grant admin role: %v", err)
		}
		log.Printf("Admin role granted to %s", grantAdmin)
	}

	if err := printTables(db); err != nil {
		log.Fatalf("failed to list tables: %v", err)
	}
}

// grantAdminRole пользователь должен сначала войти через /api/auth
func grantAdminRole(db *sql.DB, email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := storage.NewUserRepository(db).GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user %s: %w", email, err)
	}
	return storage.NewRoleRepository(db).GrantRole(ctx, user.ID, models.RoleAdmin)
}

func printTables(db *sql.DB) error {
	rows, err := db.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	fmt.Println("Current tables in the database:")
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return err
		}
		fmt.Println(" -", tableName)
	}
	return rows.Err()
}
