package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables and indexes if they don't exist. The unique
// indexes on service_number, email_address and username carry the
// duplicate-detection guarantees; nothing else enforces them.
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS officers (
		id UUID PRIMARY KEY,
		surname TEXT NOT NULL,
		first_name TEXT NOT NULL,
		middle_name TEXT NOT NULL DEFAULT '',
		date_of_birth DATE NOT NULL,
		gender TEXT NOT NULL CHECK (gender IN ('Male', 'Female')),
		blood_group TEXT NOT NULL DEFAULT '',
		state_of_origin TEXT NOT NULL,
		lga TEXT NOT NULL,
		nationality TEXT NOT NULL DEFAULT 'Nigerian',
		home_address TEXT NOT NULL,
		service_number TEXT NOT NULL,
		rank TEXT NOT NULL,
		date_of_enlistment DATE NOT NULL,
		date_of_last_promotion DATE,
		command TEXT NOT NULL,
		unit TEXT NOT NULL,
		specialization TEXT NOT NULL DEFAULT '',
		current_posting TEXT NOT NULL,
		date_of_current_posting DATE,
		phone_number VARCHAR(11) NOT NULL,
		alternate_phone VARCHAR(11) NOT NULL DEFAULT '',
		email_address TEXT NOT NULL,
		contact_address TEXT NOT NULL,
		highest_qualification TEXT NOT NULL,
		discipline TEXT NOT NULL DEFAULT '',
		institution TEXT NOT NULL DEFAULT '',
		year_of_graduation INT,
		professional_certifications TEXT NOT NULL DEFAULT '',
		nok_name TEXT NOT NULL,
		nok_relationship TEXT NOT NULL,
		nok_phone VARCHAR(11) NOT NULL,
		nok_address TEXT NOT NULL,
		marital_status TEXT NOT NULL CHECK (marital_status IN ('Single', 'Married', 'Divorced', 'Widowed')),
		number_of_dependents INT NOT NULL DEFAULT 0,
		nin VARCHAR(11) NOT NULL DEFAULT '',
		special_skills TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		officer_signature TEXT NOT NULL,
		submission_date DATE NOT NULL,
		submission_timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		form_version TEXT NOT NULL DEFAULT '1.0',
		status TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected', 'updated')) DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS uq_officers_service_number ON officers(service_number);
	CREATE UNIQUE INDEX IF NOT EXISTS uq_officers_email_address ON officers(email_address);

	-- Indexes matching the dashboard filters
	CREATE INDEX IF NOT EXISTS idx_officers_command ON officers(command);
	CREATE INDEX IF NOT EXISTS idx_officers_rank ON officers(rank);
	CREATE INDEX IF NOT EXISTS idx_officers_status ON officers(status);
	CREATE INDEX IF NOT EXISTS idx_officers_submission_timestamp ON officers(submission_timestamp DESC);

	CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		full_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'superadmin')) DEFAULT 'admin',
		status TEXT NOT NULL CHECK (status IN ('active', 'inactive')) DEFAULT 'active',
		last_login TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS uq_admins_username ON admins(username);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}
