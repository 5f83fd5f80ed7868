package database

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/lib/pq"

	"github.com/ladrillo-finance/ladrillo/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database connection error ❌: %v", err)
		return nil, err
	}
	err = createPropertyTable(db)
	if err != nil {
		return nil, err
	}
	err = createMovementTable(db)
	if err != nil {
		return nil, err
	}
	err = createRuleTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createPropertyTable creates a PostgreSQL table for the Property struct
func createPropertyTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id SERIAL PRIMARY KEY,
			property_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			address TEXT,
			purchase_price NUMERIC(14,2) NOT NULL DEFAULT 0,
			tenant_name TEXT,
			monthly_rent NUMERIC(14,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			meta_data JSONB
		)
	`)
	if err != nil {
		log.Printf("Error creating properties table: %v", err)
	}
	return err
}

// createMovementTable creates a PostgreSQL table for the FinancialMovement struct.
// The unique index enforces the (scope, date, concept, amount) dedup key; NULL
// property ids collapse onto the empty string so the global pool dedups too.
func createMovementTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS movements (
			id SERIAL PRIMARY KEY,
			movement_id TEXT NOT NULL UNIQUE,
			property_id TEXT REFERENCES properties(property_id),
			date DATE NOT NULL,
			concept TEXT NOT NULL,
			amount NUMERIC(14,2) NOT NULL,
			bank_balance NUMERIC(14,2),
			category TEXT,
			subcategory TEXT,
			tenant_name TEXT,
			is_classified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating movements table: %v", err)
		return err
	}
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS movements_dedup_key
		ON movements (COALESCE(property_id, ''), date, concept, amount)
	`)
	if err != nil {
		log.Printf("Error creating movements dedup index: %v", err)
	}
	return err
}

// createRuleTable creates a PostgreSQL table for the ClassificationRule struct
func createRuleTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS classification_rules (
			id SERIAL PRIMARY KEY,
			rule_id TEXT NOT NULL UNIQUE,
			property_id TEXT REFERENCES properties(property_id),
			keyword TEXT NOT NULL,
			category TEXT NOT NULL CHECK (category IN ('rent', 'mortgage', 'expense')),
			subcategory TEXT,
			tenant_name TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating classification_rules table: %v", err)
	}
	return err
}
