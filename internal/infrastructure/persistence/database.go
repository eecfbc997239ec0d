package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jdcrm/backend/internal/infrastructure/config"
	"github.com/jdcrm/backend/internal/infrastructure/persistence/models"
)

// Database holds a GORM connection. The same repository implementations run
// against either the remote Postgres store or the in-process simulated
// store, so lifecycle invariants hold identically in both modes.
type Database struct {
	DB *gorm.DB
}

// NewDatabase connects to the remote Postgres store
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithLogger(cfg, gormlogger.Default.LogMode(gormlogger.Silent))
}

// NewDatabaseWithLogger connects to the remote Postgres store with a custom logger
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gl gormlogger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// NewSimulatedDatabase opens an in-memory SQLite store that backs degraded
// mode. Each call gets its own named database so independent stores never
// share state; cache=shared only keeps the connection pool on one instance.
// The schema is migrated on open so the store is immediately usable.
func NewSimulatedDatabase() (*Database, error) {
	dsn := fmt.Sprintf("file:simulated-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open simulated store: %w", err)
	}

	// SQLite serves one writer at a time
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	d := &Database{DB: db}
	if err := d.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate simulated store: %w", err)
	}
	return d, nil
}

// Migrate creates or updates the schema for every persisted model
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.LeadModel{},
		&models.InteractionModel{},
		&models.AgentModel{},
		&models.BookingModel{},
		&models.ChargeModel{},
		&models.MilestoneModel{},
		&models.ProjectModel{},
		&models.UnitModel{},
	)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}
