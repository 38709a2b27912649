// Package database owns the sqlite store: schema migration, the default
// category catalog, and the parameterized statement execution helpers that
// the repository packages build on.
package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/lexicology/internal/entities"
)

var defaultCategories = []entities.Category{
	{Name: "Technical", Icon: ptr("gear")},
	{Name: "Programming", Icon: ptr("keyboard")},
	{Name: "Cooking", Icon: ptr("fork.knife")},
	{Name: "Sports", Icon: ptr("sportscourt")},
	{Name: "History", Icon: ptr("book.closed")},
	{Name: "Science", Icon: ptr("atom")},
	{Name: "Arts & Culture", Icon: ptr("paintpalette")},
	{Name: "Slang", Icon: ptr("quote.bubble")},
	{Name: "Academic", Icon: ptr("graduationcap")},
	{Name: "Colloquial", Icon: ptr("waveform")},
	{Name: "Finance", Icon: ptr("dollarsign.circle")},
	{Name: "Philosophy", Icon: ptr("brain.head.profile")},
	{Name: "Literature", Icon: ptr("book")},
	{Name: "Medical", Icon: ptr("stethoscope")},
	{Name: "Technology", Icon: ptr("laptopcomputer")},
}

func ptr(s string) *string {
	return &s
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the sqlite store, migrates the schema and
// seeds the default category catalog. Safe to call against an already
// initialized store.
func NewDatabase(dbPath string) (*Database, error) {
	// Cascade deletes on words and user_categories need the pragma enabled
	// on every pooled connection.
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Word{},
		&entities.UserCategory{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedCategories(); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedCategories inserts any default category that is not present yet.
// Existing rows are left untouched, so reseeding never overwrites icons.
func (d *Database) seedCategories() error {
	for _, category := range defaultCategories {
		_, err := d.Exec(
			`INSERT OR IGNORE INTO categories (name, icon, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
			category.Name, category.Icon,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
	}
	return nil
}

// GenerateID returns a new opaque identifier for users and words.
func GenerateID() string {
	return uuid.NewString()
}

// Exec runs a mutation statement and returns the number of affected rows.
func (d *Database) Exec(query string, args ...any) (int64, error) {
	result := d.DB.Exec(query, args...)
	return result.RowsAffected, result.Error
}

// FetchOne runs a single-row query and scans it into dest. A missing row is
// reported as (false, nil), not as an error.
func (d *Database) FetchOne(dest any, query string, args ...any) (bool, error) {
	result := d.DB.Raw(query, args...).Scan(dest)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FetchAll runs a multi-row query and scans the ordered rows into dest,
// which must be a pointer to a slice.
func (d *Database) FetchAll(dest any, query string, args ...any) error {
	return d.DB.Raw(query, args...).Scan(dest).Error
}

// Transaction runs fn against a transaction-scoped view of the store and
// rolls everything back when fn returns an error.
func (d *Database) Transaction(fn func(tx *Tx) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Tx{db: tx})
	})
}

// Tx exposes the execution helpers inside a transaction scope.
type Tx struct {
	db *gorm.DB
}

func (t *Tx) Exec(query string, args ...any) (int64, error) {
	result := t.db.Exec(query, args...)
	return result.RowsAffected, result.Error
}

func (t *Tx) FetchOne(dest any, query string, args ...any) (bool, error) {
	result := t.db.Raw(query, args...).Scan(dest)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (t *Tx) FetchAll(dest any, query string, args ...any) error {
	return t.db.Raw(query, args...).Scan(dest).Error
}
