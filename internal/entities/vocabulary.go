package entities

import (
	"time"
)

// DefaultWordSource is recorded on words created without an explicit source.
const DefaultWordSource = "User"

// User is a registered vocabulary-tracking user. IDs are generated UUID
// strings. The categories column is a JSON-serialized cache of the names the
// user picked at signup; the normalized membership lives in user_categories
// and the cache is rewritten on every update.
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Email      *string   `gorm:"uniqueIndex;size:255" json:"email"`
	BirthDate  string    `gorm:"size:10;not null" json:"birth_date"`
	Categories string    `gorm:"default:'[]'" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Deserialized from the categories column by the repository.
	CategoryNames []string `gorm:"-" json:"categories"`

	Words          []Word         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	UserCategories []UserCategory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Word is a single vocabulary entry owned by a user. Category is free text
// and intentionally not a foreign key to categories.name; the two may drift.
type Word struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       *string   `gorm:"index;size:36" json:"user_id"`
	Word         string    `gorm:"index;size:256;not null" json:"word"`
	Meaning      string    `gorm:"type:text;not null" json:"meaning"`
	Sentence     string    `gorm:"type:text;not null" json:"sentence"`
	Category     *string   `gorm:"index;size:100" json:"category"`
	Source       string    `gorm:"size:100;default:'User'" json:"source"`
	CreationDate time.Time `gorm:"column:creation_date" json:"creation_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WordWithOwner is a word row joined with the owning user's denormalized
// fields. The owner columns are null when the user row no longer exists.
type WordWithOwner struct {
	Word      `gorm:"embedded"`
	FirstName *string `gorm:"column:first_name" json:"first_name"`
	LastName  *string `gorm:"column:last_name" json:"last_name"`
	Email     *string `gorm:"column:email" json:"email"`
}

// Category is one entry of the fixed seeded catalog.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Icon      *string   `gorm:"size:100" json:"icon"`
	CreatedAt time.Time `json:"created_at"`

	UserCategories []UserCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserCategory links a user to a catalog category they are interested in.
// At most one row per (user, category) pair.
type UserCategory struct {
	UserID     string `gorm:"primaryKey;size:36" json:"user_id"`
	CategoryID int64  `gorm:"primaryKey" json:"category_id"`
}

func (User) TableName() string {
	return "users"
}

func (Word) TableName() string {
	return "words"
}

func (Category) TableName() string {
	return "categories"
}

func (UserCategory) TableName() string {
	return "user_categories"
}

// CategoryWithIcon is a joined (name, icon) row for a user's memberships.
type CategoryWithIcon struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// CategoryCount is an aggregated word count per free-text word category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CatalogCategory is a catalog entry with the number of words whose free-text
// category matches its name. Counts can be zero or stale when names drift.
type CatalogCategory struct {
	Name      string  `json:"name"`
	Icon      *string `json:"icon"`
	WordCount int64   `json:"word_count"`
}

// UserStats aggregates a single user's vocabulary usage.
type UserStats struct {
	TotalWords       int64 `json:"total_words"`
	UniqueCategories int64 `json:"unique_categories"`
	RecentWords      int64 `json:"recent_words"`
}

// GlobalStats aggregates activity across all users.
type GlobalStats struct {
	TotalWords        int64           `json:"total_words"`
	TotalUsers        int64           `json:"total_users"`
	RecentActivity    int64           `json:"recent_activity"`
	PopularCategories []CategoryCount `json:"popular_categories"`
}
