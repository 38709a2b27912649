// Command generate_demo creates a demo database with sample users and words.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/lexicology/internal/database"
	"github.com/mrlokans/lexicology/internal/database/users"
	"github.com/mrlokans/lexicology/internal/database/words"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	userRepo := users.NewRepository(db)
	wordRepo := words.NewRepository(db)

	for _, cfg := range demoUsers() {
		user, err := userRepo.Create(cfg.input)
		if err != nil {
			log.Printf("Failed to create user %s: %v", cfg.input.FirstName, err)
			continue
		}
		log.Printf("Created user %s %s (%d words)", user.FirstName, user.LastName, len(cfg.words))

		for _, w := range cfg.words {
			w.UserID = user.ID
			if _, err := wordRepo.Create(w); err != nil {
				log.Printf("Failed to create word %s: %v", w.Word, err)
			}
		}
	}

	log.Println("Demo database generated successfully!")
}

// demoUser holds a user and their vocabulary for deferred owner assignment.
type demoUser struct {
	input users.UserInput
	words []words.WordInput
}

func demoUsers() []demoUser {
	return []demoUser{
		{
			input: users.UserInput{
				FirstName:  "Ada",
				LastName:   "Marsh",
				Email:      ptr("ada.marsh@example.com"),
				BirthDate:  "1991-04-12",
				Categories: []string{"Programming", "Science"},
			},
			words: []words.WordInput{
				{
					Word:     "idempotent",
					Meaning:  "producing the same result no matter how many times it is applied",
					Sentence: "The migration is idempotent, so rerunning it is safe.",
					Category: ptr("Programming"),
				},
				{
					Word:     "entropy",
					Meaning:  "a measure of disorder in a system",
					Sentence: "Entropy always increases in a closed system.",
					Category: ptr("Science"),
				},
				{
					Word:     "heuristic",
					Meaning:  "a practical shortcut for solving a problem",
					Sentence: "The planner uses a heuristic to prune the search space.",
					Category: ptr("Technical"),
				},
			},
		},
		{
			input: users.UserInput{
				FirstName:  "Tomas",
				LastName:   "Reyes",
				Email:      ptr("tomas.reyes@example.com"),
				BirthDate:  "1987-11-02",
				Categories: []string{"Literature", "Philosophy"},
			},
			words: []words.WordInput{
				{
					Word:     "serendipity",
					Meaning:  "finding something good without looking for it",
					Sentence: "Meeting her was pure serendipity.",
					Category: ptr("Literature"),
				},
				{
					Word:     "ephemeral",
					Meaning:  "lasting for a very short time",
					Sentence: "Fame is often ephemeral.",
					Category: ptr("Philosophy"),
				},
			},
		},
		{
			input: users.UserInput{
				FirstName:  "Mina",
				LastName:   "Okafor",
				BirthDate:  "1999-06-23",
				Categories: []string{"Medical"},
			},
			words: []words.WordInput{
				{
					Word:     "iatrogenic",
					Meaning:  "caused by medical treatment itself",
					Sentence: "The infection was iatrogenic, picked up during surgery.",
					Category: ptr("Medical"),
				},
			},
		},
	}
}

func ptr(s string) *string {
	return &s
}
