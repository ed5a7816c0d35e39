package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"inkwell/config"
	"inkwell/pkg/helpers"
)

// Seeds a demo account with one published post and one draft, for local
// development against a freshly migrated database.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "demowriter", "demo@inkwell.local", "Demo", "Writer", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=demowriter password=%s\n", userID, password)

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (user_id, title, content, tags, status)
		VALUES ($1, $2, $3, $4, 'published')
		RETURNING id
	`, userID, "Hello, Inkwell", "<p>First published post on a fresh database.</p>", "{go,demo}").Scan(&postID)
	if err != nil {
		log.Fatalf("failed to seed published post: %v", err)
	}
	fmt.Printf("seeded published post: id=%s\n", postID)

	err = db.QueryRow(`
		INSERT INTO posts (user_id, title, content, status)
		VALUES ($1, $2, $3, 'draft')
		RETURNING id
	`, userID, "Work in progress", "<p>Not published yet.</p>").Scan(&postID)
	if err != nil {
		log.Fatalf("failed to seed draft: %v", err)
	}
	fmt.Printf("seeded draft: id=%s\n", postID)
}
