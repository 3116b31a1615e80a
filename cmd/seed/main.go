package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/dcastillo-dev/usuarios-api/config"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@usuarios.dev"
	plaintext := "password123"
	nombre := "Admin"

	pwd, err := valueobject.PasswordFromPlainText(plaintext)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (nombre, email, password, activo)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET nombre = EXCLUDED.nombre, updated_at = now()
		RETURNING id
	`, nombre, email, pwd.Hash()).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed usuario: %v", err)
	}
	fmt.Printf("seeded usuario: id=%d email=%s password=%s\n", id, email, plaintext)

	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role_name, created_at)
		VALUES ($1, 'admin', now())
		ON CONFLICT (user_id, role_name) DO NOTHING
	`, id); err != nil {
		log.Fatalf("failed to assign admin role: %v", err)
	}
	fmt.Println("assigned admin role to seeded usuario (if not already)")
}
