package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Seed insère un compte admin et un catalogue de démonstration.
// Rejouable: les lignes déjà présentes sont laissées en place.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	if err := seedAdmin(db, adminEmail, adminPassword); err != nil {
		return err
	}
	return seedCatalog(db)
}

// seedAdmin crée le compte admin initial s'il n'existe pas
func seedAdmin(db *sql.DB, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, password_hash, role, created_at, active)
		 VALUES ($1, $2, $3, 'admin', $4, TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, string(hash), time.Now().UTC(),
	)
	return errors.Wrap(err, "seed admin user")
}

// seedCatalog insère des catégories et articles de démonstration
func seedCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return errors.Wrap(err, "count categories")
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	categories := []struct {
		name        string
		description string
	}{
		{"Electrónica", "Dispositivos y accesorios electrónicos"},
		{"Hogar", "Artículos para el hogar"},
		{"Deportes", "Material deportivo"},
	}

	articles := []struct {
		name     string
		price    float64
		stock    int
		featured bool
	}{
		{"Auriculares inalámbricos", 59.90, 120, true},
		{"Teclado mecánico", 89.00, 45, false},
		{"Lámpara de escritorio", 24.50, 80, false},
		{"Cafetera italiana", 32.00, 60, true},
		{"Balón de fútbol", 19.99, 150, false},
		{"Esterilla de yoga", 27.50, 95, true},
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin seed")
	}
	defer tx.Rollback()

	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		id := uuid.New()
		if _, err := tx.Exec(
			`INSERT INTO categories (id, name, description, created_at, active) VALUES ($1, $2, $3, $4, TRUE)`,
			id, c.name, c.description, now,
		); err != nil {
			return errors.Wrap(err, "seed category")
		}
		categoryIDs = append(categoryIDs, id)
	}

	for i, a := range articles {
		if _, err := tx.Exec(
			`INSERT INTO articles (id, name, description, price, stock, category_id, image_url, featured, created_at, active)
			 VALUES ($1, $2, '', $3, $4, $5, '', $6, $7, TRUE)`,
			uuid.New(), a.name, a.price, a.stock, categoryIDs[i%len(categoryIDs)], a.featured, now,
		); err != nil {
			return errors.Wrap(err, "seed article")
		}
	}

	return errors.Wrap(tx.Commit(), "commit seed")
}

// ReactivateArticles réactive tous les articles désactivés, opération de
// maintenance ponctuelle
func ReactivateArticles(db *sql.DB) (int64, error) {
	result, err := db.Exec(`UPDATE articles SET active = TRUE WHERE active = FALSE`)
	if err != nil {
		return 0, errors.Wrap(err, "reactivate articles")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	return affected, nil
}
