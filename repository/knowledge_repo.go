package repository

import (
	"context"
	"encoding/json"

	"cardio_recommend/db"
	"cardio_recommend/models"
	"cardio_recommend/utils"
)

// InitSchema creates the knowledge base tables if they do not exist.
// Only the seeding command calls this; the service itself never writes.
func InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conditions (
			id CHAR(36) NOT NULL PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			name_en VARCHAR(255) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS supplements (
			id CHAR(36) NOT NULL PRIMARY KEY,
			condition_id CHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			dosage VARCHAR(100) NULL,
			mechanism TEXT NULL,
			keywords JSON NULL,
			warnings TEXT NULL,
			position INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_supplements_condition
				FOREIGN KEY (condition_id) REFERENCES conditions(id) ON DELETE CASCADE,
			INDEX idx_supplements_condition (condition_id)
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS synonyms (
			root VARCHAR(100) NOT NULL,
			term VARCHAR(100) NOT NULL,
			position INT NOT NULL DEFAULT 0,
			PRIMARY KEY (root, term)
		) CHARACTER SET utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadConditions returns all conditions in their static order.
func LoadConditions(ctx context.Context) ([]models.Condition, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, code, name, COALESCE(name_en, '')
		FROM conditions
		ORDER BY created_at, code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conditions []models.Condition
	for rows.Next() {
		var c models.Condition
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.NameEN); err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, rows.Err()
}

// LoadSupplements returns all supplements joined with their condition code,
// in the static seeding order. Retrieval ranking relies on this order for
// tie-breaking, so it must be stable across calls.
func LoadSupplements(ctx context.Context) ([]models.Supplement, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT s.id, c.code, s.name,
		       COALESCE(s.dosage, ''), COALESCE(s.mechanism, ''),
		       COALESCE(s.keywords, '[]'), COALESCE(s.warnings, '')
		FROM supplements s
		JOIN conditions c ON c.id = s.condition_id
		ORDER BY s.position, s.created_at, s.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supplements []models.Supplement
	for rows.Next() {
		var s models.Supplement
		var keywordsJSON string
		if err := rows.Scan(&s.ID, &s.ConditionCode, &s.Name, &s.Dosage, &s.Mechanism, &keywordsJSON, &s.Warnings); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &s.Keywords); err != nil {
			return nil, err
		}
		supplements = append(supplements, s)
	}
	return supplements, rows.Err()
}

// LoadSynonyms returns the synonym table, expansion terms ordered by position.
func LoadSynonyms(ctx context.Context) (models.SynonymTable, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT root, term
		FROM synonyms
		ORDER BY root, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := make(models.SynonymTable)
	for rows.Next() {
		var root, term string
		if err := rows.Scan(&root, &term); err != nil {
			return nil, err
		}
		table[root] = append(table[root], term)
	}
	return table, rows.Err()
}

// GetConditionIDByCode looks up a condition id, returning sql.ErrNoRows
// when the code is unknown.
func GetConditionIDByCode(ctx context.Context, code string) (string, error) {
	var id string
	err := db.DB.QueryRowContext(ctx, `SELECT id FROM conditions WHERE code = ?`, code).Scan(&id)
	return id, err
}

// InsertCondition creates a condition unless one with the same code exists.
// Returns the condition id either way.
func InsertCondition(ctx context.Context, c models.Condition) (string, error) {
	existing, err := GetConditionIDByCode(ctx, c.Code)
	if err == nil {
		return existing, nil
	}
	if !utils.IsSQLNoRowsError(err) {
		return "", err
	}

	_, err = db.DB.ExecContext(ctx, `
		INSERT INTO conditions (id, code, name, name_en)
		VALUES (?, ?, ?, NULLIF(?, ''))
	`, c.ID, c.Code, c.Name, c.NameEN)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// SupplementExists checks for a supplement with the same name under a condition.
func SupplementExists(ctx context.Context, conditionID, name string) (bool, error) {
	var count int
	err := db.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM supplements WHERE condition_id = ? AND name = ?
	`, conditionID, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertSupplement creates a supplement row under the given condition.
func InsertSupplement(ctx context.Context, conditionID string, s models.Supplement, position int) error {
	keywordsJSON, err := json.Marshal(s.Keywords)
	if err != nil {
		return err
	}
	_, err = db.DB.ExecContext(ctx, `
		INSERT INTO supplements (id, condition_id, name, dosage, mechanism, keywords, warnings, position)
		VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), CAST(? AS JSON), NULLIF(?, ''), ?)
	`, s.ID, conditionID, s.Name, s.Dosage, s.Mechanism, string(keywordsJSON), s.Warnings, position)
	return err
}

// ReplaceSynonyms rewrites the expansion list for one root term.
func ReplaceSynonyms(ctx context.Context, root string, terms []string) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM synonyms WHERE root = ?`, root); err != nil {
		return err
	}
	for i, term := range terms {
		if _, err := db.DB.ExecContext(ctx, `
			INSERT INTO synonyms (root, term, position) VALUES (?, ?, ?)
		`, root, term, i); err != nil {
			return err
		}
	}
	return nil
}

// CountSupplements reports how many supplement rows exist.
func CountSupplements(ctx context.Context) (int, error) {
	var count int
	err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM supplements`).Scan(&count)
	return count, err
}
