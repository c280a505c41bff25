// Package storage provides SQLite-based persistence for joystick
// calibration profiles. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/handheld-arcade/internal/input"
)

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "default"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Profile is a stored calibration.
type Profile struct {
	Name        string
	Calibration input.StickCalibration
	UpdatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS calibrations (
			profile TEXT PRIMARY KEY,
			x_min INTEGER NOT NULL,
			x_center INTEGER NOT NULL,
			x_max INTEGER NOT NULL,
			y_min INTEGER NOT NULL,
			y_center INTEGER NOT NULL,
			y_max INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func profileName(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	return profile
}

// SaveCalibration stores cal under profile, replacing any previous one.
func (s *Store) SaveCalibration(profile string, cal input.StickCalibration) error {
	_, err := s.db.Exec(
		`INSERT INTO calibrations (profile, x_min, x_center, x_max, y_min, y_center, y_max, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
		   x_min = excluded.x_min, x_center = excluded.x_center, x_max = excluded.x_max,
		   y_min = excluded.y_min, y_center = excluded.y_center, y_max = excluded.y_max,
		   updated_at = excluded.updated_at`,
		profileName(profile),
		cal.X.Min, cal.X.Center, cal.X.Max,
		cal.Y.Min, cal.Y.Center, cal.Y.Max,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save calibration: %w", err)
	}
	return nil
}

// LoadCalibration returns the calibration stored under profile.
// ok is false when the profile does not exist.
func (s *Store) LoadCalibration(profile string) (input.StickCalibration, bool, error) {
	p, err := s.scanProfile(s.db.QueryRow(
		`SELECT profile, x_min, x_center, x_max, y_min, y_center, y_max, updated_at
		 FROM calibrations WHERE profile = ?`,
		profileName(profile),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return input.StickCalibration{}, false, nil
	}
	if err != nil {
		return input.StickCalibration{}, false, fmt.Errorf("storage: cannot load calibration: %w", err)
	}
	return p.Calibration, true, nil
}

// DeleteCalibration removes a profile. It reports whether one existed.
func (s *Store) DeleteCalibration(profile string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM calibrations WHERE profile = ?", profileName(profile))
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete calibration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// Profiles lists every stored profile ordered by name.
func (s *Store) Profiles() ([]Profile, error) {
	rows, err := s.db.Query(
		`SELECT profile, x_min, x_center, x_max, y_min, y_center, y_max, updated_at
		 FROM calibrations ORDER BY profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := s.scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return profiles, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanProfile(row scanner) (Profile, error) {
	var p Profile
	var updatedAt any
	err := row.Scan(
		&p.Name,
		&p.Calibration.X.Min, &p.Calibration.X.Center, &p.Calibration.X.Max,
		&p.Calibration.Y.Min, &p.Calibration.Y.Center, &p.Calibration.Y.Max,
		&updatedAt,
	)
	if err != nil {
		return Profile{}, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := updatedAt.(type) {
	case time.Time:
		p.UpdatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			p.UpdatedAt = parsed
		}
	}
	return p, nil
}
