package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Default operator account seeded into an empty store.
const (
	DefaultUsername = "admin"
	DefaultPassword = "password123"
)

// ErrUnknownAccount is returned when no account matches a username.
var ErrUnknownAccount = errors.New("unknown account")

// Store persists employees and operator accounts in SQLite. It is safe for
// concurrent use; SSH sessions share one Store.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the store at path and seeds the
// sample staff and the default operator when the tables are empty.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening employee db: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.seed(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			department  TEXT NOT NULL CHECK (department <> ''),
			full_name   TEXT NOT NULL CHECK (full_name <> ''),
			hire_date   TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS accounts (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating employee tables: %w", err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	var employees, accounts int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&employees); err != nil {
		return fmt.Errorf("counting employees: %w", err)
	}
	if employees == 0 {
		for _, r := range SampleRecords() {
			if _, err := s.Add(ctx, r); err != nil {
				return err
			}
		}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&accounts); err != nil {
		return fmt.Errorf("counting accounts: %w", err)
	}
	if accounts == 0 {
		if err := s.SetPassword(ctx, DefaultUsername, DefaultPassword); err != nil {
			return err
		}
	}
	return nil
}

// Add inserts a record and returns its id.
func (s *Store) Add(ctx context.Context, r *Record) (int64, error) {
	if r.Department == "" || r.FullName == "" {
		return 0, fmt.Errorf("inserting employee: department and full name are required")
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (department, full_name, hire_date) VALUES (?, ?, ?)`,
		r.Department, r.FullName, r.HireDateString(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting employee: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting employee: %w", err)
	}
	r.ID = id
	return id, nil
}

// List returns all employees in insertion order, without photos.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, department, full_name, hire_date FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			id                   int64
			dept, name, hireDate string
		)
		if err := rows.Scan(&id, &dept, &name, &hireDate); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		hired, err := time.Parse(DateLayout, hireDate)
		if err != nil {
			return nil, fmt.Errorf("employee %d: parsing hire date %q: %w", id, hireDate, err)
		}
		r := NewRecord(dept, name, hired)
		r.ID = id
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return records, nil
}

// SetPassword creates or replaces an operator account.
func (s *Store) SetPassword(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO accounts (username, password_hash) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash`,
		username, string(hash),
	)
	if err != nil {
		return fmt.Errorf("saving account %q: %w", username, err)
	}
	return nil
}

// PasswordHash returns the bcrypt hash stored for username, or
// ErrUnknownAccount.
func (s *Store) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM accounts WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("looking up account %q: %w", username, err)
	}
	return []byte(hash), nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
