package sidechannel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Database drivers selectable through provider.driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/jymfony/scriba/runtime/reflection"
)

// SQL drivers understood by the SQL backend.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// DefaultTable is the default SQL table name.
const DefaultTable = "reflection_classes"

// SQL stores class data as JSON rows keyed by class id.
type SQL struct {
	db     *sql.DB
	driver string
	table  string
	opts   options
}

var _ Backend = (*SQL)(nil)

// NewSQL wraps an open database. driver selects the placeholder dialect.
func NewSQL(db *sql.DB, driver, table string, opts ...Option) (*SQL, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if !isSQLDriver(driver) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
	if table == "" {
		table = DefaultTable
	}
	if !validIdentifier(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	return &SQL{db: db, driver: driver, table: table, opts: buildOptions(opts)}, nil
}

// OpenSQL opens dsn with driver and wraps it.
func OpenSQL(driver, dsn, table string, opts ...Option) (*SQL, error) {
	if !isSQLDriver(driver) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// In-memory databases exist per connection.
		db.SetMaxOpenConns(1)
	}

	s, err := NewSQL(db, driver, table, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the backing table if it does not exist.
func (s *SQL) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(36) PRIMARY KEY,
	fqcn TEXT NOT NULL,
	data TEXT NOT NULL
)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// ReflectionData loads the row for id. Query failures are logged and
// reported as absence.
func (s *SQL) ReflectionData(id reflection.ClassID) (*reflection.ClassData, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.timeout)
	defer cancel()

	data, err := s.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrClassNotFound) {
			s.opts.logger.Warn("reflection data lookup failed",
				zap.String("driver", s.driver),
				zap.String("class_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return data, true
}

// Get loads the row for id.
func (s *SQL) Get(ctx context.Context, id reflection.ClassID) (*reflection.ClassData, error) {
	query := fmt.Sprintf("SELECT data FROM %s WHERE id = %s", s.table, s.placeholder(1))

	var raw string
	err := s.db.QueryRowContext(ctx, query, string(id)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query class %s: %w", id, err)
	}

	return decodeClass([]byte(raw))
}

// Put inserts or replaces the row for id.
func (s *SQL) Put(ctx context.Context, id reflection.ClassID, data *reflection.ClassData) error {
	if data == nil {
		return fmt.Errorf("class data cannot be nil")
	}

	raw, err := encodeClass(data)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, fqcn, data) VALUES (%s, %s, %s) ON CONFLICT (id) DO UPDATE SET fqcn = excluded.fqcn, data = excluded.data",
		s.table, s.placeholder(1), s.placeholder(2), s.placeholder(3),
	)
	if _, err := s.db.ExecContext(ctx, query, string(id), data.QualifiedName(), string(raw)); err != nil {
		return fmt.Errorf("failed to store class %s: %w", id, err)
	}
	return nil
}

// Delete removes the row for id.
func (s *SQL) Delete(ctx context.Context, id reflection.ClassID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", s.table, s.placeholder(1))
	if _, err := s.db.ExecContext(ctx, query, string(id)); err != nil {
		return fmt.Errorf("failed to delete class %s: %w", id, err)
	}
	return nil
}

// ClassIDs lists stored ids in ascending order.
func (s *SQL) ClassIDs(ctx context.Context) ([]reflection.ClassID, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT id FROM %s ORDER BY id", s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	ids := []reflection.ClassID{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan class id: %w", err)
		}
		ids = append(ids, reflection.ClassID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return ids, nil
}

// Close closes the database.
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) placeholder(n int) string {
	if s.driver == DriverSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

func isSQLDriver(driver string) bool {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverPgx:
		return true
	}
	return false
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
