package loader

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"go.uber.org/zap"
)

const backendDuckDB = "duckdb"

// newFileLoader exposes a parquet or csv file as a view in an in-memory DuckDB.
func newFileLoader(path, reader string, o options) (Loader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	// Create a view from the file - using raw SQL as Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`CREATE VIEW %s AS SELECT * FROM %s('%s');`,
		DefaultTable, reader, strings.ReplaceAll(path, "'", "''"))

	if _, err := db.Exec(query); err != nil {
		_ = db.Close()

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	// Binding the view surfaces a missing or malformed file at open time
	if _, err := db.Exec(fmt.Sprintf(`SELECT * FROM %s LIMIT 0;`, DefaultTable)); err != nil {
		_ = db.Close()

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	o.table = DefaultTable
	l := newSQLLoader(db, backendDuckDB, squirrel.Dollar, o)
	l.logger.Debug("Initialized file view", zap.String("path", path), zap.String("reader", reader))

	return l, nil
}

// newDuckDBLoader opens a DuckDB database file and queries its table directly.
func newDuckDBLoader(path string, o options) (Loader, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return newSQLLoader(db, backendDuckDB, squirrel.Dollar, o), nil
}
