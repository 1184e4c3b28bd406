package loader

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

const backendPostgres = "postgres"

// newPostgresLoader opens a connection pool for dsn. No connection is made
// until the first Load.
func newPostgresLoader(dsn string, o options) (Loader, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open postgres", err)
	}

	return newSQLLoader(db, backendPostgres, squirrel.Dollar, o), nil
}
