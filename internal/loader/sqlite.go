package loader

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

const backendSQLite = "sqlite"

func newSQLiteLoader(path string, o options) (Loader, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open sqlite", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	return newSQLLoader(db, backendSQLite, squirrel.Question, o), nil
}
