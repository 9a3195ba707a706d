// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// CreateSQLiteDB creates a throwaway SQLite database, runs the given
// statements against it and returns its path for use as a DSN.
func CreateSQLiteDB(t *testing.T, statements []string) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "sqlite.db")
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return dsn
}
