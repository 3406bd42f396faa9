// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package films

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
)

// OpenDB opens an in-memory DuckDB database suitable for Load.
func OpenDB() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	return db, nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// loadQuery reads the three relevant columns of a CSV file. Rows the CSV
// reader cannot parse are skipped instead of failing the whole load.
func loadQuery(path string) string {
	return fmt.Sprintf(`
		SELECT movie, year, location
		FROM read_csv(%s,
			header = true,
			delim = ',',
			quote = '"',
			escape = '"',
			all_varchar = true,
			ignore_errors = true)`, quoteLiteral(path))
}

// Load reads the dataset at path and returns its unique records in order of
// first appearance. Rows with a missing value (NULL or "NO DATA") are
// discarded. A missing file or a missing column is an error.
func Load(ctx context.Context, db *sql.DB, path string) ([]Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}

	rows, err := db.QueryContext(ctx, loadQuery(path))
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	defer rows.Close()

	var records []Record

	seen := make(map[Record]struct{})

	for rows.Next() {
		var movie, year, location sql.NullString
		if err := rows.Scan(&movie, &year, &location); err != nil {
			return nil, fmt.Errorf("scanning dataset row: %w", err)
		}

		if !movie.Valid || !year.Valid || !location.Valid {
			continue
		}

		r := Record{Movie: movie.String, Year: year.String, Location: location.String}
		if HasNoData(r.Fields()...) {
			continue
		}

		if _, dup := seen[r]; dup {
			continue
		}

		seen[r] = struct{}{}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	return records, nil
}
