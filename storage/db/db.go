// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores parsed benchmark tables in a SQL database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/netbench/netbench/benchtab"
)

// DB is a high-level interface to a database of benchmark tables.
// It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertDataset *sql.Stmt
	insertColumn  *sql.Stmt
}

// A Meta describes a stored table.
type Meta struct {
	// ID is assigned by InsertTable.
	ID int64
	// Suite labels the test suite the table came from.
	Suite string
	// Test is the unique name of the test run.
	Test string
	// Benchmark is the benchmark name, such as "PingPong".
	Benchmark string
	// Procs is the process count of the run.
	Procs int
	// Created is set by InsertTable.
	Created time.Time
}

// ErrNotFound is returned by LoadTable for an unknown ID.
var ErrNotFound = errors.New("table not found")

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
//
// Values are stored twice: as a DOUBLE for queries, NULL when not
// finite, and as their IEEE-754 bits so NaN and infinite ratios load
// back unchanged.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Datasets (
	DatasetID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Suite VARCHAR(255),
	Test VARCHAR(255),
	Benchmark VARCHAR(255),
	Procs INT,
	NumRows INT,
	Created BIGINT
{{if not .sqlite3}}
	, Index (Benchmark)
{{end}}
);
CREATE TABLE IF NOT EXISTS DatasetColumns (
	DatasetID BIGINT UNSIGNED,
	ColumnIndex INT,
	Name VARCHAR(255),
	Indep BOOLEAN,
	PRIMARY KEY (DatasetID, ColumnIndex),
	FOREIGN KEY (DatasetID) REFERENCES Datasets(DatasetID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS DatasetValues (
	DatasetID BIGINT UNSIGNED,
	RowIndex INT,
	ColumnIndex INT,
	Value DOUBLE,
	Bits BIGINT,
	PRIMARY KEY (DatasetID, RowIndex, ColumnIndex),
	FOREIGN KEY (DatasetID, ColumnIndex) REFERENCES DatasetColumns(DatasetID, ColumnIndex) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS DatasetsBenchmark ON Datasets(Benchmark);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertDataset, err = db.sql.Prepare("INSERT INTO Datasets(Suite, Test, Benchmark, Procs, NumRows, Created) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertColumn, err = db.sql.Prepare("INSERT INTO DatasetColumns(DatasetID, ColumnIndex, Name, Indep) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// valuesPerInsert bounds the rows of one multi-row INSERT so the
// statement stays under SQLite's host parameter limit.
const valuesPerInsert = 150

// InsertTable stores t with the description m and returns its ID.
// m.ID and m.Created are ignored.
func (db *DB) InsertTable(ctx context.Context, m Meta, t *benchtab.Table) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertDataset).ExecContext(ctx,
		m.Suite, m.Test, m.Benchmark, m.Procs, t.Len(), now().Unix())
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	nindep := len(t.Indep())
	cols := t.Columns()
	insertColumn := tx.StmtContext(ctx, db.insertColumn)
	for i, name := range cols {
		if _, err = insertColumn.ExecContext(ctx, id, i, name, i < nindep); err != nil {
			return 0, err
		}
	}

	var args []interface{}
	flush := func() error {
		if len(args) == 0 {
			return nil
		}
		query := "INSERT INTO DatasetValues(DatasetID, RowIndex, ColumnIndex, Value, Bits) VALUES " +
			strings.Repeat("(?, ?, ?, ?, ?), ", len(args)/5)
		query = strings.TrimSuffix(query, ", ")
		_, err := tx.ExecContext(ctx, query, args...)
		args = args[:0]
		return err
	}
	for r := 0; r < t.Len(); r++ {
		for c, v := range t.Row(r) {
			val := sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
			args = append(args, id, r, c, val, int64(math.Float64bits(v)))
			if len(args) == 5*valuesPerInsert {
				if err = flush(); err != nil {
					return 0, err
				}
			}
		}
	}
	if err = flush(); err != nil {
		return 0, err
	}
	return id, nil
}

// LoadTable returns the table stored under id. If there is none, it
// returns ErrNotFound.
func (db *DB) LoadTable(ctx context.Context, id int64) (Meta, *benchtab.Table, error) {
	var m Meta
	var nrows int
	var created int64
	err := db.sql.QueryRowContext(ctx,
		"SELECT DatasetID, Suite, Test, Benchmark, Procs, NumRows, Created FROM Datasets WHERE DatasetID = ?", id).
		Scan(&m.ID, &m.Suite, &m.Test, &m.Benchmark, &m.Procs, &nrows, &created)
	if err == sql.ErrNoRows {
		return Meta{}, nil, ErrNotFound
	} else if err != nil {
		return Meta{}, nil, err
	}
	m.Created = time.Unix(created, 0)

	var indep, dep []string
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Name, Indep FROM DatasetColumns WHERE DatasetID = ? ORDER BY ColumnIndex", id)
	if err != nil {
		return Meta{}, nil, err
	}
	for rows.Next() {
		var name string
		var isIndep bool
		if err := rows.Scan(&name, &isIndep); err != nil {
			rows.Close()
			return Meta{}, nil, err
		}
		if isIndep {
			indep = append(indep, name)
		} else {
			dep = append(dep, name)
		}
	}
	if err := rows.Close(); err != nil {
		return Meta{}, nil, err
	}
	if err := rows.Err(); err != nil {
		return Meta{}, nil, err
	}

	t := benchtab.New(indep, dep)
	ncols := len(indep) + len(dep)
	rows, err = db.sql.QueryContext(ctx,
		"SELECT Bits FROM DatasetValues WHERE DatasetID = ? ORDER BY RowIndex, ColumnIndex", id)
	if err != nil {
		return Meta{}, nil, err
	}
	defer rows.Close()
	row := make([]float64, 0, ncols)
	for rows.Next() {
		var bits int64
		if err := rows.Scan(&bits); err != nil {
			return Meta{}, nil, err
		}
		row = append(row, math.Float64frombits(uint64(bits)))
		if len(row) == ncols {
			t.AppendRow(row...)
			row = row[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return Meta{}, nil, err
	}
	if len(row) != 0 || t.Len() != nrows {
		return Meta{}, nil, fmt.Errorf("table %d: stored %d rows, found %d", id, nrows, t.Len())
	}
	return m, t, nil
}

// ListTables returns the descriptions of the stored tables of
// benchmark, or of every table if benchmark is "", in insertion
// order.
func (db *DB) ListTables(ctx context.Context, benchmark string) ([]Meta, error) {
	query := "SELECT DatasetID, Suite, Test, Benchmark, Procs, Created FROM Datasets"
	var args []interface{}
	if benchmark != "" {
		query += " WHERE Benchmark = ?"
		args = append(args, benchmark)
	}
	query += " ORDER BY DatasetID"
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ms []Meta
	for rows.Next() {
		var m Meta
		var created int64
		if err := rows.Scan(&m.ID, &m.Suite, &m.Test, &m.Benchmark, &m.Procs, &created); err != nil {
			return nil, err
		}
		m.Created = time.Unix(created, 0)
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// CountTables returns the number of stored tables.
func (db *DB) CountTables(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Datasets").Scan(&n)
	return n, err
}

// DeleteTable removes the table stored under id.
func (db *DB) DeleteTable(ctx context.Context, id int64) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	for _, q := range []string{
		"DELETE FROM DatasetValues WHERE DatasetID = ?",
		"DELETE FROM DatasetColumns WHERE DatasetID = ?",
		"DELETE FROM Datasets WHERE DatasetID = ?",
	} {
		if _, err = tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertDataset.Close(); err != nil {
		return err
	}
	if err := db.insertColumn.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
