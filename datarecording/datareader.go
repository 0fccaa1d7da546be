package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
)

// A Filter selects rows of a table.
type Filter struct {
	// Where is a condition without the WHERE keyword, such as "Latency > ?".
	Where string
	Args  []any

	// OrderBy is a sort order without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. Zero reads them all.
	Limit int
}

func (f Filter) condition() string {
	if f.Where == "" {
		return ""
	}

	return " WHERE " + f.Where
}

func (f Filter) selection() string {
	s := f.condition()

	if f.OrderBy != "" {
		s += " ORDER BY " + f.OrderBy
	}

	if f.Limit > 0 {
		s += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	return s
}

// DataReader reads the tables written by a DataRecorder back into the entry
// structs they were written from.
type DataReader interface {
	// MapTable binds a table to the struct type of the sample entry. A table
	// must be mapped before it is read.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables, sorted.
	ListTables() []string

	// Query returns pointers to the entries selected by the filter.
	Query(ctx context.Context, tableName string, f Filter) ([]any, error)

	// Count returns the number of rows that match the filter. Order and
	// limit are ignored.
	Count(ctx context.Context, tableName string, f Filter) (int, error)

	// Close closes the database.
	Close() error
}

type mapping struct {
	structType reflect.Type
	columns    []string
}

type sqliteReader struct {
	db     *sql.DB
	tables map[string]mapping
}

// OpenReader opens a database file written by the SQLite recorder, read only.
func OpenReader(filename string) (DataReader, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, err
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:     db,
		tables: make(map[string]mapping),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	structType := reflect.TypeOf(sampleEntry)

	columns, err := columnNames(structType)
	if err != nil {
		panic(err)
	}

	r.tables[tableName] = mapping{structType: structType, columns: columns}
}

func (r *sqliteReader) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *sqliteReader) lookup(tableName string) (mapping, error) {
	m, ok := r.tables[tableName]
	if !ok {
		return mapping{}, fmt.Errorf("table %s is not mapped", tableName)
	}

	return m, nil
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	f Filter,
) ([]any, error) {
	m, err := r.lookup(tableName)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + strings.Join(m.columns, ", ") +
		" FROM " + tableName + f.selection()

	rows, err := r.db.QueryContext(ctx, query, f.Args...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", tableName, err)
	}
	defer rows.Close()

	entries := []any{}

	for rows.Next() {
		entry := reflect.New(m.structType)
		targets := make([]any, len(m.columns))

		for i := range targets {
			targets[i] = entry.Elem().Field(i).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("reading %s: %w", tableName, err)
		}

		entries = append(entries, entry.Interface())
	}

	return entries, rows.Err()
}

func (r *sqliteReader) Count(
	ctx context.Context,
	tableName string,
	f Filter,
) (int, error) {
	if _, err := r.lookup(tableName); err != nil {
		return 0, err
	}

	var n int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+f.condition(), f.Args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", tableName, err)
	}

	return n, nil
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
