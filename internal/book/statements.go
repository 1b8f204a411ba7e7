package book

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/google/uuid"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"

	tableBooks       = "books"
	colUID           = "uid"
	colTitle         = "title"
	colAuthor        = "author"
	colPublisher     = "publisher"
	colPublishedDate = "published_date"
	colPageCount     = "page_count"
	colLanguage      = "language"
	colCreatedAt     = "created_at"
	colUpdatedAt     = "updated_at"
)

var bookColumns = []any{
	colUID, colTitle, colAuthor, colPublisher, colPublishedDate,
	colPageCount, colLanguage, colCreatedAt, colUpdatedAt,
}

// statements renders the single-row SQL used by both repositories.
type statements struct {
	dialect goqu.DialectWrapper
}

func newStatements(dialect string) statements {
	return statements{dialect: goqu.Dialect(dialect)}
}

func (s statements) list() (string, []any, error) {
	return s.dialect.From(tableBooks).
		Select(bookColumns...).
		Order(goqu.C(colCreatedAt).Desc()).
		Prepared(true).
		ToSQL()
}

func (s statements) get(uid uuid.UUID) (string, []any, error) {
	return s.dialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C(colUID).Eq(uid.String())).
		Limit(1).
		Prepared(true).
		ToSQL()
}

func (s statements) insert(b Book) (string, []any, error) {
	row := mutableColumns(b)
	row[colUID] = b.UID.String()
	row[colCreatedAt] = b.CreatedAt
	return s.dialect.Insert(tableBooks).
		Rows(row).
		Prepared(true).
		ToSQL()
}

func (s statements) update(b Book) (string, []any, error) {
	return s.dialect.Update(tableBooks).
		Set(mutableColumns(b)).
		Where(goqu.C(colUID).Eq(b.UID.String())).
		Prepared(true).
		ToSQL()
}

func (s statements) delete(uid uuid.UUID) (string, []any, error) {
	return s.dialect.Delete(tableBooks).
		Where(goqu.C(colUID).Eq(uid.String())).
		Prepared(true).
		ToSQL()
}

// mutableColumns excludes uid and created_at, which never change after insert.
func mutableColumns(b Book) goqu.Record {
	return goqu.Record{
		colTitle:         nullable(b.Title),
		colAuthor:        nullable(b.Author),
		colPublisher:     nullable(b.Publisher),
		colPublishedDate: nullable(b.PublishedDate),
		colPageCount:     nullable(b.PageCount),
		colLanguage:      nullable(b.Language),
		colUpdatedAt:     b.UpdatedAt,
	}
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
