package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/doctrail/contact-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Useful for
// single-host deployments and local testing without a Postgres server.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS addresses (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	address1    TEXT NOT NULL DEFAULT '',
	address2    TEXT NOT NULL DEFAULT '',
	city        TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS accounts_supplier (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	name               TEXT NOT NULL DEFAULT '',
	lastname           TEXT NOT NULL DEFAULT '',
	firstname          TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	phone              TEXT NOT NULL DEFAULT '',
	vat_number         TEXT,
	siret              TEXT,
	siren              TEXT,
	duns               TEXT,
	bic                TEXT,
	country            TEXT,
	address_id         INTEGER REFERENCES addresses(id),
	informal_contact   INTEGER NOT NULL DEFAULT 0,
	skip_auto_validate INTEGER NOT NULL DEFAULT 0,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS accounts_customer (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL DEFAULT '',
	siret      TEXT,
	siren      TEXT,
	vat_number TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_accounts_supplier_email ON accounts_supplier(email COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_accounts_supplier_phone ON accounts_supplier(phone COLLATE NOCASE);
`

// Migrate creates the accounts schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) FindSupplier(ctx context.Context, key LookupKey, value string) (*model.Supplier, error) {
	var column string
	switch key {
	case LookupEmail:
		column = "s.email"
	case LookupPhone:
		column = "s.phone"
	default:
		return nil, eris.Errorf("sqlite: unsupported lookup key %q", key)
	}

	query := `SELECT s.id, s.name, s.lastname, s.firstname, s.email, s.phone,
		s.vat_number, s.siret, s.siren, s.duns, s.bic, s.country, s.address_id,
		s.informal_contact, s.skip_auto_validate,
		IFNULL(a.address1, ''), IFNULL(a.address2, ''), IFNULL(a.city, ''), IFNULL(a.postal_code, '')
		FROM accounts_supplier s
		LEFT JOIN addresses a ON s.address_id = a.id
		WHERE LOWER(` + column + `) LIKE LOWER(?)
		ORDER BY s.id LIMIT 1`

	var sup model.Supplier
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&sup.ID, &sup.Name, &sup.Lastname, &sup.Firstname, &sup.Email, &sup.Phone,
		&sup.VATNumber, &sup.Siret, &sup.Siren, &sup.Duns, &sup.Bic, &sup.Country,
		&sup.AddressID, &sup.InformalContact, &sup.SkipAutoValidate,
		&sup.Address1, &sup.Address2, &sup.City, &sup.PostalCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: find supplier by %s", key)
	}
	return &sup, nil
}

func (s *SQLiteStore) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	var cust model.Customer
	err := s.db.QueryRowContext(ctx,
		`SELECT siret, siren, vat_number FROM accounts_customer WHERE id = ?`, id,
	).Scan(&cust.Siret, &cust.Siren, &cust.VATNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get customer %d", id)
	}
	return &cust, nil
}

func (s *SQLiteStore) CreateAddress(ctx context.Context, addr model.Address) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO addresses (address1, address2, city, postal_code) VALUES (?, ?, ?, ?)`,
		addr.Address1, addr.Address2, addr.City, addr.PostalCode,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: create address")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: address id")
	}
	return id, nil
}

func (s *SQLiteStore) CreateSupplier(ctx context.Context, draft model.SupplierDraft) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts_supplier
		(name, lastname, firstname, email, phone, vat_number, siret, siren, duns, bic, country,
		 address_id, informal_contact, skip_auto_validate)
		VALUES (?, ?, ?, ?, ?, NULL, NULL, NULL, NULL, NULL, NULL, ?, ?, ?)`,
		draft.Name, draft.Lastname, draft.Firstname, draft.Email, draft.Phone,
		draft.AddressID, draft.InformalContact, draft.SkipAutoValidate,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: create supplier")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: supplier id")
	}
	return id, nil
}
