package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/doctrail/contact-cli/internal/db"
	"github.com/doctrail/contact-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const supplierColumns = `s.id, s.name, s.lastname, s.firstname, s.email, s.phone,
	s.vat_number, s.siret, s.siren, s.duns, s.bic, s.country, s.address_id,
	s.informal_contact, s.skip_auto_validate,
	COALESCE(a.address1, ''), COALESCE(a.address2, ''), COALESCE(a.city, ''), COALESCE(a.postal_code, '')`

// Lookup is a case-insensitive pattern match with the full value as the
// pattern, so behaviorally it is an exact case-insensitive equality.
const (
	findSupplierByEmail = `SELECT ` + supplierColumns + `
		FROM accounts_supplier s
		LEFT JOIN addresses a ON s.address_id = a.id
		WHERE LOWER(s.email) LIKE LOWER($1)
		ORDER BY s.id LIMIT 1`

	findSupplierByPhone = `SELECT ` + supplierColumns + `
		FROM accounts_supplier s
		LEFT JOIN addresses a ON s.address_id = a.id
		WHERE LOWER(s.phone) LIKE LOWER($1)
		ORDER BY s.id LIMIT 1`

	getCustomer = `SELECT siret, siren, vat_number FROM accounts_customer WHERE id = $1`

	insertAddress = `INSERT INTO addresses (address1, address2, city, postal_code)
		VALUES ($1, $2, $3, $4) RETURNING id`

	insertSupplier = `INSERT INTO accounts_supplier
		(name, lastname, firstname, email, phone, vat_number, siret, siren, duns, bic, country,
		 address_id, informal_contact, skip_auto_validate)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL, NULL, NULL, NULL, NULL, $6, $7, $8)
		RETURNING id`
)

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"find_supplier_email": findSupplierByEmail,
	"find_supplier_phone": findSupplierByPhone,
	"get_customer":        getCustomer,
	"insert_address":      insertAddress,
	"insert_supplier":     insertSupplier,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS addresses (
	id          BIGSERIAL PRIMARY KEY,
	address1    TEXT NOT NULL DEFAULT '',
	address2    TEXT NOT NULL DEFAULT '',
	city        TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS accounts_supplier (
	id                 BIGSERIAL PRIMARY KEY,
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
	address_id         BIGINT REFERENCES addresses(id),
	informal_contact   BOOLEAN NOT NULL DEFAULT false,
	skip_auto_validate BOOLEAN NOT NULL DEFAULT false,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS accounts_customer (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	siret      TEXT,
	siren      TEXT,
	vat_number TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_accounts_supplier_email ON accounts_supplier(LOWER(email));
CREATE INDEX IF NOT EXISTS idx_accounts_supplier_phone ON accounts_supplier(LOWER(phone));
`

// Migrate creates the accounts schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	} else {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) FindSupplier(ctx context.Context, key LookupKey, value string) (*model.Supplier, error) {
	var query string
	switch key {
	case LookupEmail:
		query = findSupplierByEmail
	case LookupPhone:
		query = findSupplierByPhone
	default:
		return nil, eris.Errorf("postgres: unsupported lookup key %q", key)
	}

	var sup model.Supplier
	err := s.pool.QueryRow(ctx, query, value).Scan(
		&sup.ID, &sup.Name, &sup.Lastname, &sup.Firstname, &sup.Email, &sup.Phone,
		&sup.VATNumber, &sup.Siret, &sup.Siren, &sup.Duns, &sup.Bic, &sup.Country,
		&sup.AddressID, &sup.InformalContact, &sup.SkipAutoValidate,
		&sup.Address1, &sup.Address2, &sup.City, &sup.PostalCode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: find supplier by %s", key)
	}
	return &sup, nil
}

func (s *PostgresStore) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	var cust model.Customer
	err := s.pool.QueryRow(ctx, getCustomer, id).Scan(&cust.Siret, &cust.Siren, &cust.VATNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get customer %d", id)
	}
	return &cust, nil
}

func (s *PostgresStore) CreateAddress(ctx context.Context, addr model.Address) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, insertAddress,
		addr.Address1, addr.Address2, addr.City, addr.PostalCode,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: create address")
	}
	return id, nil
}

func (s *PostgresStore) CreateSupplier(ctx context.Context, draft model.SupplierDraft) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, insertSupplier,
		draft.Name, draft.Lastname, draft.Firstname, draft.Email, draft.Phone,
		draft.AddressID, draft.InformalContact, draft.SkipAutoValidate,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: create supplier")
	}
	return id, nil
}
