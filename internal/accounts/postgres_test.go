package accounts

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrail/contact-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func supplierRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "lastname", "firstname", "email", "phone",
		"vat_number", "siret", "siren", "duns", "bic", "country", "address_id",
		"informal_contact", "skip_auto_validate",
		"address1", "address2", "city", "postal_code",
	})
}

func TestPostgresStore_FindSupplier_ByEmail(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	vat := "FR123456789"
	mock.ExpectQuery(`LOWER\(s\.email\) LIKE LOWER\(\$1\)`).
		WithArgs("a@acme.com").
		WillReturnRows(supplierRows().AddRow(
			int64(42), "Acme", "", "", "a@acme.com", "+33100000000",
			&vat, nil, nil, nil, nil, nil, nil,
			false, false,
			"", "", "", "",
		))

	sup, err := s.FindSupplier(context.Background(), LookupEmail, "a@acme.com")
	require.NoError(t, err)
	require.NotNil(t, sup)
	assert.Equal(t, int64(42), sup.ID)
	assert.Equal(t, "Acme", sup.Name)
	require.NotNil(t, sup.VATNumber)
	assert.Equal(t, "FR123456789", *sup.VATNumber)
	assert.Nil(t, sup.Siret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindSupplier_ByPhone(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`LOWER\(s\.phone\) LIKE LOWER\(\$1\)`).
		WithArgs("+33100000000").
		WillReturnRows(supplierRows().AddRow(
			int64(7), "", "DUPONT", "Jean", "", "+33100000000",
			nil, nil, nil, nil, nil, nil, nil,
			true, false,
			"12 Rue Des Fleurs", "", "Lyon", "69000",
		))

	sup, err := s.FindSupplier(context.Background(), LookupPhone, "+33100000000")
	require.NoError(t, err)
	require.NotNil(t, sup)
	assert.Equal(t, "DUPONT", sup.Lastname)
	assert.Equal(t, "12 Rue Des Fleurs", sup.Address1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindSupplier_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`LOWER\(s\.email\) LIKE LOWER\(\$1\)`).
		WithArgs("unknown@nowhere.com").
		WillReturnRows(supplierRows())

	sup, err := s.FindSupplier(context.Background(), LookupEmail, "unknown@nowhere.com")
	require.NoError(t, err)
	assert.Nil(t, sup)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindSupplier_UnsupportedKey(t *testing.T) {
	s, _ := newMockPostgresStore(t)

	_, err := s.FindSupplier(context.Background(), LookupKey("siret"), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported lookup key")
}

func TestPostgresStore_GetCustomer(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	siret := "12345678900011"
	mock.ExpectQuery(`SELECT siret, siren, vat_number FROM accounts_customer`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"siret", "siren", "vat_number"}).
			AddRow(&siret, nil, nil))

	cust, err := s.GetCustomer(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, cust)
	require.NotNil(t, cust.Siret)
	assert.Equal(t, "12345678900011", *cust.Siret)
	assert.Nil(t, cust.Siren)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCustomer_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT siret, siren, vat_number FROM accounts_customer`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"siret", "siren", "vat_number"}))

	cust, err := s.GetCustomer(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, cust)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateAddress(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`INSERT INTO addresses`).
		WithArgs("12 Rue Des Fleurs", "", "Lyon", "69000").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := s.CreateAddress(context.Background(), model.Address{
		Address1:   "12 Rue Des Fleurs",
		City:       "Lyon",
		PostalCode: "69000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateSupplier(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	addrID := int64(11)
	mock.ExpectQuery(`INSERT INTO accounts_supplier`).
		WithArgs("Acme", "", "", "a@acme.com", "", &addrID, true, false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := s.CreateSupplier(context.Background(), model.SupplierDraft{
		Name:            "Acme",
		Email:           "a@acme.com",
		AddressID:       &addrID,
		InformalContact: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS addresses`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
