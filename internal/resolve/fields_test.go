package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctrail/contact-cli/internal/model"
)

func TestAssembleAddress(t *testing.T) {
	tests := []struct {
		name   string
		fields model.ExtractedFields
		want   model.Address
	}{
		{
			name: "number and street",
			fields: model.ExtractedFields{
				NumAddress: "12",
				Address:    "rue des Fleurs",
			},
			want: model.Address{Address1: "12 Rue Des Fleurs"},
		},
		{
			name:   "street only",
			fields: model.ExtractedFields{Address: "rue des Fleurs"},
			want:   model.Address{Address1: "Rue Des Fleurs"},
		},
		{
			name:   "number without street is dropped",
			fields: model.ExtractedFields{NumAddress: "12"},
			want:   model.Address{},
		},
		{
			name: "all components title-cased except postal code",
			fields: model.ExtractedFields{
				NumAddress:        "3",
				Address:           "AVENUE DE LA gare",
				AdditionalAddress: "bâtiment b",
				City:              "lyon",
				PostalCode:        "69000",
			},
			want: model.Address{
				Address1:   "3 Avenue De La Gare",
				Address2:   "Bâtiment B",
				City:       "Lyon",
				PostalCode: "69000",
			},
		},
		{
			name:   "empty extraction",
			fields: model.ExtractedFields{},
			want:   model.Address{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssembleAddress(tt.fields))
		})
	}
}

func TestAddressIsEmpty(t *testing.T) {
	assert.True(t, model.Address{}.IsEmpty())
	assert.False(t, model.Address{City: "Lyon"}.IsEmpty())
	assert.False(t, model.Address{PostalCode: "69000"}.IsEmpty())
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Jean", capitalize("jean"))
	assert.Equal(t, "Jean-pAUL", capitalize("jean-pAUL")) // rest unchanged
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Éric", capitalize("éric"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Rue Des Fleurs", titleCase("rue des Fleurs"))
	assert.Equal(t, "Rue Des Fleurs", titleCase("RUE DES FLEURS"))
	assert.Equal(t, "", titleCase(""))
}

func TestDeriveDraft(t *testing.T) {
	fields := model.ExtractedFields{
		Email:     "a@acme.com",
		Phone:     "+33100000000",
		Company:   "Acme",
		Lastname:  "dupont",
		Firstname: "jean",
		City:      "lyon",
	}
	addr := AssembleAddress(fields)
	addrID := int64(11)

	draft := deriveDraft(fields, addr, &addrID)

	assert.Equal(t, "Acme", draft.Name)
	assert.Equal(t, "DUPONT", draft.Lastname)
	assert.Equal(t, "Jean", draft.Firstname)
	assert.Equal(t, "a@acme.com", draft.Email)
	assert.Equal(t, "+33100000000", draft.Phone)
	assert.Equal(t, "Lyon", draft.City)
	assert.True(t, draft.InformalContact)
	assert.False(t, draft.SkipAutoValidate)
	assert.Equal(t, &addrID, draft.AddressID)
}

func TestSupplierDisplayName(t *testing.T) {
	assert.Equal(t, "Acme", model.Supplier{Name: "Acme", Lastname: "DUPONT"}.DisplayName())
	assert.Equal(t, "DUPONT", model.Supplier{Lastname: "DUPONT"}.DisplayName())
	assert.Equal(t, "Acme", model.SupplierDraft{Name: "Acme"}.DisplayName())
	assert.Equal(t, "DUPONT", model.SupplierDraft{Lastname: "DUPONT"}.DisplayName())
}
