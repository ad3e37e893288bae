// Package resolve implements the contact resolution pipeline: matching an
// extraction against known suppliers and provisioning a new contact when no
// match exists.
package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/doctrail/contact-cli/internal/model"
)

// titleCase capitalizes the first letter of each word and lowers the rest.
// Stored addresses are always title-cased regardless of extraction casing.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// capitalize upper-cases the first rune and leaves the rest unchanged.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// AssembleAddress builds the address record from an extraction. The street
// number is prepended to the street when both are present; postal codes are
// kept verbatim.
func AssembleAddress(f model.ExtractedFields) model.Address {
	var street string
	switch {
	case f.NumAddress != "" && f.Address != "":
		street = f.NumAddress + " " + f.Address
	case f.Address != "":
		street = f.Address
	}

	return model.Address{
		Address1:   titleCase(street),
		Address2:   titleCase(f.AdditionalAddress),
		City:       titleCase(f.City),
		PostalCode: f.PostalCode,
	}
}

// deriveDraft builds the supplier creation payload from an extraction and
// its assembled address. Legal identity fields (bic, duns, siret, siren,
// country, vat_number) are never inferred and stay null.
func deriveDraft(f model.ExtractedFields, addr model.Address, addressID *int64) model.SupplierDraft {
	return model.SupplierDraft{
		Name:             f.Company,
		Lastname:         strings.ToUpper(f.Lastname),
		Firstname:        capitalize(f.Firstname),
		Email:            f.Email,
		Phone:            f.Phone,
		AddressID:        addressID,
		InformalContact:  true,
		SkipAutoValidate: false,
		Address1:         addr.Address1,
		Address2:         addr.Address2,
		City:             addr.City,
		PostalCode:       addr.PostalCode,
	}
}
