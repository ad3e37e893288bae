// Package model defines the domain types shared across the resolution pipeline.
package model

// ExtractedFields is the field mapping produced by the vision model for a
// single document. Every field is optional; an absent key in the model
// output leaves the field as the empty string.
type ExtractedFields struct {
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Company           string `json:"company,omitempty"`
	Lastname          string `json:"lastname,omitempty"`
	Firstname         string `json:"firstname,omitempty"`
	Address           string `json:"address,omitempty"`
	NumAddress        string `json:"num_address,omitempty"`
	AdditionalAddress string `json:"additional_address,omitempty"`
	City              string `json:"city,omitempty"`
	PostalCode        string `json:"postal_code,omitempty"`
}

// IsEmpty reports whether the extraction carried no fields at all.
func (f ExtractedFields) IsEmpty() bool {
	return f == ExtractedFields{}
}

// HasIdentity reports whether the extraction carries enough identity
// information (company or lastname) to be worth persisting as a new contact.
func (f ExtractedFields) HasIdentity() bool {
	return f.Company != "" || f.Lastname != ""
}

// Supplier is a third-party contact record. Identity fields are pointers:
// nil means the value is unknown, which is distinct from an empty string and
// never participates in the self-conflict comparison.
type Supplier struct {
	ID               int64   `json:"supplier_id"`
	Name             string  `json:"name"`
	Lastname         string  `json:"lastname"`
	Firstname        string  `json:"firstname"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	VATNumber        *string `json:"vat_number"`
	Siret            *string `json:"siret"`
	Siren            *string `json:"siren"`
	Duns             *string `json:"duns"`
	Bic              *string `json:"bic"`
	Country          *string `json:"country"`
	AddressID        *int64  `json:"address_id"`
	InformalContact  bool    `json:"informal_contact"`
	SkipAutoValidate bool    `json:"skip_auto_validate"`

	// Address columns joined in by the lookup query, when present.
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// DisplayName is the name used when reporting a match or creation:
// the company name when set, the lastname otherwise.
func (s Supplier) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Lastname
}

// Address is the address sub-record attached to a supplier.
type Address struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// IsEmpty reports whether every address field is blank. Empty addresses are
// never persisted.
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Customer is the document owner's own registered identity, read only for
// the self-conflict check.
type Customer struct {
	Siret     *string `json:"siret"`
	Siren     *string `json:"siren"`
	VATNumber *string `json:"vat_number"`
}

// SupplierDraft is the payload handed to supplier creation: the derived
// contact fields merged with the assembled address fields. The identity
// fields (bic, duns, siret, siren, country, vat_number) are never inferred
// by the pipeline and stay null.
type SupplierDraft struct {
	Name             string `json:"name"`
	Lastname         string `json:"lastname"`
	Firstname        string `json:"firstname"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AddressID        *int64 `json:"address_id"`
	InformalContact  bool   `json:"informal_contact"`
	SkipAutoValidate bool   `json:"skip_auto_validate"`

	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`

	// SupplierID is filled in after a successful creation.
	SupplierID int64 `json:"supplier_id,omitempty"`
}

// DisplayName mirrors Supplier.DisplayName for freshly created contacts.
func (d SupplierDraft) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Lastname
}
