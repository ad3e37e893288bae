package resolve

import (
	"context"

	"github.com/doctrail/contact-cli/internal/accounts"
	"github.com/doctrail/contact-cli/internal/model"
)

// OutcomeKind tags the result of a resolution attempt.
type OutcomeKind int

// Resolution outcomes. Callers must handle all three; SelfConflict in
// particular must never silently fall through to another lookup key.
const (
	NoMatch OutcomeKind = iota
	Matched
	SelfConflict
)

// Outcome is the result of resolving an extraction against known suppliers.
// Contact is set for Matched and SelfConflict; Key names the lookup column
// that produced the candidate.
type Outcome struct {
	Kind    OutcomeKind
	Contact *model.Supplier
	Key     accounts.LookupKey
}

// Resolver matches extracted fields against existing supplier records.
type Resolver struct {
	store accounts.Store
}

// NewResolver creates a Resolver on top of the accounts store.
func NewResolver(store accounts.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks for an existing supplier matching the extraction.
//
// Email takes strict precedence over phone: phone is only consulted when the
// extraction carries no email at all. An extraction with an unmatched email
// and a matchable phone therefore resolves to NoMatch. customerID == 0 means
// no active customer, which disables the self-conflict check.
func (r *Resolver) Resolve(ctx context.Context, fields model.ExtractedFields, customerID int64) (Outcome, error) {
	switch {
	case fields.Email != "":
		return r.lookup(ctx, accounts.LookupEmail, fields.Email, customerID)
	case fields.Phone != "":
		return r.lookup(ctx, accounts.LookupPhone, fields.Phone, customerID)
	}
	return Outcome{Kind: NoMatch}, nil
}

func (r *Resolver) lookup(ctx context.Context, key accounts.LookupKey, value string, customerID int64) (Outcome, error) {
	sup, err := r.store.FindSupplier(ctx, key, value)
	if err != nil {
		return Outcome{}, err
	}
	if sup == nil {
		return Outcome{Kind: NoMatch, Key: key}, nil
	}

	conflict, err := r.selfConflict(ctx, sup, customerID)
	if err != nil {
		return Outcome{}, err
	}
	if conflict {
		return Outcome{Kind: SelfConflict, Contact: sup, Key: key}, nil
	}
	return Outcome{Kind: Matched, Contact: sup, Key: key}, nil
}

// selfConflict reports whether the candidate shares a registered identity
// (siret, siren, or vat number) with the active customer, meaning the
// document sender is the customer itself and not a real third party.
func (r *Resolver) selfConflict(ctx context.Context, sup *model.Supplier, customerID int64) (bool, error) {
	if customerID == 0 {
		return false, nil
	}
	cust, err := r.store.GetCustomer(ctx, customerID)
	if err != nil {
		return false, err
	}
	if cust == nil {
		return false, nil
	}
	return strEq(sup.Siret, cust.Siret) ||
		strEq(sup.Siren, cust.Siren) ||
		strEq(sup.VATNumber, cust.VATNumber), nil
}

// strEq compares two nullable identity values. Unknown (nil) never conflicts.
func strEq(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
