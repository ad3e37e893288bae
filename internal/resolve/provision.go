package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/doctrail/contact-cli/internal/accounts"
	"github.com/doctrail/contact-cli/internal/model"
)

// Provisioner creates a new supplier record from an unresolved extraction.
// It performs no duplicate pre-check of its own: it must only run after the
// Resolver reported NoMatch for the same document.
type Provisioner struct {
	store accounts.Store
}

// NewProvisioner creates a Provisioner on top of the accounts store.
func NewProvisioner(store accounts.Store) *Provisioner {
	return &Provisioner{store: store}
}

// Provision derives and persists a new supplier from the extraction.
// It returns nil when the extraction carries too little identity information
// to be worth persisting (neither company nor lastname), and nil when the
// supplier creation itself fails; creation failures are absorbed, not raised.
func (p *Provisioner) Provision(ctx context.Context, fields model.ExtractedFields) (*model.SupplierDraft, error) {
	if !fields.HasIdentity() {
		zap.L().Info("extraction carries no company or lastname, skipping contact creation")
		return nil, nil
	}

	addr := AssembleAddress(fields)

	// An entirely empty address is never persisted; address_id stays unset.
	var addressID *int64
	if !addr.IsEmpty() {
		id, err := p.store.CreateAddress(ctx, addr)
		if err != nil {
			zap.L().Warn("address creation failed, continuing without address",
				zap.Error(err),
			)
		} else {
			addressID = &id
		}
	}

	draft := deriveDraft(fields, addr, addressID)
	id, err := p.store.CreateSupplier(ctx, draft)
	if err != nil {
		zap.L().Warn("supplier creation failed",
			zap.String("name", draft.DisplayName()),
			zap.Error(err),
		)
		return nil, nil
	}
	draft.SupplierID = id

	zap.L().Info("third-party account created from extraction",
		zap.String("name", draft.DisplayName()),
		zap.Int64("supplier_id", id),
	)
	return &draft, nil
}
