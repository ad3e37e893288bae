package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/doctrail/contact-cli/internal/accounts"
	"github.com/doctrail/contact-cli/internal/extract"
	"github.com/doctrail/contact-cli/internal/model"
)

// Result is reported to the caller when the pipeline matched or created a
// contact. A nil *Result is the explicit "nothing happened" signal: model
// not configured, self-conflict, insufficient fields, or creation failure.
type Result struct {
	// VATNumber is the matched contact's VAT number, empty for creations.
	VATNumber string `json:"vat_number"`
	// Metadata is reserved for downstream enrichment.
	Metadata map[string]string `json:"metadata"`
	// Contact is set when an existing supplier matched.
	Contact *model.Supplier `json:"contact,omitempty"`
	// Created is set when a new supplier was provisioned.
	Created *model.SupplierDraft `json:"created,omitempty"`
	// Note carries free-form text for the caller.
	Note string `json:"note"`
}

// Pipeline runs extraction, resolution, and provisioning for one document.
// Strictly sequential, one pass per document, no retries.
type Pipeline struct {
	extractor   extract.Extractor
	resolver    *Resolver
	provisioner *Provisioner
	enabled     bool
}

// New assembles the pipeline. enabled reflects whether a contact model is
// configured; when false, Run is a no-op.
func New(store accounts.Store, extractor extract.Extractor, enabled bool) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		resolver:    NewResolver(store),
		provisioner: NewProvisioner(store),
		enabled:     enabled,
	}
}

// Run resolves the sender of one document image. customerID == 0 means no
// active customer. Returns (nil, nil) when nothing was matched or created.
func (p *Pipeline) Run(ctx context.Context, image []byte, mediaType string, customerID int64) (*Result, error) {
	if !p.enabled {
		zap.L().Info("no contact model configured, skipping contact search/creation")
		return nil, nil
	}

	fields, err := p.extractor.Extract(ctx, image, mediaType)
	if err != nil {
		return nil, err
	}

	outcome, err := p.resolver.Resolve(ctx, fields, customerID)
	if err != nil {
		return nil, err
	}

	switch outcome.Kind {
	case Matched:
		contact := outcome.Contact
		zap.L().Info("third-party account found from extraction",
			zap.String("name", contact.DisplayName()),
			zap.String("key", string(outcome.Key)),
		)
		var vat string
		if contact.VATNumber != nil {
			vat = *contact.VATNumber
		}
		return &Result{VATNumber: vat, Metadata: map[string]string{}, Contact: contact}, nil

	case SelfConflict:
		zap.L().Info("matched contact shares registered identity with the customer, rejecting",
			zap.String("name", outcome.Contact.DisplayName()),
			zap.Int64("customer_id", customerID),
		)
		return nil, nil
	}

	draft, err := p.provisioner.Provision(ctx, fields)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}
	return &Result{Metadata: map[string]string{}, Created: draft}, nil
}
