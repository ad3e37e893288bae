// Package extract turns document images into structured contact fields.
package extract

import (
	"context"

	"github.com/doctrail/contact-cli/internal/model"
)

// Extractor extracts the sender's contact fields from a document image.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mediaType string) (model.ExtractedFields, error)
}
