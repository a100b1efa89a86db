package importer

import (
	"io"

	"github.com/enertech-th/fieldforms/internal/expense"
)

// Source identifies a statement format.
type Source string

const (
	// SourceCard is the corporate-card CSV export.
	SourceCard Source = "card"
)

type Importer interface {
	Parse(r io.Reader) ([]expense.Item, error)
}
