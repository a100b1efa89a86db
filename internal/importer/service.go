package importer

import (
	"fmt"
	"io"

	"github.com/enertech-th/fieldforms/internal/expense"
	"github.com/enertech-th/fieldforms/internal/importer/card"
)

type Service struct {
	cardImporter Importer
}

func NewService() *Service {
	return &Service{
		cardImporter: card.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]expense.Item, error) {
	var imp Importer

	switch source {
	case SourceCard:
		imp = s.cardImporter
	default:
		return nil, fmt.Errorf("unknown statement source: %s", source)
	}

	return imp.Parse(r)
}
