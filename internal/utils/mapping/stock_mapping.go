package mapping

import (
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/SscSPs/stock_exchange_app/internal/models"
)

// ToModelStock converts a domain Stock to a model Stock
func ToModelStock(d domain.Stock) models.Stock {
	return models.Stock{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		CurrentPrice: d.CurrentPrice,
		LastUpdate:   d.LastUpdate,
		Version:      d.Version,
	}
}

// ToDomainStock converts a model Stock to a domain Stock
func ToDomainStock(m models.Stock) domain.Stock {
	return domain.Stock{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		CurrentPrice:    m.CurrentPrice,
		LastUpdate:      m.LastUpdate.UTC(),
		VersionedFields: domain.VersionedFields{Version: m.Version},
	}
}
