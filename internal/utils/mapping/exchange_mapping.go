package mapping

import (
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/SscSPs/stock_exchange_app/internal/models"
)

// ToModelExchange converts a domain Exchange to a model Exchange.
// LiveInMarket is derived from the member set so an out-of-sync flag is never written.
func ToModelExchange(d domain.Exchange) models.Exchange {
	return models.Exchange{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		LiveInMarket: domain.IsLiveInMarket(len(d.Members)),
		Version:      d.Version,
	}
}

// ToDomainExchange converts a model Exchange and its listed stocks to a domain Exchange
func ToDomainExchange(m models.Exchange, members []models.Stock) domain.Exchange {
	ex := domain.Exchange{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		LiveInMarket:    m.LiveInMarket,
		Members:         make(map[int64]domain.Stock, len(members)),
		VersionedFields: domain.VersionedFields{Version: m.Version},
	}
	for _, s := range members {
		ex.Members[s.ID] = ToDomainStock(s)
	}
	return ex
}
