package domain

import "sort"

// LiveInMarketThreshold is the number of listed stocks at which an exchange is considered live.
const LiveInMarketThreshold = 5

// IsLiveInMarket is the liveness rule: an exchange listing n stocks is live iff n >= LiveInMarketThreshold.
func IsLiveInMarket(n int) bool {
	return n >= LiveInMarketThreshold
}

// Exchange is a trading venue together with the set of stocks it lists.
// Members is keyed by stock ID; the values are the stock snapshots loaded with the exchange.
type Exchange struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"` // Unique across all exchanges
	Description  string          `json:"description"`
	LiveInMarket bool            `json:"liveInMarket"`
	Members      map[int64]Stock `json:"-"`
	VersionedFields
}

// NewExchange creates an exchange with an empty membership set.
func NewExchange(name, description string) Exchange {
	return Exchange{
		Name:        name,
		Description: description,
		Members:     map[int64]Stock{},
	}
}

// HasMember reports whether the stock is listed on the exchange.
func (e *Exchange) HasMember(stockID int64) bool {
	_, ok := e.Members[stockID]
	return ok
}

// AddMember lists the stock and recomputes LiveInMarket. Adding an existing member is a no-op on the set.
func (e *Exchange) AddMember(stock Stock) {
	if e.Members == nil {
		e.Members = map[int64]Stock{}
	}
	e.Members[stock.ID] = stock
	e.refreshLiveInMarket()
}

// RemoveMember delists the stock and recomputes LiveInMarket. Removing a non-member is a no-op on the set.
func (e *Exchange) RemoveMember(stockID int64) {
	delete(e.Members, stockID)
	e.refreshLiveInMarket()
}

func (e *Exchange) refreshLiveInMarket() {
	e.LiveInMarket = IsLiveInMarket(len(e.Members))
}

// MemberIDs returns the listed stock IDs in ascending order.
func (e Exchange) MemberIDs() []int64 {
	ids := make([]int64, 0, len(e.Members))
	for id := range e.Members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Stocks returns the listed stocks ordered by ID.
func (e Exchange) Stocks() []Stock {
	stocks := make([]Stock, 0, len(e.Members))
	for _, id := range e.MemberIDs() {
		stocks = append(stocks, e.Members[id])
	}
	return stocks
}

// Clone returns a deep copy so a working copy can be mutated without touching the receiver.
func (e Exchange) Clone() Exchange {
	c := e
	c.Members = make(map[int64]Stock, len(e.Members))
	for id, s := range e.Members {
		c.Members[id] = s
	}
	return c
}
