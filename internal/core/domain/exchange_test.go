package domain_test

import (
	"testing"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func stocksWithIDs(ids ...int64) []domain.Stock {
	stocks := make([]domain.Stock, len(ids))
	for i, id := range ids {
		stocks[i] = domain.Stock{ID: id}
	}
	return stocks
}

func TestIsLiveInMarket(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "empty exchange", count: 0, want: false},
		{name: "one below threshold", count: domain.LiveInMarketThreshold - 1, want: false},
		{name: "exactly at threshold", count: domain.LiveInMarketThreshold, want: true},
		{name: "above threshold", count: domain.LiveInMarketThreshold + 3, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsLiveInMarket(tt.count))
		})
	}
}

func TestExchange_AddMemberCrossesThreshold(t *testing.T) {
	ex := domain.NewExchange("NASDAQ", "Nasdaq Stock Market")
	for _, s := range stocksWithIDs(1, 2, 3, 4) {
		ex.AddMember(s)
	}
	assert.False(t, ex.LiveInMarket)

	ex.AddMember(domain.Stock{ID: 5})
	assert.True(t, ex.LiveInMarket)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ex.MemberIDs())
}

func TestExchange_AddMemberIsIdempotentOnSet(t *testing.T) {
	ex := domain.NewExchange("NYSE", "")
	ex.AddMember(domain.Stock{ID: 7})
	ex.AddMember(domain.Stock{ID: 7})

	assert.Len(t, ex.Members, 1)
	assert.True(t, ex.HasMember(7))
}

func TestExchange_AddThenRemoveRestoresState(t *testing.T) {
	ex := domain.NewExchange("LSE", "")
	for _, s := range stocksWithIDs(10, 11, 12, 13, 14) {
		ex.AddMember(s)
	}
	before := ex.MemberIDs()
	beforeLive := ex.LiveInMarket

	ex.AddMember(domain.Stock{ID: 99})
	ex.RemoveMember(99)

	assert.Equal(t, before, ex.MemberIDs())
	assert.Equal(t, beforeLive, ex.LiveInMarket)
}

func TestExchange_RemoveMemberDropsBelowThreshold(t *testing.T) {
	ex := domain.NewExchange("BIST", "")
	for _, s := range stocksWithIDs(1, 2, 3, 4, 5) {
		ex.AddMember(s)
	}
	assert.True(t, ex.LiveInMarket)

	ex.RemoveMember(3)
	assert.False(t, ex.LiveInMarket)
	assert.False(t, ex.HasMember(3))

	// removing a non-member leaves the set untouched
	ex.RemoveMember(42)
	assert.Len(t, ex.Members, 4)
}

func TestExchange_MutationsDoNotTouchVersion(t *testing.T) {
	ex := domain.NewExchange("NASDAQ", "")
	ex.Version = 3
	ex.AddMember(domain.Stock{ID: 1})
	ex.RemoveMember(1)
	assert.Equal(t, 3, ex.Version)
}

func TestExchange_CloneIsIndependent(t *testing.T) {
	ex := domain.NewExchange("NASDAQ", "")
	ex.AddMember(domain.Stock{ID: 1})

	c := ex.Clone()
	c.AddMember(domain.Stock{ID: 2})

	assert.Len(t, ex.Members, 1)
	assert.Len(t, c.Members, 2)
	assert.Equal(t, []domain.Stock{{ID: 1}, {ID: 2}}, c.Stocks())
}
