package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func order(userID string, items ...LineItem) *Order {
	o, _ := NewOrder("order-"+userID, userID, items)
	return o
}

func TestComputeStatistics_NoOrders(t *testing.T) {
	stats := ComputeStatistics(nil, map[string]BookFacts{})

	require.Equal(t, 0, stats.TotalTransactions)
	require.Zero(t, stats.AverageNominalPerTransaction)
	require.Nil(t, stats.MostSoldGenre)
	require.Nil(t, stats.LeastSoldGenre)
}

func TestComputeStatistics_SingleOrderAverageEqualsItsValue(t *testing.T) {
	facts := map[string]BookFacts{
		"b1": {Price: 50, GenreID: "g1", GenreName: "Fantasy"},
	}
	orders := []*Order{order("u1", LineItem{ID: "i1", BookID: "b1", Quantity: 2})}

	stats := ComputeStatistics(orders, facts)

	require.Equal(t, 1, stats.TotalTransactions)
	require.InDelta(t, 100.0, stats.AverageNominalPerTransaction, 1e-9)
	require.NotNil(t, stats.MostSoldGenre)
	require.Equal(t, "Fantasy", *stats.MostSoldGenre)
	require.Equal(t, "Fantasy", *stats.LeastSoldGenre)
}

func TestComputeStatistics_DistinctGenrePerOrderCounting(t *testing.T) {
	facts := map[string]BookFacts{
		"b1": {Price: 10, GenreID: "g1", GenreName: "Fantasy"},
		"b2": {Price: 10, GenreID: "g1", GenreName: "Fantasy"},
		"b3": {Price: 10, GenreID: "g2", GenreName: "History"},
	}
	// One order holding two fantasy books counts Fantasy once.
	orders := []*Order{
		order("u1",
			LineItem{ID: "i1", BookID: "b1", Quantity: 1},
			LineItem{ID: "i2", BookID: "b2", Quantity: 1},
		),
		order("u2", LineItem{ID: "i3", BookID: "b3", Quantity: 1}),
		order("u3", LineItem{ID: "i4", BookID: "b3", Quantity: 1}),
	}

	stats := ComputeStatistics(orders, facts)

	require.Equal(t, "History", *stats.MostSoldGenre)
	require.Equal(t, "Fantasy", *stats.LeastSoldGenre)
}

func TestComputeStatistics_ThreeToTwoScenario(t *testing.T) {
	facts := map[string]BookFacts{
		"a": {Price: 20, GenreID: "g1", GenreName: "A"},
		"b": {Price: 30, GenreID: "g2", GenreName: "B"},
	}
	orders := []*Order{
		order("u1", LineItem{ID: "i1", BookID: "a", Quantity: 1}),
		order("u2", LineItem{ID: "i2", BookID: "a", Quantity: 1}),
		order("u3",
			LineItem{ID: "i3", BookID: "a", Quantity: 1},
			LineItem{ID: "i4", BookID: "b", Quantity: 1},
		),
		order("u4", LineItem{ID: "i5", BookID: "b", Quantity: 1}),
	}

	stats := ComputeStatistics(orders, facts)

	require.Equal(t, 4, stats.TotalTransactions)
	require.Equal(t, "A", *stats.MostSoldGenre)
	require.Equal(t, "B", *stats.LeastSoldGenre)
	// (20 + 20 + 50 + 30) / 4
	require.InDelta(t, 30.0, stats.AverageNominalPerTransaction, 1e-9)
}

func TestComputeStatistics_TieBreaksOnSmallestName(t *testing.T) {
	facts := map[string]BookFacts{
		"b1": {Price: 10, GenreID: "g1", GenreName: "Zeta"},
		"b2": {Price: 10, GenreID: "g2", GenreName: "Alpha"},
	}
	orders := []*Order{
		order("u1", LineItem{ID: "i1", BookID: "b1", Quantity: 1}),
		order("u2", LineItem{ID: "i2", BookID: "b2", Quantity: 1}),
	}

	stats := ComputeStatistics(orders, facts)

	require.Equal(t, "Alpha", *stats.MostSoldGenre)
	require.Equal(t, "Alpha", *stats.LeastSoldGenre)
}

func TestComputeStatistics_UsesLivePrices(t *testing.T) {
	facts := map[string]BookFacts{
		"b1": {Price: 15, GenreID: "g1", GenreName: "Poetry"},
	}
	orders := []*Order{order("u1", LineItem{ID: "i1", BookID: "b1", Quantity: 3})}

	stats := ComputeStatistics(orders, facts)
	require.InDelta(t, 45.0, stats.AverageNominalPerTransaction, 1e-9)

	// Price change after the order shifts historical statistics.
	facts["b1"] = BookFacts{Price: 20, GenreID: "g1", GenreName: "Poetry"}
	stats = ComputeStatistics(orders, facts)
	require.InDelta(t, 60.0, stats.AverageNominalPerTransaction, 1e-9)
}
