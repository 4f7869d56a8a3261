package domain

// BookFacts carries what statistics needs about a referenced book. Rows for
// soft-deleted books and genres are included so historical orders keep
// contributing.
type BookFacts struct {
	Price     float64
	GenreID   string
	GenreName string
}

// Statistics summarizes the order ledger. Genre fields are nil when no order
// references any genre.
type Statistics struct {
	TotalTransactions            int
	AverageNominalPerTransaction float64
	MostSoldGenre                *string
	LeastSoldGenre               *string
}

// ComputeStatistics aggregates over every order. Per-order value uses the
// book's current price, not a snapshot taken at order time. Genre ranking
// counts distinct orders per genre: an order holding several books of one
// genre counts once for it. Ties go to the lexicographically smallest genre
// name so the result is deterministic.
func ComputeStatistics(orders []*Order, facts map[string]BookFacts) Statistics {
	stats := Statistics{TotalTransactions: len(orders)}
	if len(orders) == 0 {
		return stats
	}

	var grandTotal float64
	orderCountByGenre := map[string]int{}
	for _, order := range orders {
		genresInOrder := map[string]bool{}
		for _, item := range order.Items {
			fact, ok := facts[item.BookID]
			if !ok {
				continue
			}
			grandTotal += fact.Price * float64(item.Quantity)
			if fact.GenreName != "" {
				genresInOrder[fact.GenreName] = true
			}
		}
		for name := range genresInOrder {
			orderCountByGenre[name]++
		}
	}
	stats.AverageNominalPerTransaction = grandTotal / float64(len(orders))

	for name, count := range orderCountByGenre {
		if stats.MostSoldGenre == nil || count > orderCountByGenre[*stats.MostSoldGenre] ||
			(count == orderCountByGenre[*stats.MostSoldGenre] && name < *stats.MostSoldGenre) {
			n := name
			stats.MostSoldGenre = &n
		}
		if stats.LeastSoldGenre == nil || count < orderCountByGenre[*stats.LeastSoldGenre] ||
			(count == orderCountByGenre[*stats.LeastSoldGenre] && name < *stats.LeastSoldGenre) {
			n := name
			stats.LeastSoldGenre = &n
		}
	}
	return stats
}
