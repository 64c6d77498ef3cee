package analytics

import (
	"math"
	"sort"
	"time"

	"bakehouse/internal/domain"
)

// Pure, stateless reducers over already-filtered record sets. Every
// reducer is total: the empty set yields zeroed output, never an error,
// and identical inputs always yield identical output.

const DefaultFavoriteItemsLimit = 5

// TotalRevenue sums order totals. Garbled amounts (NaN, Inf) are coerced
// to 0 and the order is still counted, so order counts never
// under-report.
func TotalRevenue(orders []domain.Order) float64 {
	var total float64
	for _, o := range orders {
		total += sanitizeAmount(o.TotalAmount)
	}
	return total
}

// AverageOrderValue is 0 on an empty set, never NaN.
func AverageOrderValue(orders []domain.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	return TotalRevenue(orders) / float64(len(orders))
}

// StatusBreakdown counts orders per status. Every known status appears
// in the map, including those with count 0. Orders carrying an unknown
// status token are counted under their own token.
func StatusBreakdown(orders []domain.Order) map[string]int {
	breakdown := make(map[string]int, len(domain.OrderStatuses))
	for _, s := range domain.OrderStatuses {
		breakdown[s] = 0
	}
	for _, o := range orders {
		breakdown[o.Status]++
	}
	return breakdown
}

// RatingDistribution counts feedback per rating 1..5. All five keys are
// always present. Ratings outside 1..5 are excluded from the
// distribution but still part of the feedback count.
func RatingDistribution(feedback []domain.Feedback) map[int]int {
	dist := make(map[int]int, domain.FeedbackMaxRating)
	for r := domain.FeedbackMinRating; r <= domain.FeedbackMaxRating; r++ {
		dist[r] = 0
	}
	for _, f := range feedback {
		if domain.ValidRating(f.Rating) {
			dist[f.Rating]++
		}
	}
	return dist
}

// AverageRating averages the valid ratings only; 0 when none are valid.
func AverageRating(feedback []domain.Feedback) float64 {
	var sum float64
	var count int
	for _, f := range feedback {
		if domain.ValidRating(f.Rating) {
			sum += float64(f.Rating)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// LowStockAlerts returns the restock worklist: every item at or below
// its minimum, zero-stock items included. Input order is preserved.
func LowStockAlerts(items []domain.InventoryItem) []domain.InventoryItem {
	alerts := []domain.InventoryItem{}
	for _, item := range items {
		if item.CurrentStock <= item.EffectiveMinimumStock() {
			alerts = append(alerts, item)
		}
	}
	return alerts
}

type CustomerStats struct {
	TotalOrders       int
	TotalSpent        float64
	AverageOrderValue float64
	OrderFrequency    float64
}

// CustomerLifetimeStats reduces one customer's orders. OrderFrequency is
// orders per month, with the active span floored at one month so a
// single order reports one order per month.
func CustomerLifetimeStats(orders []domain.Order) CustomerStats {
	stats := CustomerStats{
		TotalOrders:       len(orders),
		TotalSpent:        TotalRevenue(orders),
		AverageOrderValue: AverageOrderValue(orders),
	}
	if len(orders) == 0 {
		return stats
	}

	earliest, latest := orders[0].CreatedAt, orders[0].CreatedAt
	for _, o := range orders[1:] {
		if o.CreatedAt.Before(earliest) {
			earliest = o.CreatedAt
		}
		if o.CreatedAt.After(latest) {
			latest = o.CreatedAt
		}
	}
	stats.OrderFrequency = float64(stats.TotalOrders) / monthsBetween(earliest, latest)
	return stats
}

// monthsBetween approximates months as 30-day blocks, floored at 1.
func monthsBetween(earliest, latest time.Time) float64 {
	months := latest.Sub(earliest).Hours() / 24 / 30
	if months < 1 {
		return 1
	}
	return months
}

type FavoriteItem struct {
	Name       string
	Quantity   int
	TotalSpent float64
}

// FavoriteItems ranks line items by cumulative quantity, descending.
// Ties keep the order in which the item was first encountered. limit <= 0
// falls back to the default of 5.
func FavoriteItems(orders []domain.Order, limit int) []FavoriteItem {
	if limit <= 0 {
		limit = DefaultFavoriteItemsLimit
	}

	index := make(map[string]int)
	favorites := []FavoriteItem{}
	for _, o := range orders {
		for _, item := range o.Items {
			i, seen := index[item.CakeName]
			if !seen {
				i = len(favorites)
				index[item.CakeName] = i
				favorites = append(favorites, FavoriteItem{Name: item.CakeName})
			}
			favorites[i].Quantity += item.Quantity
			favorites[i].TotalSpent += sanitizeAmount(item.TotalPrice)
		}
	}

	sort.SliceStable(favorites, func(a, b int) bool {
		return favorites[a].Quantity > favorites[b].Quantity
	})

	if len(favorites) > limit {
		favorites = favorites[:limit]
	}
	return favorites
}

// CakeSales aggregates one cake's performance. ProfitMargin is supplied
// externally and passed through unchanged. LastSoldAt is zero when the
// cake never sold in the input set; the presentation layer derives
// "days since last sale" from it and reports unknown when it is zero,
// never a fabricated number.
type CakeSales struct {
	CakeID       uint
	Name         string
	Sales        int
	Revenue      float64
	OrderCount   int
	ProfitMargin float64
	LastSoldAt   time.Time
}

// TopSellingCakes ranks cakes by revenue, descending, truncated to
// limit. Ties keep first-encounter order. margins maps cake id to an
// externally supplied profit margin; absent cakes get 0.
func TopSellingCakes(orders []domain.Order, margins map[uint]float64, limit int) []CakeSales {
	index := make(map[uint]int)
	cakes := []CakeSales{}
	for _, o := range orders {
		seenInOrder := make(map[uint]bool)
		for _, item := range o.Items {
			i, seen := index[item.CakeID]
			if !seen {
				i = len(cakes)
				index[item.CakeID] = i
				cakes = append(cakes, CakeSales{
					CakeID:       item.CakeID,
					Name:         item.CakeName,
					ProfitMargin: margins[item.CakeID],
				})
			}
			cakes[i].Sales += item.Quantity
			cakes[i].Revenue += sanitizeAmount(item.TotalPrice)
			if !seenInOrder[item.CakeID] {
				cakes[i].OrderCount++
				seenInOrder[item.CakeID] = true
			}
			if o.CreatedAt.After(cakes[i].LastSoldAt) {
				cakes[i].LastSoldAt = o.CreatedAt
			}
		}
	}

	sort.SliceStable(cakes, func(a, b int) bool {
		return cakes[a].Revenue > cakes[b].Revenue
	})

	if limit > 0 && len(cakes) > limit {
		cakes = cakes[:limit]
	}
	return cakes
}

func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
