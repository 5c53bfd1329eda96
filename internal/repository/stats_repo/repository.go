package stats_repo

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

const (
	// recentWindowSize - how many sales the rolling dashboard window keeps
	recentWindowSize = 100
)

type vendorState struct {
	totalOrders  int
	totalUnits   int
	totalRevenue decimal.Decimal
	recent       []model.Sale
}

// StatsRepo - in-memory per-vendor sales counters.
// Rebuilt from scratch on restart; the dashboard treats it as approximate
type StatsRepo struct {
	mtx     sync.RWMutex
	vendors map[int]*vendorState
}

func NewStatsRepository() repository.StatsRepository {
	return &StatsRepo{
		vendors: make(map[int]*vendorState),
	}
}

// RecordSale - folds one fulfilled order line into the vendor's counters
func (r *StatsRepo) RecordSale(vendorID int, orderID int, amount decimal.Decimal, quantity int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	state, ok := r.vendors[vendorID]
	if !ok {
		state = &vendorState{totalRevenue: decimal.Zero}
		r.vendors[vendorID] = state
	}

	state.totalOrders++
	state.totalUnits += quantity
	state.totalRevenue = state.totalRevenue.Add(amount)

	state.recent = append(state.recent, model.Sale{
		OrderID:  orderID,
		Amount:   amount,
		Quantity: quantity,
		At:       time.Now(),
	})

	// Keep the window bounded
	if len(state.recent) > recentWindowSize {
		state.recent = state.recent[1:]
	}
}

// VendorStats - snapshot copy of the vendor's counters
func (r *StatsRepo) VendorStats(vendorID int) model.VendorStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	state, ok := r.vendors[vendorID]
	if !ok {
		return model.VendorStats{
			TotalRevenue:  decimal.Zero,
			RecentRevenue: decimal.Zero,
		}
	}

	recent := make([]model.Sale, len(state.recent))
	copy(recent, state.recent)

	recentRevenue := decimal.Zero
	for _, sale := range recent {
		recentRevenue = recentRevenue.Add(sale.Amount)
	}

	return model.VendorStats{
		TotalOrders:   state.totalOrders,
		TotalUnits:    state.totalUnits,
		TotalRevenue:  state.totalRevenue,
		RecentSales:   recent,
		RecentRevenue: recentRevenue,
	}
}
