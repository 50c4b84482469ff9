// Package dashboard aggregates the business overview: recognized income,
// procurement spend, active orders, low stock and recent sales. The summary
// is served from an optional cache; the database remains the source of
// truth.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dapursupply/erp-backend/internal/invoice"
	"github.com/dapursupply/erp-backend/pkg/config"
	"github.com/dapursupply/erp-backend/pkg/db/models"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

// Finance reports the income/expense/profit aggregate.
type Finance interface {
	FinanceSummary(ctx context.Context) (*invoice.FinanceSummary, error)
}

// Catalog reports the products running low.
type Catalog interface {
	LowStock(ctx context.Context, limit int) ([]models.Product, error)
}

// Cache is the optional summary cache. Get returns found=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// Service serves the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

// RecentSale is one row of the recent sales feed.
type RecentSale struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	OrderDate time.Time `json:"order_date"`
}

// Summary is the cached dashboard read model.
type Summary struct {
	Income       string           `json:"income"`
	Expense      string           `json:"expense"`
	Profit       string           `json:"profit"`
	ActiveOrders int64            `json:"active_orders"`
	LowStock     []models.Product `json:"low_stock"`
	RecentSales  []RecentSale     `json:"recent_sales"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

type service struct {
	repo    Repository
	finance Finance
	catalog Catalog
	cache   Cache
	cfg     config.DashboardConfig
	now     func() time.Time
}

const cacheKey = "dapur:cache:dashboard:summary"

// NewService builds a dashboard service. The cache may be nil; reads then
// always hit the database.
func NewService(repo Repository, finance Finance, catalog Catalog, cache Cache, cfg config.DashboardConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if finance == nil {
		return nil, fmt.Errorf("finance reader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{
		repo:    repo,
		finance: finance,
		catalog: catalog,
		cache:   cache,
		cfg:     cfg,
		now:     time.Now,
	}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached Summary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			// Corrupt cache entries fall through to a fresh read.
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			s.cache.Set(ctx, cacheKey, string(raw), s.cfg.CacheTTL)
		}
	}
	return summary, nil
}

func (s *service) build(ctx context.Context) (*Summary, error) {
	finance, err := s.finance.FinanceSummary(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.CountActiveSalesOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active sales orders")
	}

	lowStock, err := s.catalog.LowStock(ctx, s.cfg.LowStockLimit)
	if err != nil {
		return nil, err
	}

	recentLimit := s.cfg.RecentSales
	if recentLimit <= 0 {
		recentLimit = 5
	}
	recent, err := s.repo.RecentSales(ctx, recentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent sales")
	}

	sales := make([]RecentSale, 0, len(recent))
	for _, order := range recent {
		sales = append(sales, RecentSale{
			ID:        order.ID,
			Code:      order.Code,
			Total:     order.Total.String(),
			Status:    order.Status,
			OrderDate: order.OrderDate,
		})
	}

	return &Summary{
		Income:       finance.Income.String(),
		Expense:      finance.Expense.String(),
		Profit:       finance.Profit.String(),
		ActiveOrders: active,
		LowStock:     lowStock,
		RecentSales:  sales,
		GeneratedAt:  s.now(),
	}, nil
}
