package application

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"tienda/internal/analytics/domain"
	"tienda/internal/analytics/infrastructure"
	"tienda/internal/apperr"
	shareddomain "tienda/internal/shared/domain"
	sharedinfra "tienda/internal/shared/infrastructure"
)

// DefaultTopLimit nombre d'articles retournés par défaut par le palmarès
const DefaultTopLimit = 5

// MaxTopLimit borne haute du palmarès
const MaxTopLimit = 100

// StatsService statistiques de vente avec cache. Les agrégations sont
// recalculées après expiration du TTL; une écriture sur le registre des
// ventes peut donc rester invisible jusqu'à l'expiration.
type StatsService struct {
	stats *infrastructure.StatsQueryRepository
	cache sharedinfra.Cache
	ttl   time.Duration
	log   *logrus.Entry
}

// NewStatsService crée une nouvelle instance de StatsService
func NewStatsService(
	stats *infrastructure.StatsQueryRepository,
	cache sharedinfra.Cache,
	ttl time.Duration,
	log *logrus.Logger,
) *StatsService {
	return &StatsService{
		stats: stats,
		cache: cache,
		ttl:   ttl,
		log:   log.WithField("component", "stats"),
	}
}

// TotalRevenue retourne le chiffre d'affaires total avec son détail,
// calculé depuis le registre des ventes
func (s *StatsService) TotalRevenue() (*domain.RevenueReport, error) {
	key := sharedinfra.NewCacheKeyBuilder().Add("stats").Add("revenue").Build()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*domain.RevenueReport), nil
	}

	var report domain.RevenueReport

	g := new(errgroup.Group)
	g.Go(func() error {
		total, err := s.stats.TotalRevenue()
		report.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		breakdown, err := s.stats.RevenueBreakdown()
		report.Breakdown = breakdown
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(key, &report, s.ttl)
	return &report, nil
}

// TopSellingArticles retourne les limit articles les plus vendus parmi
// les commandes complétées. limit <= 0 applique la valeur par défaut.
func (s *StatsService) TopSellingArticles(limit int) ([]domain.ArticleSales, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return nil, apperr.Validation("limit must not exceed %d", MaxTopLimit)
	}

	key := sharedinfra.NewCacheKeyBuilder().Add("stats").Add("top").AddInt(limit).Build()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]domain.ArticleSales), nil
	}

	top, err := s.stats.TopSellingArticles(limit)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, top, s.ttl)
	return top, nil
}

// SalesLastDays retourne les ventes journalières des days derniers jours
// UTC, journée courante incluse
func (s *StatsService) SalesLastDays(days int) ([]domain.DailySales, error) {
	if days <= 0 {
		return nil, apperr.Validation("days must be positive")
	}

	key := sharedinfra.NewCacheKeyBuilder().Add("stats").Add("daily").AddInt(days).Build()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]domain.DailySales), nil
	}

	dateRange, err := shareddomain.NewDateRangeFromDays(days)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	daily, err := s.stats.SalesPerDay(dateRange)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, daily, s.ttl)
	return daily, nil
}

// MonthlySummary retourne le résumé des ventes des trente derniers jours
func (s *StatsService) MonthlySummary() (*domain.MonthlySummary, error) {
	key := sharedinfra.NewCacheKeyBuilder().Add("stats").Add("monthly").Build()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*domain.MonthlySummary), nil
	}

	dateRange, err := shareddomain.NewDateRangeFromDays(30)
	if err != nil {
		return nil, err
	}

	summary, err := s.stats.MonthlySummary(dateRange)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, summary, s.ttl)
	return summary, nil
}

// Dashboard assemble la vue d'ensemble en parallélisant les quatre
// agrégations. La première erreur annule le tout.
func (s *StatsService) Dashboard() (*domain.Dashboard, error) {
	start := time.Now()

	var dashboard domain.Dashboard

	g := new(errgroup.Group)
	g.Go(func() error {
		revenue, err := s.TotalRevenue()
		dashboard.Revenue = revenue
		return err
	})
	g.Go(func() error {
		top, err := s.TopSellingArticles(DefaultTopLimit)
		dashboard.TopArticles = top
		return err
	})
	g.Go(func() error {
		lastWeek, err := s.SalesLastDays(7)
		dashboard.LastWeek = lastWeek
		return err
	})
	g.Go(func() error {
		monthly, err := s.MonthlySummary()
		dashboard.Monthly = monthly
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Error("dashboard aggregation failed")
		return nil, err
	}

	s.log.WithField("duration", time.Since(start)).Debug("dashboard computed")
	return &dashboard, nil
}

// InvalidateCache vide le cache de statistiques, à appeler après une
// correction administrative du registre des ventes
func (s *StatsService) InvalidateCache() {
	s.cache.Clear()
	s.log.Info("stats cache invalidated")
}
