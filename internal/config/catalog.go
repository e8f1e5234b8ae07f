package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CatalogConfig is the on-disk shape of pricing.yml.
type CatalogConfig struct {
	Version      string             `mapstructure:"version"`
	Segments     []SegmentCatalog   `mapstructure:"segments"`
	Capabilities map[string]float64 `mapstructure:"capabilities"`
}

type SegmentCatalog struct {
	Segment string                   `mapstructure:"segment"`
	Plans   []pricingdomain.PlanTier `mapstructure:"plans"`
}

// DefaultCatalogConfig is the catalog used when no pricing.yml is found.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Version: "2025-10",
		Segments: []SegmentCatalog{
			{
				Segment: string(pricingdomain.SegmentInHouse),
				Plans: []pricingdomain.PlanTier{
					{Name: "starter", MonthlyPriceCents: 8900, MonthlyCredits: 4450},
					{Name: "pro", MonthlyPriceCents: 24900, MonthlyCredits: 18675},
					{Name: "enterprise", MonthlyPriceCents: 49900, MonthlyCredits: 49900},
				},
			},
			{
				Segment: string(pricingdomain.SegmentAgency),
				Plans: []pricingdomain.PlanTier{
					{Name: "intro", MonthlyPriceCents: 29900, MonthlyCredits: 14950},
					{Name: "growth", MonthlyPriceCents: 49900, MonthlyCredits: 37425},
					{Name: "scale", MonthlyPriceCents: 60000, MonthlyCredits: 60000},
				},
			},
		},
		Capabilities: map[string]float64{
			"gpt-4o":                 1,
			"chatgpt":                1,
			"sonar":                  1,
			"google-ai-overview":     1,
			"llama-3-3-70b-instruct": 0.5,
			"gpt-4o-search":          1,
			"claude-sonnet-4":        2,
			"claude-3-5-haiku":       2,
			"gemini-1-5-flash":       1,
			"deepseek-r1":            1,
			"gemini-2-5-flash":       2,
			"google-ai-mode":         1,
			"grok-2-1212":            2,
			"gpt-3-5-turbo":          1,
		},
	}
}

// Build validates the configuration and freezes it into catalogs.
func (c CatalogConfig) Build() (*pricingdomain.Catalogs, error) {
	catalogs := make([]pricingdomain.Catalog, 0, len(c.Segments))
	for _, s := range c.Segments {
		segment, err := pricingdomain.ParseSegment(s.Segment)
		if err != nil {
			return nil, fmt.Errorf("pricing.segments %q: %w", s.Segment, err)
		}
		catalogs = append(catalogs, pricingdomain.Catalog{Segment: segment, Tiers: s.Plans})
	}

	prices := make(pricingdomain.CapabilityPrices, len(c.Capabilities))
	for id, weight := range c.Capabilities {
		prices[strings.TrimSpace(id)] = decimal.NewFromFloat(weight)
	}
	if len(prices) == 0 {
		return nil, errors.New("pricing.capabilities cannot be empty")
	}

	return pricingdomain.NewCatalogs(c.Version, catalogs, prices)
}

// CatalogHolder keeps the current catalogs and swaps them on file changes.
// Runs take one snapshot with Get and never observe a reload mid-way.
type CatalogHolder struct {
	current atomic.Pointer[pricingdomain.Catalogs]
	source  string
}

// NewCatalogHolder reads pricing.yml (or cfg.CatalogPath) and watches it.
func NewCatalogHolder(cfg Config, log *zap.Logger) (*CatalogHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.catalog")

	v := viper.New()
	if path := strings.TrimSpace(cfg.CatalogPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pricing")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/planshift")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PLANSHIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read pricing catalog: %w", err)
		}
		catalogs, err := DefaultCatalogConfig().Build()
		if err != nil {
			return nil, err
		}
		log.Info("pricing catalog loaded from defaults", zap.String("version", catalogs.Version))
		return NewStaticCatalogHolder(catalogs, "defaults"), nil
	}

	catalogs, err := decodeCatalogs(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticCatalogHolder(catalogs, v.ConfigFileUsed())
	log.Info("pricing catalog loaded",
		zap.String("file", holder.source),
		zap.String("version", catalogs.Version),
	)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeCatalogs(v)
		if err != nil {
			log.Warn("invalid pricing catalog ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("pricing catalog reloaded", zap.String("file", e.Name), zap.String("version", updated.Version))
	})

	return holder, nil
}

// NewStaticCatalogHolder wraps already-built catalogs.
func NewStaticCatalogHolder(catalogs *pricingdomain.Catalogs, source string) *CatalogHolder {
	holder := &CatalogHolder{source: source}
	holder.current.Store(catalogs)
	return holder
}

func (h *CatalogHolder) Get() *pricingdomain.Catalogs {
	return h.current.Load()
}

// Source names where the current catalogs came from.
func (h *CatalogHolder) Source() string {
	return h.source
}

func decodeCatalogs(v *viper.Viper) (*pricingdomain.Catalogs, error) {
	var cfg CatalogConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, fmt.Errorf("decode pricing catalog: %w", err)
	}
	return cfg.Build()
}
