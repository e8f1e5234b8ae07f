package service

import (
	"context"
	"fmt"

	billingservice "github.com/smallbiznis/planshift/internal/billing/service"
	obsmetrics "github.com/smallbiznis/planshift/internal/observability/metrics"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	usageservice "github.com/smallbiznis/planshift/internal/usage/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

func New(p Params) scenariodomain.Service {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:     log.Named("scenario.service"),
		metrics: p.Metrics,
	}
}

func (s *Service) Evaluate(ctx context.Context, catalogs *pricingdomain.Catalogs, in scenariodomain.Input) (scenariodomain.Result, error) {
	if catalogs == nil {
		return scenariodomain.Result{}, scenariodomain.ErrMissingCatalogs
	}

	customer := in.Customer
	catalog, err := catalogs.For(customer.Segment)
	if err != nil {
		return scenariodomain.Result{}, fmt.Errorf("customer %s: %w", customer.ExternalID, scenariodomain.ErrInvalidSegment)
	}

	footprint := usageservice.Summarize(in.Usage, catalogs.Capabilities)
	spend := billingservice.Spend(in.LineItems)
	eligible := EligibleTiers(catalog, footprint.Workspaces)

	leastCost, err := LeastCost(footprint.CreditsRequired, eligible)
	if err != nil {
		return scenariodomain.Result{}, fmt.Errorf("least cost for customer %s: %w", customer.ExternalID, err)
	}
	match, err := MatchSpend(footprint.CreditsRequired, spend.AnnualCents, eligible)
	if err != nil {
		return scenariodomain.Result{}, fmt.Errorf("match spend for customer %s: %w", customer.ExternalID, err)
	}

	s.metrics.RecordCustomerEvaluated(ctx, string(customer.Segment), leastCost.PlanName)
	if !match.Present {
		s.metrics.RecordMatchAbsent(ctx, string(customer.Segment))
	}

	return scenariodomain.Result{
		CustomerID:        customer.ExternalID,
		CustomerName:      customer.Name,
		CustomerDomain:    customer.DomainName(),
		Segment:           customer.Segment,
		BillingCustomerID: customer.BillingRef(),
		Spend:             spend,
		Footprint:         footprint,
		LeastCost:         leastCost,
		MatchSpend:        match,
	}, nil
}

func (s *Service) EvaluateAll(ctx context.Context, catalogs *pricingdomain.Catalogs, inputs []scenariodomain.Input) ([]scenariodomain.Result, error) {
	results := make([]scenariodomain.Result, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.Evaluate(ctx, catalogs, in)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	s.log.Debug("scenarios evaluated", zap.Int("customers", len(results)))
	return results, nil
}
