package impl

import (
	"context"
	"log/slog"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type reportService struct {
	propertyRepo      repository.PropertyRepository
	paymentDetailRepo repository.PaymentDetailRepository
	policyRepo        repository.PolicyRepository
	logger            *slog.Logger
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	PropertyRepo      repository.PropertyRepository
	PaymentDetailRepo repository.PaymentDetailRepository
	PolicyRepo        repository.PolicyRepository
	Logger            *slog.Logger
}

// NewReportService creates a new report service instance
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		propertyRepo:      params.PropertyRepo,
		paymentDetailRepo: params.PaymentDetailRepo,
		policyRepo:        params.PolicyRepo,
		logger:            params.Logger,
	}
}

// CollectionReport totals the installments in the window and splits the result
// by the active policies. Without a commission policy nothing is deducted; without
// a revenue split the municipality keeps the whole net amount.
func (srv *reportService) CollectionReport(ctx context.Context, input *usecase.CollectionReportInput) (*entity.CollectionReport, error) {
	if input.From != nil && input.To != nil && !input.From.Before(*input.To) {
		return nil, validationError("from must be before to")
	}

	total, count, err := srv.paymentDetailRepo.SumCollected(ctx, input.CollectorID, input.From, input.To)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum collections")
	}

	commissionPct := zero
	commission, err := srv.policyRepo.ActiveCommission(ctx)
	switch {
	case err == nil:
		commissionPct = commission.Percentage
	case !errors.Is(err, repository.ErrNoActivePolicy):
		return nil, errors.Wrap(err, "failed to load commission policy")
	}

	operatorPct, municipalityPct := zero, hundred
	split, err := srv.policyRepo.ActiveRevenueSplit(ctx)
	switch {
	case err == nil:
		operatorPct, municipalityPct = split.OperatorPercentage, split.MunicipalityPercentage
	case !errors.Is(err, repository.ErrNoActivePolicy):
		return nil, errors.Wrap(err, "failed to load revenue split policy")
	}

	commissionAmount := total.Mul(commissionPct).Div(hundred).Round(2)
	net := total.Sub(commissionAmount)
	operatorShare := net.Mul(operatorPct).Div(hundred).Round(2)

	return &entity.CollectionReport{
		CollectorID:            input.CollectorID,
		From:                   input.From,
		To:                     input.To,
		TotalCollected:         total,
		DetailCount:            count,
		CommissionPercentage:   commissionPct,
		CommissionAmount:       commissionAmount,
		NetAmount:              net,
		OperatorPercentage:     operatorPct,
		OperatorShare:          operatorShare,
		MunicipalityPercentage: municipalityPct,
		// The municipality takes the remainder so the shares always add up to net.
		MunicipalityShare: net.Sub(operatorShare),
	}, nil
}

func (srv *reportService) Summary(ctx context.Context) (*entity.CollectionSummary, error) {
	stats, err := srv.propertyRepo.Stats(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to compute registry summary")
	}

	outstanding := stats.TotalExpected.Sub(stats.TotalPaid)
	if outstanding.IsNegative() {
		outstanding = zero
	}

	return &entity.CollectionSummary{
		PropertyCount:    stats.Count,
		ByPaymentStatus:  stats.ByPaymentStatus,
		TotalExpected:    stats.TotalExpected,
		TotalPaid:        stats.TotalPaid,
		TotalOutstanding: outstanding,
	}, nil
}
