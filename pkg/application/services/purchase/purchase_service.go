package purchase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
)

// PurchaseService turns a planning input bundle into a purchase recommendation per code
type PurchaseService struct {
	policy entities.Policy
}

// NewPurchaseService creates a purchase service with the default policy
func NewPurchaseService() *PurchaseService {
	return NewPurchaseServiceWithPolicy(entities.DefaultPolicy())
}

// NewPurchaseServiceWithPolicy creates a purchase service with a custom policy
func NewPurchaseServiceWithPolicy(policy entities.Policy) *PurchaseService {
	return &PurchaseService{policy: policy}
}

// Calculate runs the full pipeline over inputs. It either returns a complete result or an
// error and no result; the result depends on nothing but inputs and the policy.
func (s *PurchaseService) Calculate(ctx context.Context, inputs dto.PlanningInputs) (result *dto.PurchaseResult, err error) {
	if missing := inputs.MissingSources(); len(missing) > 0 {
		return nil, eris.Wrapf(entities.ErrInsufficientInputs, "purchase: missing required sources: %s", strings.Join(missing, ", "))
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "purchase: run cancelled")
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = eris.Wrapf(entities.ErrComputationFailure, "purchase: unexpected fault: %v", r)
		}
	}()

	runID := uuid.NewString()
	startTime := time.Now()
	log := zap.L().With(zap.String("run_id", runID))

	products, err := inputs.Catalog.GetAllProducts()
	if err != nil {
		return nil, eris.Wrapf(entities.ErrComputationFailure, "purchase: read catalog: %v", err)
	}
	log.Debug("purchase: run started",
		zap.Int("products", len(products)),
		zap.Int("active_contract_companies", len(inputs.ActiveContracts)),
		zap.Int("excluded_contract_companies", len(inputs.ExcludedContracts)),
	)

	// Merge supplier side tables
	lines := MergeSupplierData(products, inputs)
	if len(lines) != inputs.Catalog.Count() {
		return nil, eris.Wrapf(entities.ErrComputationFailure,
			"purchase: merge changed row count from %d to %d", inputs.Catalog.Count(), len(lines))
	}

	// Reduce contracts
	active := AggregateActiveContracts(inputs.ActiveContracts)
	excluded := AggregateExcludedContracts(inputs.ExcludedContracts)

	for i := range lines {
		s.evaluate(&lines[i], active[lines[i].Code], excluded[lines[i].Code])
	}

	result = &dto.PurchaseResult{
		Lines:   lines,
		Summary: BuildSummary(lines),
	}

	log.Info("purchase: run complete",
		zap.Int("codes", result.Summary.TotalCodes),
		zap.Int("case_a", result.Summary.CaseCounts[entities.CaseA]),
		zap.Int("case_b", result.Summary.CaseCounts[entities.CaseB]),
		zap.Int("case_c", result.Summary.CaseCounts[entities.CaseC]),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return result, nil
}

// evaluate computes every derived field of one merged line
func (s *PurchaseService) evaluate(line *entities.PurchaseLine, contracts entities.ContractTotals, excluded entities.ExclusionTotals) {
	line.HistoricalContractBilling = contracts.HistoricalBilling
	line.CommittedContractDemand = contracts.CommittedDemand
	line.ExcludedQ3 = excluded.Q3
	line.ExcludedQ6 = excluded.Q6
	line.ExcludedQ12 = excluded.Q12

	line.DemandWithoutContracts = NormalizeDemand(line.Product, excluded, contracts)
	line.VirtualStock = VirtualStock(*line)
	line.PriceDeltaPct = PriceDeltaPct(line.MexicoPrice, line.PolifiltroPrice)
	line.Supplier = ChooseSupplier(line.PolifiltroPrice, line.PriceDeltaPct, s.policy.PriceSwitchThresholdPct)
	line.Priority = line.HasClassification(s.policy.PriorityClasses)

	Allocate(line, s.policy)
}
