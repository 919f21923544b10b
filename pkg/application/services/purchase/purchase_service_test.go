package purchase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
	testhelpers "github.com/vsinha/compras/pkg/infrastructure/testing"
)

func lineByCode(t *testing.T, result *dto.PurchaseResult, code string) entities.PurchaseLine {
	t.Helper()
	for _, l := range result.Lines {
		if string(l.Code) == code {
			return l
		}
	}
	t.Fatalf("code %s not in result", code)
	return entities.PurchaseLine{}
}

func TestPurchaseService_ReferenceScenario(t *testing.T) {
	svc := NewPurchaseService()
	result, err := svc.Calculate(context.Background(), testhelpers.BuildReferenceScenario())
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	x1 := lineByCode(t, result, "X1")
	assert.True(t, x1.PriceDeltaPct.Valid)
	assert.Equal(t, "-10", x1.PriceDeltaPct.Decimal.String())
	assert.Equal(t, entities.SupplierPolifiltro, x1.Supplier)
	assert.True(t, x1.Priority)
	assert.Equal(t, entities.CaseB, x1.Case)
	assert.Equal(t, "5x3", x1.Ratio)
	assert.Equal(t, "80", x1.TargetStock.String())
	assert.Equal(t, int64(50), x1.QtyMexico)
	assert.Equal(t, int64(30), x1.QtyPolifiltro)

	x2 := lineByCode(t, result, "X2")
	assert.Equal(t, entities.SupplierMexico, x2.Supplier)
	assert.False(t, x2.Priority)
	assert.Equal(t, entities.CaseA, x2.Case)
	assert.Equal(t, int64(0), x2.QtyPolifiltro)

	x3 := lineByCode(t, result, "X3")
	assert.Equal(t, "10", x3.DemandWithoutContracts.String())
	assert.Equal(t, "60", x3.TargetStock.String())
	assert.Equal(t, "60", x3.RawQtyMexico.String())
	assert.Equal(t, int64(60), x3.QtyMexico)

	assert.Equal(t, 3, result.Summary.TotalCodes)
	assert.Equal(t, 3, result.Summary.MexicoCodes)
	assert.Equal(t, 1, result.Summary.PolifiltroCodes)
	assert.Equal(t, int64(170), result.Summary.MexicoUnits)
	assert.Equal(t, "1700", result.Summary.MexicoAmount.String())
	assert.Equal(t, "270", result.Summary.PolifiltroAmount.String())
	assert.Equal(t, 2, result.Summary.CaseCounts[entities.CaseA])
	assert.Equal(t, 1, result.Summary.CaseCounts[entities.CaseB])
	assert.Equal(t, 0, result.Summary.CaseCounts[entities.CaseC])
}

func TestPurchaseService_KeepsCatalogOrderAndRowCount(t *testing.T) {
	inputs := testhelpers.BuildPlanningInputs(
		testhelpers.NewProduct("Z9", "AA"),
		testhelpers.NewProduct("A1", "AA"),
		testhelpers.NewProduct("M5", "AA"),
	)
	inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.MexicoAvailability, map[string]string{
		"A1":      "5",
		"UNKNOWN": "100",
	}))

	result, err := NewPurchaseService().Calculate(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)
	assert.Equal(t, entities.ProductCode("Z9"), result.Lines[0].Code)
	assert.Equal(t, entities.ProductCode("A1"), result.Lines[1].Code)
	assert.Equal(t, "5", result.Lines[1].MexicoAvailability.String())
	assert.True(t, result.Lines[0].MexicoAvailability.IsZero())
}

func TestPurchaseService_OptionalTablesDefaultToZero(t *testing.T) {
	p := testhelpers.WithBilling(testhelpers.NewProduct("P1", "AA"), "30", "60", "120")
	inputs := testhelpers.BuildPlanningInputs(p)
	inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.PolifiltroPrice, map[string]string{"P1": "5"}))

	result, err := NewPurchaseService().Calculate(context.Background(), inputs)
	require.NoError(t, err)

	line := result.Lines[0]
	assert.True(t, line.PolifiltroAvailability.IsZero())
	assert.True(t, line.PolifiltroBackorder.IsZero())
	assert.True(t, line.HistoricalContractBilling.IsZero())
	assert.True(t, line.CommittedContractDemand.IsZero())
	assert.Equal(t, int64(50), line.QtyMexico)
	assert.Equal(t, int64(30), line.QtyPolifiltro)
}

func TestPurchaseService_Contracts(t *testing.T) {
	p := testhelpers.WithBilling(testhelpers.NewProduct("P1", "CC"), "30", "60", "120")
	inputs := testhelpers.BuildPlanningInputs(p)
	inputs.ActiveContracts = []entities.ActiveContractTable{
		{Company: "Empresa_1", Lines: []entities.ActiveContractLine{{Code: "P1", Billed: testhelpers.D("4"), Contracted: testhelpers.D("3")}}},
	}
	inputs.ExcludedContracts = []entities.ExcludedContractTable{
		{Company: "Excluir_1", Lines: []entities.ExcludedContractLine{{Code: "P1", Q3: testhelpers.D("3"), Q6: testhelpers.D("6"), Q12: testhelpers.D("12")}}},
	}

	result, err := NewPurchaseService().Calculate(context.Background(), inputs)
	require.NoError(t, err)

	line := result.Lines[0]
	// (9+9+9)/3 = 9 after exclusions, minus min(4,3) billed under contract
	assert.Equal(t, "6", line.DemandWithoutContracts.String())
	assert.Equal(t, "3", line.HistoricalContractBilling.String())
	assert.Equal(t, "3", line.CommittedContractDemand.String())
	assert.Equal(t, "9", line.ExcludedQ6.Add(line.ExcludedQ3).String())
	// Case A: 6*6 + 4*3
	assert.Equal(t, "48", line.TargetStock.String())
	assert.Equal(t, int64(48), line.QtyMexico)
}

func TestPurchaseService_ContractOrderDoesNotMatter(t *testing.T) {
	p := testhelpers.WithBilling(testhelpers.NewProduct("P1", "AA"), "90", "180", "360")
	a := entities.ActiveContractTable{Company: "A", Lines: []entities.ActiveContractLine{{Code: "P1", Billed: testhelpers.D("7"), Contracted: testhelpers.D("10")}}}
	b := entities.ActiveContractTable{Company: "B", Lines: []entities.ActiveContractLine{{Code: "P1", Billed: testhelpers.D("12"), Contracted: testhelpers.D("5")}}}

	forward := testhelpers.BuildPlanningInputs(p)
	forward.ActiveContracts = []entities.ActiveContractTable{a, b}
	backward := testhelpers.BuildPlanningInputs(p)
	backward.ActiveContracts = []entities.ActiveContractTable{b, a}

	r1, err := NewPurchaseService().Calculate(context.Background(), forward)
	require.NoError(t, err)
	r2, err := NewPurchaseService().Calculate(context.Background(), backward)
	require.NoError(t, err)

	assert.Equal(t, "12", r1.Lines[0].HistoricalContractBilling.String())
	assert.Equal(t, "15", r1.Lines[0].CommittedContractDemand.String())
	assert.Equal(t, r1.Lines[0].QtyMexico, r2.Lines[0].QtyMexico)
	assert.True(t, r1.Lines[0].TargetStock.Equal(r2.Lines[0].TargetStock))
}

func TestPurchaseService_IsIdempotent(t *testing.T) {
	svc := NewPurchaseService()
	inputs := testhelpers.BuildReferenceScenario()

	r1, err := svc.Calculate(context.Background(), inputs)
	require.NoError(t, err)
	r2, err := svc.Calculate(context.Background(), inputs)
	require.NoError(t, err)

	j1, err := json.Marshal(r1)
	require.NoError(t, err)
	j2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.JSONEq(t, string(j1), string(j2))
}

func TestPurchaseService_Invariants(t *testing.T) {
	var products []*entities.Product
	prices := map[string]string{}
	poliStock := map[string]string{}
	classes := []string{"AA", "AB", "AC", "BA", "BB", "CC"}
	boxes := []string{"0", "1", "4", "6", "10", "12.5"}
	billing := [][3]string{
		{"15", "40", "100"},
		{"6", "0", "0"},
		{"5", "7", "11"},
		{"1", "2", "1"},
		{"7", "11", "25"},
		{"2", "0", "1"},
		{"13", "29", "50"},
	}
	for i := 0; i < 42; i++ {
		code := string(rune('A'+i%26)) + string(rune('0'+i/26))
		b := billing[i%len(billing)]
		p := testhelpers.WithBilling(testhelpers.NewProduct(code, classes[i%len(classes)]), b[0], b[1], b[2])
		p.UnitsPerBox = testhelpers.D(boxes[i%len(boxes)])
		if i%5 == 0 {
			p.Consolidated = testhelpers.D("500")
		}
		products = append(products, p)
		prices[code] = []string{"9.5", "9", "0", "12", "9.49"}[i%5]
		poliStock[code] = []string{"0", "3", "40"}[i%3]
	}

	inputs := testhelpers.BuildPlanningInputs(products...)
	inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.PolifiltroPrice, prices))
	inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.PolifiltroAvailability, poliStock))

	result, err := NewPurchaseService().Calculate(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, result.Lines, len(products))

	for _, l := range result.Lines {
		assert.False(t, l.DemandWithoutContracts.IsNegative(), l.Code)
		assert.GreaterOrEqual(t, l.QtyMexico, int64(0))
		assert.GreaterOrEqual(t, l.QtyPolifiltro, int64(0))

		assert.True(t, wholeBoxes(l.QtyMexico, l.BoxSize()), "mexico qty of %s is whole boxes", l.Code)
		assert.True(t, wholeBoxes(l.QtyPolifiltro, l.BoxSize()), "polifiltro qty of %s is whole boxes", l.Code)
		assert.Equal(t, l.RawQtyMexico.IsPositive(), l.QtyMexico > 0, l.Code)
		assert.Equal(t, l.RawQtyPolifiltro.IsPositive(), l.QtyPolifiltro > 0, l.Code)
		if l.VirtualStock.GreaterThanOrEqual(l.TargetStock) {
			assert.Zero(t, l.QtyMexico, "%s is covered by stock", l.Code)
			assert.Zero(t, l.QtyPolifiltro, "%s is covered by stock", l.Code)
		}

		switch l.Case {
		case entities.CaseA:
			assert.Equal(t, entities.SupplierMexico, l.Supplier)
			assert.Zero(t, l.QtyPolifiltro)
		case entities.CaseB:
			assert.Equal(t, entities.SupplierPolifiltro, l.Supplier)
			assert.True(t, l.Priority)
		case entities.CaseC:
			assert.Equal(t, entities.SupplierPolifiltro, l.Supplier)
			assert.False(t, l.Priority)
		default:
			t.Errorf("%s has no case", l.Code)
		}
	}
}

// wholeBoxes reports whether qty is some number of boxes truncated to whole units
func wholeBoxes(qty int64, box decimal.Decimal) bool {
	if qty == 0 {
		return true
	}
	n := decimal.NewFromInt(qty).Div(box).Ceil()
	return n.Mul(box).IntPart() == qty
}

func TestPurchaseService_StockExactlyCoversTarget(t *testing.T) {
	tests := []struct {
		name      string
		class     string
		billing   [3]string
		poliPrice string
		stock     string
		poliStock string
		wantCase  entities.AllocationCase
		wantMex   int64
	}{
		{"mexico repeating demand", "CA", [3]string{"6", "0", "0"}, "0", "4", "0", entities.CaseA, 0},
		{"mexico uneven billing", "CA", [3]string{"5", "7", "11"}, "0", "7.5", "0", entities.CaseA, 0},
		{"mexico one unit short", "CA", [3]string{"6", "0", "0"}, "0", "3", "0", entities.CaseA, 1},
		{"priority", "AA", [3]string{"1", "2", "1"}, "9", "2", "0", entities.CaseB, 0},
		{"priority covered by both suppliers", "AA", [3]string{"1", "2", "1"}, "9", "1.25", "0.75", entities.CaseB, 0},
		{"default", "CC", [3]string{"2", "0", "1"}, "9", "1.75", "0", entities.CaseC, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testhelpers.WithBilling(testhelpers.NewProduct("P1", tt.class), tt.billing[0], tt.billing[1], tt.billing[2])
			p.Consolidated = testhelpers.D(tt.stock)

			inputs := testhelpers.BuildPlanningInputs(p)
			inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.PolifiltroPrice, map[string]string{"P1": tt.poliPrice}))
			inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.PolifiltroAvailability, map[string]string{"P1": tt.poliStock}))

			result, err := NewPurchaseService().Calculate(context.Background(), inputs)
			require.NoError(t, err)

			l := result.Lines[0]
			assert.Equal(t, tt.wantCase, l.Case)
			assert.Equal(t, tt.wantMex, l.QtyMexico)
			assert.Zero(t, l.QtyPolifiltro)
		})
	}
}

func TestPurchaseService_ExactThresholdStaysWithMexico(t *testing.T) {
	inputs := testhelpers.BuildPlanningInputs(testhelpers.NewProduct("P1", "AA"))
	inputs = inputs.WithSideTable(testhelpers.NewSideTable(entities.PolifiltroPrice, map[string]string{"P1": "9.5"}))

	result, err := NewPurchaseService().Calculate(context.Background(), inputs)
	require.NoError(t, err)
	assert.Equal(t, "-5", result.Lines[0].PriceDeltaPct.Decimal.String())
	assert.Equal(t, entities.SupplierMexico, result.Lines[0].Supplier)
	assert.Equal(t, entities.CaseA, result.Lines[0].Case)
}

func TestPurchaseService_InsufficientInputs(t *testing.T) {
	inputs := testhelpers.BuildReferenceScenario()
	inputs.MexicoBackorder = nil
	inputs.PolifiltroPrice = nil

	result, err := NewPurchaseService().Calculate(context.Background(), inputs)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, eris.Is(err, entities.ErrInsufficientInputs))
	assert.Contains(t, err.Error(), "BO México")
	assert.Contains(t, err.Error(), "Precio Polifiltro")

	_, err = NewPurchaseService().Calculate(context.Background(), dto.PlanningInputs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPO")
}

func TestPurchaseService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewPurchaseService().Calculate(ctx, testhelpers.BuildReferenceScenario())
	assert.Error(t, err)
	assert.Nil(t, result)
}

type faultyCatalog struct {
	panics bool
}

func (c faultyCatalog) GetAllProducts() ([]*entities.Product, error) {
	if c.panics {
		panic("catalog storage corrupted")
	}
	return nil, eris.New("catalog unavailable")
}

func (c faultyCatalog) LoadProducts([]*entities.Product) error { return nil }

func (c faultyCatalog) Count() int { return 0 }

func TestPurchaseService_ComputationFailure(t *testing.T) {
	for _, panics := range []bool{true, false} {
		inputs := testhelpers.BuildReferenceScenario()
		inputs.Catalog = faultyCatalog{panics: panics}

		result, err := NewPurchaseService().Calculate(context.Background(), inputs)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, eris.Is(err, entities.ErrComputationFailure), "panics=%v", panics)
	}
}

func TestPurchaseService_CustomPolicy(t *testing.T) {
	policy := entities.DefaultPolicy()
	policy.PriceSwitchThresholdPct = testhelpers.D("-20")

	svc := NewPurchaseServiceWithPolicy(policy)

	result, err := svc.Calculate(context.Background(), testhelpers.BuildReferenceScenario())
	require.NoError(t, err)
	assert.Equal(t, entities.SupplierMexico, lineByCode(t, result, "X1").Supplier)
}
