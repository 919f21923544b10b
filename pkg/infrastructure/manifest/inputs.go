package manifest

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/domain/repositories"
	tables "github.com/vsinha/compras/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/spreadsheet"
)

// Inputs is the loaded bundle plus what the operator should see about it.
type Inputs struct {
	Planning dto.PlanningInputs
	Catalog  *spreadsheet.CatalogLoadResult
	// Rejected lists the side and contract tables that failed to load and were treated as absent.
	Rejected []string
}

// BuildInputs loads every file named by the manifest concurrently.
// A catalog failure aborts the load. A side or contract table that fails is dropped with a warning.
func (m *Manifest) BuildInputs(ctx context.Context, filter spreadsheet.CatalogFilter) (*Inputs, error) {
	var (
		catalog   *spreadsheet.CatalogLoadResult
		sides     = make([]repositories.SupplierFigureRepository, len(entities.SideTableKinds))
		active    = make([]*entities.ActiveContractTable, len(m.ActiveContracts))
		excluded  = make([]*entities.ExcludedContractTable, len(m.ExcludedContracts))
		sideErrs  = make([]error, len(entities.SideTableKinds))
		activeErr = make([]error, len(m.ActiveContracts))
		exclErr   = make([]error, len(m.ExcludedContracts))
	)

	loader := tables.NewLoader()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sheet := spreadsheet.SheetOptions{SheetName: m.Catalog.Sheet}
		result, err := spreadsheet.NewCatalogLoader(filter, sheet).LoadCatalog(m.Resolve(m.Catalog.Path))
		if err != nil {
			return err
		}
		catalog = result
		return nil
	})

	for i, kind := range entities.SideTableKinds {
		path := m.SideTables.Path(kind)
		if path == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			figures, err := loader.LoadSideTable(m.Resolve(path), kind)
			if err != nil {
				sideErrs[i] = err
				return nil
			}
			repo := memory.NewSupplierFigureRepository(kind)
			if err := repo.LoadFigures(figures); err != nil {
				sideErrs[i] = eris.Wrapf(err, "file %s", path)
				return nil
			}
			sides[i] = repo
			return nil
		})
	}

	for i, c := range m.ActiveContracts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, err := loader.LoadActiveContracts(m.Resolve(c.Path), c.Company)
			if err != nil {
				activeErr[i] = err
				return nil
			}
			active[i] = &table
			return nil
		})
	}

	for i, c := range m.ExcludedContracts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, err := loader.LoadExcludedContracts(m.Resolve(c.Path), c.Company)
			if err != nil {
				exclErr[i] = err
				return nil
			}
			excluded[i] = &table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "manifest: load inputs")
	}

	catalogRepo := memory.NewProductRepository(len(catalog.Products))
	if err := catalogRepo.LoadProducts(catalog.Products); err != nil {
		return nil, eris.Wrap(err, "manifest: catalog")
	}

	out := &Inputs{
		Planning: dto.PlanningInputs{Catalog: catalogRepo},
		Catalog:  catalog,
	}

	// Results are assembled in manifest order so the bundle does not depend on goroutine timing.
	for i, kind := range entities.SideTableKinds {
		if sideErrs[i] != nil {
			out.reject(kind.String(), sideErrs[i])
			continue
		}
		if sides[i] != nil {
			out.Planning = out.Planning.WithSideTable(sides[i])
		}
	}
	for i, c := range m.ActiveContracts {
		if activeErr[i] != nil {
			out.reject(c.Company, activeErr[i])
			continue
		}
		out.Planning.ActiveContracts = append(out.Planning.ActiveContracts, *active[i])
	}
	for i, c := range m.ExcludedContracts {
		if exclErr[i] != nil {
			out.reject(c.Company, exclErr[i])
			continue
		}
		out.Planning.ExcludedContracts = append(out.Planning.ExcludedContracts, *excluded[i])
	}

	return out, nil
}

func (in *Inputs) reject(source string, err error) {
	zap.L().Warn("table rejected, treated as absent",
		zap.String("source", source),
		zap.Error(err),
	)
	in.Rejected = append(in.Rejected, source)
}
