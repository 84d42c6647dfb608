package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/darianmavgo/awload/config"
)

// Step is one import of the pipeline.
type Step struct {
	Name   string
	Notice string
	Import func(context.Context, *config.Config) (Result, error)
}

// Steps lists the imports in foreign key dependency order.
var Steps = []Step{
	{"territory", "Territory data imported", ImportTerritory},
	{"product categories", "Product categories imported", ImportProductCategories},
	{"product subcategories", "Product subcategories imported", ImportProductSubcategories},
	{"products", "Products imported", ImportProducts},
	{"customers", "Customers imported", ImportCustomers},
	{"sales", "Sales data imported", ImportSales},
	{"returns", "Returns data imported", ImportReturns},
}

// Run executes Steps in order, printing a notice to out after each one.
// It stops at the first failing step; tables loaded before it stay committed.
func Run(ctx context.Context, cfg *config.Config, out io.Writer) ([]Result, error) {
	fmt.Fprintln(out, "Starting data import...")

	results := make([]Result, 0, len(Steps))
	for _, step := range Steps {
		res, err := step.Import(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("%s import failed: %w", step.Name, err)
		}
		results = append(results, res)
		fmt.Fprintln(out, step.Notice)
	}

	fmt.Fprintln(out, "Data import completed successfully")
	return results, nil
}
