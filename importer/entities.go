package importer

import (
	"context"
	"strings"

	"github.com/darianmavgo/awload/config"
)

var territoryTable = table[Territory]{
	name:    "Territory",
	columns: []string{"TerritoryKey", "Region", "Country", "Continent"},
}

var productCategoryTable = table[ProductCategory]{
	name:    "ProductCategory",
	columns: []string{"ProductCategoryKey", "CategoryName"},
}

var productSubcategoryTable = table[ProductSubcategory]{
	name:    "ProductSubcategory",
	columns: []string{"ProductSubcategoryKey", "SubcategoryName", "ProductCategoryKey"},
}

var productTable = table[Product]{
	name: "Product",
	columns: []string{
		"ProductKey", "ProductSubcategoryKey", "ProductSKU", "ProductName",
		"ModelName", "ProductDescription", "ProductColor", "ProductSize",
		"ProductStyle", "ProductCost", "ProductPrice",
	},
}

var customerTable = table[Customer]{
	name: "Customer",
	columns: []string{
		"CustomerKey", "Prefix", "FirstName", "LastName", "BirthDate",
		"MaritalStatus", "Gender", "EmailAddress", "AnnualIncome",
		"TotalChildren", "EducationLevel", "Occupation", "HomeOwner",
	},
	skip: func(c *Customer, _ []string) bool {
		return isBlank(c.CustomerKey)
	},
	prepare: (*Customer).parseBirthDate,
}

var salesTable = table[Sale]{
	name: "Sales",
	columns: []string{
		"OrderDate", "StockDate", "OrderNumber", "ProductKey",
		"CustomerKey", "TerritoryKey", "OrderLineItem", "OrderQuantity",
	},
}

var returnsTable = table[Return]{
	name:    "Returns",
	columns: []string{"TerritoryKey", "ReturnDate", "ProductKey", "ReturnQuantity"},
	skip: func(_ *Return, raw []string) bool {
		for _, v := range raw {
			if isBlank(v) {
				return true
			}
		}
		return false
	},
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ImportTerritory loads the territory lookup.
func ImportTerritory(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, territoryTable, cfg.Sources.Territory)
}

// ImportProductCategories loads the product category lookup.
func ImportProductCategories(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, productCategoryTable, cfg.Sources.ProductCategories)
}

// ImportProductSubcategories loads the product subcategory lookup. Categories must be loaded first.
func ImportProductSubcategories(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, productSubcategoryTable, cfg.Sources.ProductSubcategories)
}

// ImportProducts loads the product lookup. Subcategories must be loaded first.
func ImportProducts(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, productTable, cfg.Sources.Products)
}

// ImportCustomers loads the customer lookup, skipping rows with a blank CustomerKey
// and parsing BirthDate as a calendar date.
func ImportCustomers(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, customerTable, cfg.Sources.Customers)
}

// ImportSales loads the yearly sales files in order, committing each file before
// reading the next.
func ImportSales(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, salesTable, cfg.Sources.Sales...)
}

// ImportReturns loads the returns file, skipping rows with any blank field.
func ImportReturns(ctx context.Context, cfg *config.Config) (Result, error) {
	return importTable(ctx, cfg.DatabasePath, cfg.Verbose, returnsTable, cfg.Sources.Returns)
}
