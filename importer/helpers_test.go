package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/darianmavgo/awload/config"
	"github.com/darianmavgo/awload/schema"
	"github.com/darianmavgo/awload/store"
)

const territoryCSV = `SalesTerritoryKey,Region,Country,Continent
1,Northwest,United States,North America
2,Northeast,United States,North America
3,Canada,Canada,North America
`

const categoriesCSV = `ProductCategoryKey,CategoryName
1,Bikes
2,Components
`

const subcategoriesCSV = `ProductSubcategoryKey,SubcategoryName,ProductCategoryKey
1,Mountain Bikes,1
2,Road Bikes,1
3,Handlebars,2
`

const productsCSV = `ProductKey,ProductSubcategoryKey,ProductSKU,ProductName,ModelName,ProductDescription,ProductColor,ProductSize,ProductStyle,ProductCost,ProductPrice
214,1,BK-M82S-38,"Mountain-100 Silver, 38",Mountain-100,Top-of-the-line competition mountain bike.,Silver,38,U,1912.1544,3399.99
215,2,BK-R93R-62,"Road-150 Red, 62",Road-150,Race bike.,Red,62,U,2171.2942,3578.27
216,3,HB-M243,LL Mountain Handlebars,LL Mountain Handlebars,All-purpose bar.,NA,0,0,19.7758,44.54
`

// Two of the five customer rows have a blank key.
const customersCSV = `CustomerKey,Prefix,FirstName,LastName,BirthDate,MaritalStatus,Gender,EmailAddress,AnnualIncome,TotalChildren,EducationLevel,Occupation,HomeOwner
11000,MR.,JON,YANG,1966-04-08,M,M,jon24@adventure-works.com,90000,2,Bachelors,Professional,Y
11001,MR.,EUGENE,HUANG,1965-05-14,S,M,eugene10@adventure-works.com,60000,3,Bachelors,Professional,N
,,,,,,,,,,,,
  ,MS.,GHOST,ROW,1970-01-01,S,F,ghost@adventure-works.com,10000,0,High School,Clerical,N
11002,MR.,RUBEN,TORRES,1965-08-12,M,M,ruben35@adventure-works.com,60000,3,Bachelors,Professional,Y
`

const salesHeader = "OrderDate,StockDate,OrderNumber,ProductKey,CustomerKey,TerritoryKey,OrderLineItem,OrderQuantity\n"

var salesCSV = map[string]string{
	"2020": salesHeader +
		"2020-01-01,2001-09-21,SO45080,214,11000,1,1,1\n" +
		"2020-01-02,2001-12-05,SO45081,215,11001,2,1,1\n",
	"2021": salesHeader +
		"2021-01-01,2020-09-18,SO50000,216,11002,3,1,2\n" +
		"2021-01-01,2020-09-18,SO50000,214,11002,3,2,1\n",
	"2022": salesHeader +
		"2022-01-01,2021-10-02,SO61000,215,11000,1,1,1\n" +
		"2022-01-02,2021-10-11,SO61001,216,11001,2,1,3\n" +
		"2022-01-02,2021-10-11,SO61001,214,11001,2,2,1\n",
}

// Two of the four return rows have a blank field.
const returnsCSV = `ReturnDate,TerritoryKey,ProductKey,ReturnQuantity
2020-01-18,1,214,1
2020-01-18,2,215,1
,,,
2020-02-01,3,,1
`

// fixture lays out a complete dataset under a temp dir and creates an empty database.
func fixture(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig(t.TempDir())
	writeFile(t, cfg.Sources.Territory, territoryCSV)
	writeFile(t, cfg.Sources.ProductCategories, categoriesCSV)
	writeFile(t, cfg.Sources.ProductSubcategories, subcategoriesCSV)
	writeFile(t, cfg.Sources.Products, productsCSV)
	writeFile(t, cfg.Sources.Customers, customersCSV)
	for i, year := range config.SalesYears {
		writeFile(t, cfg.Sources.Sales[i], salesCSV[year])
	}
	writeFile(t, cfg.Sources.Returns, returnsCSV)

	require.NoError(t, schema.Create(context.Background(), cfg.DatabasePath, schema.DDL, false))
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func openDB(t *testing.T, cfg *config.Config) *sqlx.DB {
	t.Helper()
	db, err := store.OpenExisting(context.Background(), cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, cfg *config.Config, table string) int {
	t.Helper()
	n, err := store.Count(context.Background(), openDB(t, cfg), table)
	require.NoError(t, err)
	return n
}

// loadLookups imports the tables the given step depends on.
func loadLookups(t *testing.T, cfg *config.Config, imports ...func(context.Context, *config.Config) (Result, error)) {
	t.Helper()
	for _, imp := range imports {
		_, err := imp(context.Background(), cfg)
		require.NoError(t, err)
	}
}
