package importer

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the calendar date format of the customer birth date column.
const DateLayout = "2006-01-02"

// Date is a calendar date stored as ISO text.
type Date time.Time

// ParseDate parses s in DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return time.Time(d).Format(DateLayout), nil
}

func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// Fields are kept as source text; column affinity in the schema converts numbers on insert.
// csv tags name the source header, db tags the destination column.

// Territory is a row of the territory lookup.
type Territory struct {
	TerritoryKey string `csv:"SalesTerritoryKey" db:"TerritoryKey"`
	Region       string `csv:"Region" db:"Region"`
	Country      string `csv:"Country" db:"Country"`
	Continent    string `csv:"Continent" db:"Continent"`
}

// ProductCategory is a row of the product category lookup.
type ProductCategory struct {
	ProductCategoryKey string `csv:"ProductCategoryKey" db:"ProductCategoryKey"`
	CategoryName       string `csv:"CategoryName" db:"CategoryName"`
}

// ProductSubcategory is a row of the product subcategory lookup.
type ProductSubcategory struct {
	ProductSubcategoryKey string `csv:"ProductSubcategoryKey" db:"ProductSubcategoryKey"`
	SubcategoryName       string `csv:"SubcategoryName" db:"SubcategoryName"`
	ProductCategoryKey    string `csv:"ProductCategoryKey" db:"ProductCategoryKey"`
}

// Product is a row of the product lookup.
type Product struct {
	ProductKey            string `csv:"ProductKey" db:"ProductKey"`
	ProductSubcategoryKey string `csv:"ProductSubcategoryKey" db:"ProductSubcategoryKey"`
	ProductSKU            string `csv:"ProductSKU" db:"ProductSKU"`
	ProductName           string `csv:"ProductName" db:"ProductName"`
	ModelName             string `csv:"ModelName" db:"ModelName"`
	ProductDescription    string `csv:"ProductDescription" db:"ProductDescription"`
	ProductColor          string `csv:"ProductColor" db:"ProductColor"`
	ProductSize           string `csv:"ProductSize" db:"ProductSize"`
	ProductStyle          string `csv:"ProductStyle" db:"ProductStyle"`
	ProductCost           string `csv:"ProductCost" db:"ProductCost"`
	ProductPrice          string `csv:"ProductPrice" db:"ProductPrice"`
}

// Customer is a row of the customer lookup. BirthDate is filled from BirthDateText.
type Customer struct {
	CustomerKey    string `csv:"CustomerKey" db:"CustomerKey"`
	Prefix         string `csv:"Prefix" db:"Prefix"`
	FirstName      string `csv:"FirstName" db:"FirstName"`
	LastName       string `csv:"LastName" db:"LastName"`
	BirthDateText  string `csv:"BirthDate" db:"-"`
	BirthDate      Date   `csv:"-" db:"BirthDate"`
	MaritalStatus  string `csv:"MaritalStatus" db:"MaritalStatus"`
	Gender         string `csv:"Gender" db:"Gender"`
	EmailAddress   string `csv:"EmailAddress" db:"EmailAddress"`
	AnnualIncome   string `csv:"AnnualIncome" db:"AnnualIncome"`
	TotalChildren  string `csv:"TotalChildren" db:"TotalChildren"`
	EducationLevel string `csv:"EducationLevel" db:"EducationLevel"`
	Occupation     string `csv:"Occupation" db:"Occupation"`
	HomeOwner      string `csv:"HomeOwner" db:"HomeOwner"`
}

func (c *Customer) parseBirthDate() error {
	d, err := ParseDate(c.BirthDateText)
	if err != nil {
		return fmt.Errorf("invalid BirthDate %q for customer %s: %w", c.BirthDateText, c.CustomerKey, err)
	}
	c.BirthDate = d
	return nil
}

// Sale is a row of a yearly sales file.
type Sale struct {
	OrderDate     string `csv:"OrderDate" db:"OrderDate"`
	StockDate     string `csv:"StockDate" db:"StockDate"`
	OrderNumber   string `csv:"OrderNumber" db:"OrderNumber"`
	ProductKey    string `csv:"ProductKey" db:"ProductKey"`
	CustomerKey   string `csv:"CustomerKey" db:"CustomerKey"`
	TerritoryKey  string `csv:"TerritoryKey" db:"TerritoryKey"`
	OrderLineItem string `csv:"OrderLineItem" db:"OrderLineItem"`
	OrderQuantity string `csv:"OrderQuantity" db:"OrderQuantity"`
}

// Return is a row of the returns file.
type Return struct {
	TerritoryKey   string `csv:"TerritoryKey" db:"TerritoryKey"`
	ReturnDate     string `csv:"ReturnDate" db:"ReturnDate"`
	ProductKey     string `csv:"ProductKey" db:"ProductKey"`
	ReturnQuantity string `csv:"ReturnQuantity" db:"ReturnQuantity"`
}
