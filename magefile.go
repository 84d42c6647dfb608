//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the createdb, importdata and adventureworks binaries into the bin/ directory.
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-o", "./bin/", "./cmd/...")
}

// Test runs all tests in the project with verbose output.
func Test() error {
	fmt.Println("Running Tests...")
	return sh.Run("go", "test", "-v", "./...")
}

// CreateDB recreates database/adventureworks.db with an empty schema.
func CreateDB() error {
	fmt.Println("Creating database...")
	return sh.RunV("go", "run", "./cmd/createdb")
}

// Import loads the data/ sources into the database.
func Import() error {
	fmt.Println("Importing data...")
	return sh.RunV("go", "run", "./cmd/importdata")
}

// Load recreates the database and imports every source file.
func Load() {
	mg.SerialDeps(CreateDB, Import)
}

// Clean removes the bin directory and the generated database.
func Clean() error {
	fmt.Println("Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	return os.RemoveAll("database/adventureworks.db")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Running go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Check runs formatting and linting checks (fmt, vet).
func Check() error {
	mg.Deps(Fmt, Vet)
	return nil
}

// Fmt runs go fmt ./...
func Fmt() error {
	fmt.Println("Running go fmt...")
	return sh.Run("go", "fmt", "./...")
}

// Vet runs go vet ./...
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.Run("go", "vet", "./...")
}
