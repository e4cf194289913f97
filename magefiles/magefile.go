//go:build mage

// Package main contains Mage build targets for arxivist developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "arxivist"
	cmdPkg  = "./cmd/arxivist"

	// hubDir is the default hub directory the CLI downloads into.
	hubDir = "papers"
)

// Init creates the default hub directory the download command expects to
// already exist.
func Init() error {
	if err := os.MkdirAll(hubDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", hubDir, err)
	}
	fmt.Println("  ", hubDir)
	fmt.Println("Hub directory initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return err
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit test suite. Live network tests stay skipped unless
// ARXIVIST_LIVE_TESTS=1 is exported.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the test suite.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binDir); err != nil {
		return fmt.Errorf("removing %s: %w", binDir, err)
	}
	fmt.Println("Cleaned.")
	return nil
}
