// config-convert migrates a YAML configuration file into the SQLite
// configuration backend.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/solarsim/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Check if YAML file exists
	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	// Check if SQLite file already exists
	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	if *dryRun {
		fmt.Println("DRY RUN - No changes will be made")
	}

	// Load YAML configuration
	fmt.Printf("Loading YAML configuration...\n")
	yamlProvider := config.NewYAMLProvider(*yamlFile)
	configData, err := yamlProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML configuration: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		printConfigSummary(configData)
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	// Remove existing SQLite file if force is specified
	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Creating SQLite database...\n")
	if err := writeSQLiteConfig(*sqliteFile, configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing SQLite configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion completed successfully!\n")
	fmt.Printf("You can now use the SQLite backend with: -config-backend sqlite -config %s\n", *sqliteFile)
}

func writeSQLiteConfig(dbPath string, configData *config.ConfigData) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	sqliteProvider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite provider: %w", err)
	}
	defer sqliteProvider.Close()

	fmt.Printf("  Inserting simulation configuration...\n")
	if err := sqliteProvider.SaveConfig(configData); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("  Configuration successfully inserted into database\n")
	return nil
}

func printConfigSummary(configData *config.ConfigData) {
	fmt.Println("\nConfiguration Summary:")

	if site := configData.Simulation.Site; site != nil {
		if site.City != "" {
			fmt.Printf("Site: %s, tilt %.1f, azimuth %.1f\n", site.City, site.TiltDeg, site.AzimuthDeg)
		} else {
			fmt.Printf("Site: (%.4f, %.4f), tilt %.1f, azimuth %.1f\n",
				site.Latitude, site.Longitude, site.TiltDeg, site.AzimuthDeg)
		}
	}
	if hw := configData.Simulation.Hardware; hw != nil {
		fmt.Printf("Hardware: module=%s inverter=%s\n", hw.Module, hw.Inverter)
		if hw.CatalogFile != "" {
			fmt.Printf("  Catalog file: %s\n", hw.CatalogFile)
		}
	}
	if params := configData.Simulation.Params; params != nil {
		fmt.Printf("Params: %d modules, health %.2f, horizon %d years\n",
			params.ModuleCount, params.SystemHealth, params.HorizonYears)
	}
	if weather := configData.Simulation.Weather; weather != nil {
		if weather.Synthetic || weather.CSVPath == "" {
			fmt.Printf("Weather: synthetic clear-sky year\n")
		} else {
			fmt.Printf("Weather: %s\n", weather.CSVPath)
		}
	}
	if server := configData.Server; server != nil {
		fmt.Printf("Server: %s:%d\n", server.ListenAddr, server.Port)
	}
	if archive := configData.Archive; archive != nil {
		if archive.Postgres != "" {
			fmt.Printf("Archive: PostgreSQL\n")
		} else {
			fmt.Printf("Archive: SQLite %s\n", archive.SQLite)
		}
	}
}
