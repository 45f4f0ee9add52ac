// config-test loads the same configuration from a YAML file and a SQLite
// database and reports section-by-section differences. Its main use is
// verifying a config-convert round trip.
package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/chrissnell/solarsim/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite configuration file")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Println("Configuration Comparison Test")
	fmt.Println("===========================")

	// Load YAML configuration
	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	yamlProvider := config.NewYAMLProvider(*yamlFile)
	yamlConfig, err := yamlProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML config: %v\n", err)
		os.Exit(1)
	}

	// Load SQLite configuration
	fmt.Printf("Loading SQLite configuration: %s\n", *sqliteFile)
	sqliteProvider, err := config.NewSQLiteProvider(*sqliteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SQLite provider: %v\n", err)
		os.Exit(1)
	}
	defer sqliteProvider.Close()

	sqliteConfig, err := sqliteProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading SQLite config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nComparison Results:")
	fmt.Println("==================")

	matched := true
	matched = compareSection("Site", yamlConfig.Simulation.Site, sqliteConfig.Simulation.Site) && matched
	matched = compareSection("Hardware", yamlConfig.Simulation.Hardware, sqliteConfig.Simulation.Hardware) && matched
	matched = compareSection("Params", yamlConfig.Simulation.Params, sqliteConfig.Simulation.Params) && matched
	matched = compareSection("Weather", yamlConfig.Simulation.Weather, sqliteConfig.Simulation.Weather) && matched
	matched = compareSection("Server", yamlConfig.Server, sqliteConfig.Server) && matched
	matched = compareSection("Archive", yamlConfig.Archive, sqliteConfig.Archive) && matched

	if matched {
		fmt.Println("\nTest completed: configurations match!")
		return
	}
	fmt.Println("\nTest completed: configurations DIFFER")
	os.Exit(1)
}

// compareSection checks presence and deep equality of one optional config
// section. Both arguments must be pointers of the same type.
func compareSection(name string, yaml, sqlite interface{}) bool {
	yamlNil := reflect.ValueOf(yaml).IsNil()
	sqliteNil := reflect.ValueOf(sqlite).IsNil()

	switch {
	case yamlNil && sqliteNil:
		fmt.Printf("✓ %s: both absent\n", name)
		return true
	case yamlNil != sqliteNil:
		fmt.Printf("✗ %s: presence mismatch (YAML=%v, SQLite=%v)\n", name, !yamlNil, !sqliteNil)
		return false
	case reflect.DeepEqual(yaml, sqlite):
		fmt.Printf("✓ %s configuration matches\n", name)
		return true
	default:
		fmt.Printf("✗ %s configuration differs\n", name)
		fmt.Printf("  YAML:   %+v\n", reflect.ValueOf(yaml).Elem().Interface())
		fmt.Printf("  SQLite: %+v\n", reflect.ValueOf(sqlite).Elem().Interface())
		return false
	}
}
