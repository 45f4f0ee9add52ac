// tmy-generate writes a synthetic clear-sky weather year as a TMY-style CSV.
// The output round-trips through the weather loader, which makes it useful
// for smoke-testing simulations without a real PVGIS export.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/chrissnell/solarsim/internal/constants"
	"github.com/chrissnell/solarsim/internal/sites"
	"github.com/chrissnell/solarsim/internal/weather"
)

func main() {
	var (
		city        = flag.String("city", "", "Registry site supplying the coordinates (default "+sites.DefaultSiteName+")")
		lat         = flag.Float64("lat", 0, "Site latitude in degrees (overrides the city's coordinates)")
		lon         = flag.Float64("lon", 0, "Site longitude in degrees")
		altitude    = flag.Float64("altitude", 0, "Site altitude in meters")
		year        = flag.Int("year", weather.DefaultCoerceYear, "Calendar year for the generated timestamps")
		output      = flag.String("o", "tmy.csv", "Output CSV file")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tmy-generate %s\n", constants.Version)
		os.Exit(0)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	site := sites.Default()
	if *city != "" {
		var err error
		site, err = sites.ByName(*city)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	latitude, longitude := site.Latitude, site.Longitude
	if set["lat"] {
		latitude = *lat
	}
	if set["lon"] {
		longitude = *lon
	}

	records := weather.Generate(*year, latitude, longitude, *altitude)

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}

	w := csv.NewWriter(f)
	rows := [][]string{{"time", "ghi", "dni", "dhi", "temp_air", "wind_speed"}}
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Time.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(rec.GHI, 'f', 1, 64),
			strconv.FormatFloat(rec.DNI, 'f', 1, 64),
			strconv.FormatFloat(rec.DHI, 'f', 1, 64),
			strconv.FormatFloat(rec.TempAir, 'f', 1, 64),
			strconv.FormatFloat(rec.WindSpeed, 'f', 1, 64),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d hourly records for (%.4f, %.4f) to %s\n", len(records), latitude, longitude, *output)
}
