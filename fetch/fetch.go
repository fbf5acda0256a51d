package main

/* fetch downloads Sentinel-2 scenes for an area of interest over a
   time range, one composite window at a time, and writes a manifest
   of the downloaded files. Credentials are read from the environment
   or an env file. Downloaded scenes can optionally be registered in
   the postgres scene store consumed by the spectra server. */

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	proc "github.com/geoglyph/spectra/processor"
	"github.com/geoglyph/spectra/scenes"
	"github.com/geoglyph/spectra/sentinel"
)

var (
	aoiPath   = flag.String("aoi", "", "Path to a GeoJSON file with the area of interest.")
	product   = flag.String("product", "sentinel2_demo", "Product name the scenes belong to.")
	outDir    = flag.String("out_dir", ".", "Directory to write scene files into.")
	fromStr   = flag.String("from", "", "Start date, YYYY-MM-DD.")
	toStr     = flag.String("to", "", "End date, YYYY-MM-DD. Defaults to today.")
	stepDays  = flag.Int("step_days", 10, "Width in days of each scene window.")
	maxCloud  = flag.Float64("max_cloud", 20, "Maximum cloud cover percentage per window.")
	envFile   = flag.String("env", "", "Optional env file with SH_CLIENT_ID and SH_CLIENT_SECRET.")
	storeDSN  = flag.String("store_dsn", "", "Optional postgres DSN to register scenes into.")
	concLimit = flag.Int("conc_limit", 2, "Number of concurrent downloads.")
	verbose   = flag.Bool("v", false, "Verbose mode for download progress.")
)

// manifestEntry is one downloaded scene window in the YAML manifest.
type manifestEntry struct {
	Path  string `yaml:"path"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Error string `yaml:"error,omitempty"`
}

type manifest struct {
	Product  string          `yaml:"product"`
	AOI      string          `yaml:"aoi"`
	MaxCloud float64         `yaml:"max_cloud"`
	Scenes   []manifestEntry `yaml:"scenes"`
}

func ensure(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if len(value) == 0 {
		return fallback, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %s: %v", value, err)
	}
	return t, nil
}

func main() {
	flag.Parse()

	if len(*envFile) > 0 {
		ensure(godotenv.Load(*envFile))
	}

	if len(*aoiPath) == 0 {
		log.Fatal("Please provide an AOI file with -aoi")
	}
	aoi, err := sentinel.LoadAOI(*aoiPath)
	ensure(err)

	from, err := parseDate(*fromStr, time.Time{})
	ensure(err)
	if from.IsZero() {
		log.Fatal("Please provide a start date with -from")
	}
	to, err := parseDate(*toStr, time.Now().UTC())
	ensure(err)

	ctx := context.Background()
	client, err := sentinel.NewClient(ctx, sentinel.ConfigFromEnv(), *verbose)
	ensure(err)

	var store *scenes.Store
	if len(*storeDSN) > 0 {
		store, err = scenes.NewStore(*storeDSN, 2, 4)
		ensure(err)
		ensure(store.Init())
		defer store.Close()
	}

	ensure(os.MkdirAll(*outDir, 0755))

	type window struct {
		from, to time.Time
		path     string
	}
	var windows []window
	for t := from; t.Before(to); t = t.AddDate(0, 0, *stepDays) {
		wEnd := t.AddDate(0, 0, *stepDays)
		if wEnd.After(to) {
			wEnd = to
		}
		name := fmt.Sprintf("%s_%s.tif", *product, t.Format("2006-01-02"))
		windows = append(windows, window{from: t, to: wEnd, path: filepath.Join(*outDir, name)})
	}
	if len(windows) == 0 {
		log.Fatal("Empty time range, nothing to fetch")
	}

	log.Printf("Fetching %d scene windows for %s into %s", len(windows), *product, *outDir)

	entries := make([]manifestEntry, len(windows))
	bound := aoi.Bound()

	var mu sync.Mutex
	cLimiter := proc.NewConcLimiter(*concLimit)
	for i, win := range windows {
		cLimiter.Increase()
		go func(i int, win window) {
			defer cLimiter.Decrease()

			entry := manifestEntry{
				Path: win.path,
				From: win.from.Format("2006-01-02"),
				To:   win.to.Format("2006-01-02"),
			}

			req := sentinel.SceneRequest{
				AOI:           aoi,
				From:          win.from,
				To:            win.to,
				MaxCloudCover: *maxCloud,
			}
			if err := client.FetchScene(ctx, req, win.path); err != nil {
				log.Printf("window %s: %v", entry.From, err)
				entry.Error = err.Error()
			} else if store != nil {
				scene := &scenes.Scene{
					ID:         fmt.Sprintf("%s_%s", *product, entry.From),
					Product:    *product,
					Path:       win.path,
					Acquired:   win.from,
					CloudCover: *maxCloud,
					MinX:       bound.Min[0],
					MinY:       bound.Min[1],
					MaxX:       bound.Max[0],
					MaxY:       bound.Max[1],
				}
				if err := store.Register(scene); err != nil {
					log.Printf("failed to register scene %s: %v", scene.ID, err)
				}
			}

			mu.Lock()
			entries[i] = entry
			mu.Unlock()
		}(i, win)
	}
	cLimiter.Wait()

	out, err := yaml.Marshal(&manifest{
		Product:  *product,
		AOI:      *aoiPath,
		MaxCloud: *maxCloud,
		Scenes:   entries,
	})
	ensure(err)
	ensure(os.WriteFile(filepath.Join(*outDir, "manifest.yaml"), out, 0644))

	nOK := 0
	for _, entry := range entries {
		if len(entry.Error) == 0 {
			nOK++
		}
	}
	log.Printf("Done: %d of %d windows downloaded", nOK, len(windows))
}
