package main

/* spectra is a web server computing spectral indices over
   multi-band satellite scenes. Scene collections are declared
   as products in the config.json document; requests name a
   product and an index from the built-in catalog and receive
   a rendered PNG, a legend graphic or raw index values.
   Scenes are discovered either through a postgres scene store
   or by listing the product's scene directory, reduced to a
   median composite and evaluated per pixel. */

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/airbusgeo/godal"
	reuseport "github.com/kavu/go_reuseport"
	orbgeojson "github.com/paulmach/orb/geojson"

	"github.com/geoglyph/spectra/index"
	"github.com/geoglyph/spectra/metrics"
	proc "github.com/geoglyph/spectra/processor"
	"github.com/geoglyph/spectra/render"
	"github.com/geoglyph/spectra/scenes"
	"github.com/geoglyph/spectra/utils"
)

// Global variable to hold the values specified
// on the config.json document.
var configMap map[string]*utils.Config

var (
	port            = flag.Int("p", 8080, "Server listening port.")
	serverDataDir   = flag.String("data_dir", utils.DataDir, "Server data directory.")
	serverConfigDir = flag.String("conf_dir", utils.EtcDir, "Server config directory.")
	serverLogDir    = flag.String("log_dir", "", "Server log directory.")
	validateConfig  = flag.Bool("check_conf", false, "Validate server config files.")
	verbose         = flag.Bool("v", false, "Verbose mode for more server outputs.")
)

var reSpectraMap map[string]*regexp.Regexp

var (
	Error *log.Logger
	Info  *log.Logger
)

var metricsLogger metrics.Logger
var renderCache *utils.RenderCache
var sceneStore *scenes.Store

const evalTimeout = 120 * time.Second

// init initialises the loggers, checks required files are in place
// and sets the Config struct. This is the first function to be
// called in main.
func init() {
	Error = log.New(os.Stderr, "Spectra: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(os.Stdout, "Spectra: ", log.Ldate|log.Ltime|log.Lshortfile)

	flag.Parse()

	utils.DataDir = *serverDataDir
	utils.EtcDir = *serverConfigDir

	filePaths := []string{
		utils.DataDir + "/templates/catalog.tpl"}

	for _, filePath := range filePaths {
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			panic(err)
		}
	}

	confMap, err := utils.LoadAllConfigFiles(utils.EtcDir)
	if err != nil {
		Error.Printf("Error in loading config files: %v\n", err)
		panic(err)
	}

	if *validateConfig {
		os.Exit(0)
	}

	configMap = confMap

	utils.WatchConfig(Info, Error, &configMap)

	reSpectraMap = utils.CompileSpectraRegexMap()

	godal.RegisterAll()

	if len(*serverLogDir) > 0 {
		if *serverLogDir == "-" {
			metricsLogger = metrics.NewStdoutLogger()
		} else {
			maxLogFileSize := int64(0)
			if val, ok := os.LookupEnv("SPECTRA_MAX_LOG_FILE_SIZE"); ok {
				valInt, e := strconv.ParseInt(val, 10, 64)
				if e == nil {
					maxLogFileSize = valInt
				} else {
					Error.Printf("invalid SPECTRA_MAX_LOG_FILE_SIZE: %v", e)
				}
			}

			maxLogFiles := -1
			if val, ok := os.LookupEnv("SPECTRA_MAX_LOG_FILES"); ok {
				valInt, e := strconv.ParseInt(val, 10, 32)
				if e == nil {
					maxLogFiles = int(valInt)
				} else {
					Error.Printf("invalid SPECTRA_MAX_LOG_FILES: %v", e)
				}
			}

			metricsLogger = metrics.NewFileLogger(*serverLogDir, maxLogFileSize, maxLogFiles, *verbose)
		}
	}

	if rootConf, ok := configMap["."]; ok {
		renderCache = utils.NewRenderCache(rootConf.ServiceConfig.MemcacheURI)

		if len(rootConf.ServiceConfig.SceneStoreDSN) > 0 {
			store, err := scenes.NewStore(rootConf.ServiceConfig.SceneStoreDSN, 8, 16)
			if err != nil {
				Error.Printf("scene store unavailable: %v\n", err)
			} else {
				sceneStore = store
			}
		}
	}
}

// scenePaths resolves the scene files of a product for a time window,
// preferring the scene store over a directory listing. At most
// MaxScenes files are returned, newest first dropped last.
func scenePaths(product *utils.Product, params utils.SpectraParams) ([]string, error) {
	var paths []string

	if sceneStore != nil {
		var from, until time.Time
		if params.Time != nil {
			from = *params.Time
		}
		if params.Until != nil {
			until = *params.Until
		}
		maxCloud := 0.0
		if params.MaxCloud != nil {
			maxCloud = *params.MaxCloud
		}

		records, err := sceneStore.Search(product.Name, from, until, maxCloud)
		if err != nil {
			return nil, fmt.Errorf("scene store query failed: %v", err)
		}
		for _, rec := range records {
			paths = append(paths, rec.Path)
		}
	}

	if len(paths) == 0 && len(product.SceneDir) > 0 {
		for _, pattern := range []string{"*.tif", "*.tiff"} {
			matches, err := filepath.Glob(filepath.Join(product.SceneDir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list scene directory %s: %v", product.SceneDir, err)
			}
			paths = append(paths, matches...)
		}
		sort.Strings(paths)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenes found for product %s", product.Name)
	}

	if len(paths) > product.MaxScenes {
		paths = paths[len(paths)-product.MaxScenes:]
	}

	return paths, nil
}

// buildComposite runs the scene pipeline and blocks until the median
// composite is ready or the pipeline fails.
func buildComposite(ctx context.Context, product *utils.Product, paths []string) (*proc.Scene, error) {
	ctx, ctxCancel := context.WithCancel(ctx)
	defer ctxCancel()
	errChan := make(chan error, 100)

	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), evalTimeout)
	defer timeoutCancel()

	pipeline := proc.InitCompositePipeline(ctx, product.ConcLimit, errChan)

	select {
	case composite, ok := <-pipeline.Process(paths):
		if !ok {
			return nil, fmt.Errorf("no scenes could be loaded for product %s", product.Name)
		}
		return composite, nil
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeoutCtx.Done():
		return nil, fmt.Errorf("composite pipeline timed out after %v", evalTimeout)
	}
}

// evalOptions derives the per-call evaluation options from the product
// configuration.
func evalOptions(product *utils.Product) index.Options {
	opts := index.DefaultOptions()
	if product.FillValue != nil {
		opts.Fill = *product.FillValue
	}
	return opts
}

// computeIndex evaluates either a catalog index or a caller-supplied
// band expression over the composite.
func computeIndex(params utils.SpectraParams, product *utils.Product, composite *proc.Scene) (*index.IndexRaster, error) {
	opts := evalOptions(product)

	if params.BandExpr != nil {
		if len(params.BandExpr.ExprText) != 1 {
			return nil, fmt.Errorf("rangesubset must contain exactly one expression, got %d", len(params.BandExpr.ExprText))
		}
		// expressions may reference the symbolic names or the raw bands
		// the composite carries (B2, B4, ...)
		binding := index.DefaultBinding()
		for _, band := range composite.Raster.BandNames() {
			binding[band] = index.BandRef{Band: band}
		}
		return index.EvaluateExprWith(params.BandExpr.ExprText[0], composite.Raster, binding, opts)
	}

	if params.Index == nil {
		return nil, fmt.Errorf("request should contain an 'index' or 'rangesubset' parameter")
	}
	return index.EvaluateWith(*params.Index, composite.Raster, nil, opts)
}

// clipToGeometry fills every pixel outside the bounding box of the
// request geometry. Geometries are marshalled back to GeoJSON so any
// geometry type the request carried can be handled uniformly.
func clipToGeometry(ir *index.IndexRaster, gt [6]float64, params utils.SpectraParams) error {
	if len(params.FeatCol.Features) == 0 {
		return nil
	}
	if gt[1] == 0 || gt[5] == 0 {
		return fmt.Errorf("composite has no geotransform, cannot clip")
	}

	rawGeom, err := json.Marshal(params.FeatCol.Features[0].Geometry)
	if err != nil {
		return fmt.Errorf("failed to marshal clip geometry: %v", err)
	}
	geom, err := orbgeojson.UnmarshalGeometry(rawGeom)
	if err != nil {
		return fmt.Errorf("failed to parse clip geometry: %v", err)
	}
	bound := geom.Geometry().Bound()

	for py := 0; py < ir.Height; py++ {
		for px := 0; px < ir.Width; px++ {
			x := gt[0] + (float64(px)+0.5)*gt[1]
			y := gt[3] + (float64(py)+0.5)*gt[5]
			if x < bound.Min[0] || x > bound.Max[0] || y < bound.Min[1] || y > bound.Max[1] {
				ir.Data[py*ir.Width+px] = ir.Fill
			}
		}
	}
	return nil
}

// styleFor resolves the value range and palette of an index, in order
// of precedence: request parameters, product style overrides, catalog
// display hints.
func styleFor(params utils.SpectraParams, product *utils.Product, def *index.Definition) (float64, float64, string) {
	min, max := -1.0, 1.0
	palette := "greyscale"
	if def != nil {
		min, max = def.Display.Min, def.Display.Max
		palette = def.Display.Palette
	}

	if def != nil {
		if style := utils.GetIndexStyle(product, def.Name); style != nil {
			if len(style.Palette) > 0 {
				palette = style.Palette
			}
			if style.Min != nil {
				min = *style.Min
			}
			if style.Max != nil {
				max = *style.Max
			}
		}
	}

	if params.Min != nil {
		min = *params.Min
	}
	if params.Max != nil {
		max = *params.Max
	}
	if params.Palette != nil {
		palette = *params.Palette
	}

	return min, max, palette
}

type catalogEntry struct {
	Name    string
	Title   string
	Formula string
	Bands   []string
	Min     float64
	Max     float64
	Palette string
}

type catalogInfo struct {
	Config  *utils.Config
	Indices []catalogEntry
}

func serveGetCapabilities(conf *utils.Config, w http.ResponseWriter, metricsCollector *metrics.MetricsCollector) {
	info := &catalogInfo{Config: conf}
	for _, name := range index.Names() {
		def, err := index.Lookup(name)
		if err != nil {
			continue
		}

		bands := map[string]bool{}
		for _, sym := range def.Vars() {
			bands[def.Binding[sym].Band] = true
		}
		var bandNames []string
		for band := range bands {
			bandNames = append(bandNames, band)
		}
		sort.Strings(bandNames)

		info.Indices = append(info.Indices, catalogEntry{
			Name:    def.Name,
			Title:   def.Title,
			Formula: def.ExprText,
			Bands:   bandNames,
			Min:     def.Display.Min,
			Max:     def.Display.Max,
			Palette: def.Display.Palette,
		})
	}

	err := utils.ExecuteWriteTemplateFile(w, info,
		utils.DataDir+"/templates/catalog.tpl")
	if err != nil {
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
	}
}

func serveGetLegend(params utils.SpectraParams, conf *utils.Config, w http.ResponseWriter, metricsCollector *metrics.MetricsCollector) {
	if params.Index == nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, "Malformed GetLegend request, an 'index' parameter needs to be specified", 400)
		return
	}

	def, err := index.Lookup(*params.Index)
	if err != nil {
		Error.Printf("%s\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	var product *utils.Product
	if params.Product != nil {
		if idx, e := utils.GetProductIndex(*params.Product, conf); e == nil {
			product = &conf.Products[idx]
		}
	}
	if product == nil {
		product = &utils.Product{}
	}

	min, max, paletteName := styleFor(params, product, def)
	palette, err := render.LookupPalette(paletteName)
	if err != nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	out, err := render.Legend(def.Title, palette, min, max)
	if err != nil {
		Info.Printf("Error in the render.Legend: %v\n", err)
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(out)
}

func serveGetMap(ctx context.Context, params utils.SpectraParams, conf *utils.Config, r *http.Request, w http.ResponseWriter, metricsCollector *metrics.MetricsCollector) {
	if params.Product == nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, "Malformed GetMap request, a 'product' parameter needs to be specified", 400)
		return
	}

	idx, err := utils.GetProductIndex(*params.Product, conf)
	if err != nil {
		Error.Printf("%s\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, fmt.Sprintf("Malformed GetMap request: %v", err), 400)
		return
	}
	product := &conf.Products[idx]

	var def *index.Definition
	if params.BandExpr == nil {
		if params.Index == nil {
			metricsCollector.Info.HTTPStatus = 400
			http.Error(w, "Malformed GetMap request, an 'index' or 'rangesubset' parameter needs to be specified", 400)
			return
		}
		def, err = index.Lookup(*params.Index)
		if err != nil {
			Error.Printf("%s\n", err)
			metricsCollector.Info.HTTPStatus = 400
			http.Error(w, err.Error(), 400)
			return
		}
		metricsCollector.Info.Eval.Index = def.Name
	}

	reqURL := r.URL.String()
	if out, ok := renderCache.Get(reqURL); ok {
		metricsCollector.Info.Eval.CacheHit = true
		w.Header().Set("Content-Type", "image/png")
		w.Write(out)
		return
	}

	paths, err := scenePaths(product, params)
	if err != nil {
		Info.Printf("%v\n", err)
		metricsCollector.Info.HTTPStatus = 404
		http.Error(w, err.Error(), 404)
		return
	}

	t0 := time.Now()

	composite, err := buildComposite(ctx, product, paths)
	if err != nil {
		Info.Printf("Error in the pipeline: %v\n", err)
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
		return
	}

	ir, err := computeIndex(params, product, composite)
	if err != nil {
		Info.Printf("Error evaluating index: %v\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	if err := clipToGeometry(ir, composite.GeoTransform, params); err != nil {
		Info.Printf("%v\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	metricsCollector.Info.Eval.Duration = time.Since(t0)
	metricsCollector.Info.Eval.Index = ir.Name
	metricsCollector.Info.Eval.Width = ir.Width
	metricsCollector.Info.Eval.Height = ir.Height
	metricsCollector.Info.Eval.NumScenes = composite.NumScenes

	min, max, paletteName := styleFor(params, product, def)
	palette, err := render.LookupPalette(paletteName)
	if err != nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	norm, err := render.ScaleIndex(ir, min, max)
	if err != nil {
		Info.Printf("Error in the render.ScaleIndex: %v\n", err)
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
		return
	}

	if params.Width != nil && params.Height != nil {
		norm, err = render.Resample(norm, *params.Width, *params.Height)
		if err != nil {
			metricsCollector.Info.HTTPStatus = 400
			http.Error(w, err.Error(), 400)
			return
		}
		metricsCollector.Info.Eval.Width = norm.Width
		metricsCollector.Info.Eval.Height = norm.Height
	}

	out, err := render.EncodePNG(norm, palette)
	if err != nil {
		Info.Printf("Error in the render.EncodePNG: %v\n", err)
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
		return
	}

	renderCache.Put(reqURL, out)

	w.Header().Set("Content-Type", "image/png")
	w.Write(out)
}

// indexStats summarises the valid pixels of an index raster.
type indexStats struct {
	Index     string  `json:"index"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	NumScenes int     `json:"num_scenes"`
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}

func summariseIndex(ir *index.IndexRaster, numScenes int) *indexStats {
	stats := &indexStats{
		Index:     ir.Name,
		Width:     ir.Width,
		Height:    ir.Height,
		NumScenes: numScenes,
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
	}

	sum := 0.0
	for _, v := range ir.Data {
		if math.IsNaN(v) || v == ir.Fill {
			continue
		}
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += v
		stats.Count++
	}

	if stats.Count == 0 {
		stats.Min, stats.Max = 0, 0
		return stats
	}
	stats.Mean = sum / float64(stats.Count)
	return stats
}

func serveGetData(ctx context.Context, params utils.SpectraParams, conf *utils.Config, w http.ResponseWriter, metricsCollector *metrics.MetricsCollector) {
	if params.Product == nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, "Malformed GetData request, a 'product' parameter needs to be specified", 400)
		return
	}

	idx, err := utils.GetProductIndex(*params.Product, conf)
	if err != nil {
		Error.Printf("%s\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, fmt.Sprintf("Malformed GetData request: %v", err), 400)
		return
	}
	product := &conf.Products[idx]

	paths, err := scenePaths(product, params)
	if err != nil {
		Info.Printf("%v\n", err)
		metricsCollector.Info.HTTPStatus = 404
		http.Error(w, err.Error(), 404)
		return
	}

	t0 := time.Now()

	composite, err := buildComposite(ctx, product, paths)
	if err != nil {
		Info.Printf("Error in the pipeline: %v\n", err)
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
		return
	}

	ir, err := computeIndex(params, product, composite)
	if err != nil {
		Info.Printf("Error evaluating index: %v\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	if err := clipToGeometry(ir, composite.GeoTransform, params); err != nil {
		Info.Printf("%v\n", err)
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, err.Error(), 400)
		return
	}

	metricsCollector.Info.Eval.Duration = time.Since(t0)
	metricsCollector.Info.Eval.Index = ir.Name
	metricsCollector.Info.Eval.Width = ir.Width
	metricsCollector.Info.Eval.Height = ir.Height
	metricsCollector.Info.Eval.NumScenes = composite.NumScenes

	w.Header().Set("Content-Type", "application/json")

	if params.X != nil && params.Y != nil {
		x, y := *params.X, *params.Y
		if x >= ir.Width || y >= ir.Height {
			metricsCollector.Info.HTTPStatus = 400
			http.Error(w, fmt.Sprintf("pixel (%d, %d) outside grid %dx%d", x, y, ir.Width, ir.Height), 400)
			return
		}

		value := ir.Data[y*ir.Width+x]
		var valueStr string
		if math.IsNaN(value) {
			valueStr = "null"
		} else {
			valueStr = strconv.FormatFloat(value, 'f', -1, 64)
		}
		fmt.Fprintf(w, `{"index":"%s","x":%d,"y":%d,"value":%s}`, ir.Name, x, y, valueStr)
		return
	}

	out, err := json.Marshal(summariseIndex(ir, composite.NumScenes))
	if err != nil {
		metricsCollector.Info.HTTPStatus = 500
		http.Error(w, err.Error(), 500)
		return
	}
	w.Write(out)
}

func serveSpectra(ctx context.Context, params utils.SpectraParams, conf *utils.Config, r *http.Request, w http.ResponseWriter, metricsCollector *metrics.MetricsCollector) {
	if params.Request == nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, "Malformed request, a Request field needs to be specified", 400)
		return
	}

	switch *params.Request {
	case "GetCapabilities":
		serveGetCapabilities(conf, w, metricsCollector)
	case "GetMap":
		serveGetMap(ctx, params, conf, r, w, metricsCollector)
	case "GetLegend":
		serveGetLegend(params, conf, w, metricsCollector)
	case "GetData":
		serveGetData(ctx, params, conf, w, metricsCollector)
	default:
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, fmt.Sprintf("%s not recognised.", *params.Request), 400)
	}
}

// generalHandler handles every request received on /spectra
func generalHandler(conf *utils.Config, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate, max-age=0")
	if *verbose {
		Info.Printf("%s\n", r.URL.String())
	}
	ctx := r.Context()

	metricsCollector := metrics.NewMetricsCollector(metricsLogger)
	defer metricsCollector.Log()

	t0 := time.Now()
	metricsCollector.Info.ReqTime = t0.Format(utils.ISOFormat)
	defer func() { metricsCollector.Info.ReqDuration = time.Since(t0) }()

	reqUrl, e := url.QueryUnescape(r.URL.String())
	if e == nil {
		metricsCollector.Info.URL.RawURL = reqUrl
	} else {
		metricsCollector.Info.URL.RawURL = r.URL.String()
	}

	metricsCollector.Info.RemoteAddr = utils.ParseRemoteAddr(r)
	metricsCollector.Info.HTTPStatus = 200

	query, err := utils.ParseQuery(r.URL.RawQuery)
	if err != nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, fmt.Sprintf("Failed to parse query: %v", err), 400)
		return
	}

	params, err := utils.ParseSpectraParams(query, reSpectraMap)
	if err != nil {
		metricsCollector.Info.HTTPStatus = 400
		http.Error(w, fmt.Sprintf("Wrong request parameters on URL: %s", err), 400)
		return
	}

	serveSpectra(ctx, params, conf, r, w, metricsCollector)
}

func spectraHandler(w http.ResponseWriter, r *http.Request) {
	namespace := "."
	if len(r.URL.Path) > len("/spectra/") {
		namespace = r.URL.Path[len("/spectra/"):]
	}
	config, ok := configMap[namespace]
	if !ok {
		Info.Printf("Invalid product namespace: %v for url: %v\n", namespace, r.URL.Path)
		http.Error(w, fmt.Sprintf("Invalid product namespace: %v\n", namespace), 404)
		return
	}
	generalHandler(config, w, r)
}

func fileHandler(w http.ResponseWriter, r *http.Request) {
	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
		r.URL.Path = upath
	}
	upath = filepath.Join(utils.DataDir+"/static", filepath.Clean(upath))

	if *verbose {
		Info.Printf("%s -> %s\n", r.URL.String(), upath)
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate, max-age=0")
	http.ServeFile(w, r, upath)
}

func main() {
	http.HandleFunc("/", fileHandler)
	http.HandleFunc("/spectra", spectraHandler)
	http.HandleFunc("/spectra/", spectraHandler)

	listener, err := reuseport.Listen("tcp4", fmt.Sprintf("0.0.0.0:%d", *port))
	if err != nil {
		Error.Fatalf("Failed to listen on port %d: %v", *port, err)
	}

	Info.Printf("Spectra is ready")
	log.Fatal(http.Serve(listener, nil))
}
