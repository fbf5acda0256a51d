package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultTokenURL   = "https://identity.dataspace.copernicus.eu/auth/realms/CDSE/protocol/openid-connect/token"
	defaultProcessURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

	// Sentinel-2 L2A at 10m; the processing API caps output at 2500px.
	defaultResolution = 10.0
	maxOutputPixels   = 2500

	metresPerDegree = 111000.0
)

// The evalscript requests the seven surface reflectance bands used by
// the index catalog, in a fixed order the scene loader depends on.
const evalscript = `
//VERSION=3
function setup() {
  return {
    input: ["B02", "B03", "B04", "B05", "B08", "B11", "B12"],
    output: {
      id: "default",
      bands: 7,
      sampleType: SampleType.FLOAT32,
    },
  }
}

function evaluatePixel(sample) {
  return [sample.B02, sample.B03, sample.B04, sample.B05, sample.B08, sample.B11, sample.B12];
}
`

// Config carries Copernicus Data Space credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	ProcessURL   string
}

// ConfigFromEnv reads credentials from SH_CLIENT_ID and SH_CLIENT_SECRET.
func ConfigFromEnv() Config {
	return Config{
		ClientID:     os.Getenv("SH_CLIENT_ID"),
		ClientSecret: os.Getenv("SH_CLIENT_SECRET"),
	}
}

// Client downloads multi-band scene GeoTIFFs from the Copernicus Data
// Space processing API.
type Client struct {
	httpClient *http.Client
	processURL string
	verbose    bool
}

func NewClient(ctx context.Context, cfg Config, verbose bool) (*Client, error) {
	if len(cfg.ClientID) == 0 || len(cfg.ClientSecret) == 0 {
		return nil, fmt.Errorf("missing Copernicus credentials")
	}
	tokenURL := cfg.TokenURL
	if len(tokenURL) == 0 {
		tokenURL = defaultTokenURL
	}
	processURL := cfg.ProcessURL
	if len(processURL) == 0 {
		processURL = defaultProcessURL
	}

	oauthCfg := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	return &Client{
		httpClient: oauthCfg.Client(ctx),
		processURL: processURL,
		verbose:    verbose,
	}, nil
}

// SceneRequest describes one acquisition window over an area of
// interest. MaxCloudCover is a percentage in [0, 100].
type SceneRequest struct {
	AOI           orb.Geometry
	From, To      time.Time
	MaxCloudCover float64
}

// pixelDims sizes the output grid from the AOI extent at the native
// resolution, clamped to the API limit.
func pixelDims(bound orb.Bound) (int, int) {
	width := int((bound.Max[0] - bound.Min[0]) * metresPerDegree / defaultResolution)
	height := int((bound.Max[1] - bound.Min[1]) * metresPerDegree / defaultResolution)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width > maxOutputPixels {
		width = maxOutputPixels
	}
	if height > maxOutputPixels {
		height = maxOutputPixels
	}
	return width, height
}

func buildPayload(req SceneRequest) (map[string]interface{}, error) {
	if req.AOI == nil {
		return nil, fmt.Errorf("no AOI geometry")
	}
	if !req.To.After(req.From) {
		return nil, fmt.Errorf("invalid time range: %v to %v", req.From, req.To)
	}

	width, height := pixelDims(req.AOI.Bound())

	return map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geojson.NewGeometry(req.AOI),
			},
			"data": []map[string]interface{}{
				{
					"type": "sentinel-2-l2a",
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": req.From.Format(time.RFC3339),
							"to":   req.To.Format(time.RFC3339),
						},
						"maxCloudCoverage": req.MaxCloudCover,
					},
				},
			},
		},
		"output": map[string]interface{}{
			"width":  width,
			"height": height,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
	}, nil
}

// FetchScene downloads the scene described by req into outPath.
func (c *Client) FetchScene(ctx context.Context, req SceneRequest, outPath string) error {
	payload, err := buildPayload(req)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal process request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.processURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "image/tiff")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("process request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("process request returned %d: %s", resp.StatusCode, errBody)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var out io.Writer = f
	if c.verbose {
		bar := progressbar.DefaultBytes(resp.ContentLength, fmt.Sprintf("downloading %s", outPath))
		out = io.MultiWriter(f, bar)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to write scene %s: %v", outPath, err)
	}

	return nil
}
