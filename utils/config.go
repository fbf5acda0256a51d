package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

var EtcDir = "."
var DataDir = "."

type ServiceConfig struct {
	Hostname      string `json:"hostname"`
	SceneStoreDSN string `json:"scene_store_dsn"`
	MemcacheURI   string `json:"memcache_uri"`
	TempDir       string `json:"temp_dir"`
}

// IndexStyle overrides the catalog's display hints for one index of a
// product. Unset min/max fall back to the catalog defaults.
type IndexStyle struct {
	Name    string   `json:"name"`
	Palette string   `json:"palette"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
}

// Product contains all the details a scene collection needs to be
// published and rendered.
type Product struct {
	NameSpace   string
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Abstract    string       `json:"abstract"`
	SceneDir    string       `json:"scene_dir"`
	MaxScenes   int          `json:"max_scenes"`
	ConcLimit   int          `json:"conc_limit"`
	FillValue   *float64     `json:"fill_value"`
	IndexStyles []IndexStyle `json:"index_styles"`
}

// Config is the struct representing the configuration of the spectra
// server. It contains the service endpoints as well as the list of
// products that can be served.
type Config struct {
	ServiceConfig ServiceConfig `json:"service_config"`
	Products      []Product     `json:"products"`
}

// string used to format Go ISO times
const ISOFormat = "2006-01-02T15:04:05.000Z"

const DefaultMaxScenes = 8
const DefaultConcLimit = 4

// LoadConfigFile marshalls the config.json document returning an
// instance of a Config variable containing all the values.
func (config *Config) LoadConfigFile(configFile string) error {
	*config = Config{}
	cfg, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("Error while reading config file: %s. Error: %v", configFile, err)
	}

	err = json.Unmarshal(cfg, config)
	if err != nil {
		return fmt.Errorf("Error at JSON parsing config document: %s. Error: %v", configFile, err)
	}

	for i, product := range config.Products {
		if len(strings.TrimSpace(product.Name)) == 0 {
			return fmt.Errorf("Product %d in %s has no name", i, configFile)
		}
		if config.Products[i].MaxScenes <= 0 {
			config.Products[i].MaxScenes = DefaultMaxScenes
		}
		if config.Products[i].ConcLimit <= 0 {
			config.Products[i].ConcLimit = DefaultConcLimit
		}
	}
	return nil
}

func LoadAllConfigFiles(rootDir string) (map[string]*Config, error) {
	configMap := make(map[string]*Config)
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && info.Name() == "config.json" {
			relPath, _ := filepath.Rel(rootDir, filepath.Dir(path))
			log.Printf("Loading config file: %s under namespace: %s\n", path, relPath)

			config := &Config{}
			e := config.LoadConfigFile(path)
			if e != nil {
				return e
			}

			configMap[relPath] = config

			for i := range config.Products {
				ns := relPath
				if relPath == "." {
					ns = ""
				}
				config.Products[i].NameSpace = ns
			}
		}
		return nil
	})

	if err == nil && len(configMap) == 0 {
		err = fmt.Errorf("No config file found")
	}

	return configMap, err
}

// GetProductIndex returns the index of the named product inside
// Config.Products.
func GetProductIndex(name string, config *Config) (int, error) {
	for i := range config.Products {
		if config.Products[i].Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("product %s not found", name)
}

// GetIndexStyle returns the product's style override for an index, if
// any.
func GetIndexStyle(product *Product, indexName string) *IndexStyle {
	for i := range product.IndexStyles {
		if product.IndexStyles[i].Name == indexName {
			return &product.IndexStyles[i]
		}
	}
	return nil
}

func WatchConfig(infoLog, errLog *log.Logger, configMap *map[string]*Config) {
	// Catch SIGHUP to automatically reload config
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for {
			<-sighup
			infoLog.Println("Caught SIGHUP, reloading config...")
			confMap, err := LoadAllConfigFiles(EtcDir)
			if err != nil {
				errLog.Printf("Error in loading config files: %v\n", err)
				continue
			}

			for k := range *configMap {
				delete(*configMap, k)
			}

			for k := range confMap {
				(*configMap)[k] = confMap[k]
			}
		}
	}()
}
