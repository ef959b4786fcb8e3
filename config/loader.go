package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file lookups the loader performs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem is the FileSystem backed by the process's disk and
// environment.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv never overrides variables that are already set.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// searchDirs lists where config.yml and .env files are looked for, nearest
// first: cmd/<service> up to two levels above the working directory, then
// config/ and the working directory itself. A dashed service name also
// tries its last element, so "acme-scribed" finds cmd/scribed.
func searchDirs(serviceName string) []string {
	names := []string{serviceName}
	if i := strings.LastIndex(serviceName, "-"); i >= 0 {
		names = append(names, serviceName[i+1:])
	}
	var dirs []string
	for _, up := range []string{".", "..", filepath.Join("..", "..")} {
		for _, n := range names {
			dirs = append(dirs, filepath.Join(up, "cmd", n))
		}
	}
	return append(dirs, "config", filepath.Join("..", "config"), ".")
}

// firstExisting returns the first dir/file combination present in fs,
// trying every directory for one file name before the next name.
func firstExisting(fs FileSystem, dirs []string, files ...string) string {
	for _, f := range files {
		for _, d := range dirs {
			if p := filepath.Join(d, f); fs.Exists(p) {
				return p
			}
		}
	}
	return ""
}

// resolveFiles fills in whichever of the config and env paths lc left empty.
func resolveFiles(serviceName string, lc LoaderConfig) (configFile, envFile string) {
	dirs := searchDirs(serviceName)
	configFile, envFile = lc.ConfigFile, lc.EnvFile
	if configFile == "" {
		configFile = firstExisting(lc.FileSystem, dirs, "config.yml", "config.yaml")
	}
	if envFile == "" {
		envFile = firstExisting(lc.FileSystem, dirs, ".env."+serviceName, ".env")
	}
	return configFile, envFile
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	// ConfigFile and EnvFile skip the search when set.
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig reads the service's config file and .env into cfg. Environment
// variables win over the file: OPENAI_API_KEY sets openai.api_key. A
// missing file is not an error; a malformed one is.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = OSFileSystem{}
	}

	configFile, envFile := resolveFiles(serviceName, lc)
	fs := lc.FileSystem
	v := viper.New()

	if configFile != "" && fs.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config file %s: %w", configFile, err)
		}
	}
	if envFile != "" && fs.Exists(envFile) {
		if err := fs.LoadEnv(envFile); err != nil {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	for _, key := range configKeys(reflect.TypeOf(cfg), "") {
		if err := v.BindEnv(append([]string{key}, envNames(serviceName, key)...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode %s config: %w", serviceName, err)
	}
	return nil
}

// envNames returns the variables that can set key, highest priority
// first: openai.api_key is read from SCRIBE_OPENAI_API_KEY, then
// OPENAI_API_KEY.
func envNames(serviceName, key string) []string {
	plain := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	prefix := strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
	if prefix == "" {
		return []string{plain}
	}
	return []string{prefix + "_" + plain, plain}
}

// configKeys lists the dotted mapstructure keys of every leaf field in t.
// Squashed embedded structs contribute their keys without a prefix.
func configKeys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, squash := mapstructureName(f)
		if name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if squash {
			keys = append(keys, configKeys(ft, prefix)...)
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(time.Time{}) {
			keys = append(keys, configKeys(ft, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func mapstructureName(f reflect.StructField) (name string, squash bool) {
	tag := f.Tag.Get("mapstructure")
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "squash" {
			squash = true
		}
	}
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	return name, squash
}
