package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"sigs.k8s.io/yaml"
)

const (
	defaultAppName  = "basecamp"
	defaultAppEnv   = "local"
	defaultLogLevel = "debug"
)

// Files searched by Load, in order. Later sources win.
var configFiles = []string{"config/app.yaml", "config/app.json"}

const envFile = ".env"

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.yaml (or config/app.json), then .env, then the
// process environment. Missing files are not an error. Safe to call many
// times; the files are read once.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles(configFiles, envFile)
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_NAME":  defaultAppName,
		"APP_ENV":   defaultAppEnv,
		"LOG_LEVEL": defaultLogLevel,
	}
}

func AppName() string {
	_ = Load()
	return get("APP_NAME", defaultAppName)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// LogLevel is one of debug, info, warn, error.
func LogLevel() string {
	_ = Load()
	return strings.ToLower(get("LOG_LEVEL", defaultLogLevel))
}

func loadFromFiles(configPaths []string, envPath string) error {
	loaded := defaultValues()

	for _, path := range configPaths {
		if err := mergeConfigFile(path, loaded); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeEnviron(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

// mergeConfigFile accepts YAML or JSON; JSON is valid YAML.
func mergeConfigFile(path string, out map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case bool, float64, int64:
			s = fmt.Sprint(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

// mergeEnviron lets the process environment override known keys only.
func mergeEnviron(out map[string]string) {
	for key := range out {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and the config file are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(strings.ToUpper(key), fallback)
}
