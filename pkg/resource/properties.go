package resource

import (
	"bytes"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"

	"todo-api/configs"
)

var (
	properties = viper.New()
	envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)
)

// init loads application properties from YAML
func init() {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		Init(value)
		return
	}
	if err := Load(configs.Application); err != nil {
		log.Fatalf("Fail to read bundled properties: %v", err)
	}
}

// Init loads the properties from a yml file on disk, replacing the bundled ones.
func Init(filepath string) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
	if err := Load(content); err != nil {
		log.Fatalf("Fail to parse properties: %v", err)
	}
}

// Load parses yml content and resolves ${ENV:default} placeholders.
func Load(content []byte) error {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return err
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)
	for key, value := range resolved {
		v.Set(key, value)
	}

	properties = v
	return nil
}

// Set overrides a single property, mostly useful in tests.
func Set(key string, value any) {
	properties.Set(key, value)
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable replaces a ${NAME:default} value by the environment variable or its default
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

func GetInt64(key string) int64 {
	return properties.GetInt64(key)
}

func GetSizeInBytes(key string) uint {
	return properties.GetSizeInBytes(key)
}

func GetStringSlice(key string) []string {
	return properties.GetStringSlice(key)
}
