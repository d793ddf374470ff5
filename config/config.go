package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at startup and handed to the server and stores.
// Handlers never read the environment directly, which keeps tests free to
// inject fake credentials and content roots.
type Config struct {
	Port          string
	DatabaseURL   string
	AdminUsername string
	AdminPassword string
	ContentDir    string
	Origins       []string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
}

// FromEnv builds a Config from the process environment. The admin
// credential defaults exist for local development only and must be
// overridden in any deployment.
func FromEnv() Config {
	c := New()
	return Config{
		Port:          GetString(c, "PORT", "8080"),
		DatabaseURL:   GetString(c, "DATABASE_URL", ""),
		AdminUsername: GetString(c, "BLOG_ADMIN_USERNAME", "admin"),
		AdminPassword: GetString(c, "BLOG_ADMIN_PASSWORD", "admin"),
		ContentDir:    GetString(c, "CONTENT_DIR", "content/blog"),
		Origins:       splitCSV(GetString(c, "ACCEPTED_ORIGINS", "*")),
		ReadTimeout:   time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout:  time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:   time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
