package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"bme-guide/pkg/lang"
)

const themeColorPrefix = "THEME_COLOR_"

type Config struct {
	// Server
	Port        string
	Environment string
	LogFormat   string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableMetrics bool

	// Site Meta
	SiteName        string
	SiteShortName   string
	SiteTagline     string
	DefaultLanguage string

	// Content
	ContentDir string

	// Sidebar
	SidebarCookieSecure bool
	SidebarDefaultOpen  bool

	// Theme
	ThemeFontFamily string
	ThemeColors     map[string]string
}

func New() *Config {
	c := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 10),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName:      getEnv("SITE_NAME", "מדריך אקדמי BME"),
		SiteShortName: getEnv("SITE_SHORT_NAME", "מדריך BME"),
		SiteTagline:   getEnv("SITE_TAGLINE", "הפקולטה להנדסה ביו-רפואית"),

		// Content
		ContentDir: getEnv("CONTENT_DIR", ""),

		// Sidebar
		SidebarDefaultOpen: getEnvAsBool("SIDEBAR_DEFAULT_OPEN", true),

		// Theme
		ThemeFontFamily: getEnv("THEME_FONT_FAMILY", ""),
		ThemeColors:     themeColorsFromEnv(os.Environ()),
	}

	if language, err := lang.Normalize(getEnv("DEFAULT_LANGUAGE", lang.Default)); err == nil {
		c.DefaultLanguage = language
	} else {
		c.DefaultLanguage = lang.Default
	}

	c.SidebarCookieSecure = getEnvAsBool("SIDEBAR_COOKIE_SECURE", c.IsProduction())

	return c
}

// ThemeColorNames returns the overridden palette names in a stable order.
func (c *Config) ThemeColorNames() []string {
	names := make([]string, 0, len(c.ThemeColors))
	for name := range c.ThemeColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// themeColorsFromEnv maps THEME_COLOR_BME_BLUE=#123 to bme-blue.
func themeColorsFromEnv(environ []string) map[string]string {
	colors := make(map[string]string)
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, themeColorPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, themeColorPrefix)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
		colors[name] = value
	}
	return colors
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
