package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port         int
	DataPath     string // 本地存储文件路径
	GeminiAPIKey string
	GeminiModel  string
	Debug        bool
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	// .env 文件可选，不存在时直接用环境变量
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	return &Config{
		Port:         port,
		DataPath:     getEnv("DATA_PATH", "crm_local.db"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		Debug:        getEnv("GIN_MODE", "debug") == "debug",
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
