package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/frontandrew/parking/internal/domain"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Snapshot   SnapshotConfig
	Facility   FacilityConfig
	Allocation AllocationConfig
	Exit       ExitConfig
	Random     RandomConfig
	Logger     LoggerConfig
}

// SnapshotConfig содержит настройки файла состояния парковки
type SnapshotConfig struct {
	Path string
}

// FacilityConfig содержит настройки парковки
type FacilityConfig struct {
	Name string // Используется, только если в снимке имя пустое
}

// AllocationConfig содержит настройки выбора места
type AllocationConfig struct {
	RetryZones bool // Пробовать другие зоны, если выбранная заполнена
}

// ExitConfig содержит настройки жетонов на выезд
type ExitConfig struct {
	TokenValidity time.Duration
}

// RandomConfig содержит настройки генератора случайных чисел
type RandomConfig struct {
	Seed uint64 // 0 - от текущего времени
}

// LoggerConfig содержит настройки логирования
type LoggerConfig struct {
	Level  string
	Format string // json или console
	Output string // stdout, stderr или путь к файлу
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Snapshot: SnapshotConfig{
			Path: getEnv("PARKING_DB_FILE", "parking.json"),
		},
		Facility: FacilityConfig{
			Name: getEnv("PARKING_NAME", ""),
		},
		Allocation: AllocationConfig{
			RetryZones: getBoolEnv("ALLOCATOR_RETRY_ZONES", false),
		},
		Exit: ExitConfig{
			TokenValidity: getDurationEnv("EXIT_TOKEN_VALIDITY", domain.DefaultExitTokenValidity),
		},
		Random: RandomConfig{
			Seed: getUintEnv("RANDOM_SEED", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stderr"),
		},
	}

	return cfg, nil
}

// SeedOrNow возвращает зерно генератора, при нуле берет текущее время
func (c *RandomConfig) SeedOrNow(now time.Time) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(now.UnixNano())
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getUintEnv(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
