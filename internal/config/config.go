package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/detranagenda/painel/internal/util"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	DBDSN           string
	DBAutoMigrate   bool
	RedisURL        string
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	Snapshot        SnapshotConfig
	NotifyTTL       time.Duration
	OfficeEmail     string
	Location        *time.Location
	Watch           WatchConfig
	Backup          BackupConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// SnapshotConfig define onde a cópia local dos registros é gravada.
type SnapshotConfig struct {
	Driver string
	Path   string
}

// WatchConfig controla o alerta periódico de agendamentos não confirmados.
type WatchConfig struct {
	Enabled         bool
	Interval        time.Duration
	SlackWebhookURL string
}

// BackupConfig descreve o destino opcional dos backups exportados.
type BackupConfig struct {
	Provider    string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	// sem DB_DSN o painel opera apenas com a cópia local
	cfg.DBDSN = strings.TrimSpace(getEnv("DB_DSN", ""))
	cfg.DBAutoMigrate = parseBoolEnv("DB_AUTO_MIGRATE", true)
	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))

	cfg.Snapshot.Driver = strings.ToLower(strings.TrimSpace(getEnv("SNAPSHOT_DRIVER", "file")))
	switch cfg.Snapshot.Driver {
	case "file", "sqlite", "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL obrigatório para SNAPSHOT_DRIVER=redis")
		}
	default:
		return nil, errors.New("SNAPSHOT_DRIVER inválido")
	}
	cfg.Snapshot.Path = strings.TrimSpace(getEnv("SNAPSHOT_PATH", "data"))

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	if rps := getEnv("RATE_LIMIT_RPS", ""); rps != "" {
		v, err := strconv.ParseFloat(rps, 64)
		if err != nil || v <= 0 {
			return nil, errors.New("RATE_LIMIT_RPS inválido")
		}
		cfg.RateLimitPublic.RequestsPerSecond = v
	}
	if burst := getEnv("RATE_LIMIT_BURST", ""); burst != "" {
		v, err := strconv.Atoi(burst)
		if err != nil || v <= 0 {
			return nil, errors.New("RATE_LIMIT_BURST inválido")
		}
		cfg.RateLimitPublic.Burst = v
	}

	notifyTTL, err := parseDurationEnv("NOTIFY_TTL", 4*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.NotifyTTL = notifyTTL

	cfg.OfficeEmail = strings.TrimSpace(getEnv("OFFICE_EMAIL", "agendamento.crt@detran.ba.gov.br"))
	if cfg.OfficeEmail == "" {
		cfg.OfficeEmail = "agendamento.crt@detran.ba.gov.br"
	}
	if err := util.ValidateEmail(cfg.OfficeEmail); err != nil {
		return nil, errors.New("OFFICE_EMAIL inválido")
	}

	loc, err := time.LoadLocation(strings.TrimSpace(getEnv("TIMEZONE", "America/Bahia")))
	if err != nil {
		return nil, errors.New("TIMEZONE inválido")
	}
	cfg.Location = loc

	cfg.Watch.Enabled = parseBoolEnv("WATCH_ENABLED", false)
	interval, err := parseDurationEnv("WATCH_INTERVAL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.Watch.Interval = interval
	cfg.Watch.SlackWebhookURL = strings.TrimSpace(getEnv("SLACK_WEBHOOK_URL", ""))

	cfg.Backup = BackupConfig{
		Provider:    strings.ToLower(strings.TrimSpace(getEnv("BACKUP_PROVIDER", "noop"))),
		S3Endpoint:  strings.TrimSpace(getEnv("S3_ENDPOINT", "")),
		S3Region:    strings.TrimSpace(getEnv("S3_REGION", "auto")),
		S3Bucket:    strings.TrimSpace(getEnv("S3_BUCKET", "")),
		S3AccessKey: strings.TrimSpace(getEnv("S3_ACCESS_KEY", "")),
		S3SecretKey: strings.TrimSpace(getEnv("S3_SECRET_KEY", "")),
		S3PublicURL: strings.TrimSpace(getEnv("S3_PUBLIC_URL", "")),
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil || dur <= 0 {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}

func parseBoolEnv(key string, def bool) bool {
	val := strings.TrimSpace(getEnv(key, ""))
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return b
}
