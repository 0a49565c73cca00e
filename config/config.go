package config

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database config
type DBConfig struct {
	Type     string `yaml:"type"` // postgres, sqlite or bolt
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"` // database name, or file name for sqlite/bolt
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	SeedDemo bool   `yaml:"seed_demo"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig WEB config
type WebConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ApiPrefix       string `yaml:"api_prefix"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
}

// LogConfig Log config
type LogConfig struct {
	Mode       string `yaml:"mode"` // production or development
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// EventsConfig domain event export
type EventsConfig struct {
	KafkaBrokers []string `yaml:"kafka_brokers"` // empty disables the kafka bridge
	TopicPrefix  string   `yaml:"topic_prefix"`
}

// JobsConfig scheduled jobs
type JobsConfig struct {
	AnalyticsDigest string `yaml:"analytics_digest"` // cron spec, empty disables
}

type AppConfig struct {
	System   SysConfig    `yaml:"system"`
	Web      WebConfig    `yaml:"web"`
	Database DBConfig     `yaml:"database"`
	Logger   LogConfig    `yaml:"logger"`
	Events   EventsConfig `yaml:"events"`
	Jobs     JobsConfig   `yaml:"jobs"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "salesdesk",
		Location: "Europe/Madrid",
		Workdir:  "/var/salesdesk",
		SeedDemo: false,
		Debug:    true,
	},
	Web: WebConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "salesdesk.db",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/salesdesk/salesdesk.log",
	},
	Events: EventsConfig{
		TopicPrefix: "salesdesk.",
	},
	Jobs: JobsConfig{
		AnalyticsDigest: "@every 10m",
	},
}

// LoadConfig reads cfile when it exists, otherwise starts from DefaultAppConfig,
// then applies SALESDESK_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				panic(err)
			}
		} else if !os.IsNotExist(err) {
			panic(err)
		}
	}

	setEnvValue("SALESDESK_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("SALESDESK_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("SALESDESK_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvBoolValue("SALESDESK_SYSTEM_SEED_DEMO", &cfg.System.SeedDemo)

	setEnvValue("SALESDESK_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("SALESDESK_WEB_PORT", &cfg.Web.Port)
	setEnvValue("SALESDESK_WEB_API_PREFIX", &cfg.Web.ApiPrefix)

	setEnvValue("SALESDESK_DB_TYPE", &cfg.Database.Type)
	setEnvValue("SALESDESK_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("SALESDESK_DB_PORT", &cfg.Database.Port)
	setEnvValue("SALESDESK_DB_NAME", &cfg.Database.Name)
	setEnvValue("SALESDESK_DB_USER", &cfg.Database.User)
	setEnvValue("SALESDESK_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("SALESDESK_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("SALESDESK_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("SALESDESK_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	if brokers := os.Getenv("SALESDESK_KAFKA_BROKERS"); brokers != "" {
		cfg.Events.KafkaBrokers = strings.Split(brokers, ",")
	}
	setEnvValue("SALESDESK_JOBS_ANALYTICS_DIGEST", &cfg.Jobs.AnalyticsDigest)

	cfg.initDirs()
	return &cfg
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue == "" {
		return
	}
	if b, err := cast.ToBoolE(evalue); err == nil {
		*val = b
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue == "" {
		return
	}
	if p, err := cast.ToIntE(evalue); err == nil {
		*val = p
	}
}
