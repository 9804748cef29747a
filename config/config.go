package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// DBConfig database configuration. Type "memory" runs the warehouse fully
// in-process with snapshot persistence; "postgres" uses GORM.
type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "warestock",
		Location: "Asia/Jakarta",
		Workdir:  "/var/warestock",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:   "memory",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "warestock",
		User:   "postgres",
		Passwd: "",
		Debug:  false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/warestock/warestock.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the yaml configuration file, falling back to defaults,
// then applies WARESTOCK_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "warestock.yml"
	}
	fallback := *DefaultAppConfig
	cfg := new(AppConfig)
	if data, err := os.ReadFile(cfile); err == nil {
		if err = yaml.Unmarshal(data, cfg); err != nil {
			cfg = &fallback
		}
	} else {
		cfg = &fallback
	}

	setEnvValue("WARESTOCK_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("WARESTOCK_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("WARESTOCK_DB_TYPE", &cfg.Database.Type)
	setEnvValue("WARESTOCK_DB_HOST", &cfg.Database.Host)
	setEnvValue("WARESTOCK_DB_NAME", &cfg.Database.Name)
	setEnvValue("WARESTOCK_DB_USER", &cfg.Database.User)
	setEnvValue("WARESTOCK_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("WARESTOCK_LOGGER_MODE", &cfg.Logger.Mode)

	if cfg.System.Workdir != "" {
		_ = os.MkdirAll(cfg.System.Workdir, 0755)
		_ = os.MkdirAll(filepath.Join(cfg.System.Workdir, "backup"), 0755)
	}
	return cfg
}
