package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Configuration struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Smtp     SmtpConfig     `yaml:"smtp"`
	Auth     AuthConfig     `yaml:"auth"`
	Export   ExportConfig   `yaml:"export"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"request"`
	LogConfig     LogConfig     `yaml:"log"`
	CleanConfig   CleanConfig   `yaml:"clean"`
}

type RequestConfig struct {
	// SizeLimit is the maximum request body size in megabytes.
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type CleanConfig struct {
	Schedule string `yaml:"schedule"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite". Postgres connection settings come
	// from the DB_* environment variables; sqlite uses Path.
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type StorageConfig struct {
	Zone   string `yaml:"zone"`
	ApiKey string `yaml:"apiKey"`
	Region string `yaml:"region"`
	CdnUrl string `yaml:"cdnUrl"`
}

type SmtpConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AdminEmail string `yaml:"adminEmail"`
}

type AuthConfig struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	JwtSecret string `yaml:"jwtSecret"`
}

type ExportConfig struct {
	// MaxEntries caps the number of files in a single archive export.
	// Zero means no ceiling.
	MaxEntries int `yaml:"maxEntries"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
