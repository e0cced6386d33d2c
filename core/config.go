package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	StorageConfig struct {
		Engine    string // badger | memory
		Path      string
		KeyPrefix string
	}

	ExportConfig struct {
		FilePrefix        string
		IncludeCounseling bool
		Dir               string
	}

	ServerConfig struct {
		Host            string
		ShutdownTimeout time.Duration
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		WorkDir      string

		Storage StorageConfig
		Export  ExportConfig
		Server  ServerConfig
	}
)

const (
	StorageBadger = "badger"
	StorageMemory = "memory"
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Classbook")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("storageEngine", StorageBadger)
	conf.SetDefault("storagePath", filepath.Join(userDataDir(), "classbook"))
	conf.SetDefault("storageKeyPrefix", "classbook:")
	conf.SetDefault("exportFilePrefix", "classbook_report_")
	conf.SetDefault("exportIncludeCounseling", true)
	conf.SetDefault("exportDir", ".")
	conf.SetDefault("serverHost", "127.0.0.1:8421")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("testMode", true)
		conf.SetDefault("storageEngine", StorageMemory)
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		WorkDir:      wd,
		Storage: StorageConfig{
			Engine:    conf.GetString("storageEngine"),
			Path:      conf.GetString("storagePath"),
			KeyPrefix: conf.GetString("storageKeyPrefix"),
		},
		Export: ExportConfig{
			FilePrefix:        conf.GetString("exportFilePrefix"),
			IncludeCounseling: conf.GetBool("exportIncludeCounseling"),
			Dir:               conf.GetString("exportDir"),
		},
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
		},
	}
}

func userDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return os.TempDir()
}
