package config

import (
	"fmt"
	"strings"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

type EnvVars struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppName  string `env:"APP_NAME" envDefault:"Graphene Trace"`
	Folder   string `env:"FOLDER" envDefault:"./data"`
	Storage  string `env:"STORAGE" envDefault:"file"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"ENV" envDefault:"DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.Port, ":") {
		return e.Port
	}
	return fmt.Sprintf(":%s", e.Port)
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetDataFolder() string {
	return e.Folder
}

// GetStorage returns the session storage backend, either "file" or "memory".
func (e EnvVars) GetStorage() string {
	if strings.EqualFold(e.Storage, StorageMemory) {
		return StorageMemory
	}
	return StorageFile
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}
