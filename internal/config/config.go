// Package config конфигурация клиента: адрес API, файл зеркала состояния
// и адрес встроенного дев-бэкенда.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config полная конфигурация
type Config struct {
	API   API   `yaml:"api"`
	State State `yaml:"state"`
	Serve Serve `yaml:"serve"`
}

// API параметры удалённого REST API
type API struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// State расположение файла персистентного зеркала
type State struct {
	Path string `yaml:"path"`
}

// Serve параметры встроенного дев-бэкенда
type Serve struct {
	Addr string `yaml:"addr"`
}

// New создаёт конфигурацию со значениями по умолчанию
func New() *Config {
	return &Config{
		API: API{
			BaseURL:        "http://localhost:9091/api/v1",
			TimeoutSeconds: 15,
		},
		State: State{Path: "vitrine-state.json"},
		Serve: Serve{Addr: ":9091"},
	}
}

// LoadFile подмешивает YAML-файл поверх значений по умолчанию
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing YAML config: %w", err)
	}
	c.merge(&loaded)
	return nil
}

func (c *Config) merge(loaded *Config) {
	if loaded.API.BaseURL != "" {
		c.API.BaseURL = loaded.API.BaseURL
	}
	if loaded.API.TimeoutSeconds > 0 {
		c.API.TimeoutSeconds = loaded.API.TimeoutSeconds
	}
	if loaded.State.Path != "" {
		c.State.Path = loaded.State.Path
	}
	if loaded.Serve.Addr != "" {
		c.Serve.Addr = loaded.Serve.Addr
	}
}

// Timeout таймаут HTTP-клиента
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
