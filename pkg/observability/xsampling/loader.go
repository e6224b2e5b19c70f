package xsampling

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置文件格式
type Format string

const (
	// FormatYAML YAML 格式
	FormatYAML Format = "yaml"
	// FormatJSON JSON 格式
	FormatJSON Format = "json"
)

// configDelim koanf 配置路径分隔符
const configDelim = "."

// LoadConfig 从文件加载采样配置
//
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json），
// 加载后立即执行 Validate：配置错误在启动期暴露，而不是
// 等到第一次采样决策。
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadConfigFromBytes(data, format)
}

// LoadConfigFromBytes 从字节数据加载采样配置
//
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 空数据返回默认配置（禁用过滤），与空文件行为一致。
func LoadConfigFromBytes(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = kyaml.Parser()
	case FormatJSON:
		parser = kjson.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	cfg := DefaultConfig()
	if len(data) > 0 {
		k := koanf.New(configDelim)
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
