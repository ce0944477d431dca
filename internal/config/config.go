package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const configFileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Split  SplitConfig  `toml:"split"`
	UI     UIConfig     `toml:"ui"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig 本地服务配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// SplitConfig 划分比例配置
//
// MinFraction == MaxFraction 时比例固定，不允许用户调整。
type SplitConfig struct {
	DefaultFraction float64 `toml:"default_fraction"`
	MinFraction     float64 `toml:"min_fraction"`
	MaxFraction     float64 `toml:"max_fraction"`
}

// UIConfig 界面配置
type UIConfig struct {
	DirectoryPicker bool   `toml:"directory_picker"`
	PickerRoot      string `toml:"picker_root"`
}

// ReportConfig 划分报告配置
type ReportConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// ErrFractionOutOfRange 比例超出配置范围
var ErrFractionOutOfRange = errors.New("split fraction out of range")

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20270,
			DevMode: false,
		},
		Split: SplitConfig{
			DefaultFraction: 0.70,
			MinFraction:     0.50,
			MaxFraction:     0.90,
		},
		UI: UIConfig{
			DirectoryPicker: true,
		},
		Report: ReportConfig{
			Enabled: false,
		},
	}
}

// Validate 检查比例配置是否自洽
func (s SplitConfig) Validate() error {
	for _, v := range []float64{s.DefaultFraction, s.MinFraction, s.MaxFraction} {
		if math.IsNaN(v) || v <= 0 || v >= 1 {
			return fmt.Errorf("split fractions must be in (0,1): %w", ErrFractionOutOfRange)
		}
	}
	if s.MinFraction > s.MaxFraction {
		return fmt.Errorf("min_fraction %.2f > max_fraction %.2f", s.MinFraction, s.MaxFraction)
	}
	if !s.Accepts(s.DefaultFraction) {
		return fmt.Errorf("default_fraction %.2f not in [%.2f, %.2f]: %w",
			s.DefaultFraction, s.MinFraction, s.MaxFraction, ErrFractionOutOfRange)
	}
	return nil
}

// Fixed 比例是否固定
func (s SplitConfig) Fixed() bool {
	return s.MinFraction == s.MaxFraction
}

// Accepts 比例是否在 [MinFraction, MaxFraction] 内
func (s SplitConfig) Accepts(f float64) bool {
	return !math.IsNaN(f) && f >= s.MinFraction && f <= s.MaxFraction
}

// Resolve 用户未填写（0）时使用默认值；其余输入必须落在 [MinFraction, MaxFraction] 内
func (s SplitConfig) Resolve(f float64) (float64, error) {
	if f == 0 {
		return s.DefaultFraction, nil
	}
	if !s.Accepts(f) {
		return 0, fmt.Errorf("%.2f not in [%.2f, %.2f]: %w", f, s.MinFraction, s.MaxFraction, ErrFractionOutOfRange)
	}
	return f, nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, configFileName)
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(DefaultPath())
}

// LoadConfigFrom 从指定路径加载配置，文件不存在时返回默认配置
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, info, nil
		}
		return nil, info, err
	}
	info.FileFound = true
	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, fmt.Errorf("parse %s: %w", configPath, err)
	}
	if err := config.Split.Validate(); err != nil {
		return nil, info, fmt.Errorf("%s: %w", configPath, err)
	}

	return config, info, nil
}

// ApplyEnv 环境变量覆盖（仅服务模式使用）
func ApplyEnv(config *AppConfig) error {
	if v := os.Getenv("YOLOSPLIT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("YOLOSPLIT_PORT: %w", err)
		}
		config.Server.Port = port
	}
	return nil
}

// PickerRoot 目录选择器的起始目录
func (c *AppConfig) PickerRoot() string {
	if c.UI.PickerRoot != "" {
		return c.UI.PickerRoot
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return string(filepath.Separator)
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, configPath string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
