// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/collabpad/collab-notepad-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`
	Tasks    TasksConfig    `yaml:"tasks"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
	// CorsAllowOrigin 允许的前端来源
	CorsAllowOrigin string `yaml:"cors-allow-origin" default:"http://localhost:5173"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// DefaultLang 响应消息默认语言
	DefaultLang string `yaml:"default-lang" default:"en"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// TasksConfig 定时任务配置
type TasksConfig struct {
	// RoomStatsSpec 房间统计日志的 cron 表达式，空则禁用
	RoomStatsSpec string `yaml:"room-stats-spec" default:"@every 1m"`
	// DBMaintainSpec 数据库维护的 cron 表达式，空则禁用
	DBMaintainSpec string `yaml:"db-maintain-spec" default:"@daily"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetContextTimeout 获取请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetConnMaxLifetime 获取连接最大生命周期
func (c *AppConfig) GetConnMaxLifetime() time.Duration {
	d, err := util.ParseDuration(c.Database.ConnMaxLifetime)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetConnMaxIdleTime 获取空闲连接最大生命周期
func (c *AppConfig) GetConnMaxIdleTime() time.Duration {
	d, err := util.ParseDuration(c.Database.ConnMaxIdleTime)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}
