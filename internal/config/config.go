package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	MySQL   DatabaseConfig `mapstructure:"mysql"`
	Redis   RedisConfig    `mapstructure:"redis"`
	Log     LogConfig      `mapstructure:"log"`
	Article ArticleConfig  `mapstructure:"article"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name      string `mapstructure:"name"`
	Mode      string `mapstructure:"mode"`
	Port      int    `mapstructure:"port"`
	MachineID int64  `mapstructure:"machine_id"` // 雪花算法机器ID (0-1023)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// ArticleConfig 文章配置
type ArticleConfig struct {
	DateFormat      string   `mapstructure:"date_format"`       // 创建/更新时间的格式化模板
	DefaultPageSize int      `mapstructure:"default_page_size"` // 列表查询未指定limit时的默认条数
	SeriesWarmTags  []string `mapstructure:"series_warm_tags"`  // 定时预热系列概览缓存的标签
	SeriesWarmSpec  string   `mapstructure:"series_warm_spec"`  // 预热任务的cron表达式
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig  *Config
	viperInstance *viper.Viper
)

// Init 初始化配置
func Init(configPath string) error {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %v", err)
	}

	// 监听配置文件变更，热更新全局配置
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var next Config
		if err := v.Unmarshal(&next); err == nil {
			GlobalConfig = &next
		}
	})

	GlobalConfig = &config
	viperInstance = v
	return nil
}

// setDefaults 设置默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8080)
	v.SetDefault("article.date_format", "2006-01-02 15:04:05")
	v.SetDefault("article.default_page_size", 100)
	v.SetDefault("article.series_warm_spec", "@every 10m")
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return GlobalConfig
}

// GetString 获取字符串配置
func GetString(key string) string {
	return viperInstance.GetString(key)
}

// GetInt 获取整数配置
func GetInt(key string) int {
	return viperInstance.GetInt(key)
}
