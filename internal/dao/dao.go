// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/collabpad/collab-notepad-service/internal/model"
	"github.com/collabpad/collab-notepad-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库引擎配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	RunMode         string
}

type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

type Option func(*Dao)

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// WithAutoMigrate 启用建表迁移
func WithAutoMigrate(enabled bool) Option {
	return func(d *Dao) {
		if !enabled {
			return
		}
		if err := model.AutoMigrate(d.db, "Note"); err != nil && d.logger != nil {
			d.logger.Error("auto migrate failed", zap.Error(err))
		}
	}
}

func New(db *gorm.DB, options ...Option) *Dao {
	d := &Dao{db: db, logger: zap.NewNop()}
	for _, o := range options {
		o(d)
	}
	return d
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// NewDBEngineWithConfig 初始化 GORM 连接
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {

	dialector := userDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	} else {
		db.Config.Logger = logger.Default.LogMode(logger.Silent)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 10)
	}
	if c.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func userDialector(c DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "sqlite" {

		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
