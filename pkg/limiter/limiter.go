// Package limiter 提供基于令牌桶的接口限流器
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// LimiterIface 限流器接口
type LimiterIface interface {
	// Key 获取对应的限流器的键值对名称
	Key(c *gin.Context) string
	// GetBucket 获取令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 新增多个令牌桶
	AddBuckets(rules ...BucketRule) LimiterIface
}

// Limiter 存储令牌桶与键值对名称的映射关系
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 自定义键值对名称
	Key string
	// FillInterval 放令牌的间隔
	FillInterval time.Duration
	// Capacity 令牌桶容量
	Capacity int64
	// Quantum 每次到达间隔时间后所放的令牌数量
	Quantum int64
}
