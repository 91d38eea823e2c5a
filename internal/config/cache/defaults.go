package cache

import "time"

// 交易查询缓存默认配置
// 已确认交易不会变化，缓存窗口只受内存约束
const (
	defaultLifeWindow         = 10 * time.Minute
	defaultCleanWindow        = 5 * time.Minute
	defaultMaxEntrySize       = 16 * 1024
	defaultMaxEntriesInWindow = 10000
	defaultShards             = 64
	defaultDisabled           = false
)
