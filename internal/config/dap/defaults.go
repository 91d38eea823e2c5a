package dap

// 数据地址协议默认配置
const (
	// defaultCompressionLevel zlib 默认压缩级别
	defaultCompressionLevel = 6

	// defaultMaxInflateSize 解压结果上限，与 HTTP 请求体上限同为 1 MiB
	defaultMaxInflateSize = 1 << 20

	// defaultDebug 默认不输出压缩决策日志
	defaultDebug = false
)
