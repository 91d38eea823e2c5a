// Package dap 定义数据地址协议（Scash-DAP）编解码接口
//
// 编解码器是纯计算组件：
// - 不做任何网络或磁盘 I/O
// - 构造后只持有不可变的网络上下文与协议注册表
// - 可被多个 goroutine 并发调用
package dap

import "github.com/scashdap/v1/pkg/types"

// Codec 数据地址编解码器
type Codec interface {
	// Encode 将文本编码为有序的数据输出列表，输出顺序即载荷顺序
	Encode(text string) ([]types.DapOutput, error)

	// Decode 从交易输出列表中还原文本
	// outputs 的元素可以是地址字符串、带 address 字段的对象、
	// 或带 scriptPubKey.address / scriptPubKey.addresses 的对象
	// 无法识别的元素会被静默跳过；解压失败返回空字符串
	Decode(outputs []any) string

	// Estimate 估算上链成本，不执行实际编码
	Estimate(text string) types.CostEstimate

	// IsProtocolAddress 判断地址是否为本协议的数据地址
	IsProtocolAddress(address string) bool

	// ProtocolOf 返回数据地址所使用的协议名称
	ProtocolOf(address string) (types.ProtocolName, bool)
}
