package types

// ProtocolName 数据地址协议名称
type ProtocolName string

const (
	// ProtocolRAW 原文模式：直接存储 UTF-8 字节
	ProtocolRAW ProtocolName = "RAW"
	// ProtocolZIP 压缩模式：zlib (Deflate) 压缩后存储
	ProtocolZIP ProtocolName = "ZIP"
)

// String 返回协议名称的字符串表示
func (p ProtocolName) String() string {
	return string(p)
}

// DapOutput 数据输出记录
// 编码器的输出单元，也是解码器规范化后的输入单元
type DapOutput struct {
	Address string `json:"address"` // 伪装地址
	Value   int64  `json:"value"`   // 金额（聪），恒为网络最小输出金额
}

// ScriptPubKey 节点RPC返回的锁定脚本描述
// 新版节点只返回 address，旧版节点返回 addresses 列表
type ScriptPubKey struct {
	Asm       string   `json:"asm,omitempty"`
	Hex       string   `json:"hex,omitempty"`
	Type      string   `json:"type,omitempty"`
	Address   string   `json:"address,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
}

// TxOutput 交易输出（getrawtransaction verbose 结果中的 vout 元素）
type TxOutput struct {
	Value        float64       `json:"value"`
	N            uint32        `json:"n"`
	ScriptPubKey *ScriptPubKey `json:"scriptPubKey,omitempty"`
}

// CostEstimate 上链成本估算
type CostEstimate struct {
	Mode         ProtocolName `json:"mode"`          // 实际采用的协议
	PayloadSize  int          `json:"payload_size"`  // 预处理后的载荷大小（字节）
	ChunkCount   int          `json:"chunk_count"`   // 数据块数量
	TotalCost    int64        `json:"total_cost"`    // 总成本（聪）
	OriginalSize int          `json:"original_size"` // 原始大小（字节）
}

// NetworkContext 编解码器的网络上下文，构造后不可变
type NetworkContext struct {
	Name      string `json:"name"`       // 网络名称
	Bech32HRP string `json:"bech32_hrp"` // 地址人类可读前缀，为空时使用默认前缀
	DustValue int64  `json:"dust_value"` // 每个数据输出的金额（聪），为 0 时使用默认值
}
