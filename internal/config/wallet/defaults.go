package wallet

// 钱包默认配置
const (
	// defaultEnvPath 助记词保存位置
	defaultEnvPath = ".env"

	// defaultDerivationPath BIP84 原生隔离见证第一个接收地址
	defaultDerivationPath = "m/84'/0'/0'/0/0"

	// defaultFeeSats 固定手续费（聪）
	defaultFeeSats int64 = 5000

	// defaultMinUTXOSats 可用于支付的 UTXO 金额下限（0.001 SCASH）
	defaultMinUTXOSats int64 = 100000
)
