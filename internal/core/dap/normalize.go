package dap

import (
	"encoding/json"

	"github.com/scashdap/v1/pkg/types"
)

// ExtractAddress 从一条交易输出中提取地址
//
// 支持的形态：
//   - 地址字符串
//   - 带 address 字段的对象（types.DapOutput、map）
//   - 带 scriptPubKey.address 或 scriptPubKey.addresses[0] 的对象（types.TxOutput、map）
//   - 承载以上任一形态的 json.RawMessage
//
// 无法提取时返回 false，调用方应跳过该输出
func ExtractAddress(output any) (string, bool) {
	switch v := output.(type) {
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, *v != ""
	case types.DapOutput:
		return v.Address, v.Address != ""
	case *types.DapOutput:
		if v == nil {
			return "", false
		}
		return v.Address, v.Address != ""
	case types.TxOutput:
		return addressFromScript(v.ScriptPubKey)
	case *types.TxOutput:
		if v == nil {
			return "", false
		}
		return addressFromScript(v.ScriptPubKey)
	case types.ScriptPubKey:
		return addressFromScript(&v)
	case *types.ScriptPubKey:
		return addressFromScript(v)
	case map[string]any:
		return addressFromMap(v)
	case json.RawMessage:
		return addressFromJSON(v)
	default:
		return "", false
	}
}

// NormalizeOutputs 将输出列表规范化为地址列表，保持原有顺序
func NormalizeOutputs(outputs []any) []string {
	addrs := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if addr, ok := ExtractAddress(out); ok {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// AsOutputs 将强类型切片转换为 Decode 所需的 []any
func AsOutputs[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

func addressFromScript(spk *types.ScriptPubKey) (string, bool) {
	if spk == nil {
		return "", false
	}
	if spk.Address != "" {
		return spk.Address, true
	}
	if len(spk.Addresses) > 0 && spk.Addresses[0] != "" {
		return spk.Addresses[0], true
	}
	return "", false
}

func addressFromMap(m map[string]any) (string, bool) {
	if addr, ok := m["address"].(string); ok && addr != "" {
		return addr, true
	}

	spk, ok := m["scriptPubKey"].(map[string]any)
	if !ok {
		return "", false
	}
	if addr, ok := spk["address"].(string); ok && addr != "" {
		return addr, true
	}
	switch list := spk["addresses"].(type) {
	case []any:
		if len(list) > 0 {
			if addr, ok := list[0].(string); ok && addr != "" {
				return addr, true
			}
		}
	case []string:
		if len(list) > 0 && list[0] != "" {
			return list[0], true
		}
	}
	return "", false
}

func addressFromJSON(raw json.RawMessage) (string, bool) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", false
	}
	switch v := decoded.(type) {
	case string:
		return v, v != ""
	case map[string]any:
		return addressFromMap(v)
	default:
		return "", false
	}
}
