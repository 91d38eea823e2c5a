// Package output provides output formatting functionality for client commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Format 输出格式
type Format string

const (
	// FormatJSON JSON格式（默认）
	FormatJSON Format = "json"
	// FormatPretty 美化JSON格式
	FormatPretty Format = "pretty"
	// FormatTable 表格格式
	FormatTable Format = "table"
	// FormatText 纯文本格式
	FormatText Format = "text"
)

// ParseFormat 解析输出格式名称
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatPretty, FormatTable, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (json|pretty|table|text)", name)
	}
}

// Tabular 可以自行决定表格布局的数据
type Tabular interface {
	// TableHeader 返回表头，为空时不显示表头
	TableHeader() []string
	// TableRows 返回数据行
	TableRows() [][]string
}

// Texter 可以自行决定纯文本输出的数据
type Texter interface {
	PlainText() string
}

// Formatter 输出格式化器
type Formatter struct {
	format    Format
	writer    io.Writer // 数据输出（JSON/表格等）
	logWriter io.Writer // 日志输出（Info/Success/Error等）
	silent    bool
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}

	return &Formatter{
		format:    format,
		writer:    writer,    // 数据输出到 stdout
		logWriter: os.Stderr, // 日志输出到 stderr（避免污染 JSON）
	}
}

// Format 返回当前输出格式
func (f *Formatter) Format() Format {
	return f.format
}

// SetLogWriter 设置日志输出目标（默认 stderr）
func (f *Formatter) SetLogWriter(writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	f.logWriter = writer
}

// SetSilent 设置静默模式
func (f *Formatter) SetSilent(silent bool) {
	f.silent = silent
}

// Print 打印输出
func (f *Formatter) Print(data interface{}) error {
	if f.silent {
		return nil
	}

	switch f.format {
	case FormatPretty:
		return f.printJSON(data, true)
	case FormatTable:
		return f.printTable(data)
	case FormatText:
		return f.printText(data)
	default:
		return f.printJSON(data, false)
	}
}

// printJSON 打印JSON格式
func (f *Formatter) printJSON(data interface{}, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := fmt.Fprintln(f.writer, string(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printTable 打印表格格式
func (f *Formatter) printTable(data interface{}) error {
	var rows [][]string
	hasHeader := true

	switch v := data.(type) {
	case Tabular:
		header := v.TableHeader()
		if len(header) > 0 {
			rows = append(rows, header)
		} else {
			hasHeader = false
		}
		rows = append(rows, v.TableRows()...)
	case map[string]interface{}:
		rows = mapRows(v)
	case []map[string]interface{}:
		rows = mapSliceRows(v)
	default:
		// 结构体按 JSON 字段展开为 Key | Value
		m, err := toMap(data)
		if err != nil {
			return f.printJSON(data, true)
		}
		rows = mapRows(m)
	}

	if len(rows) == 0 {
		return nil
	}

	rendered, err := pterm.DefaultTable.WithHasHeader(hasHeader).WithData(rows).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printText 打印纯文本格式
func (f *Formatter) printText(data interface{}) error {
	var text string
	switch v := data.(type) {
	case Texter:
		text = v.PlainText()
	case string:
		text = v
	case fmt.Stringer:
		text = v.String()
	default:
		text = fmt.Sprintf("%v", data)
	}
	if _, err := fmt.Fprintln(f.writer, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PrintSuccess 打印成功消息（输出到 stderr，避免污染 JSON）
func (f *Formatter) PrintSuccess(message string) {
	if f.silent {
		return
	}
	pterm.Success.WithWriter(f.logWriter).Println(message)
}

// PrintError 打印错误消息（输出到 stderr，避免污染 JSON）
func (f *Formatter) PrintError(err error) {
	pterm.Error.WithWriter(f.logWriter).Println(err.Error())
}

// PrintWarning 打印警告消息（输出到 stderr，避免污染 JSON）
func (f *Formatter) PrintWarning(message string) {
	if f.silent {
		return
	}
	pterm.Warning.WithWriter(f.logWriter).Println(message)
}

// PrintInfo 打印信息消息（输出到 stderr，避免污染 JSON）
func (f *Formatter) PrintInfo(message string) {
	if f.silent {
		return
	}
	pterm.Info.WithWriter(f.logWriter).Println(message)
}

// ===== 辅助函数 =====

func mapRows(data map[string]interface{}) [][]string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := [][]string{{"Key", "Value"}}
	for _, k := range keys {
		rows = append(rows, []string{k, formatValue(data[k])})
	}
	return rows
}

func mapSliceRows(data []map[string]interface{}) [][]string {
	if len(data) == 0 {
		return nil
	}
	columns := extractColumns(data)
	rows := [][]string{columns}
	for _, row := range data {
		values := make([]string, len(columns))
		for i, col := range columns {
			if val, ok := row[col]; ok {
				values[i] = formatValue(val)
			} else {
				values[i] = "-"
			}
		}
		rows = append(rows, values)
	}
	return rows
}

func toMap(data interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// formatValue 格式化值
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float64:
		// JSON 数字统一解码为 float64
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case float32:
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case time.Time:
		return v.Format(time.RFC3339)
	case nil:
		return "-"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// extractColumns 按首次出现顺序提取列名
func extractColumns(data []map[string]interface{}) []string {
	columnSet := make(map[string]bool)
	columns := make([]string, 0)
	for _, row := range data {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !columnSet[key] {
				columnSet[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}

// ErrorOutput 错误输出结构
type ErrorOutput struct {
	Error struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	} `json:"error"`
}

// NewErrorOutput 创建错误输出
func NewErrorOutput(code string, message string, details interface{}) *ErrorOutput {
	output := &ErrorOutput{}
	output.Error.Code = code
	output.Error.Message = message
	output.Error.Details = details
	return output
}

// SuccessOutput 成功输出结构
type SuccessOutput struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// NewSuccessOutput 创建成功输出
func NewSuccessOutput(data interface{}, message string) *SuccessOutput {
	return &SuccessOutput{
		Success: true,
		Data:    data,
		Message: message,
	}
}
