package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

type estimateRow struct {
	Mode   string `json:"mode"`
	Chunks int    `json:"chunk_count"`
	Cost   int64  `json:"total_cost"`
}

type chunkTable struct{ addrs []string }

func (c chunkTable) TableHeader() []string { return []string{"#", "Address"} }

func (c chunkTable) TableRows() [][]string {
	rows := make([][]string, 0, len(c.addrs))
	for i, a := range c.addrs {
		rows = append(rows, []string{string(rune('0' + i)), a})
	}
	return rows
}

type decoded struct{ text string }

func (d decoded) PlainText() string { return d.text }

func init() {
	pterm.DisableStyling()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{" Pretty ", FormatPretty, false},
		{"TABLE", FormatTable, false},
		{"text", FormatText, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)
	if err := f.Print(estimateRow{Mode: "ZIP", Chunks: 1, Cost: 546}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if got["mode"] != "ZIP" || got["total_cost"] != float64(546) {
		t.Errorf("unexpected JSON output: %v", got)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("compact JSON should be a single line: %q", buf.String())
	}
}

func TestPrintPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatPretty, &buf).Print(map[string]int{"a": 1}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\": 1") {
		t.Errorf("pretty output not indented: %q", buf.String())
	}
}

func TestPrintTable(t *testing.T) {
	t.Run("结构体", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewFormatter(FormatTable, &buf).Print(estimateRow{Mode: "RAW", Chunks: 3, Cost: 1638}); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{"Key", "Value", "mode", "RAW", "chunk_count", "1638"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q:\n%s", want, out)
			}
		}
		// 键按字母排序
		if strings.Index(out, "chunk_count") > strings.Index(out, "total_cost") {
			t.Errorf("keys not sorted:\n%s", out)
		}
	})

	t.Run("自定义表格", func(t *testing.T) {
		var buf bytes.Buffer
		data := chunkTable{addrs: []string{"scash1aaa", "scash1bbb"}}
		if err := NewFormatter(FormatTable, &buf).Print(data); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "Address") || !strings.Contains(out, "scash1bbb") {
			t.Errorf("table output incomplete:\n%s", out)
		}
	})

	t.Run("map列表", func(t *testing.T) {
		var buf bytes.Buffer
		rows := []map[string]interface{}{
			{"address": "scash1aaa", "value": 546},
			{"address": "scash1bbb"},
		}
		if err := NewFormatter(FormatTable, &buf).Print(rows); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		if !strings.Contains(buf.String(), "-") || !strings.Contains(buf.String(), "546") {
			t.Errorf("missing cells should render as '-':\n%s", buf.String())
		}
	})
}

func TestPrintText(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want string
	}{
		{"字符串", "Hello Scash DAP", "Hello Scash DAP\n"},
		{"Texter", decoded{text: "链上数据"}, "链上数据\n"},
		{"命名字符串", FormatTable, "table\n"},
		{"其他", 42, "42\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(FormatText, &buf).Print(tt.data); err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Print() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSilentAndMessages(t *testing.T) {
	var out, log bytes.Buffer
	f := NewFormatter(FormatJSON, &out)
	f.SetLogWriter(&log)

	f.PrintInfo("scanning")
	f.PrintError(errors.New("boom"))
	if out.Len() != 0 {
		t.Errorf("messages must not reach the data writer: %q", out.String())
	}
	if !strings.Contains(log.String(), "scanning") || !strings.Contains(log.String(), "boom") {
		t.Errorf("log writer missing messages: %q", log.String())
	}

	f.SetSilent(true)
	log.Reset()
	_ = f.Print("x")
	f.PrintSuccess("done")
	if out.Len() != 0 || log.Len() != 0 {
		t.Errorf("silent formatter wrote output: out=%q log=%q", out.String(), log.String())
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "-"},
		{true, "true"},
		{float64(546), "546"},
		{0.5, "0.5"},
		{int64(7), "7"},
		{[]string{"a"}, `["a"]`},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
