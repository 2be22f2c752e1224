package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "分析结果如下：\n```json\n{\"summary\": \"测试\"}\n```\n希望对您有帮助。"
	assert.Equal(t, `{"summary": "测试"}`, extractJSON(text))
}

func TestExtractJSONPlainFence(t *testing.T) {
	text := "```\n{\"summary\": \"测试\"}\n```"
	assert.Equal(t, `{"summary": "测试"}`, extractJSON(text))
}

func TestExtractJSONBraceSpan(t *testing.T) {
	text := "以下是分析结果 {\"summary\": \"测试\", \"score\": 75} 仅供参考"
	assert.Equal(t, `{"summary": "测试", "score": 75}`, extractJSON(text))
}

func TestExtractJSONRawObject(t *testing.T) {
	text := `{"summary": "测试"}`
	assert.Equal(t, text, extractJSON(text))
}

func TestExtractJSONTrimsTrailingProse(t *testing.T) {
	text := "```json\n{\"a\": 1}\n```"
	out := extractJSON(text)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded["a"])
}

func TestExtractJSONNestedBraces(t *testing.T) {
	text := "result: {\"outer\": {\"inner\": [1, 2]}}"
	out := extractJSON(text)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "outer")
}

func TestRepairJSONFixesTrailingComma(t *testing.T) {
	out := repairJSON(`{"a": 1, "b": [1, 2,],}`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, float64(1), decoded["a"])
}

func TestRepairJSONPassesThroughValidInput(t *testing.T) {
	input := `{"a": 1}`
	out := repairJSON(input)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
}
