/*
 * @module service/cleansing/normalizer_test
 * @description 字段规范化函数单元测试
 * @architecture 单元测试 - 验证各规范化规则的定义域行为
 * @stateFlow 输入构造 -> 规则应用 -> 结果断言
 * @rules 覆盖合法输入、边界输入与空值传播
 * @dependencies testing, github.com/stretchr/testify
 * @refs normalizer.go
 */

package cleansing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTrim(t *testing.T) {
	assert.Nil(t, Trim(nil), "nil应透传")
	assert.Equal(t, "Jon", *Trim(strPtr("  Jon  ")))
	assert.Equal(t, "", *Trim(strPtr("   ")))
}

func TestMapCode(t *testing.T) {
	tests := []struct {
		name     string
		code     *string
		table    CodeTable
		expected string
	}{
		{"婚姻状态S", strPtr("S"), MaritalStatusCodes, "Single"},
		{"婚姻状态小写带空白", strPtr(" m "), MaritalStatusCodes, "Married"},
		{"婚姻状态未知码", strPtr("X"), MaritalStatusCodes, "n/a"},
		{"婚姻状态空指针", nil, MaritalStatusCodes, "n/a"},
		{"CRM性别F", strPtr("F"), GenderCodes, "Female"},
		{"CRM性别未知", strPtr("FEMALE"), GenderCodes, "n/a"},
		{"ERP性别全称", strPtr("female"), ERPGenderCodes, "Female"},
		{"ERP性别单字母", strPtr("M"), ERPGenderCodes, "Male"},
		{"产品线M", strPtr("M"), ProductLineCodes, "Mountain"},
		{"产品线S", strPtr("S"), ProductLineCodes, "Other Sales"},
		{"产品线T", strPtr("t"), ProductLineCodes, "Touring"},
		{"产品线未知", strPtr(""), ProductLineCodes, "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapCode(tt.code, tt.table))
		})
	}
}

func TestRepairNumericDate(t *testing.T) {
	// 合法8位编码解析为对应日历日期
	d := RepairNumericDate(20110529)
	if assert.NotNil(t, d) {
		assert.Equal(t, time.Date(2011, 5, 29, 0, 0, 0, 0, time.UTC), *d)
	}

	// 0与非8位编码返回nil
	assert.Nil(t, RepairNumericDate(0))
	assert.Nil(t, RepairNumericDate(2011052))
	assert.Nil(t, RepairNumericDate(201105299))
	assert.Nil(t, RepairNumericDate(-20110529))

	// 8位但非法日历日期同样降级为nil而非报错
	assert.Nil(t, RepairNumericDate(20111399))
	assert.Nil(t, RepairNumericDate(20110532))
}

func TestNonNegativeOrZero(t *testing.T) {
	assert.Equal(t, float64(0), NonNegativeOrZero(nil))

	cost := 12.5
	assert.Equal(t, 12.5, NonNegativeOrZero(&cost))

	// 负值不钳制，复刻源系统的较窄规则
	negative := -3.0
	assert.Equal(t, -3.0, NonNegativeOrZero(&negative))
}

func TestStripKnownPrefix(t *testing.T) {
	assert.Equal(t, "AW00011000", StripKnownPrefix("NASAW00011000", "NAS"))
	assert.Equal(t, "AW00011000", StripKnownPrefix("  NASAW00011000  ", "NAS"))
	assert.Equal(t, "AW00011000", StripKnownPrefix("AW00011000", "NAS"))
	// 前缀匹配区分大小写
	assert.Equal(t, "nasAW00011000", StripKnownPrefix("nasAW00011000", "NAS"))
}

func TestStripSeparators(t *testing.T) {
	assert.Equal(t, "AW00011000", StripSeparators("AW-000-11000", "-"))
	assert.Equal(t, "AW00011000", StripSeparators("AW00011000", "-"))
	assert.Equal(t, "AW00011000", StripSeparators("A_W-000_11000", "-_"))
}

func TestCanonicalCountry(t *testing.T) {
	tests := []struct {
		name     string
		raw      *string
		expected string
	}{
		{"DE映射", strPtr("DE"), "Germany"},
		{"US映射", strPtr("US"), "United States"},
		{"USA映射", strPtr("USA"), "United States"},
		{"小写带空白", strPtr(" us "), "United States"},
		{"空串", strPtr(""), "n/a"},
		{"纯空白", strPtr("   "), "n/a"},
		{"空指针", nil, "n/a"},
		{"其他值修剪透传", strPtr(" Australia "), "Australia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalCountry(tt.raw))
		})
	}
}
