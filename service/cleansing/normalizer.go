/*
 * @module service/cleansing/normalizer
 * @description 字段规范化函数库，提供修剪、码值映射、数值日期修复等纯函数
 * @architecture 工具函数模式 - 无状态纯函数集合
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 无状态转换：输入 -> 规则 -> 输出
 * @rules 所有函数在定义域上全函数，非法输入降级为空值/默认值而非报错；码值映射表为声明式配置
 * @dependencies strings, strconv, time
 * @refs service/cleansing/customer_cleanser.go, service/cleansing/sales_cleanser.go
 */

package cleansing

import (
	"strconv"
	"strings"
	"time"
)

// DefaultLabel 码值缺失或未知时的默认标签
const DefaultLabel = "n/a"

// CodeTable 码值到标准标签的声明式映射表
type CodeTable map[string]string

// 各字段的码值映射表，独立配置便于单独测试
var (
	// MaritalStatusCodes 婚姻状态码表
	MaritalStatusCodes = CodeTable{
		"S": "Single",
		"M": "Married",
	}

	// GenderCodes CRM性别码表
	GenderCodes = CodeTable{
		"M": "Male",
		"F": "Female",
	}

	// ERPGenderCodes ERP性别码表，接受全称变体
	ERPGenderCodes = CodeTable{
		"M":      "Male",
		"MALE":   "Male",
		"F":      "Female",
		"FEMALE": "Female",
	}

	// ProductLineCodes 产品线码表
	ProductLineCodes = CodeTable{
		"M": "Mountain",
		"R": "Road",
		"S": "Other Sales",
		"T": "Touring",
	}

	// CountryCodes 国家归一表，命中按标准名输出
	CountryCodes = CodeTable{
		"DE":  "Germany",
		"US":  "United States",
		"USA": "United States",
	}
)

// Trim 去除首尾空白，nil透传
func Trim(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// MapCode 大写修剪后查码表，缺失或未命中返回默认标签
func MapCode(code *string, table CodeTable) string {
	if code == nil {
		return DefaultLabel
	}
	key := strings.ToUpper(strings.TrimSpace(*code))
	if label, ok := table[key]; ok {
		return label
	}
	return DefaultLabel
}

// RepairNumericDate 修复YYYYMMDD数值编码日期
// 0或十进制位数不等于8返回nil；无法构成合法日历日期时同样返回nil而非报错
func RepairNumericDate(raw int64) *time.Time {
	if raw == 0 {
		return nil
	}
	digits := strconv.FormatInt(raw, 10)
	if len(digits) != 8 {
		return nil
	}
	t, err := time.Parse("20060102", digits)
	if err != nil {
		return nil
	}
	return &t
}

// NonNegativeOrZero 空成本置0，其余原样透传
// 负值不做钳制，复刻源系统观察到的较窄规则
func NonNegativeOrZero(cost *float64) float64 {
	if cost == nil {
		return 0
	}
	return *cost
}

// StripKnownPrefix 修剪后若以指定前缀开头则去除前缀（区分大小写）
func StripKnownPrefix(id, prefix string) string {
	trimmed := strings.TrimSpace(id)
	if strings.HasPrefix(trimmed, prefix) {
		return trimmed[len(prefix):]
	}
	return trimmed
}

// StripSeparators 移除所有出现的分隔字符
func StripSeparators(id string, chars string) string {
	result := id
	for _, c := range chars {
		result = strings.ReplaceAll(result, string(c), "")
	}
	return result
}

// CanonicalCountry 国家名称归一
// 修剪后命中国家表输出标准名；空或nil输出默认标签；其余修剪后透传
func CanonicalCountry(raw *string) string {
	if raw == nil {
		return DefaultLabel
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return DefaultLabel
	}
	if label, ok := CountryCodes[strings.ToUpper(trimmed)]; ok {
		return label
	}
	return trimmed
}
