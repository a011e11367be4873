package play

import (
	"errors"
	"strings"
)

// DefaultBaseURL 是商店详情页 URL 的固定前缀；packageID 原样拼接在其后。
const DefaultBaseURL = "https://play.google.com/store/apps/details?id="

// VariesWithDevice 是版本字段的哨兵值：商店页面用它表示“版本随设备而异”。
// 出现该值时无法做版本比较（上层必须以独立的失败种类上报，而不是返回 false）。
const VariesWithDevice = "Varies with device"

// BuildURL 把 packageID 原样拼接到 base 之后。
//
// 约束：
// - 纯函数，不访问网络
// - packageID 是不透明标识（不解析内部结构、不做转义），为空时报错
// - base 为空时使用 DefaultBaseURL
func BuildURL(base, packageID string) (string, error) {
	if strings.TrimSpace(packageID) == "" {
		return "", errors.New("packageID 不能为空")
	}
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBaseURL
	}
	return base + packageID, nil
}
