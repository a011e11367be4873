package playinfo

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeInvalidInput 表示 packageID 为空（且未配置 SelfPackage）或 Options 不合法。
	ErrCodeInvalidInput = "invalid_input"
	// ErrCodeFetchFailed 表示传输失败或商店返回了非成功状态码。
	ErrCodeFetchFailed = "fetch_failed"
	// ErrCodeFieldNotFound 表示页面上找不到所请求字段的 marker（或详情页校验失败）。
	ErrCodeFieldNotFound = "field_not_found"
	// ErrCodeNotInstalled 表示本地包索引中没有该 packageID。
	ErrCodeNotInstalled = "not_installed"
	// ErrCodeVersionVaries 表示商店版本是“随设备而异”哨兵值，无法做版本比较。
	ErrCodeVersionVaries = "version_varies_by_device"
	// ErrCodeInternal 表示未能归类的内部失败（原始原因通过 Unwrap 保留）。
	ErrCodeInternal = "internal"
)

// ErrNotInstalled 是 LocalIndex 的约定哨兵：查不到包时返回（或包装）它。
var ErrNotInstalled = errors.New("本地未安装该包")

// Error 是本库所有操作的结构化错误（带 error_code）。
// 一次操作要么产出一个成功值，要么产出一个 *Error；失败都是终态，不做重试。
type Error struct {
	Code    string
	Package string
	Field   Field // 仅 field_not_found / version_varies_by_device 相关时有值
	Err     error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeInvalidInput:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return fmt.Sprintf("%s：输入不合法", e.Code)
	case ErrCodeFetchFailed:
		return fmt.Sprintf("%s：抓取 %q 的详情页失败：%v", e.Code, e.Package, e.Err)
	case ErrCodeFieldNotFound:
		if e.Err != nil {
			return fmt.Sprintf("%s：包 %q 的字段 %s 定位失败：%v", e.Code, e.Package, e.Field, e.Err)
		}
		return fmt.Sprintf("%s：包 %q 的页面上没有字段 %s", e.Code, e.Package, e.Field)
	case ErrCodeNotInstalled:
		return fmt.Sprintf("%s：本地未安装 %q", e.Code, e.Package)
	case ErrCodeVersionVaries:
		return fmt.Sprintf("%s：包 %q 的版本随设备而异，无法比较", e.Code, e.Package)
	case ErrCodeInternal:
		return fmt.Sprintf("%s：%v", e.Code, e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
