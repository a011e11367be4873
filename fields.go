package playinfo

import "github.com/John-Robertt/playinfo/internal/play"

// Field 标识详情页上可提取的一个字段。
type Field = play.Field

const (
	FieldVersion        = play.FieldVersion
	FieldDownloads      = play.FieldDownloads
	FieldPublishedDate  = play.FieldPublishedDate
	FieldOSRequirements = play.FieldOSRequirements
	FieldContentRating  = play.FieldContentRating
	FieldAppRating      = play.FieldAppRating
	FieldRatingCount    = play.FieldRatingCount
	FieldChangelog      = play.FieldChangelog
	FieldCanonicalURL   = play.FieldCanonicalURL
)

// Fields 返回全部已知字段，顺序稳定。
func Fields() []Field { return play.Fields() }

// VariesWithDevice 是商店在版本位上的哨兵文本：该包没有统一版本号。
const VariesWithDevice = play.VariesWithDevice

// DefaultBaseURL 是详情页 URL 前缀，最终 URL = 前缀 + packageID，逐字拼接。
const DefaultBaseURL = play.DefaultBaseURL

// PageInfo 是 Grab 的聚合结果。缺失的字段保持零值，不视为失败。
type PageInfo struct {
	Package        string
	CanonicalURL   string
	Version        string
	Downloads      string
	PublishedDate  string
	OSRequirements string
	ContentRating  string
	AppRating      string
	RatingCount    string
	Changelog      []string
}

// LocalIndex 提供本地已安装包的版本查询，UpgradeAvailable 依赖它。
// 查不到包时返回（或包装）ErrNotInstalled。
type LocalIndex interface {
	InstalledVersion(packageID string) (string, error)
}
