package playinfo

import (
	"context"
	"errors"
	"strings"

	"github.com/John-Robertt/playinfo/internal/play"
)

// URL 拼出详情页 URL（前缀 + packageID，逐字，不做转义）。纯函数，不发请求。
func (c *Client) URL(packageID string) (string, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return "", err
	}
	u, err := play.BuildURL(c.base, pkg)
	if err != nil {
		return "", &Error{Code: ErrCodeInvalidInput, Package: pkg, Err: err}
	}
	return u, nil
}

// VerifiedURL 抓取详情页并核对 canonical 链接后返回它。
// 页面缺 canonical 或 id 不匹配都算字段定位失败。
func (c *Client) VerifiedURL(ctx context.Context, packageID string) (string, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return "", err
	}
	body, err := c.page(ctx, pkg)
	if err != nil {
		return "", err
	}
	href, err := play.VerifyDetailsPage(body, pkg)
	if err != nil {
		return "", &Error{Code: ErrCodeFieldNotFound, Package: pkg, Field: FieldCanonicalURL, Err: err}
	}
	return href, nil
}

// Version 返回商店上的当前版本文本（可能是 VariesWithDevice 哨兵）。
func (c *Client) Version(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldVersion)
}

// Downloads 返回下载量文本（如 "1,000,000 - 5,000,000"），不做数值解析。
func (c *Client) Downloads(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldDownloads)
}

// PublishedDate 返回最近发布日期文本，保持页面原样。
func (c *Client) PublishedDate(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldPublishedDate)
}

// OSRequirements 返回系统要求文本（如 "4.1 and up"）。
func (c *Client) OSRequirements(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldOSRequirements)
}

// ContentRating 返回内容分级文本。
func (c *Client) ContentRating(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldContentRating)
}

// AppRating 返回评分文本（本地化数字原样透传）。
func (c *Client) AppRating(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldAppRating)
}

// RatingCount 返回评分人数文本（本地化数字原样透传）。
func (c *Client) RatingCount(ctx context.Context, packageID string) (string, error) {
	return c.field(ctx, packageID, FieldRatingCount)
}

// field 是标量字段操作的共同路径：一次抓取 + 一次有界扫描。
// 单字段操作里“页面上没有这个字段”是硬失败（field_not_found）。
func (c *Client) field(ctx context.Context, packageID string, f Field) (string, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return "", err
	}
	body, err := c.page(ctx, pkg)
	if err != nil {
		return "", err
	}
	v, ok := play.Extract(body, f)
	if !ok {
		return "", &Error{Code: ErrCodeFieldNotFound, Package: pkg, Field: f}
	}
	return v, nil
}

// ChangelogEntries 返回“最近更新”的全部条目，按页面出现顺序。
// 页面上一条都没有时视同字段缺失。
func (c *Client) ChangelogEntries(ctx context.Context, packageID string) ([]string, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return nil, err
	}
	body, err := c.page(ctx, pkg)
	if err != nil {
		return nil, err
	}
	entries := play.ExtractChangelog(body)
	if len(entries) == 0 {
		return nil, &Error{Code: ErrCodeFieldNotFound, Package: pkg, Field: FieldChangelog}
	}
	return entries, nil
}

// Changelog 把 ChangelogEntries 的条目用空行拼成一段文本。
func (c *Client) Changelog(ctx context.Context, packageID string) (string, error) {
	entries, err := c.ChangelogEntries(ctx, packageID)
	if err != nil {
		return "", err
	}
	return strings.Join(entries, "\n\n"), nil
}

// UpgradeAvailable 比较本地安装版本与商店版本（纯字符串不等判定）。
//
// 判定链：本地索引缺包 => not_installed；商店版本是 VariesWithDevice
// 哨兵 => version_varies_by_device（与“缺字段”区分开）；其余情况
// 两个版本文本不相等即视为有更新。
func (c *Client) UpgradeAvailable(ctx context.Context, packageID string) (bool, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return false, err
	}
	if c.index == nil {
		return false, &Error{Code: ErrCodeInvalidInput, Package: pkg, Err: errors.New("未配置 LocalIndex")}
	}
	installed, err := c.index.InstalledVersion(pkg)
	if err != nil {
		if errors.Is(err, ErrNotInstalled) {
			return false, &Error{Code: ErrCodeNotInstalled, Package: pkg, Err: err}
		}
		return false, &Error{Code: ErrCodeInternal, Package: pkg, Err: err}
	}
	store, err := c.Version(ctx, pkg)
	if err != nil {
		return false, err
	}
	if store == VariesWithDevice {
		return false, &Error{Code: ErrCodeVersionVaries, Package: pkg, Field: FieldVersion}
	}
	return installed != store, nil
}

// Grab 一次抓取后按需提取多个字段，省掉逐字段的重复请求。
//
// fields 为空表示全部字段。与单字段操作不同，聚合口径下字段缺失
// 不是失败：缺的字段保持零值，调用方自行判空。
func (c *Client) Grab(ctx context.Context, packageID string, fields ...Field) (PageInfo, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return PageInfo{}, err
	}
	if len(fields) == 0 {
		fields = Fields()
	}
	for _, f := range fields {
		if !play.Known(f) {
			return PageInfo{}, &Error{Code: ErrCodeInvalidInput, Package: pkg, Field: f, Err: errors.New("未知字段")}
		}
	}
	body, err := c.page(ctx, pkg)
	if err != nil {
		return PageInfo{}, err
	}
	info := PageInfo{Package: pkg}
	for _, f := range fields {
		if f == FieldChangelog {
			if entries := play.ExtractChangelog(body); len(entries) > 0 {
				info.Changelog = entries
			}
			continue
		}
		v, ok := play.Extract(body, f)
		if !ok {
			continue
		}
		switch f {
		case FieldVersion:
			info.Version = v
		case FieldDownloads:
			info.Downloads = v
		case FieldPublishedDate:
			info.PublishedDate = v
		case FieldOSRequirements:
			info.OSRequirements = v
		case FieldContentRating:
			info.ContentRating = v
		case FieldAppRating:
			info.AppRating = v
		case FieldRatingCount:
			info.RatingCount = v
		case FieldCanonicalURL:
			info.CanonicalURL = v
		}
	}
	return info, nil
}
