// Package playinfo 从应用商店的详情页提取应用元数据：
// 版本、下载量、发布日期、系统要求、内容分级、评分、评分数与更新日志。
//
// 提取是纯文本扫描：按字段各自的字面 marker 在 HTML 里定位窗口，
// 不依赖完整的 DOM 结构。同一份页面字节对同一字段总是给出同一结果。
// 所有操作一次抓取、一次判定，失败即终态，库内不做重试也不做缓存。
package playinfo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/John-Robertt/playinfo/internal/infra/httpx"
	"github.com/John-Robertt/playinfo/internal/play"
)

// Options 是 New 的全部可配置项，零值可用。
type Options struct {
	// BaseURL 覆盖详情页 URL 前缀，空串用 DefaultBaseURL。
	BaseURL string
	// ProxyURL 让内置 HTTP 客户端走代理；与 HTTPClient 互斥。
	ProxyURL string
	// HTTPClient 注入自定义客户端；nil 时按 ProxyURL 构造内置客户端。
	HTTPClient *http.Client
	// Index 提供本地安装版本，仅 UpgradeAvailable 需要。
	Index LocalIndex
	// SelfPackage 是 packageID 为空时的兜底包名。
	SelfPackage string
}

// Client 对单个商店端点发起抓取。并发安全：方法之间不共享可变状态。
type Client struct {
	base  string
	http  *http.Client
	index LocalIndex
	self  string
}

// New 校验 Options 并构造 Client。
func New(opts Options) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if err := checkBaseURL(base); err != nil {
		return nil, &Error{Code: ErrCodeInvalidInput, Err: err}
	}
	if opts.ProxyURL != "" && opts.HTTPClient != nil {
		return nil, &Error{Code: ErrCodeInvalidInput, Err: errors.New("ProxyURL 与 HTTPClient 不能同时设置")}
	}
	hc := opts.HTTPClient
	if hc == nil {
		var err error
		hc, err = httpx.NewPageClient(opts.ProxyURL)
		if err != nil {
			return nil, &Error{Code: ErrCodeInvalidInput, Err: err}
		}
	}
	return &Client{
		base:  base,
		http:  hc,
		index: opts.Index,
		self:  strings.TrimSpace(opts.SelfPackage),
	}, nil
}

func checkBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BaseURL 无效：%q", base)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BaseURL 必须是 http/https：%q", base)
	}
	return nil
}

// resolvePackage 把空 packageID 兜底到 SelfPackage；两者都空则拒绝。
func (c *Client) resolvePackage(packageID string) (string, error) {
	pkg := strings.TrimSpace(packageID)
	if pkg == "" {
		pkg = c.self
	}
	if pkg == "" {
		return "", &Error{Code: ErrCodeInvalidInput, Err: errors.New("packageID 为空")}
	}
	return pkg, nil
}

// page 抓取一个包的详情页字节。传输失败与非 2xx 都归为 fetch_failed。
func (c *Client) page(ctx context.Context, pkg string) ([]byte, error) {
	u, err := play.BuildURL(c.base, pkg)
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalidInput, Package: pkg, Err: err}
	}
	body, err := play.FetchPage(ctx, c.http, u)
	if err != nil {
		return nil, &Error{Code: ErrCodeFetchFailed, Package: pkg, Err: err}
	}
	return body, nil
}
