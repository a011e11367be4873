package play

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VerifyDetailsPage 校验抓到的 HTML 是否真的是 packageID 的详情页，
// 并返回页面声明的 canonical URL。
//
// 先校验“是不是详情页”：canonical 链接必须存在且其 id 参数与 packageID 一致
// （避免把拦截页/搜索页/其它应用的页面当成成功结果）。
func VerifyDetailsPage(html []byte, packageID string) (string, error) {
	if len(html) == 0 {
		return "", errors.New("html 为空")
	}
	if strings.TrimSpace(packageID) == "" {
		return "", errors.New("packageID 不能为空")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", errors.New("未找到 canonical 链接（疑似返回了非详情页内容）")
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("canonical 链接无效：%w", err)
	}
	id := u.Query().Get("id")
	if id == "" {
		return "", errors.New("canonical 链接缺少 id 参数（疑似返回了非详情页内容）")
	}
	if id != packageID {
		return "", fmt.Errorf("canonical id 不匹配：期望 %q，实际 %q", packageID, id)
	}
	return href, nil
}
