package play

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field 标识详情页上可抽取的一个字段。对外 API 通过别名复用该类型。
type Field string

const (
	FieldVersion        Field = "version"
	FieldDownloads      Field = "downloads"
	FieldPublishedDate  Field = "published_date"
	FieldOSRequirements Field = "os_requirements"
	FieldContentRating  Field = "content_rating"
	FieldAppRating      Field = "app_rating"
	FieldRatingCount    Field = "rating_count"
	FieldChangelog      Field = "changelog"
	FieldCanonicalURL   Field = "canonical_url"
)

// Fields 返回全部可抽取字段（稳定顺序，供“抓取全部”与校验使用）。
func Fields() []Field {
	return []Field{
		FieldVersion,
		FieldDownloads,
		FieldPublishedDate,
		FieldOSRequirements,
		FieldContentRating,
		FieldAppRating,
		FieldRatingCount,
		FieldChangelog,
		FieldCanonicalURL,
	}
}

// Known 判断 f 是否是已定义字段。
func Known(f Field) bool {
	if f == FieldChangelog {
		return true
	}
	_, ok := fieldRules[f]
	return ok
}

// rule 把“marker → 抽取窗口”固化为数据，而不是散落在各字段的解析逻辑里。
//
// 扫描算法（对所有字段一致）：
// 1) 定位 marker 的首次出现；缺失即字段缺失（不是错误）
// 2) open 非空时，从 marker 之后再定位一次 open，窗口从 open 之后开始
//    （用于 marker 只是标签前缀、真正的值在标签闭合 '>' 之后的字段）
// 3) 窗口到 close 的下一次出现为止
// 4) clean=true 时对窗口做“去标签 + 实体解码 + 折叠空白”；否则只去首尾空白
type rule struct {
	marker string
	open   string
	close  string
	clean  bool
}

// fieldRules 是标量字段的抽取规则表。changelog 是重复块，不在表内（见 ExtractChangelog）。
//
// 注意：marker 绑定当前页面 markup 的字面形态，页面改版即失效；这是该方案
// 的固有脆弱性，按约定不引入结构化解析来“加固”。
var fieldRules = map[Field]rule{
	FieldVersion:        {marker: `itemprop="softwareVersion">`, close: `<`, clean: true},
	FieldDownloads:      {marker: `itemprop="numDownloads">`, close: `<`, clean: true},
	FieldPublishedDate:  {marker: `itemprop="datePublished">`, close: `<`, clean: true},
	FieldOSRequirements: {marker: `itemprop="operatingSystems">`, close: `<`, clean: true},
	FieldContentRating:  {marker: `itemprop="contentRating">`, close: `<`, clean: true},
	FieldAppRating:      {marker: `<div class="score"`, open: `>`, close: `</div>`, clean: true},
	FieldRatingCount:    {marker: `<span class="reviews-num"`, open: `>`, close: `</span>`, clean: true},
	FieldCanonicalURL:   {marker: `<link rel="canonical" href="`, close: `"`},
}

// changelogRule 定位单条更新日志：页面把每一行渲染成一个 recent-change 块。
var changelogRule = rule{marker: `class="recent-change">`, close: `</div>`, clean: true}

// Extract 按字段规则在 html 中做一次有界子串扫描。
//
// 约束：
// - 纯函数：相同输入 => 相同输出
// - marker 缺失 => ok=false（字段缺失是正常终态，不是错误）
// - marker 存在但值为空 => ok=true 且返回空串（“存在但为空”与“缺失”可区分）
// - 评分/评分数等本地化数字原样透传（千分位、小数点不做解析）
func Extract(html []byte, f Field) (string, bool) {
	r, ok := fieldRules[f]
	if !ok {
		return "", false
	}
	return extractOne(string(html), r)
}

// ExtractChangelog 抽取“最近更新”的全部条目（按页面出现顺序）。
//
// 约定：一个 recent-change 块即一行；清洗后为空的条目丢弃。
// 返回空切片表示页面上没有可用的更新日志。
func ExtractChangelog(html []byte) []string {
	h := string(html)
	out := make([]string, 0, 8)
	for {
		i := strings.Index(h, changelogRule.marker)
		if i < 0 {
			break
		}
		h = h[i+len(changelogRule.marker):]
		j := strings.Index(h, changelogRule.close)
		if j < 0 {
			break
		}
		entry := cleanText(h[:j])
		h = h[j+len(changelogRule.close):]
		if entry == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func extractOne(h string, r rule) (string, bool) {
	i := strings.Index(h, r.marker)
	if i < 0 {
		return "", false
	}
	j := i + len(r.marker)
	if r.open != "" {
		k := strings.Index(h[j:], r.open)
		if k < 0 {
			return "", false
		}
		j += k + len(r.open)
	}
	m := strings.Index(h[j:], r.close)
	if m < 0 {
		return "", false
	}
	raw := h[j : j+m]
	if r.clean {
		return cleanText(raw), true
	}
	return strings.TrimSpace(raw), true
}

// cleanText 把抽取窗口内的原始 HTML 清洗为展示文本：
// 去掉嵌套标签、解码 HTML 实体（&amp; 等）、折叠空白。
func cleanText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// 极端兜底：窗口无法按 HTML 解析时按原文折叠空白。
		return normSpace(raw)
	}
	return normSpace(doc.Text())
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }
