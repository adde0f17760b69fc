// Package classify 负责单行日志的解码、资源过滤和客户端地址提取。
// 该层只处理一行文本，不关心文件与目录。
package classify

import (
	"net/url"
	"regexp"
	"strings"
)

// addressPattern 从行首提取由点号连接的数字组，后面必须跟空白。
// 这里只做语法提取，不校验 IP 每段的取值范围。
var addressPattern = regexp.MustCompile(`^([0-9]+(\.[0-9]+)+)\s`)

// Classifier 是由 Profile 编译而来的行分类器，可被多次扫描复用。
type Classifier struct {
	profile  Profile
	excluded *regexp.Regexp
}

// NewClassifier 校验并编译配置。
func NewClassifier(profile Profile) (*Classifier, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	classifier := &Classifier{profile: profile}
	if len(profile.ExcludedExtensions) == 0 {
		return classifier, nil
	}

	quoted := make([]string, 0, len(profile.ExcludedExtensions))
	for _, ext := range profile.ExcludedExtensions {
		quoted = append(quoted, regexp.QuoteMeta(normalizeExtension(ext)))
	}

	// 形如 \w+\.(png|css)\b，在整行内任意位置查找；后缀必须在词边界结束，
	// 否则 data.json、page.jsp 也会被当成 js 排除。
	excluded, err := regexp.Compile(`\w+\.(` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, err
	}
	classifier.excluded = excluded
	return classifier, nil
}

// Profile 返回分类器所用配置。
func (c *Classifier) Profile() Profile {
	return c.profile
}

// Decode 对行做 URL 解码（“+” 视为空格）。
// 遇到非法的百分号序列时原样返回，解码不会失败。
func (c *Classifier) Decode(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return strings.ToValidUTF8(decoded, "\uFFFD")
}

// IsEligible 判断行是否参与匹配；包含被排除后缀的行返回 false。
func (c *Classifier) IsEligible(line string) bool {
	if c.excluded == nil {
		return true
	}
	return !c.excluded.MatchString(line)
}

// Prepare 把读取到的原始行转换为待匹配文本。
//
// 处理顺序：
// 1) 去掉行尾换行符，丢弃非法 UTF-8 字节
// 2) 配置开启时做 URL 解码
// 3) 资源后缀过滤
//
// 第二个返回值为 false 时该行应被整体跳过。
func (c *Classifier) Prepare(raw string) (string, bool) {
	line := strings.ToValidUTF8(normalizeLine(raw), "")
	if c.profile.Decode {
		line = c.Decode(line)
	}
	return line, c.IsEligible(line)
}

// ExtractAddress 提取行首的客户端地址，匹配失败返回 false。
func ExtractAddress(line string) (string, bool) {
	match := addressPattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	return match[1], true
}
