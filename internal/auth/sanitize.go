package auth

import "strings"

// sanitizeField は前後の空白を除去した上で、レスポンスへ反映された際に
// マークアップとして解釈されうる山括弧を取り除きます。
// 山括弧の除去で端に露出した空白も落とします。
func sanitizeField(value string) string {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "<>") {
		var b strings.Builder
		b.Grow(len(value))
		for _, r := range value {
			if r == '<' || r == '>' {
				continue
			}
			b.WriteRune(r)
		}
		value = strings.TrimSpace(b.String())
	}
	return value
}
