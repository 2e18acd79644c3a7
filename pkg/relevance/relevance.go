package relevance

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen 少于该长度的查询词视为噪声（冠词、介词等）
const minTokenLen = 3

// DefaultMaxLen Resumir 的默认截断长度
const DefaultMaxLen = 220

var tokenSplit = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// quitarDiacriticos NFD 分解后移除組合附标，保证 "económico" 与 "economico" 等价
var quitarDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar 小写化并去除变音符号
func Normalizar(s string) string {
	s = strings.ToLower(s)
	out, _, err := transform.String(quitarDiacriticos, s)
	if err != nil {
		// transform 只在非法 UTF-8 时失败，此时退回原始小写串
		return s
	}
	return out
}

// EsRelevante 判断候选文本是否与自由文本问题相关。
// 任意一个长度 >=3 的查询词命中即视为相关（OR 语义）。
func EsRelevante(texto, pregunta string) bool {
	if strings.TrimSpace(texto) == "" || strings.TrimSpace(pregunta) == "" {
		return false
	}

	textoNorm := Normalizar(texto)

	for _, token := range tokenSplit.Split(Normalizar(pregunta), -1) {
		if len([]rune(token)) < minTokenLen {
			continue
		}
		if strings.Contains(textoNorm, token) {
			return true
		}
	}

	// 查询词全部为噪声或全部未命中
	return false
}

// Resumir 将文本硬截断到 max 个字符并追加省略号。
// 不做词边界处理，保持与线上行为一致。
func Resumir(texto string, max int) string {
	if texto == "" {
		return ""
	}
	if max <= 0 {
		max = DefaultMaxLen
	}
	r := []rune(texto)
	if len(r) <= max {
		return texto
	}
	return string(r[:max]) + "..."
}
