package users

import "time"

// CanonicalDateLayout é o formato usado para gravar e devolver o dob.
const CanonicalDateLayout = "2006-01-02"

// Formatos aceitos na entrada, em ordem de tentativa: HTTP-date e o canônico.
// Dia e mês aceitam um ou dois dígitos.
var inputDateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 GMT",
	"2006-1-2",
}

// ParseDate tenta cada formato aceito. Falha não é erro: ok == false indica
// que a entrada é inválida e cabe ao chamador responder com 400. O ano 0000
// é rejeitado; o menor ano válido é 0001.
func ParseDate(s string) (t time.Time, ok bool) {
	for _, layout := range inputDateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			if parsed.Year() < 1 {
				return time.Time{}, false
			}
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDate renderiza a data no formato canônico YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(CanonicalDateLayout)
}

// NormalizeDate faz o ciclo ParseDate -> FormatDate. Valores que não
// passam no parse são devolvidos sem alteração.
func NormalizeDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return FormatDate(t)
}
