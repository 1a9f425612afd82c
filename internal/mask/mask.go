// Package mask aplica as máscaras de CPF e telefone usadas nos formulários.
package mask

import "strings"

// Digits remove tudo que não for dígito ASCII.
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CPF formata progressivamente como ###.###.###-##, descartando dígitos excedentes.
// A máscara é refeita a partir dos dígitos, então reaplicá-la não altera o valor.
func CPF(value string) string {
	d := Digits(value)
	if len(d) > 11 {
		d = d[:11]
	}
	switch n := len(d); {
	case n <= 3:
		return d
	case n <= 6:
		return d[:3] + "." + d[3:]
	case n <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// Phone formata progressivamente como (##) #####-####, descartando dígitos excedentes.
func Phone(value string) string {
	d := Digits(value)
	if len(d) > 11 {
		d = d[:11]
	}
	switch n := len(d); {
	case n <= 2:
		return d
	case n <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}
