// internal/formato/formato.go
package formato

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SomenteDigitos remove tudo que não for dígito.
func SomenteDigitos(valor string) string {
	var b strings.Builder
	for _, r := range valor {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatarTelefone aplica a máscara de celular brasileiro "(DD) NNNNN-NNNN"
// consumindo os dígitos da esquerda para a direita.
func FormatarTelefone(valor string) string {
	if valor == "" {
		return valor
	}
	digitos := SomenteDigitos(valor)
	switch {
	case len(digitos) < 3:
		return "(" + digitos
	case len(digitos) < 8:
		return "(" + digitos[:2] + ") " + digitos[2:]
	default:
		fim := len(digitos)
		if fim > 11 {
			fim = 11
		}
		return "(" + digitos[:2] + ") " + digitos[2:7] + "-" + digitos[7:fim]
	}
}

// FormatarMoeda converte um valor numérico para "R$ X.XXX,XX".
func FormatarMoeda(valor float64) string {
	centavos := int64(math.Round(valor * 100))
	sinal := ""
	if centavos < 0 {
		sinal = "-"
		centavos = -centavos
	}
	inteiro := strconv.FormatInt(centavos/100, 10)

	var b strings.Builder
	primeiro := len(inteiro) % 3
	if primeiro == 0 {
		primeiro = 3
	}
	b.WriteString(inteiro[:primeiro])
	for i := primeiro; i < len(inteiro); i += 3 {
		b.WriteByte('.')
		b.WriteString(inteiro[i : i+3])
	}

	resto := centavos % 100
	return "R$ " + sinal + b.String() + "," + twoDigits(resto)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// FormatarEntradaMoeda interpreta o texto digitado como centavos
// (inteiro em unidade mínima) e devolve o valor exibível.
func FormatarEntradaMoeda(texto string) string {
	if texto == "" {
		return ""
	}
	digitos := SomenteDigitos(texto)
	if digitos == "" {
		return "R$ 0,00"
	}
	centavos, err := strconv.ParseInt(digitos, 10, 64)
	if err != nil {
		return "R$ 0,00"
	}
	return FormatarMoeda(float64(centavos) / 100)
}

// ParsearMoeda converte "R$ X.XXX,XX" de volta para número.
// Resultado não parseável vira zero.
func ParsearMoeda(valor string) float64 {
	s := strings.ReplaceAll(valor, "R$", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatarData converte "2006-01-02" para a exibição brasileira.
func FormatarData(data string) string {
	if data == "" {
		return "-"
	}
	t, err := time.Parse("2006-01-02", data)
	if err != nil {
		return data
	}
	return t.Format("02/01/2006")
}
