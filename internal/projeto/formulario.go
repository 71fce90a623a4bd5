// internal/projeto/formulario.go
package projeto

import (
	"strconv"

	"github.com/AtelierGestao/api-painel/internal/formato"
)

// Formulario é o rascunho de projeto em edição. Os campos são texto de
// entrada: o valor total circula formatado ("R$ X.XXX,XX") e os códigos
// numéricos só são coagidos na submissão.
type Formulario struct {
	Nome         string `json:"nome"`
	ClienteID    string `json:"clienteId"`
	ValorTotal   string `json:"valorTotal"`
	TipoComissao string `json:"tipoComissao"`
	QtdParcelas  string `json:"qtdParcelas"`
	DataInicio   string `json:"dataInicio"`
	Status       string `json:"status"`
}

// FormularioInicial é o molde do modal de criação.
var FormularioInicial = Formulario{
	ValorTotal:   "R$ 0,00",
	TipoComissao: strconv.Itoa(ComissaoEscritorio),
	QtdParcelas:  "1",
	Status:       strconv.Itoa(StatusAtivo),
}

// DefinirCampo implementa engine.Rascunho; o valor total recebe a
// máscara de moeda a cada digitação.
func (f *Formulario) DefinirCampo(nome, valor string) {
	switch nome {
	case "nome":
		f.Nome = valor
	case "clienteId":
		f.ClienteID = valor
	case "valorTotal":
		f.ValorTotal = formato.FormatarEntradaMoeda(valor)
	case "tipoComissao":
		f.TipoComissao = valor
	case "qtdParcelas":
		f.QtdParcelas = valor
	case "dataInicio":
		f.DataInicio = valor
	case "status":
		f.Status = valor
	}
}

// FormularioDe converte um registro persistido no rascunho de edição,
// formatando o valor total para exibição.
func FormularioDe(p Projeto) Formulario {
	return Formulario{
		Nome:         p.Nome,
		ClienteID:    strconv.FormatUint(uint64(p.ClienteID), 10),
		ValorTotal:   formato.FormatarMoeda(p.ValorTotal),
		TipoComissao: strconv.Itoa(p.TipoComissao),
		QtdParcelas:  strconv.Itoa(p.QtdParcelas),
		DataInicio:   p.DataInicio.Format("2006-01-02"),
		Status:       strconv.Itoa(p.Status),
	}
}
