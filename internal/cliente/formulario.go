// internal/cliente/formulario.go
package cliente

import (
	"github.com/AtelierGestao/api-painel/internal/formato"
)

// Formulario é o rascunho de cliente em edição, distinto do registro
// persistido: o telefone aqui carrega a máscara de exibição.
type Formulario struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

// FormularioInicial é o molde do modal de criação.
var FormularioInicial = Formulario{}

// DefinirCampo implementa engine.Rascunho; o telefone recebe a máscara
// a cada digitação.
func (f *Formulario) DefinirCampo(nome, valor string) {
	switch nome {
	case "nome":
		f.Nome = valor
	case "email":
		f.Email = valor
	case "telefone":
		f.Telefone = formato.FormatarTelefone(valor)
	}
}

// FormularioDe converte um registro persistido no rascunho de edição,
// aplicando a máscara de telefone.
func FormularioDe(c Cliente) Formulario {
	telefone := c.Telefone
	if telefone != "" {
		telefone = formato.FormatarTelefone(telefone)
	}
	return Formulario{
		Nome:     c.Nome,
		Email:    c.Email,
		Telefone: telefone,
	}
}
