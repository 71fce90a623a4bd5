// internal/cliente/workflow.go
package cliente

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/AtelierGestao/api-painel/internal/engine"
	"github.com/AtelierGestao/api-painel/internal/formato"
	"github.com/AtelierGestao/api-painel/internal/gateway"
	"gorm.io/gorm"
)

// Erros de validação e de conflito do workflow de clientes. Nenhum deles
// chega ao banco: a submissão aborta antes de qualquer mutação.
var (
	ErrNaoAutenticado = errors.New("é preciso estar autenticado")
	ErrEmailInvalido  = errors.New("e-mail inválido")
	ErrEmailEmUso     = errors.New("o e-mail informado já está em uso por outro cliente")
	ErrTelefoneEmUso  = errors.New("o telefone informado já está em uso por outro cliente")
)

var emailValido = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Workflow especializa o motor de listagem para a tabela de clientes,
// acrescentando a validação de unicidade de e-mail e telefone.
type Workflow struct {
	Motor    *engine.Engine[Cliente, Formulario]
	clientes *gateway.Tabela[Cliente]
}

// NovoWorkflow liga o workflow ao banco.
func NovoWorkflow(db *gorm.DB) *Workflow {
	clientes := gateway.NovaTabela[Cliente](db, Cliente{}.TableName())
	return &Workflow{
		Motor: engine.Novo(engine.Config[Cliente, Formulario]{
			Tabela:            clientes,
			FormularioInicial: FormularioInicial,
		}),
		clientes: clientes,
	}
}

// Carregar atualiza a lista completa de clientes.
func (w *Workflow) Carregar() { w.Motor.Carregar() }

// AbrirCriacao exibe o modal com o formulário zerado.
func (w *Workflow) AbrirCriacao() { w.Motor.AbrirCriacao() }

// AbrirEdicao preenche o rascunho a partir do registro e exibe o modal.
func (w *Workflow) AbrirEdicao(c Cliente) {
	w.Motor.DefinirFormulario(FormularioDe(c))
	w.Motor.AbrirEdicao(c)
}

// AlterarCampo repassa a digitação ao rascunho.
func (w *Workflow) AlterarCampo(nome, valor string) { w.Motor.AlterarCampo(nome, valor) }

// Submeter grava o rascunho atual: criação quando não há registro em
// edição, atualização caso contrário. Valida o ator e o formato do
// e-mail antes de qualquer chamada ao banco, normaliza o telefone para
// somente dígitos e verifica colisão de e-mail/telefone com outros
// clientes. No sucesso fecha o modal aberto; em erro o modal permanece
// aberto para correção.
func (w *Workflow) Submeter(usuarioID uint) (*Cliente, error) {
	w.Motor.Enviando = true
	defer func() { w.Motor.Enviando = false }()

	if usuarioID == 0 {
		return nil, ErrNaoAutenticado
	}

	form := w.Motor.Formulario
	if form.Email != "" && !emailValido.MatchString(form.Email) {
		return nil, ErrEmailInvalido
	}
	telefone := formato.SomenteDigitos(form.Telefone)

	if err := w.verificarColisao(form.Email, telefone); err != nil {
		return nil, err
	}

	if em := w.Motor.EmEdicao; em != nil {
		atualizado, err := w.Motor.Atualizar(em.ID, map[string]interface{}{
			"nome":     form.Nome,
			"email":    form.Email,
			"telefone": telefone,
		})
		if err != nil {
			return nil, err
		}
		w.Motor.FecharEdicao()
		return atualizado, nil
	}

	criado, err := w.Motor.Criar(Cliente{
		Nome:      form.Nome,
		Email:     form.Email,
		Telefone:  telefone,
		UsuarioID: usuarioID,
	})
	if err != nil {
		return nil, err
	}
	w.Motor.FecharCriacao()
	return criado, nil
}

// verificarColisao consulta outros clientes com o mesmo e-mail ou o
// mesmo telefone, excluindo o registro em edição, e aponta o campo em
// conflito.
func (w *Workflow) verificarColisao(email, telefone string) error {
	var qualquer []gateway.Predicado
	if email != "" {
		qualquer = append(qualquer, gateway.Igual("email", email))
	}
	if telefone != "" {
		qualquer = append(qualquer, gateway.Igual("telefone", telefone))
	}
	if len(qualquer) == 0 {
		return nil
	}

	filtro := gateway.Filtro{Qualquer: qualquer}
	if em := w.Motor.EmEdicao; em != nil {
		filtro.Todos = []gateway.Predicado{gateway.Diferente("id", em.ID)}
	}

	existentes, err := w.clientes.Selecionar([]string{"id", "email", "telefone"}, filtro)
	if err != nil {
		return fmt.Errorf("erro ao verificar dados: %w", err)
	}

	for _, c := range existentes {
		if email != "" && c.Email == email {
			return ErrEmailEmUso
		}
	}
	for _, c := range existentes {
		if telefone != "" && c.Telefone == telefone {
			return ErrTelefoneEmUso
		}
	}
	return nil
}

// Excluir remove o cliente e repara a paginação local.
func (w *Workflow) Excluir(id uint) error { return w.Motor.Excluir(id) }
