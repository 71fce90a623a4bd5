// internal/projeto/workflow.go
package projeto

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AtelierGestao/api-painel/internal/engine"
	"github.com/AtelierGestao/api-painel/internal/formato"
	"github.com/AtelierGestao/api-painel/internal/gateway"
	"github.com/AtelierGestao/api-painel/internal/parcela"
	"gorm.io/gorm"
)

// Erros de validação e de conflito do workflow de projetos.
var (
	ErrDadosInvalidos    = errors.New("usuário ou cliente inválido")
	ErrNomeObrigatorio   = errors.New("o nome do projeto é obrigatório")
	ErrNomeEmUso         = errors.New("já existe um projeto com este nome")
	ErrParcelasInvalidas = errors.New("a quantidade de parcelas deve ser um inteiro positivo")
	ErrDataInvalida      = errors.New("data de início inválida")
	ErrNadaEmEdicao      = errors.New("nenhum projeto selecionado para edição")
)

// Workflow especializa o motor de listagem para a tabela de projetos:
// unicidade de nome, geração de parcelas na criação e edição restrita a
// nome, cliente e status.
type Workflow struct {
	Motor    *engine.Engine[Projeto, Formulario]
	projetos *gateway.Tabela[Projeto]
	parcelas *gateway.Tabela[parcela.Parcela]
}

// NovoWorkflow liga o workflow ao banco.
func NovoWorkflow(db *gorm.DB) *Workflow {
	projetos := gateway.NovaTabela[Projeto](db, Projeto{}.TableName())
	return &Workflow{
		Motor: engine.Novo(engine.Config[Projeto, Formulario]{
			Tabela:            projetos,
			FormularioInicial: FormularioInicial,
		}),
		projetos: projetos,
		parcelas: gateway.NovaTabela[parcela.Parcela](db, parcela.Parcela{}.TableName()),
	}
}

// Carregar atualiza a lista completa de projetos.
func (w *Workflow) Carregar() { w.Motor.Carregar() }

// AbrirCriacao exibe o modal com o formulário no molde inicial.
func (w *Workflow) AbrirCriacao() { w.Motor.AbrirCriacao() }

// AbrirEdicao preenche o rascunho a partir do registro e exibe o modal.
func (w *Workflow) AbrirEdicao(p Projeto) {
	w.Motor.DefinirFormulario(FormularioDe(p))
	w.Motor.AbrirEdicao(p)
}

// AlterarCampo repassa a digitação ao rascunho.
func (w *Workflow) AlterarCampo(nome, valor string) { w.Motor.AlterarCampo(nome, valor) }

// SubmeterCriacao executa a criação em múltiplos passos: valida ator e
// cliente, exige nome único após trim, converte o valor formatado,
// insere o projeto e gera as parcelas derivadas. O gateway não oferece
// transação entre tabelas; se a gravação das parcelas falhar depois do
// projeto inserido, o projeto recém-criado é removido como compensação.
func (w *Workflow) SubmeterCriacao(usuarioID uint) (*Projeto, error) {
	w.Motor.Enviando = true
	defer func() { w.Motor.Enviando = false }()

	form := w.Motor.Formulario

	clienteID, err := strconv.ParseUint(form.ClienteID, 10, 32)
	if usuarioID == 0 || err != nil || clienteID == 0 {
		return nil, ErrDadosInvalidos
	}

	nome := strings.TrimSpace(form.Nome)
	if nome == "" {
		return nil, ErrNomeObrigatorio
	}
	if err := w.verificarNome(nome, 0); err != nil {
		return nil, err
	}

	qtd, err := strconv.Atoi(form.QtdParcelas)
	if err != nil || qtd < 1 {
		return nil, ErrParcelasInvalidas
	}
	dataInicio, err := time.Parse("2006-01-02", form.DataInicio)
	if err != nil {
		return nil, ErrDataInvalida
	}
	status, _ := strconv.Atoi(form.Status)
	comissao, _ := strconv.Atoi(form.TipoComissao)

	criado, err := w.Motor.Criar(Projeto{
		Nome:         nome,
		ClienteID:    uint(clienteID),
		ValorTotal:   formato.ParsearMoeda(form.ValorTotal),
		QtdParcelas:  qtd,
		DataInicio:   dataInicio,
		Status:       status,
		TipoComissao: comissao,
		UsuarioID:    usuarioID,
	})
	if err != nil {
		return nil, err
	}

	if err := w.parcelas.InserirLote(GerarParcelas(criado)); err != nil {
		filtro := gateway.Filtro{Todos: []gateway.Predicado{gateway.Igual("id", criado.ID)}}
		if delErr := w.projetos.Excluir(filtro); delErr != nil {
			return nil, fmt.Errorf("erro ao criar parcelas e o projeto %d ficou órfão: %w", criado.ID, err)
		}
		w.Motor.Carregar()
		return nil, fmt.Errorf("erro ao criar parcelas: %w", err)
	}

	w.Motor.FecharCriacao()
	return criado, nil
}

// SubmeterEdicao grava a edição restrita: somente nome, cliente e
// status podem mudar depois que o projeto existe. Valor total,
// quantidade de parcelas e data de início ficam intactos para preservar
// a integridade financeira das parcelas já geradas.
func (w *Workflow) SubmeterEdicao() (*Projeto, error) {
	w.Motor.Enviando = true
	defer func() { w.Motor.Enviando = false }()

	em := w.Motor.EmEdicao
	if em == nil {
		return nil, ErrNadaEmEdicao
	}

	form := w.Motor.Formulario
	nome := strings.TrimSpace(form.Nome)
	if nome == "" {
		return nil, ErrNomeObrigatorio
	}
	if err := w.verificarNome(nome, em.ID); err != nil {
		return nil, err
	}

	clienteID, err := strconv.ParseUint(form.ClienteID, 10, 32)
	if err != nil || clienteID == 0 {
		return nil, ErrDadosInvalidos
	}
	status, _ := strconv.Atoi(form.Status)

	atualizado, err := w.Motor.Atualizar(em.ID, map[string]interface{}{
		"nome":       nome,
		"cliente_id": uint(clienteID),
		"status":     status,
	})
	if err != nil {
		return nil, err
	}
	w.Motor.FecharEdicao()
	return atualizado, nil
}

// verificarNome consulta um projeto com exatamente o mesmo nome
// (comparação sensível a maiúsculas), excluindo o registro em edição.
func (w *Workflow) verificarNome(nome string, excetoID uint) error {
	filtro := gateway.Filtro{Todos: []gateway.Predicado{gateway.Igual("nome", nome)}}
	if excetoID != 0 {
		filtro.Todos = append(filtro.Todos, gateway.Diferente("id", excetoID))
	}
	existentes, err := w.projetos.Selecionar([]string{"id"}, filtro)
	if err != nil {
		return fmt.Errorf("erro ao verificar nome: %w", err)
	}
	if len(existentes) > 0 {
		return ErrNomeEmUso
	}
	return nil
}

// Excluir remove o projeto; as parcelas caem em cascata no banco, sem
// exclusão separada por aqui.
func (w *Workflow) Excluir(id uint) error { return w.Motor.Excluir(id) }

// GerarParcelas deriva as parcelas de um projeto recém-criado: valores
// iguais calculados em centavos, vencimentos avançando um mês-calendário
// por parcela a partir da data de início, todas pendentes. O resto da
// divisão em centavos vai para a última parcela, de modo que a soma das
// parcelas é sempre o valor total armazenado.
func GerarParcelas(p *Projeto) []*parcela.Parcela {
	totalCentavos := int64(math.Round(p.ValorTotal * 100))
	base := totalCentavos / int64(p.QtdParcelas)
	resto := totalCentavos % int64(p.QtdParcelas)

	parcelas := make([]*parcela.Parcela, 0, p.QtdParcelas)
	for i := 0; i < p.QtdParcelas; i++ {
		centavos := base
		if i == p.QtdParcelas-1 {
			centavos += resto
		}
		parcelas = append(parcelas, &parcela.Parcela{
			ProjetoID:      p.ID,
			Numero:         i + 1,
			ValorPrevisto:  float64(centavos) / 100,
			DataVencimento: p.DataInicio.AddDate(0, i, 0),
			Status:         parcela.StatusPendente,
		})
	}
	return parcelas
}
