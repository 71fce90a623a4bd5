// internal/engine/engine.go
package engine

import (
	"github.com/AtelierGestao/api-painel/internal/gateway"
)

// Registro é qualquer linha persistida com identidade própria.
type Registro interface {
	ObterID() uint
}

// Rascunho é o estado de formulário em edição; DefinirCampo mescla um
// único campo nomeado preservando os demais.
type Rascunho interface {
	DefinirCampo(nome, valor string)
}

// ItensPorPaginaPadrao é a janela fixa das listagens do painel.
const ItensPorPaginaPadrao = 8

// Config vincula o motor a uma tabela e ao molde inicial do formulário.
type Config[T Registro, K any] struct {
	Tabela            *gateway.Tabela[T]
	FormularioInicial K
	Colunas           []string
	ItensPorPagina    int
}

// Engine é o controlador genérico de listagem: mantém a lista completa,
// a janela de paginação, o estado dos modais e o formulário em edição,
// e orquestra todas as chamadas ao gateway de uma única tabela.
//
// Engine não é seguro para uso concorrente: há um único mutador por vez,
// espelhando o laço de eventos do painel.
type Engine[T Registro, K any] struct {
	Itens      []T
	Carregando bool
	Enviando   bool
	Erro       error

	ModalCriacao bool
	ModalEdicao  bool
	EmEdicao     *T
	Formulario   K

	PaginaAtual    int
	ItensPorPagina int

	tabela            *gateway.Tabela[T]
	formularioInicial K
	colunas           []string
}

// Novo cria o motor com a lista vazia e a primeira página selecionada.
func Novo[T Registro, K any](cfg Config[T, K]) *Engine[T, K] {
	itensPorPagina := cfg.ItensPorPagina
	if itensPorPagina <= 0 {
		itensPorPagina = ItensPorPaginaPadrao
	}
	return &Engine[T, K]{
		Formulario:        cfg.FormularioInicial,
		PaginaAtual:       1,
		ItensPorPagina:    itensPorPagina,
		tabela:            cfg.Tabela,
		formularioInicial: cfg.FormularioInicial,
		colunas:           cfg.Colunas,
	}
}

// Carregar busca todas as linhas da tabela. Falha é capturada em Erro e
// a lista anterior permanece intacta; sucesso substitui a lista inteira.
// Pode ser chamado repetidas vezes.
func (e *Engine[T, K]) Carregar() {
	e.Carregando = true
	e.Erro = nil

	linhas, err := e.tabela.Selecionar(e.colunas, gateway.Filtro{})
	if err != nil {
		e.Erro = err
	} else {
		e.Itens = linhas
	}

	e.Carregando = false
}

// AbrirCriacao zera o formulário para o molde inicial e exibe o modal.
func (e *Engine[T, K]) AbrirCriacao() {
	e.Formulario = e.formularioInicial
	e.ModalCriacao = true
}

// FecharCriacao esconde o modal de criação.
func (e *Engine[T, K]) FecharCriacao() {
	e.ModalCriacao = false
}

// AbrirEdicao marca o registro como alvo de edição e exibe o modal.
// O preenchimento do formulário fica a cargo do workflow de cada
// entidade, que conhece as transformações de exibição dos seus campos.
func (e *Engine[T, K]) AbrirEdicao(registro T) {
	e.EmEdicao = &registro
	e.ModalEdicao = true
}

// FecharEdicao esconde o modal e limpa o alvo de edição.
func (e *Engine[T, K]) FecharEdicao() {
	e.ModalEdicao = false
	e.EmEdicao = nil
}

// AlterarCampo mescla um campo nomeado no formulário atual.
func (e *Engine[T, K]) AlterarCampo(nome, valor string) {
	if r, ok := any(&e.Formulario).(Rascunho); ok {
		r.DefinirCampo(nome, valor)
	}
}

// DefinirFormulario substitui o rascunho inteiro.
func (e *Engine[T, K]) DefinirFormulario(formulario K) {
	e.Formulario = formulario
}

// Criar insere uma linha e exige o eco do registro criado. Erros do
// gateway são devolvidos ao chamador; em qualquer caso o sinalizador de
// envio é limpo. No sucesso a lista é recarregada.
func (e *Engine[T, K]) Criar(payload T) (*T, error) {
	e.Enviando = true
	defer func() { e.Enviando = false }()

	criado, err := e.tabela.Inserir(&payload)
	if err != nil {
		return nil, err
	}
	e.Carregar()
	return criado, nil
}

// Atualizar aplica o patch ao registro do id, exigindo exatamente uma
// linha afetada. Mesmo contrato de erro de Criar.
func (e *Engine[T, K]) Atualizar(id uint, patch map[string]interface{}) (*T, error) {
	e.Enviando = true
	defer func() { e.Enviando = false }()

	atualizado, err := e.tabela.Atualizar(gateway.Filtro{Todos: []gateway.Predicado{gateway.Igual("id", id)}}, patch)
	if err != nil {
		return nil, err
	}
	e.Carregar()
	return atualizado, nil
}

// Excluir remove o registro do banco e o retira da lista em memória sem
// recarregar. Se o registro era o único da página e há páginas
// anteriores, volta uma página: a página atual nunca fica vazia
// enquanto existirem páginas anteriores.
func (e *Engine[T, K]) Excluir(id uint) error {
	if err := e.tabela.Excluir(gateway.Filtro{Todos: []gateway.Predicado{gateway.Igual("id", id)}}); err != nil {
		return err
	}

	naPagina := len(e.ItensDaPagina())

	restantes := e.Itens[:0:0]
	for _, item := range e.Itens {
		if item.ObterID() != id {
			restantes = append(restantes, item)
		}
	}
	e.Itens = restantes

	if naPagina == 1 && e.PaginaAtual > 1 {
		e.PaginaAtual--
	}
	return nil
}

// Paginar seleciona a página atual. Não valida limites; o chamador só
// apresenta números de página dentro de [1, TotalPaginas].
func (e *Engine[T, K]) Paginar(pagina int) {
	e.PaginaAtual = pagina
}

// TotalPaginas deriva o total a partir da lista completa em memória.
func (e *Engine[T, K]) TotalPaginas() int {
	return (len(e.Itens) + e.ItensPorPagina - 1) / e.ItensPorPagina
}

// ItensDaPagina devolve a fatia da lista correspondente à página atual.
// A paginação é inteiramente local sobre o conjunto já buscado.
func (e *Engine[T, K]) ItensDaPagina() []T {
	inicio := (e.PaginaAtual - 1) * e.ItensPorPagina
	if inicio < 0 || inicio >= len(e.Itens) {
		return nil
	}
	fim := inicio + e.ItensPorPagina
	if fim > len(e.Itens) {
		fim = len(e.Itens)
	}
	return e.Itens[inicio:fim]
}
