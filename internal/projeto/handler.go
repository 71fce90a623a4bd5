// internal/projeto/handler.go
package projeto

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/AtelierGestao/api-painel/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// respostaPaginada é o contrato de listagem consumido pelo painel.
type respostaPaginada struct {
	Data         []Projeto `json:"data"`
	PaginaAtual  int       `json:"paginaAtual"`
	TotalPaginas int       `json:"totalPaginas"`
}

// Handler expõe o workflow de projetos por HTTP. O workflow tem um
// único mutador por vez; o mutex serializa as requisições.
type Handler struct {
	mu       sync.Mutex
	Workflow *Workflow
}

// NewHandler retorna um handler inicializado.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Workflow: NovoWorkflow(db)}
}

// Listar retorna a página pedida e os metadados de paginação.
// GET /projetos?page=N
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wf := h.Workflow
	wf.Carregar()
	if wf.Motor.Erro != nil {
		http.Error(w, "erro ao listar projetos", http.StatusInternalServerError)
		return
	}

	pagina, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if pagina < 1 {
		pagina = 1
	}
	if total := wf.Motor.TotalPaginas(); total > 0 && pagina > total {
		pagina = total
	}
	wf.Motor.Paginar(pagina)

	itens := wf.Motor.ItensDaPagina()
	if itens == nil {
		itens = []Projeto{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(respostaPaginada{
		Data:         itens,
		PaginaAtual:  wf.Motor.PaginaAtual,
		TotalPaginas: wf.Motor.TotalPaginas(),
	})
}

// Criar cadastra um projeto e gera as parcelas derivadas.
// POST /projetos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var form Formulario
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	usuarioID, _ := auth.UsuarioDoContexto(r.Context())

	h.mu.Lock()
	defer h.mu.Unlock()

	wf := h.Workflow
	wf.AbrirCriacao()
	wf.Motor.DefinirFormulario(form)

	criado, err := wf.SubmeterCriacao(usuarioID)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criado)
}

// Atualizar altera somente nome, cliente e status de um projeto.
// PUT /projetos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var form Formulario
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	wf := h.Workflow
	wf.Carregar()
	registro, ok := buscarNaLista(wf.Motor.Itens, uint(id))
	if !ok {
		http.Error(w, "projeto não encontrado", http.StatusNotFound)
		return
	}

	wf.AbrirEdicao(registro)
	wf.Motor.DefinirFormulario(form)

	atualizado, err := wf.SubmeterEdicao()
	if err != nil {
		wf.Motor.FecharEdicao()
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}

// Excluir remove um projeto; o banco remove as parcelas em cascata.
// DELETE /projetos/{id}
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Workflow.Excluir(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "projeto não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao excluir projeto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func buscarNaLista(itens []Projeto, id uint) (Projeto, bool) {
	for _, p := range itens {
		if p.ID == id {
			return p, true
		}
	}
	return Projeto{}, false
}

func escreverErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDadosInvalidos),
		errors.Is(err, ErrNomeObrigatorio),
		errors.Is(err, ErrParcelasInvalidas),
		errors.Is(err, ErrDataInvalida),
		errors.Is(err, ErrNadaEmEdicao):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNomeEmUso):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
