// internal/cliente/handler.go
package cliente

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
	Data         []Cliente `json:"data"`
	PaginaAtual  int       `json:"paginaAtual"`
	TotalPaginas int       `json:"totalPaginas"`
}

// Handler expõe o workflow de clientes por HTTP. O workflow tem um
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
// GET /clientes?page=N
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wf := h.Workflow
	wf.Carregar()
	if wf.Motor.Erro != nil {
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
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
		itens = []Cliente{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(respostaPaginada{
		Data:         itens,
		PaginaAtual:  wf.Motor.PaginaAtual,
		TotalPaginas: wf.Motor.TotalPaginas(),
	})
}

// Criar cadastra um cliente a partir do rascunho enviado.
// POST /clientes
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

	criado, err := wf.Submeter(usuarioID)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criado)
}

// Atualizar altera um cliente existente.
// PUT /clientes/{id}
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
	usuarioID, _ := auth.UsuarioDoContexto(r.Context())

	h.mu.Lock()
	defer h.mu.Unlock()

	wf := h.Workflow
	wf.Carregar()
	registro, ok := buscarNaLista(wf.Motor.Itens, uint(id))
	if !ok {
		http.Error(w, "cliente não encontrado", http.StatusNotFound)
		return
	}

	wf.AbrirEdicao(registro)
	wf.Motor.DefinirFormulario(form)

	atualizado, err := wf.Submeter(usuarioID)
	if err != nil {
		wf.Motor.FecharEdicao()
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}

// Excluir remove um cliente.
// DELETE /clientes/{id}
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
			http.Error(w, "cliente não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func buscarNaLista(itens []Cliente, id uint) (Cliente, bool) {
	for _, c := range itens {
		if c.ID == id {
			return c, true
		}
	}
	return Cliente{}, false
}

func escreverErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNaoAutenticado):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrEmailInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEmailEmUso), errors.Is(err, ErrTelefoneEmUso):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
