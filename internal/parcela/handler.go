// internal/parcela/handler.go
package parcela

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler expõe a listagem de parcelas da tela de detalhe do projeto.
type Handler struct {
	Repo *Repository
}

// NewHandler retorna um handler inicializado.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// ListarPorProjeto devolve as parcelas do projeto em ordem de vencimento.
// GET /projetos/{id}/parcelas
func (h *Handler) ListarPorProjeto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do projeto inválido", http.StatusBadRequest)
		return
	}

	parcelas, err := h.Repo.ListarPorProjeto(uint(id))
	if err != nil {
		http.Error(w, "erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}
