package cliente

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AtelierGestao/api-painel/internal/auth"
	"github.com/gorilla/mux"
)

func TestCriarEListarViaHTTP(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)

	for _, body := range []string{
		`{"nome":"Ana","email":"ana@ex.com","telefone":"(11) 91111-1111"}`,
		`{"nome":"Bia","email":"bia@ex.com"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(auth.ComUsuario(req.Context(), 7))
		w := httptest.NewRecorder()
		h.Criar(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("esperava 201, veio %d body=%s", w.Code, w.Body.String())
		}
	}

	var criado Cliente
	req := httptest.NewRequest(http.MethodGet, "/clientes?page=1", nil)
	w := httptest.NewRecorder()
	h.Listar(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", w.Code)
	}
	var resp struct {
		Data         []Cliente `json:"data"`
		PaginaAtual  int       `json:"paginaAtual"`
		TotalPaginas int       `json:"totalPaginas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 || resp.TotalPaginas != 1 || resp.PaginaAtual != 1 {
		t.Fatalf("resposta paginada inesperada: %+v", resp)
	}
	for _, c := range resp.Data {
		if c.Nome == "Ana" {
			criado = c
		}
	}
	if criado.Telefone != "11911111111" {
		t.Fatalf("telefone deveria chegar normalizado, veio %q", criado.Telefone)
	}
}

func TestCriarSemAtorRetorna401(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(`{"nome":"Ana"}`))
	w := httptest.NewRecorder()
	h.Criar(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401, veio %d", w.Code)
	}
}

func TestEmailDuplicadoRetorna409(t *testing.T) {
	db := setupDB(t)
	if err := db.Create(&Cliente{Nome: "Bia", Email: "bia@ex.com"}).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	h := NewHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(`{"nome":"Outra","email":"bia@ex.com"}`))
	req = req.WithContext(auth.ComUsuario(req.Context(), 7))
	w := httptest.NewRecorder()
	h.Criar(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("esperava 409, veio %d body=%s", w.Code, w.Body.String())
	}
}

func TestExcluirInexistenteRetorna404(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)

	req := httptest.NewRequest(http.MethodDelete, "/clientes/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	req = req.WithContext(auth.ComUsuario(req.Context(), 7))
	w := httptest.NewRecorder()
	h.Excluir(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, veio %d", w.Code)
	}
}

func TestAtualizarViaHTTP(t *testing.T) {
	db := setupDB(t)
	seed := Cliente{Nome: "Ana", Email: "ana@ex.com"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	h := NewHandler(db)

	req := httptest.NewRequest(http.MethodPut, "/clientes/1",
		strings.NewReader(`{"nome":"Ana Paula","email":"ana@ex.com","telefone":""}`))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	req = req.WithContext(auth.ComUsuario(req.Context(), 7))
	w := httptest.NewRecorder()
	h.Atualizar(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d body=%s", w.Code, w.Body.String())
	}

	var noBanco Cliente
	if err := db.First(&noBanco, seed.ID).Error; err != nil {
		t.Fatalf("reler: %v", err)
	}
	if noBanco.Nome != "Ana Paula" {
		t.Fatalf("atualização não aplicada: %+v", noBanco)
	}
}
