package gateway

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type contato struct {
	ID       uint   `gorm:"primaryKey"`
	Nome     string `gorm:"not null"`
	Email    string
	Telefone string
}

func (contato) TableName() string { return "contatos" }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&contato{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestInserirEcoaIdentidade(t *testing.T) {
	tab := NovaTabela[contato](setupDB(t), "contatos")

	criado, err := tab.Inserir(&contato{Nome: "Ana", Email: "ana@ex.com"})
	if err != nil {
		t.Fatalf("inserir: %v", err)
	}
	if criado.ID == 0 {
		t.Fatal("esperava id gerado pelo banco")
	}
}

func TestSelecionarComFiltro(t *testing.T) {
	tab := NovaTabela[contato](setupDB(t), "contatos")
	for _, c := range []contato{
		{Nome: "Ana", Email: "ana@ex.com", Telefone: "11911111111"},
		{Nome: "Bia", Email: "bia@ex.com", Telefone: "11922222222"},
		{Nome: "Caio", Email: "caio@ex.com", Telefone: "11933333333"},
	} {
		c := c
		if _, err := tab.Inserir(&c); err != nil {
			t.Fatalf("inserir: %v", err)
		}
	}

	todos, err := tab.Selecionar(nil, Filtro{})
	if err != nil || len(todos) != 3 {
		t.Fatalf("selecionar tudo: %v itens=%d", err, len(todos))
	}

	umaIgual, err := tab.Selecionar(nil, Filtro{Todos: []Predicado{Igual("nome", "Bia")}})
	if err != nil || len(umaIgual) != 1 || umaIgual[0].Email != "bia@ex.com" {
		t.Fatalf("filtro de igualdade: %v %+v", err, umaIgual)
	}

	diferentes, err := tab.Selecionar([]string{"id", "nome"}, Filtro{Todos: []Predicado{Diferente("nome", "Bia")}})
	if err != nil || len(diferentes) != 2 {
		t.Fatalf("filtro de desigualdade: %v itens=%d", err, len(diferentes))
	}

	// OR de igualdades combinado com a exclusão de um id
	ou, err := tab.Selecionar(nil, Filtro{
		Todos:    []Predicado{Diferente("id", umaIgual[0].ID)},
		Qualquer: []Predicado{Igual("email", "bia@ex.com"), Igual("telefone", "11933333333")},
	})
	if err != nil || len(ou) != 1 || ou[0].Nome != "Caio" {
		t.Fatalf("filtro OR: %v %+v", err, ou)
	}
}

func TestAtualizarExigeUmaLinha(t *testing.T) {
	tab := NovaTabela[contato](setupDB(t), "contatos")
	criado, err := tab.Inserir(&contato{Nome: "Ana"})
	if err != nil {
		t.Fatalf("inserir: %v", err)
	}

	atualizado, err := tab.Atualizar(
		Filtro{Todos: []Predicado{Igual("id", criado.ID)}},
		map[string]interface{}{"nome": "Ana Paula"},
	)
	if err != nil {
		t.Fatalf("atualizar: %v", err)
	}
	if atualizado.Nome != "Ana Paula" {
		t.Fatalf("esperava eco da linha atualizada, veio %+v", atualizado)
	}

	if _, err := tab.Atualizar(
		Filtro{Todos: []Predicado{Igual("id", uint(999))}},
		map[string]interface{}{"nome": "Ninguém"},
	); err == nil {
		t.Fatal("esperava erro ao atualizar id inexistente")
	}
}

func TestExcluir(t *testing.T) {
	tab := NovaTabela[contato](setupDB(t), "contatos")
	criado, err := tab.Inserir(&contato{Nome: "Ana"})
	if err != nil {
		t.Fatalf("inserir: %v", err)
	}

	if err := tab.Excluir(Filtro{Todos: []Predicado{Igual("id", criado.ID)}}); err != nil {
		t.Fatalf("excluir: %v", err)
	}
	err = tab.Excluir(Filtro{Todos: []Predicado{Igual("id", criado.ID)}})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("esperava ErrRecordNotFound, veio %v", err)
	}
}

func TestInserirLote(t *testing.T) {
	tab := NovaTabela[contato](setupDB(t), "contatos")

	if err := tab.InserirLote(nil); err != nil {
		t.Fatalf("lote vazio: %v", err)
	}

	lote := []*contato{{Nome: "Ana"}, {Nome: "Bia"}}
	if err := tab.InserirLote(lote); err != nil {
		t.Fatalf("inserir lote: %v", err)
	}
	todos, err := tab.Selecionar(nil, Filtro{})
	if err != nil || len(todos) != 2 {
		t.Fatalf("esperava 2 linhas, veio %d (%v)", len(todos), err)
	}
}
