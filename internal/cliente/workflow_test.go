package cliente

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func contarClientes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&Cliente{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestSubmeterExigeAtor(t *testing.T) {
	db := setupDB(t)
	wf := NovoWorkflow(db)

	wf.AbrirCriacao()
	wf.AlterarCampo("nome", "Ana")

	if _, err := wf.Submeter(0); !errors.Is(err, ErrNaoAutenticado) {
		t.Fatalf("esperava ErrNaoAutenticado, veio %v", err)
	}
	if contarClientes(t, db) != 0 {
		t.Fatal("nenhuma mutação deveria ter ocorrido")
	}
	if !wf.Motor.ModalCriacao {
		t.Fatal("o modal deveria permanecer aberto após o erro")
	}
}

func TestSubmeterRejeitaEmailMalformado(t *testing.T) {
	db := setupDB(t)
	wf := NovoWorkflow(db)

	wf.AbrirCriacao()
	wf.AlterarCampo("nome", "Ana")
	wf.AlterarCampo("email", "sem-arroba")

	if _, err := wf.Submeter(1); !errors.Is(err, ErrEmailInvalido) {
		t.Fatalf("esperava ErrEmailInvalido, veio %v", err)
	}
	if contarClientes(t, db) != 0 {
		t.Fatal("nenhuma mutação deveria ter ocorrido")
	}
}

func TestCriacaoNormalizaTelefone(t *testing.T) {
	db := setupDB(t)
	wf := NovoWorkflow(db)

	wf.AbrirCriacao()
	wf.AlterarCampo("nome", "Ana")
	wf.AlterarCampo("email", "ana@ex.com")
	wf.AlterarCampo("telefone", "11987654321")

	// a digitação carrega a máscara no rascunho
	if wf.Motor.Formulario.Telefone != "(11) 98765-4321" {
		t.Fatalf("rascunho sem máscara: %q", wf.Motor.Formulario.Telefone)
	}

	criado, err := wf.Submeter(7)
	if err != nil {
		t.Fatalf("submeter: %v", err)
	}
	if criado.Telefone != "11987654321" {
		t.Fatalf("telefone deveria ser armazenado só com dígitos, veio %q", criado.Telefone)
	}
	if criado.UsuarioID != 7 {
		t.Fatalf("registro deveria carregar o carimbo do ator, veio %d", criado.UsuarioID)
	}
	if wf.Motor.ModalCriacao {
		t.Fatal("o modal de criação deveria fechar no sucesso")
	}
}

func TestEmailDuplicadoAbortaSemMutacao(t *testing.T) {
	db := setupDB(t)
	if err := db.Create(&Cliente{Nome: "Bia", Email: "bia@ex.com"}).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	wf := NovoWorkflow(db)

	wf.AbrirCriacao()
	wf.AlterarCampo("nome", "Outra Bia")
	wf.AlterarCampo("email", "bia@ex.com")

	if _, err := wf.Submeter(1); !errors.Is(err, ErrEmailEmUso) {
		t.Fatalf("esperava ErrEmailEmUso, veio %v", err)
	}
	if contarClientes(t, db) != 1 {
		t.Fatal("a colisão deveria abortar antes de qualquer inserção")
	}
	if !wf.Motor.ModalCriacao {
		t.Fatal("o modal deveria permanecer aberto após o conflito")
	}
}

func TestTelefoneDuplicadoAbortaSemMutacao(t *testing.T) {
	db := setupDB(t)
	if err := db.Create(&Cliente{Nome: "Bia", Telefone: "11987654321"}).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	wf := NovoWorkflow(db)

	wf.AbrirCriacao()
	wf.AlterarCampo("nome", "Caio")
	wf.AlterarCampo("telefone", "(11) 98765-4321")

	if _, err := wf.Submeter(1); !errors.Is(err, ErrTelefoneEmUso) {
		t.Fatalf("esperava ErrTelefoneEmUso, veio %v", err)
	}
	if contarClientes(t, db) != 1 {
		t.Fatal("a colisão deveria abortar antes de qualquer inserção")
	}
}

func TestEdicaoAceitaOProprioEmail(t *testing.T) {
	db := setupDB(t)
	seed := Cliente{Nome: "Ana", Email: "ana@ex.com", Telefone: "11911111111"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	wf := NovoWorkflow(db)
	wf.Carregar()

	wf.AbrirEdicao(wf.Motor.Itens[0])
	wf.AlterarCampo("nome", "Ana Paula")

	atualizado, err := wf.Submeter(1)
	if err != nil {
		t.Fatalf("editar mantendo o próprio e-mail deveria passar: %v", err)
	}
	if atualizado.Nome != "Ana Paula" || atualizado.Email != "ana@ex.com" {
		t.Fatalf("registro atualizado inesperado: %+v", atualizado)
	}
	if wf.Motor.ModalEdicao || wf.Motor.EmEdicao != nil {
		t.Fatal("o modal de edição deveria fechar no sucesso")
	}
}

func TestEdicaoRejeitaEmailDeOutroCliente(t *testing.T) {
	db := setupDB(t)
	if err := db.Create(&Cliente{Nome: "Ana", Email: "ana@ex.com"}).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	if err := db.Create(&Cliente{Nome: "Bia", Email: "bia@ex.com"}).Error; err != nil {
		t.Fatalf("semear: %v", err)
	}
	wf := NovoWorkflow(db)
	wf.Carregar()

	var alvo Cliente
	for _, c := range wf.Motor.Itens {
		if c.Nome == "Ana" {
			alvo = c
		}
	}
	wf.AbrirEdicao(alvo)
	wf.AlterarCampo("email", "bia@ex.com")

	if _, err := wf.Submeter(1); !errors.Is(err, ErrEmailEmUso) {
		t.Fatalf("esperava ErrEmailEmUso, veio %v", err)
	}
	var noBanco Cliente
	if err := db.First(&noBanco, alvo.ID).Error; err != nil {
		t.Fatalf("reler: %v", err)
	}
	if noBanco.Email != "ana@ex.com" {
		t.Fatalf("o conflito não deveria mutar o registro, veio %q", noBanco.Email)
	}
}

func TestAbrirEdicaoPreencheRascunhoComMascara(t *testing.T) {
	db := setupDB(t)
	wf := NovoWorkflow(db)

	wf.AbrirEdicao(Cliente{ID: 3, Nome: "Ana", Telefone: "11987654321"})
	if wf.Motor.Formulario.Telefone != "(11) 98765-4321" {
		t.Fatalf("rascunho deveria exibir a máscara, veio %q", wf.Motor.Formulario.Telefone)
	}
	if wf.Motor.Formulario.Nome != "Ana" {
		t.Fatalf("rascunho incompleto: %+v", wf.Motor.Formulario)
	}
}
