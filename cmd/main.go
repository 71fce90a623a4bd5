package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/AtelierGestao/api-painel/internal/auth"
	"github.com/AtelierGestao/api-painel/internal/cliente"
	"github.com/AtelierGestao/api-painel/internal/config"
	"github.com/AtelierGestao/api-painel/internal/parcela"
	"github.com/AtelierGestao/api-painel/internal/projeto"
	"github.com/AtelierGestao/api-painel/internal/usuario"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	auth.DefinirSegredo(cfg.JWTSecret)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&usuario.Usuario{},
		&cliente.Cliente{},
		&projeto.Projeto{},
		&parcela.Parcela{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(db)
	clienteHandler := cliente.NewHandler(db)
	projetoHandler := projeto.NewHandler(db)
	parcelaHandler := parcela.NewHandler(parcela.NewRepository(db))

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/usuarios", usuarioHandler.Registrar).Methods("POST")

	// Rotas autenticadas
	s := r.PathPrefix("/").Subrouter()
	s.Use(auth.MiddlewareAutenticacao)

	s.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	s.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	s.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	s.HandleFunc("/clientes/{id}", clienteHandler.Excluir).Methods("DELETE")

	s.HandleFunc("/projetos", projetoHandler.Listar).Methods("GET")
	s.HandleFunc("/projetos", projetoHandler.Criar).Methods("POST")
	s.HandleFunc("/projetos/{id}", projetoHandler.Atualizar).Methods("PUT")
	s.HandleFunc("/projetos/{id}", projetoHandler.Excluir).Methods("DELETE")
	s.HandleFunc("/projetos/{id}/parcelas", parcelaHandler.ListarPorProjeto).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + cfg.Porta)
	log.Fatal(http.ListenAndServe(":"+cfg.Porta, handler))
}
