// internal/projeto/model.go
package projeto

import (
	"time"

	"github.com/AtelierGestao/api-painel/internal/parcela"
	"gorm.io/gorm"
)

// Status do projeto.
const (
	StatusAtivo     = 1
	StatusConcluido = 2
)

// Tipo de comissão; o código é o próprio percentual.
const (
	ComissaoEscritorio = 20
	ComissaoPessoal    = 50
)

// Projeto representa um projeto faturável do escritório. O valor total,
// a quantidade de parcelas e a data de início ficam imutáveis após a
// criação para manter a coerência com as parcelas já geradas.
type Projeto struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nome         string    `gorm:"size:255;not null;index" json:"nome"`
	ClienteID    uint      `gorm:"not null;index" json:"clienteId"`
	ValorTotal   float64   `gorm:"not null" json:"valorTotal"`
	QtdParcelas  int       `gorm:"not null;default:1" json:"qtdParcelas"`
	DataInicio   time.Time `gorm:"type:date" json:"dataInicio"`
	Status       int       `gorm:"not null;default:1;index" json:"status"`
	TipoComissao int       `gorm:"not null;default:20" json:"tipoComissao"`
	UsuarioID    uint      `gorm:"index" json:"usuarioId"`

	Parcelas []parcela.Parcela `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"parcelas,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Projeto) TableName() string { return "projetos" }

// ObterID implementa engine.Registro.
func (p Projeto) ObterID() uint { return p.ID }

// Migrate cria a tabela no banco de dados e aplica o relacionamento em
// cascata com as parcelas.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Projeto{})
}
