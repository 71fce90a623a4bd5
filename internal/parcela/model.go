// internal/parcela/model.go
package parcela

import (
	"time"

	"gorm.io/gorm"
)

// Status de pagamento de uma parcela.
const (
	StatusPendente = 1
)

// Parcela representa um pagamento parcial previsto de um projeto.
// Parcelas nascem exclusivamente na criação do projeto e são removidas
// em cascata pelo banco quando o projeto é excluído.
type Parcela struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProjetoID      uint      `gorm:"not null;index" json:"projetoId"`
	Numero         int       `gorm:"not null" json:"numero"`
	ValorPrevisto  float64   `gorm:"not null" json:"valorPrevisto"`
	DataVencimento time.Time `gorm:"type:date;not null" json:"dataVencimento"`
	Status         int       `gorm:"not null;default:1;index" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Parcela) TableName() string { return "parcelas" }

// ObterID implementa engine.Registro.
func (p Parcela) ObterID() uint { return p.ID }

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parcela{})
}
