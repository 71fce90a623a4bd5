// internal/cliente/model.go
package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente é um registro da carteira de clientes do escritório.
// E-mail e telefone são opcionais; quando presentes, a unicidade entre
// clientes é garantida pelo workflow, não pelo banco. Telefone é
// armazenado somente com dígitos.
type Cliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"not null" json:"nome"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Telefone  string    `gorm:"size:11;index" json:"telefone"`
	UsuarioID uint      `gorm:"index" json:"usuarioId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cliente) TableName() string { return "clientes" }

// ObterID implementa engine.Registro.
func (c Cliente) ObterID() uint { return c.ID }

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
