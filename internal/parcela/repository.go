// internal/parcela/repository.go
package parcela

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de parcelas.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ListarPorProjeto busca as parcelas de um projeto em ordem de vencimento.
func (r *Repository) ListarPorProjeto(projetoID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.
		Where("projeto_id = ?", projetoID).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// SomarValorPorProjeto soma o valor previsto das parcelas de um projeto.
func (r *Repository) SomarValorPorProjeto(projetoID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&Parcela{}).
		Where("projeto_id = ?", projetoID).
		Select("COALESCE(SUM(valor_previsto), 0)").
		Scan(&total).Error
	return total, err
}
