// internal/gateway/gateway.go
package gateway

import (
	"fmt"

	"gorm.io/gorm"
)

// Operador de comparação suportado pelos filtros.
type Operador string

const (
	OpIgual     Operador = "="
	OpDiferente Operador = "<>"
)

// Predicado é uma comparação sobre uma coluna nomeada.
type Predicado struct {
	Coluna string
	Op     Operador
	Valor  interface{}
}

func Igual(coluna string, valor interface{}) Predicado {
	return Predicado{Coluna: coluna, Op: OpIgual, Valor: valor}
}

func Diferente(coluna string, valor interface{}) Predicado {
	return Predicado{Coluna: coluna, Op: OpDiferente, Valor: valor}
}

// Filtro combina predicados: Todos são ligados por AND e Qualquer por OR
// (o grupo OR entra como uma condição a mais do AND).
type Filtro struct {
	Todos    []Predicado
	Qualquer []Predicado
}

func (f Filtro) aplicar(q *gorm.DB, base *gorm.DB) *gorm.DB {
	for _, p := range f.Todos {
		q = q.Where(fmt.Sprintf("%s %s ?", p.Coluna, p.Op), p.Valor)
	}
	if len(f.Qualquer) > 0 {
		grupo := base.Session(&gorm.Session{NewDB: true}).
			Where(fmt.Sprintf("%s %s ?", f.Qualquer[0].Coluna, f.Qualquer[0].Op), f.Qualquer[0].Valor)
		for _, p := range f.Qualquer[1:] {
			grupo = grupo.Or(fmt.Sprintf("%s %s ?", p.Coluna, p.Op), p.Valor)
		}
		q = q.Where(grupo)
	}
	return q
}

// Tabela expõe o contrato genérico de acesso a uma tabela do banco:
// select/insert/update/delete com filtros por coluna. Não há garantia de
// atomicidade entre chamadas a tabelas diferentes.
type Tabela[T any] struct {
	db   *gorm.DB
	nome string
}

// NovaTabela vincula o gateway a uma tabela nomeada.
func NovaTabela[T any](db *gorm.DB, nome string) *Tabela[T] {
	return &Tabela[T]{db: db, nome: nome}
}

// Selecionar busca as linhas que satisfazem o filtro. Colunas vazias
// equivalem a "*".
func (t *Tabela[T]) Selecionar(colunas []string, filtro Filtro) ([]T, error) {
	q := t.db.Table(t.nome)
	if len(colunas) > 0 {
		q = q.Select(colunas)
	}
	q = filtro.aplicar(q, t.db)

	var linhas []T
	if err := q.Find(&linhas).Error; err != nil {
		return nil, err
	}
	return linhas, nil
}

// Inserir grava uma linha e devolve a linha criada com a identidade
// gerada pelo banco.
func (t *Tabela[T]) Inserir(linha *T) (*T, error) {
	if err := t.db.Table(t.nome).Create(linha).Error; err != nil {
		return nil, err
	}
	return linha, nil
}

// InserirLote grava várias linhas de uma vez (ignora lote vazio).
func (t *Tabela[T]) InserirLote(linhas []*T) error {
	if len(linhas) == 0 {
		return nil
	}
	return t.db.Table(t.nome).Create(linhas).Error
}

// Atualizar aplica o patch às linhas do filtro e exige exatamente uma
// linha afetada, devolvendo-a já atualizada.
func (t *Tabela[T]) Atualizar(filtro Filtro, patch map[string]interface{}) (*T, error) {
	res := filtro.aplicar(t.db.Table(t.nome), t.db).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected != 1 {
		return nil, fmt.Errorf("%s: esperava atualizar 1 linha, afetou %d", t.nome, res.RowsAffected)
	}

	var linha T
	if err := filtro.aplicar(t.db.Table(t.nome), t.db).First(&linha).Error; err != nil {
		return nil, err
	}
	return &linha, nil
}

// Excluir remove as linhas do filtro; gorm.ErrRecordNotFound se nada
// foi excluído.
func (t *Tabela[T]) Excluir(filtro Filtro) error {
	var zero T
	res := filtro.aplicar(t.db.Table(t.nome), t.db).Delete(&zero)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
