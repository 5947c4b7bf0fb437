package repository

import (
	"context"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimentoRepository is the append-only stock movement log.
type MovimentoRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	// SumQuantidadeTx sums quantities of an order's movements for one product
	// with the given type and origin.
	SumQuantidadeTx(tx *gorm.DB, ordemID, produtoID uuid.UUID, tipo, origem string) (int, error)
	// ProdutosComSaidaTx lists the distinct products that left stock for an order.
	ProdutosComSaidaTx(tx *gorm.DB, ordemID uuid.UUID) ([]uuid.UUID, error)
	List(ctx context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, int64, error)
	ListPeriodo(ctx context.Context, desde, ate *time.Time, tipo string) ([]model.MovimentoEstoque, error)
	TopSaidasOrdem(ctx context.Context, desde time.Time, limit int) ([]ProdutoQuantidade, error)
}

// ProdutoQuantidade is an aggregate row of quantity per product.
type ProdutoQuantidade struct {
	ProdutoID  uuid.UUID
	Nome       string
	Quantidade int64
}

type movimentoRepo struct{ db *gorm.DB }

func NewMovimentoRepository(db *gorm.DB) MovimentoRepository {
	return &movimentoRepo{db: db}
}

func (r *movimentoRepo) CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoRepo) SumQuantidadeTx(tx *gorm.DB, ordemID, produtoID uuid.UUID, tipo, origem string) (int, error) {
	var total int
	err := tx.Model(&model.MovimentoEstoque{}).
		Select("COALESCE(SUM(quantidade), 0)").
		Where("ordem_servico_id = ? AND produto_id = ? AND tipo = ? AND origem = ?", ordemID, produtoID, tipo, origem).
		Scan(&total).Error
	return total, err
}

func (r *movimentoRepo) ProdutosComSaidaTx(tx *gorm.DB, ordemID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.MovimentoEstoque{}).
		Distinct("produto_id").
		Where("ordem_servico_id = ? AND tipo = ?", ordemID, model.MovimentoSaida).
		Pluck("produto_id", &ids).Error
	return ids, err
}

func (r *movimentoRepo) List(ctx context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimentoEstoque{})
	if filter.ProdutoID != "" {
		q = q.Where("produto_id = ?", filter.ProdutoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Origem != "" {
		q = q.Where("origem = ?", filter.Origem)
	}
	if filter.OrdemServicoID != "" {
		q = q.Where("ordem_servico_id = ?", filter.OrdemServicoID)
	}
	q = periodo(q, "created_at", filter.Desde, filter.Ate)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 100, 500)
	var movimentos []model.MovimentoEstoque
	err := q.Preload("Produto").Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&movimentos).Error
	return movimentos, total, err
}

func (r *movimentoRepo) ListPeriodo(ctx context.Context, desde, ate *time.Time, tipo string) ([]model.MovimentoEstoque, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimentoEstoque{}).Preload("Produto")
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	q = periodo(q, "created_at", desde, ate)
	var movimentos []model.MovimentoEstoque
	err := q.Order("created_at ASC").Find(&movimentos).Error
	return movimentos, err
}

func (r *movimentoRepo) TopSaidasOrdem(ctx context.Context, desde time.Time, limit int) ([]ProdutoQuantidade, error) {
	var rows []ProdutoQuantidade
	err := r.db.WithContext(ctx).
		Table("movimentos_estoque m").
		Select("m.produto_id, p.nome, SUM(m.quantidade) AS quantidade").
		Joins("JOIN produtos p ON p.id = m.produto_id").
		Where("m.tipo = ? AND m.origem = ? AND m.created_at >= ?", model.MovimentoSaida, model.OrigemOrdem, desde).
		Group("m.produto_id, p.nome").
		Order("quantidade DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// periodo restricts col to [desde, ate]; ate is inclusive of the whole day.
func periodo(q *gorm.DB, col string, desde, ate *time.Time) *gorm.DB {
	if desde != nil {
		q = q.Where(col+" >= ?", *desde)
	}
	if ate != nil {
		q = q.Where(col+" < ?", ate.AddDate(0, 0, 1))
	}
	return q
}
