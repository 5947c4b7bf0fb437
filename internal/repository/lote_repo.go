package repository

import (
	"context"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoteRepository is the lot ledger: lots per product plus the consumption
// links written by FIFO exits.
type LoteRepository interface {
	CreateTx(tx *gorm.DB, l *model.LoteEstoque) error
	// ListDisponiveisTx returns active lots with balance, oldest first, locked FOR UPDATE.
	ListDisponiveisTx(tx *gorm.DB, produtoID uuid.UUID) ([]model.LoteEstoque, error)
	UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, saldo int) error
	AddSaldoTx(tx *gorm.DB, id uuid.UUID, delta int) error

	CreateConsumoTx(tx *gorm.DB, c *model.ConsumoLote) error
	// ListConsumosPendentesTx returns consumptions of an order/product that
	// still have quantity to return, newest first.
	ListConsumosPendentesTx(tx *gorm.DB, ordemID, produtoID uuid.UUID) ([]model.ConsumoLote, error)
	AddDevolvidoTx(tx *gorm.DB, consumoID uuid.UUID, quantidade int) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.LoteEstoque, error)
	List(ctx context.Context, filter dto.LoteFilter) ([]model.LoteEstoque, error)
	// ValorPorProduto sums saldo × custo of available lots per product.
	ValorPorProduto(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) CreateTx(tx *gorm.DB, l *model.LoteEstoque) error {
	return tx.Create(l).Error
}

func (r *loteRepo) ListDisponiveisTx(tx *gorm.DB, produtoID uuid.UUID) ([]model.LoteEstoque, error) {
	var lotes []model.LoteEstoque
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("produto_id = ? AND saldo_atual > 0 AND ativo = true", produtoID).
		Order("data_entrada ASC, id ASC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, saldo int) error {
	return tx.Model(&model.LoteEstoque{}).Where("id = ?", id).Update("saldo_atual", saldo).Error
}

func (r *loteRepo) AddSaldoTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.LoteEstoque{}).Where("id = ?", id).
		Update("saldo_atual", gorm.Expr("saldo_atual + ?", delta)).Error
}

func (r *loteRepo) CreateConsumoTx(tx *gorm.DB, c *model.ConsumoLote) error {
	return tx.Create(c).Error
}

func (r *loteRepo) ListConsumosPendentesTx(tx *gorm.DB, ordemID, produtoID uuid.UUID) ([]model.ConsumoLote, error) {
	// Links of one exit share created_at; the lot's entry order breaks the tie
	// so the newest lot is refilled first.
	var consumos []model.ConsumoLote
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "consumos_lote"}}).
		Select("consumos_lote.*").
		Joins("JOIN lotes_estoque ON lotes_estoque.id = consumos_lote.lote_id").
		Where("consumos_lote.ordem_servico_id = ? AND consumos_lote.produto_id = ? AND consumos_lote.quantidade > consumos_lote.quantidade_devolvida", ordemID, produtoID).
		Order("consumos_lote.created_at DESC, lotes_estoque.data_entrada DESC, lotes_estoque.id DESC").
		Find(&consumos).Error
	return consumos, err
}

func (r *loteRepo) AddDevolvidoTx(tx *gorm.DB, consumoID uuid.UUID, quantidade int) error {
	return tx.Model(&model.ConsumoLote{}).Where("id = ?", consumoID).
		Update("quantidade_devolvida", gorm.Expr("quantidade_devolvida + ?", quantidade)).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LoteEstoque, error) {
	var l model.LoteEstoque
	if err := r.db.WithContext(ctx).Preload("Produto").First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) List(ctx context.Context, filter dto.LoteFilter) ([]model.LoteEstoque, error) {
	q := r.db.WithContext(ctx).Model(&model.LoteEstoque{}).Preload("Produto")
	if filter.ProdutoID != "" {
		q = q.Where("produto_id = ?", filter.ProdutoID)
	}
	if filter.ApenasDisponiveis {
		q = q.Where("saldo_atual > 0 AND ativo = true")
	}
	var lotes []model.LoteEstoque
	err := q.Order("data_entrada ASC").Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) ValorPorProduto(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	type row struct {
		ProdutoID uuid.UUID
		Valor     decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.LoteEstoque{}).
		Select("produto_id, SUM(saldo_atual * preco_custo_unitario) AS valor").
		Where("saldo_atual > 0 AND ativo = true").
		Group("produto_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, r := range rows {
		out[r.ProdutoID] = r.Valor
	}
	return out, nil
}
