package repository

import (
	"context"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	ListBaixoEstoque(ctx context.Context) ([]model.Produto, error)
	ListAtivosComCusto(ctx context.Context) ([]model.Produto, error)
	ListAtivos(ctx context.Context) ([]model.Produto, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions. FindByIDForUpdateTx takes a row lock that is
	// held until the transaction ends.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	UpdateTx(tx *gorm.DB, p *model.Produto) error
	UpdateQuantidadeTx(tx *gorm.DB, id uuid.UUID, delta int) error
	UpdatePrecosTx(tx *gorm.DB, id uuid.UUID, custo, venda decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) DB() *gorm.DB { return r.db }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{})

	// "false" = inactive only, "all" = everything, default = active only
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
	default:
		q = q.Where("ativo = true")
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("codigo ILIKE ? OR nome ILIKE ? OR descricao ILIKE ?", like, like, like)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.FornecedorID != "" {
		q = q.Where("fornecedor_id = ?", filter.FornecedorID)
	}
	if filter.EstoqueBaixo {
		q = q.Where("quantidade_atual <= quantidade_minima")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 50, 500)
	err := q.Order("nome ASC").Limit(limit).Offset((page - 1) * limit).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) ListBaixoEstoque(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("ativo = true AND quantidade_atual <= quantidade_minima").
		Order("quantidade_atual ASC, nome ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) ListAtivosComCusto(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Where("ativo = true AND preco_custo > 0").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) ListAtivos(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).Where("ativo = true").Count(&n).Error
	return n, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// UpdateTx saves every column but quantidade_atual, which only the stock
// ledger moves.
func (r *produtoRepo) UpdateTx(tx *gorm.DB, p *model.Produto) error {
	return tx.Omit(clause.Associations, "quantidade_atual").Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) UpdateQuantidadeTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).Updates(map[string]interface{}{
		"quantidade_atual": gorm.Expr("quantidade_atual + ?", delta),
		"updated_at":       time.Now(),
	}).Error
}

func (r *produtoRepo) UpdatePrecosTx(tx *gorm.DB, id uuid.UUID, custo, venda decimal.Decimal) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).Updates(map[string]interface{}{
		"preco_custo": custo,
		"preco_venda": venda,
	}).Error
}

// normalizePage clamps pagination parameters.
func normalizePage(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > max {
		limit = def
	}
	return page, limit
}
