package repository

import (
	"context"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VeiculoRepository interface {
	Create(ctx context.Context, v *model.Veiculo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Veiculo, error)
	FindByPlaca(ctx context.Context, placa string) (*model.Veiculo, error)
	List(ctx context.Context, filter dto.VeiculoFilter) ([]model.Veiculo, int64, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Veiculo, error)
	Update(ctx context.Context, v *model.Veiculo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// UpdateKmTx only ever raises km_atual.
	UpdateKmTx(tx *gorm.DB, id uuid.UUID, km int) error
	Count(ctx context.Context) (int64, error)
}

type veiculoRepo struct{ db *gorm.DB }

func NewVeiculoRepository(db *gorm.DB) VeiculoRepository { return &veiculoRepo{db: db} }

func (r *veiculoRepo) Create(ctx context.Context, v *model.Veiculo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

func (r *veiculoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Veiculo, error) {
	var v model.Veiculo
	if err := r.db.WithContext(ctx).Preload("Cliente").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *veiculoRepo) FindByPlaca(ctx context.Context, placa string) (*model.Veiculo, error) {
	var v model.Veiculo
	if err := r.db.WithContext(ctx).Preload("Cliente").Where("placa = ?", placa).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *veiculoRepo) List(ctx context.Context, filter dto.VeiculoFilter) ([]model.Veiculo, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Veiculo{}).Where("ativo = true")
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("placa ILIKE ? OR marca ILIKE ? OR modelo ILIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page, limit := normalizePage(filter.Page, filter.Limit, 50, 500)
	var veiculos []model.Veiculo
	err := q.Preload("Cliente").Order("marca ASC, modelo ASC").Offset((page - 1) * limit).Limit(limit).Find(&veiculos).Error
	return veiculos, total, err
}

func (r *veiculoRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Veiculo, error) {
	var veiculos []model.Veiculo
	err := r.db.WithContext(ctx).Where("cliente_id = ? AND ativo = true", clienteID).Order("created_at ASC").Find(&veiculos).Error
	return veiculos, err
}

func (r *veiculoRepo) Update(ctx context.Context, v *model.Veiculo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error
}

func (r *veiculoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Veiculo{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *veiculoRepo) UpdateKmTx(tx *gorm.DB, id uuid.UUID, km int) error {
	return tx.Model(&model.Veiculo{}).Where("id = ? AND km_atual < ?", id, km).Update("km_atual", km).Error
}

func (r *veiculoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Veiculo{}).Where("ativo = true").Count(&n).Error
	return n, err
}
