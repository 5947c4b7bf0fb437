package repository

import (
	"context"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SugestaoRepository stores the maintenance suggestion catalog.
type SugestaoRepository interface {
	Create(ctx context.Context, s *model.SugestaoManutencao) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SugestaoManutencao, error)
	// List orders by display order (unset last), then part name.
	List(ctx context.Context, filter dto.SugestaoFilter) ([]model.SugestaoManutencao, error)
	Update(ctx context.Context, s *model.SugestaoManutencao) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sugestaoRepo struct{ db *gorm.DB }

func NewSugestaoRepository(db *gorm.DB) SugestaoRepository { return &sugestaoRepo{db: db} }

func (r *sugestaoRepo) Create(ctx context.Context, s *model.SugestaoManutencao) error {
	return r.db.WithContext(ctx).Select("*").Create(s).Error
}

func (r *sugestaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SugestaoManutencao, error) {
	var s model.SugestaoManutencao
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sugestaoRepo) List(ctx context.Context, filter dto.SugestaoFilter) ([]model.SugestaoManutencao, error) {
	q := r.db.WithContext(ctx).Model(&model.SugestaoManutencao{})
	switch filter.Ativo {
	case "true":
		q = q.Where("ativo = true")
	case "false":
		q = q.Where("ativo = false")
	}
	if filter.TipoServico != "" {
		q = q.Where("tipo_servico ILIKE ?", filter.TipoServico)
	}
	page, limit := normalizePage(filter.Page, filter.Limit, 100, 500)
	var list []model.SugestaoManutencao
	err := q.Order("ordem_exibicao ASC NULLS LAST, nome_peca ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *sugestaoRepo) Update(ctx context.Context, s *model.SugestaoManutencao) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sugestaoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SugestaoManutencao{}, "id = ?", id).Error
}
