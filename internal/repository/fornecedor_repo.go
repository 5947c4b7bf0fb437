package repository

import (
	"context"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorRepository interface {
	Create(ctx context.Context, f *model.Fornecedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error)
	FindByCnpj(ctx context.Context, cnpj string) (*model.Fornecedor, error)
	List(ctx context.Context, search string, incluirInativos bool) ([]model.Fornecedor, error)
	Update(ctx context.Context, f *model.Fornecedor) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

type fornecedorRepo struct{ db *gorm.DB }

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository { return &fornecedorRepo{db: db} }

func (r *fornecedorRepo) Create(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fornecedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	var f model.Fornecedor
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fornecedorRepo) FindByCnpj(ctx context.Context, cnpj string) (*model.Fornecedor, error) {
	var f model.Fornecedor
	if err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fornecedorRepo) List(ctx context.Context, search string, incluirInativos bool) ([]model.Fornecedor, error) {
	q := r.db.WithContext(ctx).Model(&model.Fornecedor{})
	if !incluirInativos {
		q = q.Where("ativo = true")
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nome ILIKE ? OR razao_social ILIKE ? OR cnpj ILIKE ?", like, like, like)
	}
	var list []model.Fornecedor
	err := q.Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *fornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fornecedorRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Fornecedor{}).Where("id = ?", id).Update("ativo", ativo).Error
}
