package repository

import (
	"context"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PerfilRepository interface {
	Create(ctx context.Context, p *model.Perfil) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Perfil, error)
	FindByNome(ctx context.Context, nome string) (*model.Perfil, error)
	List(ctx context.Context, apenasAtivos bool) ([]model.Perfil, error)
	Update(ctx context.Context, p *model.Perfil) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ContarUsuarios counts users, active or not, assigned to the profile.
	ContarUsuarios(ctx context.Context, id uuid.UUID) (int64, error)
}

type perfilRepo struct{ db *gorm.DB }

func NewPerfilRepository(db *gorm.DB) PerfilRepository { return &perfilRepo{db: db} }

// Create writes every column so an inactive profile is not flipped by the
// column default.
func (r *perfilRepo) Create(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Select("*").Create(p).Error
}

func (r *perfilRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Perfil, error) {
	var p model.Perfil
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *perfilRepo) FindByNome(ctx context.Context, nome string) (*model.Perfil, error) {
	var p model.Perfil
	if err := r.db.WithContext(ctx).Where("lower(nome) = lower(?)", nome).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *perfilRepo) List(ctx context.Context, apenasAtivos bool) ([]model.Perfil, error) {
	q := r.db.WithContext(ctx).Order("nome ASC")
	if apenasAtivos {
		q = q.Where("ativo = true")
	}
	var list []model.Perfil
	err := q.Find(&list).Error
	return list, err
}

func (r *perfilRepo) Update(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *perfilRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Perfil{}, "id = ?", id).Error
}

func (r *perfilRepo) ContarUsuarios(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("perfil_id = ?", id).Count(&n).Error
	return n, err
}
