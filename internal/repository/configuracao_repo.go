package repository

import (
	"context"

	"autocenter/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracaoRepository interface {
	Get(ctx context.Context, chave string) (*model.Configuracao, error)
	List(ctx context.Context) ([]model.Configuracao, error)
	// Upsert inserts the key or overwrites its value.
	Upsert(ctx context.Context, c *model.Configuracao) error
}

type configuracaoRepo struct{ db *gorm.DB }

func NewConfiguracaoRepository(db *gorm.DB) ConfiguracaoRepository {
	return &configuracaoRepo{db: db}
}

func (r *configuracaoRepo) Get(ctx context.Context, chave string) (*model.Configuracao, error) {
	var c model.Configuracao
	if err := r.db.WithContext(ctx).First(&c, "chave = ?", chave).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracaoRepo) List(ctx context.Context) ([]model.Configuracao, error) {
	var list []model.Configuracao
	err := r.db.WithContext(ctx).Order("chave ASC").Find(&list).Error
	return list, err
}

func (r *configuracaoRepo) Upsert(ctx context.Context, c *model.Configuracao) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
	}).Create(c).Error
}
