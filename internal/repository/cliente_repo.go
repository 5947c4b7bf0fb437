package repository

import (
	"context"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	// FindByDocumento matches cpf_cnpj ignoring punctuation.
	FindByDocumento(ctx context.Context, digits string) (*model.Cliente, error)
	FindByTelefone(ctx context.Context, digits string) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	ListAniversariantes(ctx context.Context, dia time.Time) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
	Count(ctx context.Context) (int64, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByDocumento(ctx context.Context, digits string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("regexp_replace(cpf_cnpj, '[^0-9]', '', 'g') = ?", digits).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByTelefone(ctx context.Context, digits string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("regexp_replace(telefone, '[^0-9]', '', 'g') = ? OR regexp_replace(telefone2, '[^0-9]', '', 'g') = ? OR regexp_replace(whatsapp, '[^0-9]', '', 'g') = ?",
			digits, digits, digits).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
	default:
		q = q.Where("ativo = true")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("nome ILIKE ? OR cpf_cnpj ILIKE ? OR telefone ILIKE ? OR email ILIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page, limit := normalizePage(filter.Page, filter.Limit, 50, 500)
	var clientes []model.Cliente
	err := q.Order("nome ASC").Offset((page - 1) * limit).Limit(limit).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) ListAniversariantes(ctx context.Context, dia time.Time) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Where("ativo = true AND data_nascimento IS NOT NULL").
		Where("EXTRACT(MONTH FROM data_nascimento) = ? AND EXTRACT(DAY FROM data_nascimento) = ?", int(dia.Month()), dia.Day()).
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *clienteRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("ativo", ativo).Error
}

func (r *clienteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("ativo = true").Count(&n).Error
	return n, err
}
