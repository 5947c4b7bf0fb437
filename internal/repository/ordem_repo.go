package repository

import (
	"context"
	"database/sql"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdemRepository interface {
	CreateTx(tx *gorm.DB, o *model.OrdemServico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdemServico, error)
	// FindByIDForUpdateTx loads the order and its items, locking the order row.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.OrdemServico, error)
	UpdateTx(tx *gorm.DB, o *model.OrdemServico) error
	ReplaceItensTx(tx *gorm.DB, ordemID uuid.UUID, itens []model.ItemOrdem) error
	List(ctx context.Context, filter dto.OrdemFilter) ([]model.OrdemServico, int64, error)
	// MaxNumeroTx returns the greatest order number, "" when there is none.
	MaxNumeroTx(tx *gorm.DB) (string, error)
	ContarPorStatus(ctx context.Context) (map[string]int64, error)
	SomaTotal(ctx context.Context, status string, desde *time.Time) (decimal.Decimal, error)
	DB() *gorm.DB
}

type ordemRepo struct{ db *gorm.DB }

func NewOrdemRepository(db *gorm.DB) OrdemRepository { return &ordemRepo{db: db} }

func (r *ordemRepo) DB() *gorm.DB { return r.db }

func (r *ordemRepo) CreateTx(tx *gorm.DB, o *model.OrdemServico) error {
	return tx.Omit("Cliente", "Veiculo").Create(o).Error
}

func (r *ordemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdemServico, error) {
	var o model.OrdemServico
	err := r.db.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Itens.Produto").
		Preload("Cliente").
		Preload("Veiculo").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordemRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.OrdemServico, error) {
	var o model.OrdemServico
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("ordem_id = ?", id).Order("created_at ASC").Find(&o.Itens).Error; err != nil {
		return nil, err
	}
	if o.VeiculoID != nil {
		var v model.Veiculo
		if err := tx.First(&v, "id = ?", *o.VeiculoID).Error; err == nil {
			o.Veiculo = &v
		}
	}
	return &o, nil
}

func (r *ordemRepo) UpdateTx(tx *gorm.DB, o *model.OrdemServico) error {
	return tx.Omit(clause.Associations).Save(o).Error
}

func (r *ordemRepo) ReplaceItensTx(tx *gorm.DB, ordemID uuid.UUID, itens []model.ItemOrdem) error {
	if err := tx.Where("ordem_id = ?", ordemID).Delete(&model.ItemOrdem{}).Error; err != nil {
		return err
	}
	if len(itens) == 0 {
		return nil
	}
	for i := range itens {
		itens[i].OrdemID = ordemID
	}
	return tx.Omit("Produto").Create(&itens).Error
}

func (r *ordemRepo) List(ctx context.Context, filter dto.OrdemFilter) ([]model.OrdemServico, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.OrdemServico{})
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.VeiculoID != "" {
		q = q.Where("veiculo_id = ?", filter.VeiculoID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TipoOrdem != "" {
		q = q.Where("tipo_ordem = ?", filter.TipoOrdem)
	}
	q = periodo(q, "data_abertura", filter.Desde, filter.Ate)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 50, 500)
	var ordens []model.OrdemServico
	err := q.Preload("Cliente").Preload("Veiculo").Preload("Itens").
		Order("data_abertura DESC, numero DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ordens).Error
	return ordens, total, err
}

func (r *ordemRepo) MaxNumeroTx(tx *gorm.DB) (string, error) {
	var numero sql.NullString
	if err := tx.Model(&model.OrdemServico{}).Select("MAX(numero)").Row().Scan(&numero); err != nil {
		return "", err
	}
	return numero.String, nil
}

func (r *ordemRepo) ContarPorStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.OrdemServico{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}

// SomaTotal sums valor_total of orders, optionally by status and from a date.
func (r *ordemRepo) SomaTotal(ctx context.Context, status string, desde *time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.OrdemServico{}).Select("COALESCE(SUM(valor_total), 0)")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if desde != nil {
		q = q.Where("COALESCE(data_conclusao, data_abertura) >= ?", *desde)
	}
	var total decimal.Decimal
	err := q.Row().Scan(&total)
	return total, err
}
