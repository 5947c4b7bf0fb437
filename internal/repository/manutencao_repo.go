package repository

import (
	"context"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManutencaoRepository interface {
	ExistsByOrdemTx(tx *gorm.DB, ordemID uuid.UUID) (bool, error)
	CreateTx(tx *gorm.DB, h *model.ManutencaoHistorico) error
	CreateAlertaTx(tx *gorm.DB, a *model.AlertaKm) error
	// DesativarAlertasTx retires the active alerts of a vehicle for one service type.
	DesativarAlertasTx(tx *gorm.DB, veiculoID uuid.UUID, tipoServico string) error
	ListByVeiculo(ctx context.Context, veiculoID uuid.UUID) ([]model.ManutencaoHistorico, error)
	// ListAlertasPendentes returns active, not yet notified alerts with vehicle and owner.
	ListAlertasPendentes(ctx context.Context) ([]model.AlertaKm, error)
	MarcarNotificado(ctx context.Context, id uuid.UUID, prioridade string) error
}

type manutencaoRepo struct{ db *gorm.DB }

func NewManutencaoRepository(db *gorm.DB) ManutencaoRepository { return &manutencaoRepo{db: db} }

func (r *manutencaoRepo) ExistsByOrdemTx(tx *gorm.DB, ordemID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.ManutencaoHistorico{}).Where("ordem_servico_id = ?", ordemID).Count(&n).Error
	return n > 0, err
}

func (r *manutencaoRepo) CreateTx(tx *gorm.DB, h *model.ManutencaoHistorico) error {
	return tx.Create(h).Error
}

func (r *manutencaoRepo) CreateAlertaTx(tx *gorm.DB, a *model.AlertaKm) error {
	return tx.Omit("Veiculo").Create(a).Error
}

func (r *manutencaoRepo) DesativarAlertasTx(tx *gorm.DB, veiculoID uuid.UUID, tipoServico string) error {
	return tx.Model(&model.AlertaKm{}).
		Where("veiculo_id = ? AND tipo_servico = ? AND ativo = true", veiculoID, tipoServico).
		Update("ativo", false).Error
}

func (r *manutencaoRepo) ListByVeiculo(ctx context.Context, veiculoID uuid.UUID) ([]model.ManutencaoHistorico, error) {
	var list []model.ManutencaoHistorico
	err := r.db.WithContext(ctx).Where("veiculo_id = ?", veiculoID).Order("data_realizada DESC, created_at DESC").Find(&list).Error
	return list, err
}

func (r *manutencaoRepo) ListAlertasPendentes(ctx context.Context) ([]model.AlertaKm, error) {
	var list []model.AlertaKm
	err := r.db.WithContext(ctx).
		Preload("Veiculo").
		Preload("Veiculo.Cliente").
		Where("ativo = true AND notificado = false").
		Find(&list).Error
	return list, err
}

func (r *manutencaoRepo) MarcarNotificado(ctx context.Context, id uuid.UUID, prioridade string) error {
	return r.db.WithContext(ctx).Model(&model.AlertaKm{}).Where("id = ?", id).Updates(map[string]interface{}{
		"notificado": true,
		"prioridade": prioridade,
	}).Error
}
