package infra

import (
	"fmt"

	"autocenter/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection, migrates every model and then applies
// the idempotent SQL patches that AutoMigrate cannot express (partial indexes,
// check constraints, default settings).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table and applies the schema patches.
// Integration tests call it directly against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Perfil{},
		&model.Usuario{},
		&model.Categoria{},
		&model.Fornecedor{},
		&model.Produto{},
		&model.HistoricoPreco{},
		&model.Cliente{},
		&model.Veiculo{},
		&model.OrdemServico{},
		&model.ItemOrdem{},
		&model.MovimentoEstoque{},
		&model.LoteEstoque{},
		&model.ConsumoLote{},
		&model.ManutencaoHistorico{},
		&model.AlertaKm{},
		&model.SugestaoManutencao{},
		&model.Configuracao{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that AutoMigrate cannot express. Every statement
// is safe to re-run on an already patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// FIFO scans only ever look at lots with balance left.
		{"idx_lotes_disponiveis", `
CREATE INDEX IF NOT EXISTS idx_lotes_disponiveis
    ON lotes_estoque (produto_id, data_entrada, id)
    WHERE ativo AND saldo_atual > 0`},
		{"chk_lotes_saldo", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_lotes_saldo') THEN
    ALTER TABLE lotes_estoque
      ADD CONSTRAINT chk_lotes_saldo CHECK (saldo_atual >= 0 AND saldo_atual <= quantidade_inicial);
  END IF;
END $$`},
		{"chk_produtos_quantidade", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_quantidade') THEN
    ALTER TABLE produtos ADD CONSTRAINT chk_produtos_quantidade CHECK (quantidade_atual >= 0);
  END IF;
END $$`},
		{"idx_consumos_pendentes", `
CREATE INDEX IF NOT EXISTS idx_consumos_pendentes
    ON consumos_lote (ordem_servico_id, produto_id)
    WHERE quantidade_devolvida < quantidade`},
		{"idx_alertas_pendentes", `
CREATE INDEX IF NOT EXISTS idx_alertas_pendentes
    ON alertas_km (veiculo_id)
    WHERE ativo AND NOT notificado`},
		{"perfis padrao", `
INSERT INTO perfis (nome, descricao, permissoes, ativo, editavel, created_at, updated_at) VALUES
  ('Administrador', 'Acesso total ao sistema',
   '{"dashboard_gerencial":true,"dashboard_operacional":true,"clientes":true,"veiculos":true,"estoque":true,"ordens_servico":true,"fornecedores":true,"relatorios":true,"configuracoes":true,"usuarios":true,"perfis":true}',
   true, false, now(), now()),
  ('Supervisor', 'Acesso intermediário ao sistema',
   '{"dashboard_gerencial":true,"dashboard_operacional":false,"clientes":true,"veiculos":true,"estoque":true,"ordens_servico":true,"fornecedores":true,"relatorios":true,"configuracoes":false,"usuarios":false,"perfis":false}',
   true, true, now(), now()),
  ('Operador', 'Acesso básico ao sistema',
   '{"dashboard_gerencial":false,"dashboard_operacional":true,"clientes":false,"veiculos":false,"estoque":true,"ordens_servico":true,"fornecedores":false,"relatorios":false,"configuracoes":false,"usuarios":false,"perfis":false}',
   true, true, now(), now())
ON CONFLICT (nome) DO NOTHING`},
		{"configuracoes padrao", `
INSERT INTO configuracoes (chave, valor, descricao, tipo, created_at, updated_at) VALUES
  ('margem_lucro_padrao', '50',  'Margem de lucro padrão (%) aplicada sobre o custo', 'number', now(), now()),
  ('desconto_maximo_os',  '100', 'Desconto máximo (%) permitido em uma ordem de serviço', 'number', now(), now())
ON CONFLICT (chave) DO NOTHING`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
