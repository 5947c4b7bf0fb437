package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repositories. Reads hand out copies so services observe the same
// snapshot semantics they get from the database.

// ── Produto ──────────────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) get(id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	c := *p
	r.produtos[p.ID] = &c
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	return r.get(id)
}

func (r *stubProdutoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.Codigo == codigo {
			c := *p
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	out := r.filtrar(func(p *model.Produto) bool { return p.Ativo })
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) ListBaixoEstoque(_ context.Context) ([]model.Produto, error) {
	return r.filtrar(func(p *model.Produto) bool { return p.Ativo && p.QuantidadeAtual <= p.QuantidadeMinima }), nil
}

func (r *stubProdutoRepo) ListAtivosComCusto(_ context.Context) ([]model.Produto, error) {
	return r.filtrar(func(p *model.Produto) bool { return p.Ativo && p.PrecoCusto.IsPositive() }), nil
}

func (r *stubProdutoRepo) ListAtivos(_ context.Context) ([]model.Produto, error) {
	return r.filtrar(func(p *model.Produto) bool { return p.Ativo }), nil
}

func (r *stubProdutoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.filtrar(func(p *model.Produto) bool { return p.Ativo }))), nil
}

func (r *stubProdutoRepo) filtrar(ok func(*model.Produto) bool) []model.Produto {
	var out []model.Produto
	for _, p := range r.produtos {
		if ok(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	c := *p
	r.produtos[p.ID] = &c
	return nil
}

func (r *stubProdutoRepo) UpdateTx(_ *gorm.DB, p *model.Produto) error {
	c := *p
	if atual, ok := r.produtos[p.ID]; ok {
		c.QuantidadeAtual = atual.QuantidadeAtual
	}
	r.produtos[p.ID] = &c
	return nil
}

func (r *stubProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Ativo = false
	return nil
}

func (r *stubProdutoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.get(id)
}

func (r *stubProdutoRepo) UpdateQuantidadeTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.QuantidadeAtual += delta
	return nil
}

func (r *stubProdutoRepo) UpdatePrecosTx(_ *gorm.DB, id uuid.UUID, custo, venda decimal.Decimal) error {
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecoCusto, p.PrecoVenda = custo, venda
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

// ── Lote ─────────────────────────────────────────────────────────────────────

type stubLoteRepo struct {
	lotes    map[uuid.UUID]*model.LoteEstoque
	consumos []*model.ConsumoLote
}

func newStubLoteRepo() *stubLoteRepo {
	return &stubLoteRepo{lotes: make(map[uuid.UUID]*model.LoteEstoque)}
}

func (r *stubLoteRepo) CreateTx(_ *gorm.DB, l *model.LoteEstoque) error {
	c := *l
	r.lotes[l.ID] = &c
	return nil
}

func (r *stubLoteRepo) ListDisponiveisTx(_ *gorm.DB, produtoID uuid.UUID) ([]model.LoteEstoque, error) {
	var out []model.LoteEstoque
	for _, l := range r.lotes {
		if l.ProdutoID == produtoID && l.Ativo && l.SaldoAtual > 0 {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DataEntrada.Equal(out[j].DataEntrada) {
			return out[i].DataEntrada.Before(out[j].DataEntrada)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *stubLoteRepo) UpdateSaldoTx(_ *gorm.DB, id uuid.UUID, saldo int) error {
	l, ok := r.lotes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.SaldoAtual = saldo
	return nil
}

func (r *stubLoteRepo) AddSaldoTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	l, ok := r.lotes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.SaldoAtual += delta
	return nil
}

func (r *stubLoteRepo) CreateConsumoTx(_ *gorm.DB, c *model.ConsumoLote) error {
	cp := *c
	r.consumos = append(r.consumos, &cp)
	return nil
}

func (r *stubLoteRepo) ListConsumosPendentesTx(_ *gorm.DB, ordemID, produtoID uuid.UUID) ([]model.ConsumoLote, error) {
	var out []model.ConsumoLote
	for _, c := range r.consumos {
		if c.OrdemServicoID != nil && *c.OrdemServicoID == ordemID && c.ProdutoID == produtoID && c.Pendente() > 0 {
			out = append(out, *c)
		}
	}
	// Same keys as the SQL: created_at, then lot entry, then lot id, all descending.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		li, lj := r.lotes[out[i].LoteID], r.lotes[out[j].LoteID]
		if !li.DataEntrada.Equal(lj.DataEntrada) {
			return li.DataEntrada.After(lj.DataEntrada)
		}
		return li.ID.String() > lj.ID.String()
	})
	return out, nil
}

func (r *stubLoteRepo) AddDevolvidoTx(_ *gorm.DB, consumoID uuid.UUID, quantidade int) error {
	for _, c := range r.consumos {
		if c.ID == consumoID {
			c.QuantidadeDevolvida += quantidade
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LoteEstoque, error) {
	l, ok := r.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *l
	return &c, nil
}

func (r *stubLoteRepo) List(_ context.Context, filter dto.LoteFilter) ([]model.LoteEstoque, error) {
	var out []model.LoteEstoque
	for _, l := range r.lotes {
		if filter.ProdutoID != "" && l.ProdutoID.String() != filter.ProdutoID {
			continue
		}
		if filter.ApenasDisponiveis && l.SaldoAtual == 0 {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubLoteRepo) ValorPorProduto(_ context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, l := range r.lotes {
		if l.Ativo && l.SaldoAtual > 0 {
			out[l.ProdutoID] = out[l.ProdutoID].Add(l.PrecoCustoUnitario.Mul(decimal.NewFromInt(int64(l.SaldoAtual))))
		}
	}
	return out, nil
}

// saldos returns the remaining balance of every lot of a product, oldest first.
func (r *stubLoteRepo) saldos(produtoID uuid.UUID) []int {
	var lotes []model.LoteEstoque
	for _, l := range r.lotes {
		if l.ProdutoID == produtoID {
			lotes = append(lotes, *l)
		}
	}
	sort.Slice(lotes, func(i, j int) bool { return lotes[i].DataEntrada.Before(lotes[j].DataEntrada) })
	out := make([]int, len(lotes))
	for i, l := range lotes {
		out[i] = l.SaldoAtual
	}
	return out
}

// ── Movimento ────────────────────────────────────────────────────────────────

type stubMovimentoRepo struct {
	movimentos []model.MovimentoEstoque
}

func (r *stubMovimentoRepo) CreateTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubMovimentoRepo) SumQuantidadeTx(_ *gorm.DB, ordemID, produtoID uuid.UUID, tipo, origem string) (int, error) {
	total := 0
	for _, m := range r.movimentos {
		if m.OrdemServicoID != nil && *m.OrdemServicoID == ordemID && m.ProdutoID == produtoID && m.Tipo == tipo && m.Origem == origem {
			total += m.Quantidade
		}
	}
	return total, nil
}

func (r *stubMovimentoRepo) ProdutosComSaidaTx(_ *gorm.DB, ordemID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, m := range r.movimentos {
		if m.OrdemServicoID != nil && *m.OrdemServicoID == ordemID && m.Tipo == model.MovimentoSaida && !seen[m.ProdutoID] {
			seen[m.ProdutoID] = true
			out = append(out, m.ProdutoID)
		}
	}
	return out, nil
}

func (r *stubMovimentoRepo) List(_ context.Context, _ dto.MovimentoFilter) ([]model.MovimentoEstoque, int64, error) {
	return r.movimentos, int64(len(r.movimentos)), nil
}

func (r *stubMovimentoRepo) ListPeriodo(_ context.Context, _, _ *time.Time, tipo string) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if tipo == "" || m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimentoRepo) TopSaidasOrdem(_ context.Context, _ time.Time, limit int) ([]repository.ProdutoQuantidade, error) {
	totais := make(map[uuid.UUID]int64)
	for _, m := range r.movimentos {
		if m.Tipo == model.MovimentoSaida && m.Origem == model.OrigemOrdem {
			totais[m.ProdutoID] += int64(m.Quantidade)
		}
	}
	out := make([]repository.ProdutoQuantidade, 0, len(totais))
	for id, q := range totais {
		out = append(out, repository.ProdutoQuantidade{ProdutoID: id, Quantidade: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantidade > out[j].Quantidade })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// doTipo filters movements by type and origin.
func (r *stubMovimentoRepo) doTipo(tipo, origem string) []model.MovimentoEstoque {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if m.Tipo == tipo && m.Origem == origem {
			out = append(out, m)
		}
	}
	return out
}

// ── HistoricoPreco ───────────────────────────────────────────────────────────

type stubHistoricoPrecoRepo struct {
	historico []model.HistoricoPreco
}

func (r *stubHistoricoPrecoRepo) CreateTx(_ *gorm.DB, h *model.HistoricoPreco) error {
	r.historico = append(r.historico, *h)
	return nil
}

func (r *stubHistoricoPrecoRepo) ListByProduto(_ context.Context, produtoID uuid.UUID, _, _ int) ([]model.HistoricoPreco, int64, error) {
	var out []model.HistoricoPreco
	for _, h := range r.historico {
		if h.ProdutoID == produtoID {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

// ── Cliente ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) buscar(match func(*model.Cliente) bool) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, digits string) (*model.Cliente, error) {
	return r.buscar(func(c *model.Cliente) bool { return c.CpfCnpj != nil && SoDigitos(*c.CpfCnpj) == digits })
}

func (r *stubClienteRepo) FindByTelefone(_ context.Context, digits string) (*model.Cliente, error) {
	igual := func(s *string) bool { return s != nil && SoDigitos(*s) == digits }
	return r.buscar(func(c *model.Cliente) bool { return igual(c.Telefone) || igual(c.Telefone2) || igual(c.Whatsapp) })
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) ListAniversariantes(_ context.Context, dia time.Time) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.Ativo && c.DataNascimento != nil && c.DataNascimento.Month() == dia.Month() && c.DataNascimento.Day() == dia.Day() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Ativo = ativo
	return nil
}

func (r *stubClienteRepo) Count(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.clientes {
		if c.Ativo {
			n++
		}
	}
	return n, nil
}

// ── Veiculo ──────────────────────────────────────────────────────────────────

type stubVeiculoRepo struct {
	veiculos map[uuid.UUID]*model.Veiculo
	clientes *stubClienteRepo
}

func newStubVeiculoRepo(clientes *stubClienteRepo) *stubVeiculoRepo {
	return &stubVeiculoRepo{veiculos: make(map[uuid.UUID]*model.Veiculo), clientes: clientes}
}

func (r *stubVeiculoRepo) copia(v *model.Veiculo) *model.Veiculo {
	cp := *v
	if c, ok := r.clientes.clientes[v.ClienteID]; ok {
		cc := *c
		cp.Cliente = &cc
	}
	return &cp
}

func (r *stubVeiculoRepo) Create(_ context.Context, v *model.Veiculo) error {
	cp := *v
	cp.Cliente = nil
	r.veiculos[v.ID] = &cp
	return nil
}

func (r *stubVeiculoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Veiculo, error) {
	v, ok := r.veiculos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.copia(v), nil
}

func (r *stubVeiculoRepo) FindByPlaca(_ context.Context, placa string) (*model.Veiculo, error) {
	for _, v := range r.veiculos {
		if v.Placa != nil && *v.Placa == placa {
			return r.copia(v), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVeiculoRepo) List(_ context.Context, _ dto.VeiculoFilter) ([]model.Veiculo, int64, error) {
	var out []model.Veiculo
	for _, v := range r.veiculos {
		if v.Ativo {
			out = append(out, *r.copia(v))
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubVeiculoRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.Veiculo, error) {
	var out []model.Veiculo
	for _, v := range r.veiculos {
		if v.ClienteID == clienteID && v.Ativo {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVeiculoRepo) Update(_ context.Context, v *model.Veiculo) error {
	cp := *v
	cp.Cliente = nil
	r.veiculos[v.ID] = &cp
	return nil
}

func (r *stubVeiculoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	v, ok := r.veiculos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Ativo = false
	return nil
}

func (r *stubVeiculoRepo) UpdateKmTx(_ *gorm.DB, id uuid.UUID, km int) error {
	if v, ok := r.veiculos[id]; ok && v.KmAtual < km {
		v.KmAtual = km
	}
	return nil
}

func (r *stubVeiculoRepo) Count(_ context.Context) (int64, error) {
	var n int64
	for _, v := range r.veiculos {
		if v.Ativo {
			n++
		}
	}
	return n, nil
}

// ── Ordem ────────────────────────────────────────────────────────────────────

type stubOrdemRepo struct {
	ordens   map[uuid.UUID]*model.OrdemServico
	clientes *stubClienteRepo
	veiculos *stubVeiculoRepo
}

func newStubOrdemRepo(clientes *stubClienteRepo, veiculos *stubVeiculoRepo) *stubOrdemRepo {
	return &stubOrdemRepo{ordens: make(map[uuid.UUID]*model.OrdemServico), clientes: clientes, veiculos: veiculos}
}

func (r *stubOrdemRepo) guardar(o *model.OrdemServico) {
	cp := *o
	cp.Cliente, cp.Veiculo = nil, nil
	cp.Itens = append([]model.ItemOrdem(nil), o.Itens...)
	r.ordens[o.ID] = &cp
}

func (r *stubOrdemRepo) carregar(id uuid.UUID) (*model.OrdemServico, error) {
	o, ok := r.ordens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.Itens = append([]model.ItemOrdem(nil), o.Itens...)
	if c, ok := r.clientes.clientes[o.ClienteID]; ok {
		cc := *c
		cp.Cliente = &cc
	}
	if o.VeiculoID != nil {
		if v, ok := r.veiculos.veiculos[*o.VeiculoID]; ok {
			vv := *v
			cp.Veiculo = &vv
		}
	}
	return &cp, nil
}

func (r *stubOrdemRepo) CreateTx(_ *gorm.DB, o *model.OrdemServico) error {
	for _, e := range r.ordens {
		if e.Numero == o.Numero {
			return gorm.ErrDuplicatedKey
		}
	}
	r.guardar(o)
	return nil
}

func (r *stubOrdemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdemServico, error) {
	return r.carregar(id)
}

func (r *stubOrdemRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.OrdemServico, error) {
	return r.carregar(id)
}

func (r *stubOrdemRepo) UpdateTx(_ *gorm.DB, o *model.OrdemServico) error {
	r.guardar(o)
	return nil
}

func (r *stubOrdemRepo) ReplaceItensTx(_ *gorm.DB, ordemID uuid.UUID, itens []model.ItemOrdem) error {
	o, ok := r.ordens[ordemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Itens = append([]model.ItemOrdem(nil), itens...)
	return nil
}

func (r *stubOrdemRepo) List(_ context.Context, _ dto.OrdemFilter) ([]model.OrdemServico, int64, error) {
	var out []model.OrdemServico
	for id := range r.ordens {
		o, _ := r.carregar(id)
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrdemRepo) MaxNumeroTx(_ *gorm.DB) (string, error) {
	maior := ""
	for _, o := range r.ordens {
		if o.Numero > maior {
			maior = o.Numero
		}
	}
	return maior, nil
}

func (r *stubOrdemRepo) ContarPorStatus(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, o := range r.ordens {
		out[o.Status]++
	}
	return out, nil
}

func (r *stubOrdemRepo) SomaTotal(_ context.Context, status string, desde *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.ordens {
		if status != "" && o.Status != status {
			continue
		}
		if desde != nil && o.DataAbertura.Before(*desde) {
			continue
		}
		total = total.Add(o.ValorTotal)
	}
	return total, nil
}

func (r *stubOrdemRepo) DB() *gorm.DB { return nil }

// ── Manutencao ───────────────────────────────────────────────────────────────

type stubManutencaoRepo struct {
	historico []model.ManutencaoHistorico
	alertas   []model.AlertaKm
	falha     error
}

func (r *stubManutencaoRepo) ExistsByOrdemTx(_ *gorm.DB, ordemID uuid.UUID) (bool, error) {
	for _, h := range r.historico {
		if h.OrdemServicoID != nil && *h.OrdemServicoID == ordemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubManutencaoRepo) CreateTx(_ *gorm.DB, h *model.ManutencaoHistorico) error {
	if r.falha != nil {
		return r.falha
	}
	r.historico = append(r.historico, *h)
	return nil
}

func (r *stubManutencaoRepo) CreateAlertaTx(_ *gorm.DB, a *model.AlertaKm) error {
	r.alertas = append(r.alertas, *a)
	return nil
}

func (r *stubManutencaoRepo) DesativarAlertasTx(_ *gorm.DB, veiculoID uuid.UUID, tipoServico string) error {
	for i := range r.alertas {
		if r.alertas[i].VeiculoID == veiculoID && r.alertas[i].TipoServico == tipoServico {
			r.alertas[i].Ativo = false
		}
	}
	return nil
}

func (r *stubManutencaoRepo) ListByVeiculo(_ context.Context, veiculoID uuid.UUID) ([]model.ManutencaoHistorico, error) {
	var out []model.ManutencaoHistorico
	for _, h := range r.historico {
		if h.VeiculoID == veiculoID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *stubManutencaoRepo) ListAlertasPendentes(_ context.Context) ([]model.AlertaKm, error) {
	var out []model.AlertaKm
	for _, a := range r.alertas {
		if a.Ativo && !a.Notificado {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubManutencaoRepo) MarcarNotificado(_ context.Context, id uuid.UUID, prioridade string) error {
	for i := range r.alertas {
		if r.alertas[i].ID == id {
			r.alertas[i].Notificado = true
			r.alertas[i].Prioridade = prioridade
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Fornecedor ───────────────────────────────────────────────────────────────

type stubFornecedorRepo struct {
	fornecedores map[uuid.UUID]*model.Fornecedor
}

func newStubFornecedorRepo() *stubFornecedorRepo {
	return &stubFornecedorRepo{fornecedores: make(map[uuid.UUID]*model.Fornecedor)}
}

func (r *stubFornecedorRepo) Create(_ context.Context, f *model.Fornecedor) error {
	cp := *f
	r.fornecedores[f.ID] = &cp
	return nil
}

func (r *stubFornecedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	f, ok := r.fornecedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *stubFornecedorRepo) FindByCnpj(_ context.Context, cnpj string) (*model.Fornecedor, error) {
	for _, f := range r.fornecedores {
		if f.Cnpj != nil && *f.Cnpj == cnpj {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFornecedorRepo) List(_ context.Context, _ string, incluirInativos bool) ([]model.Fornecedor, error) {
	var out []model.Fornecedor
	for _, f := range r.fornecedores {
		if f.Ativo || incluirInativos {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFornecedorRepo) Update(_ context.Context, f *model.Fornecedor) error {
	cp := *f
	r.fornecedores[f.ID] = &cp
	return nil
}

func (r *stubFornecedorRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	f, ok := r.fornecedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Ativo = ativo
	return nil
}

// ── Configuracao ─────────────────────────────────────────────────────────────

type stubConfiguracaoRepo struct {
	valores map[string]*model.Configuracao
}

func newStubConfiguracaoRepo() *stubConfiguracaoRepo {
	return &stubConfiguracaoRepo{valores: make(map[string]*model.Configuracao)}
}

func (r *stubConfiguracaoRepo) Get(_ context.Context, chave string) (*model.Configuracao, error) {
	c, ok := r.valores[chave]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubConfiguracaoRepo) List(_ context.Context) ([]model.Configuracao, error) {
	var out []model.Configuracao
	for _, c := range r.valores {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chave < out[j].Chave })
	return out, nil
}

func (r *stubConfiguracaoRepo) Upsert(_ context.Context, c *model.Configuracao) error {
	cp := *c
	r.valores[c.Chave] = &cp
	return nil
}

// ── Usuario ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, e := range r.usuarios {
		if e.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Ativo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Ativo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Ativo = false
	return nil
}

func (r *stubUsuarioRepo) Reativar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Ativo = true
	return nil
}

// ── Perfis ───────────────────────────────────────────────────────────────────

type stubPerfilRepo struct {
	perfis   map[uuid.UUID]*model.Perfil
	usuarios *stubUsuarioRepo
}

func newStubPerfilRepo() *stubPerfilRepo {
	return &stubPerfilRepo{perfis: make(map[uuid.UUID]*model.Perfil)}
}

func (r *stubPerfilRepo) Create(_ context.Context, p *model.Perfil) error {
	for _, e := range r.perfis {
		if strings.EqualFold(e.Nome, p.Nome) {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *p
	r.perfis[p.ID] = &cp
	return nil
}

func (r *stubPerfilRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Perfil, error) {
	p, ok := r.perfis[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPerfilRepo) FindByNome(_ context.Context, nome string) (*model.Perfil, error) {
	for _, p := range r.perfis {
		if strings.EqualFold(p.Nome, nome) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPerfilRepo) List(_ context.Context, apenasAtivos bool) ([]model.Perfil, error) {
	var out []model.Perfil
	for _, p := range r.perfis {
		if !apenasAtivos || p.Ativo {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *stubPerfilRepo) Update(_ context.Context, p *model.Perfil) error {
	cp := *p
	r.perfis[p.ID] = &cp
	return nil
}

func (r *stubPerfilRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.perfis, id)
	return nil
}

func (r *stubPerfilRepo) ContarUsuarios(_ context.Context, id uuid.UUID) (int64, error) {
	if r.usuarios == nil {
		return 0, nil
	}
	var n int64
	for _, u := range r.usuarios.usuarios {
		if u.PerfilID != nil && *u.PerfilID == id {
			n++
		}
	}
	return n, nil
}

// Compile-time interface checks.
var (
	_ repository.ProdutoRepository        = (*stubProdutoRepo)(nil)
	_ repository.LoteRepository           = (*stubLoteRepo)(nil)
	_ repository.MovimentoRepository      = (*stubMovimentoRepo)(nil)
	_ repository.HistoricoPrecoRepository = (*stubHistoricoPrecoRepo)(nil)
	_ repository.ClienteRepository        = (*stubClienteRepo)(nil)
	_ repository.VeiculoRepository        = (*stubVeiculoRepo)(nil)
	_ repository.OrdemRepository          = (*stubOrdemRepo)(nil)
	_ repository.ManutencaoRepository     = (*stubManutencaoRepo)(nil)
	_ repository.FornecedorRepository     = (*stubFornecedorRepo)(nil)
	_ repository.ConfiguracaoRepository   = (*stubConfiguracaoRepo)(nil)
	_ repository.UsuarioRepository        = (*stubUsuarioRepo)(nil)
	_ repository.PerfilRepository         = (*stubPerfilRepo)(nil)
)
