package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/infra"
	"autocenter/internal/model"
	"autocenter/internal/repository"
	"autocenter/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	lockNumeroOrdem = "lock:ordem:numero"
	lockNumeroTTL   = 10 * time.Second
)

type OrdemService interface {
	Criar(ctx context.Context, req dto.CriarOrdemRequest, ator *Ator) (*dto.OrdemResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.OrdemResponse, error)
	Listar(ctx context.Context, filter dto.OrdemFilter) (*dto.OrdemListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrdemRequest, ator *Ator) (*dto.OrdemResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string, ator *Ator) (*dto.OrdemResponse, error)
	Estatisticas(ctx context.Context) (*dto.OrdemEstatisticasResponse, error)
	// GerarPDF renders the order sheet and returns the file path.
	GerarPDF(ctx context.Context, id uuid.UUID) (string, error)
}

// OrdemServiceDeps groups the collaborators of the order service.
type OrdemServiceDeps struct {
	Ordens     repository.OrdemRepository
	Clientes   repository.ClienteRepository
	Veiculos   repository.VeiculoRepository
	Produtos   repository.ProdutoRepository
	Lotes      repository.LoteRepository
	Movimentos repository.MovimentoRepository
	Precos     repository.HistoricoPrecoRepository
	Manutencao ManutencaoService
	Config     repository.ConfiguracaoRepository
	Dispatcher *worker.Dispatcher
	Locker     Locker
	RDB        *redis.Client
	PDFPath    string
	ShopName   string
}

type ordemService struct {
	ordens     repository.OrdemRepository
	clientes   repository.ClienteRepository
	veiculos   repository.VeiculoRepository
	produtos   repository.ProdutoRepository
	ledger     *ledger
	manutencao ManutencaoService
	config     repository.ConfiguracaoRepository
	dispatcher *worker.Dispatcher
	locker     Locker
	cache      produtoCache
	pdfPath    string
	shopName   string
	now        func() time.Time
}

func NewOrdemService(d OrdemServiceDeps) OrdemService {
	return &ordemService{
		ordens:     d.Ordens,
		clientes:   d.Clientes,
		veiculos:   d.Veiculos,
		produtos:   d.Produtos,
		ledger:     newLedger(d.Produtos, d.Lotes, d.Movimentos, d.Precos),
		manutencao: d.Manutencao,
		config:     d.Config,
		dispatcher: d.Dispatcher,
		locker:     d.Locker,
		cache:      produtoCache{rdb: d.RDB},
		pdfPath:    d.PDFPath,
		shopName:   d.ShopName,
		now:        time.Now,
	}
}

// ── Criar ────────────────────────────────────────────────────────────────────
//  1. Customer must exist and be active; the vehicle must be theirs
//  2. Service orders need a vehicle
//  3. Product lines must reference active products with enough stock
//  4. Number assignment + insert under the numbering lock
// Stock is not touched: a new order is always PENDENTE.

func (s *ordemService) Criar(ctx context.Context, req dto.CriarOrdemRequest, ator *Ator) (*dto.OrdemResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, validacao("cliente_id inválido")
	}
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, notFoundOr(err, "Cliente não encontrado")
	}
	if !cliente.Ativo {
		return nil, validacao("Cliente %s está inativo", cliente.Nome)
	}

	var veiculo *model.Veiculo
	if req.VeiculoID != nil && *req.VeiculoID != "" {
		vid, err := uuid.Parse(*req.VeiculoID)
		if err != nil {
			return nil, validacao("veiculo_id inválido")
		}
		veiculo, err = s.veiculos.FindByID(ctx, vid)
		if err != nil {
			return nil, notFoundOr(err, "Veículo não encontrado")
		}
		if veiculo.ClienteID != clienteID {
			return nil, validacao("Veículo não pertence ao cliente informado")
		}
	}
	if veiculo == nil && req.TipoOrdem != model.TipoOrdemVenda {
		return nil, validacao("Ordens de serviço exigem um veículo")
	}

	itens, produtos, err := s.montarItens(ctx, req.Itens)
	if err != nil {
		return nil, err
	}
	for id, q := range quantidadesPorProduto(itens) {
		if p := produtos[id]; p.QuantidadeAtual < q {
			return nil, &EstoqueInsuficienteError{Produto: p.Nome, Disponivel: p.QuantidadeAtual, Solicitado: q}
		}
	}

	now := s.now()
	o := &model.OrdemServico{
		ID:                     uuid.New(),
		ClienteID:              clienteID,
		TipoOrdem:              req.TipoOrdem,
		Status:                 model.OrdemPendente,
		Prioridade:             valorOuPadrao(req.Prioridade, "MEDIA"),
		DescricaoServico:       req.DescricaoServico,
		DescricaoProblema:      req.DescricaoProblema,
		Observacoes:            req.Observacoes,
		DataAbertura:           now,
		DataPrevista:           req.DataPrevista,
		KmVeiculo:              req.KmVeiculo,
		ValorServico:           req.ValorServico,
		PercentualDesconto:     req.PercentualDesconto,
		TipoDesconto:           valorOuPadrao(req.TipoDesconto, model.DescontoTotal),
		FuncionarioResponsavel: req.FuncionarioResponsavel,
		FormaPagamento:         req.FormaPagamento,
		Itens:                  itens,
	}
	if veiculo != nil {
		o.VeiculoID = &veiculo.ID
	}
	if err := s.validarValores(ctx, o); err != nil {
		return nil, err
	}
	for i := range o.Itens {
		o.Itens[i].OrdemID = o.ID
	}
	CalcularTotais(o)

	err = withLock(ctx, s.locker, lockNumeroOrdem, lockNumeroTTL, func() error {
		return runTx(ctx, s.ordens.DB(), func(tx *gorm.DB) error {
			maior, err := s.ordens.MaxNumeroTx(tx)
			if err != nil {
				return err
			}
			o.Numero = ProximoNumeroOrdem(maior, now)
			if err := s.ordens.CreateTx(tx, o); err != nil {
				return err
			}
			if veiculo != nil && o.KmVeiculo != nil && *o.KmVeiculo > veiculo.KmAtual {
				return s.veiculos.UpdateKmTx(tx, veiculo.ID, *o.KmVeiculo)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("numero", o.Numero).
		Str("cliente_id", clienteID.String()).
		Str("total", o.ValorTotal.StringFixed(2)).
		Msg("ordem: criada")
	return s.Obter(ctx, o.ID)
}

// ── Atualizar ────────────────────────────────────────────────────────────────
// Runs entirely inside one transaction with the order row locked:
//  1. Validate the status change and cancellation reason before any mutation
//  2. Apply the stock effect of the status/item change
//  3. Replace items, apply fields, recompute totals
//  4. On completion stamp data_conclusao and record the maintenance history

func (s *ordemService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrdemRequest, ator *Ator) (*dto.OrdemResponse, error) {
	var (
		novosItens []model.ItemOrdem
		err        error
	)
	if req.Itens != nil {
		novosItens, _, err = s.montarItens(ctx, *req.Itens)
		if err != nil {
			return nil, err
		}
	}

	var (
		concluida bool
		afetados  []uuid.UUID
	)
	err = runTx(ctx, s.ordens.DB(), func(tx *gorm.DB) error {
		o, err := s.ordens.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return notFoundOr(err, "Ordem de serviço não encontrada")
		}

		statusAnterior := o.Status
		novoStatus := o.Status
		if req.Status != nil {
			novoStatus = *req.Status
		}
		if err := ValidarTransicao(statusAnterior, novoStatus); err != nil {
			return err
		}
		if req.Itens != nil && statusTerminal(statusAnterior) {
			return transicaoInvalida("Itens de uma ordem %s não podem ser alterados", statusAnterior)
		}
		if novoStatus == model.OrdemCancelada && statusAnterior != model.OrdemCancelada {
			if req.MotivoCancelamento == nil || strings.TrimSpace(*req.MotivoCancelamento) == "" {
				return validacao("Motivo do cancelamento é obrigatório")
			}
		}

		itensAntigos := o.Itens
		itens := itensAntigos
		if req.Itens != nil {
			itens = novosItens
		}

		obs := fmt.Sprintf("OS %s - Status: %s", o.Numero, novoStatus)
		eraDebitado, seraDebitado := statusDebitado(statusAnterior), statusDebitado(novoStatus)
		switch {
		case !eraDebitado && seraDebitado:
			afetados, err = s.baixarTx(tx, o, quantidadesPorProduto(itens), obs, ator)
		case eraDebitado && !seraDebitado:
			afetados, err = s.devolverTudoTx(tx, o, obs, ator)
		case eraDebitado && req.Itens != nil:
			afetados, err = s.aplicarDeltaTx(tx, o, quantidadesPorProduto(itensAntigos), quantidadesPorProduto(itens), obs, ator)
		}
		if err != nil {
			return err
		}

		if req.Itens != nil {
			if err := s.ordens.ReplaceItensTx(tx, o.ID, novosItens); err != nil {
				return err
			}
			o.Itens = novosItens
		}

		aplicarCampos(o, req)
		o.Status = novoStatus
		if novoStatus == model.OrdemCancelada && req.MotivoCancelamento != nil {
			motivo := strings.TrimSpace(*req.MotivoCancelamento)
			o.MotivoCancelamento = &motivo
		}
		if err := s.validarValores(ctx, o); err != nil {
			return err
		}
		CalcularTotais(o)

		if req.KmVeiculo != nil && o.VeiculoID != nil {
			if err := s.veiculos.UpdateKmTx(tx, *o.VeiculoID, *req.KmVeiculo); err != nil {
				return err
			}
		}

		if novoStatus == model.OrdemConcluida && statusAnterior != model.OrdemConcluida {
			now := s.now()
			o.DataConclusao = &now
			concluida = true
		}
		if err := s.ordens.UpdateTx(tx, o); err != nil {
			return err
		}
		if concluida {
			if err := s.registrarHistoricoTx(tx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, afetados...)
	resp, ordem, err := s.obter(ctx, id)
	if err != nil {
		return nil, err
	}
	if concluida {
		s.notificarConclusao(ctx, ordem)
	}
	return resp, nil
}

// Cancelar is the DELETE of an order: a transition to CANCELADA with a reason.
func (s *ordemService) Cancelar(ctx context.Context, id uuid.UUID, motivo string, ator *Ator) (*dto.OrdemResponse, error) {
	status := model.OrdemCancelada
	return s.Atualizar(ctx, id, dto.AtualizarOrdemRequest{Status: &status, MotivoCancelamento: &motivo}, ator)
}

// ── Stock effects ────────────────────────────────────────────────────────────

// baixarTx takes every product of the order out of stock. All quantities are
// checked before the first exit.
func (s *ordemService) baixarTx(tx *gorm.DB, o *model.OrdemServico, qtds map[uuid.UUID]int, obs string, ator *Ator) ([]uuid.UUID, error) {
	ids := produtosOrdenados(qtds)
	if err := s.verificarEstoqueTx(tx, ids, qtds); err != nil {
		return nil, err
	}
	ordemID := o.ID
	for _, pid := range ids {
		motivo := "Ordem de Serviço"
		_, err := s.ledger.saidaTx(tx, saidaParams{
			ProdutoID:   pid,
			Quantidade:  qtds[pid],
			Origem:      model.OrigemOrdem,
			OrdemID:     &ordemID,
			Motivo:      &motivo,
			Observacoes: &obs,
			Ator:        ator,
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// devolverTudoTx credits back whatever the order still owes per product, so a
// repeated reversal finds nothing left and writes nothing.
func (s *ordemService) devolverTudoTx(tx *gorm.DB, o *model.OrdemServico, obs string, ator *Ator) ([]uuid.UUID, error) {
	ids, err := s.ledger.movimentos.ProdutosComSaidaTx(tx, o.ID)
	if err != nil {
		return nil, err
	}
	ordenarIDs(ids)
	var afetados []uuid.UUID
	for _, pid := range ids {
		devido, err := s.ledger.pendenteOrdemTx(tx, o.ID, pid)
		if err != nil {
			return nil, err
		}
		if devido <= 0 {
			continue
		}
		if _, err := s.ledger.devolucaoTx(tx, o.ID, pid, devido, obs, ator); err != nil {
			return nil, err
		}
		afetados = append(afetados, pid)
	}
	return afetados, nil
}

// aplicarDeltaTx moves only the difference between the old and new item
// quantities of an order that stays debited.
func (s *ordemService) aplicarDeltaTx(tx *gorm.DB, o *model.OrdemServico, antigos, novos map[uuid.UUID]int, obs string, ator *Ator) ([]uuid.UUID, error) {
	deltas := make(map[uuid.UUID]int)
	for pid, q := range novos {
		deltas[pid] += q
	}
	for pid, q := range antigos {
		deltas[pid] -= q
	}

	positivos := make(map[uuid.UUID]int)
	for pid, d := range deltas {
		if d > 0 {
			positivos[pid] = d
		}
	}
	if err := s.verificarEstoqueTx(tx, produtosOrdenados(positivos), positivos); err != nil {
		return nil, err
	}

	ordemID := o.ID
	var afetados []uuid.UUID
	for _, pid := range produtosOrdenados(deltas) {
		d := deltas[pid]
		switch {
		case d > 0:
			motivo := "Ajuste Ordem de Serviço"
			_, err := s.ledger.saidaTx(tx, saidaParams{
				ProdutoID:   pid,
				Quantidade:  d,
				Origem:      model.OrigemOrdem,
				OrdemID:     &ordemID,
				Motivo:      &motivo,
				Observacoes: &obs,
				Ator:        ator,
			})
			if err != nil {
				return nil, err
			}
		case d < 0:
			if _, err := s.ledger.devolucaoTx(tx, o.ID, pid, -d, obs, ator); err != nil {
				return nil, err
			}
		default:
			continue
		}
		afetados = append(afetados, pid)
	}
	return afetados, nil
}

func (s *ordemService) verificarEstoqueTx(tx *gorm.DB, ids []uuid.UUID, qtds map[uuid.UUID]int) error {
	for _, pid := range ids {
		p, err := s.produtos.FindByIDForUpdateTx(tx, pid)
		if err != nil {
			return notFoundOr(err, "Produto não encontrado")
		}
		if p.QuantidadeAtual < qtds[pid] {
			return &EstoqueInsuficienteError{Produto: p.Nome, Disponivel: p.QuantidadeAtual, Solicitado: qtds[pid]}
		}
	}
	return nil
}

// registrarHistoricoTx records maintenance history without failing the
// completion: a history error is logged and undone through a savepoint. Only a
// broken savepoint, which leaves the transaction unusable, is returned.
func (s *ordemService) registrarHistoricoTx(tx *gorm.DB, o *model.OrdemServico) error {
	if s.manutencao == nil {
		return nil
	}
	const sp = "historico_manutencao"
	if tx != nil {
		if err := tx.SavePoint(sp).Error; err != nil {
			return fmt.Errorf("savepoint do histórico: %w", err)
		}
	}
	if _, err := s.manutencao.RegistrarHistoricoTx(tx, o); err != nil {
		log.Error().Err(err).Str("numero", o.Numero).Msg("ordem: falha ao registrar histórico de manutenção")
		if tx != nil {
			if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
				return fmt.Errorf("rollback do savepoint do histórico: %w", rbErr)
			}
		}
	}
	return nil
}

func (s *ordemService) notificarConclusao(ctx context.Context, o *model.OrdemServico) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.OrdemConcluidaPayload{OrdemID: o.ID.String()}
	if o.Cliente != nil && o.Cliente.Email != nil && *o.Cliente.Email != "" {
		payload.ClienteEmail = o.Cliente.Email
	}
	if err := s.dispatcher.EnqueueOrdemConcluida(ctx, payload); err != nil {
		log.Warn().Err(err).Str("numero", o.Numero).Msg("ordem: failed to enqueue conclusion job")
	}
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *ordemService) Obter(ctx context.Context, id uuid.UUID) (*dto.OrdemResponse, error) {
	resp, _, err := s.obter(ctx, id)
	return resp, err
}

func (s *ordemService) obter(ctx context.Context, id uuid.UUID) (*dto.OrdemResponse, *model.OrdemServico, error) {
	o, err := s.ordens.FindByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundOr(err, "Ordem de serviço não encontrada")
	}
	return ordemToResponse(o), o, nil
}

func (s *ordemService) Listar(ctx context.Context, filter dto.OrdemFilter) (*dto.OrdemListResponse, error) {
	ordens, total, err := s.ordens.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrdemResponse, 0, len(ordens))
	for i := range ordens {
		out = append(out, *ordemToResponse(&ordens[i]))
	}
	return &dto.OrdemListResponse{
		Data:       out,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPaginas(total, filter.Limit),
	}, nil
}

func (s *ordemService) Estatisticas(ctx context.Context) (*dto.OrdemEstatisticasResponse, error) {
	porStatus, err := s.ordens.ContarPorStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range porStatus {
		total += n
	}
	valor, err := s.ordens.SomaTotal(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	inicio := inicioDoMes(s.now())
	mes, err := s.ordens.SomaTotal(ctx, model.OrdemConcluida, &inicio)
	if err != nil {
		return nil, err
	}
	return &dto.OrdemEstatisticasResponse{
		PorStatus:           porStatus,
		Total:               total,
		ValorTotal:          valor,
		FaturamentoMesAtual: mes,
	}, nil
}

func (s *ordemService) GerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	o, err := s.ordens.FindByID(ctx, id)
	if err != nil {
		return "", notFoundOr(err, "Ordem de serviço não encontrada")
	}
	return infra.GenerateOrdemPDF(o, s.shopName, s.pdfPath)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// montarItens validates item requests and resolves their products. Service
// lines never carry a product.
func (s *ordemService) montarItens(ctx context.Context, reqs []dto.ItemOrdemRequest) ([]model.ItemOrdem, map[uuid.UUID]*model.Produto, error) {
	produtos := make(map[uuid.UUID]*model.Produto)
	itens := make([]model.ItemOrdem, 0, len(reqs))
	base := s.now()
	for i, r := range reqs {
		if r.Quantidade <= 0 {
			return nil, nil, validacao("Quantidade do item %d deve ser maior que zero", i+1)
		}
		if r.ValorUnitario.IsNegative() || r.DescontoItem.IsNegative() {
			return nil, nil, validacao("Valores do item %d não podem ser negativos", i+1)
		}
		it := model.ItemOrdem{
			ID:            uuid.New(),
			Descricao:     strings.TrimSpace(r.Descricao),
			Quantidade:    r.Quantidade,
			ValorUnitario: r.ValorUnitario,
			DescontoItem:  r.DescontoItem,
			Tipo:          r.Tipo,
			Observacoes:   r.Observacoes,
			CreatedAt:     base.Add(time.Duration(i) * time.Microsecond),
		}
		it.ValorTotal = totalItem(it.Quantidade, it.ValorUnitario, it.DescontoItem)
		if it.ValorTotal.IsNegative() {
			return nil, nil, validacao("Desconto do item %d maior que o valor do item", i+1)
		}
		if r.Tipo == model.ItemProduto {
			if r.ProdutoID == nil || *r.ProdutoID == "" {
				return nil, nil, validacao("Item %d do tipo PRODUTO exige produto_id", i+1)
			}
			pid, err := uuid.Parse(*r.ProdutoID)
			if err != nil {
				return nil, nil, validacao("produto_id inválido no item %d", i+1)
			}
			p, ok := produtos[pid]
			if !ok {
				p, err = s.produtos.FindByID(ctx, pid)
				if err != nil {
					return nil, nil, notFoundOr(err, fmt.Sprintf("Produto %s não encontrado", pid))
				}
				if !p.Ativo {
					return nil, nil, validacao("Produto %s está inativo", p.Nome)
				}
				produtos[pid] = p
			}
			it.ProdutoID = &pid
			if it.Descricao == "" {
				it.Descricao = p.Nome
			}
		}
		if it.Descricao == "" {
			return nil, nil, validacao("Descrição do item %d é obrigatória", i+1)
		}
		itens = append(itens, it)
	}
	return itens, produtos, nil
}

func aplicarCampos(o *model.OrdemServico, req dto.AtualizarOrdemRequest) {
	if req.Prioridade != nil {
		o.Prioridade = *req.Prioridade
	}
	if req.DescricaoServico != nil {
		o.DescricaoServico = req.DescricaoServico
	}
	if req.DescricaoProblema != nil {
		o.DescricaoProblema = req.DescricaoProblema
	}
	if req.Observacoes != nil {
		o.Observacoes = req.Observacoes
	}
	if req.DataPrevista != nil {
		o.DataPrevista = req.DataPrevista
	}
	if req.KmVeiculo != nil {
		o.KmVeiculo = req.KmVeiculo
	}
	if req.ValorServico != nil {
		o.ValorServico = *req.ValorServico
	}
	if req.PercentualDesconto != nil {
		o.PercentualDesconto = *req.PercentualDesconto
	}
	if req.TipoDesconto != nil {
		o.TipoDesconto = *req.TipoDesconto
	}
	if req.FuncionarioResponsavel != nil {
		o.FuncionarioResponsavel = req.FuncionarioResponsavel
	}
	if req.FormaPagamento != nil {
		o.FormaPagamento = req.FormaPagamento
	}
	if req.AprovadoCliente != nil {
		o.AprovadoCliente = *req.AprovadoCliente
	}
}

func (s *ordemService) validarValores(ctx context.Context, o *model.OrdemServico) error {
	if o.ValorServico.IsNegative() {
		return validacao("Valor do serviço não pode ser negativo")
	}
	if o.PercentualDesconto.IsNegative() || o.PercentualDesconto.GreaterThan(cem) {
		return validacao("Percentual de desconto deve estar entre 0 e 100")
	}
	if limite := s.descontoMaximo(ctx); o.PercentualDesconto.GreaterThan(limite) {
		return validacao("Percentual de desconto acima do máximo permitido (%s%%)", limite.String())
	}
	return nil
}

// descontoMaximo reads desconto_maximo_os. Without the setting any discount
// up to 100% is accepted.
func (s *ordemService) descontoMaximo(ctx context.Context) decimal.Decimal {
	if s.config == nil {
		return cem
	}
	c, err := s.config.Get(ctx, model.ConfigDescontoMaximoOS)
	if err != nil {
		return cem
	}
	m, err := decimal.NewFromString(strings.TrimSpace(c.Valor))
	if err != nil || m.IsNegative() {
		log.Warn().Str("valor", c.Valor).Msg("ordem: desconto_maximo_os inválido, ignorando")
		return cem
	}
	return m
}

func valorOuPadrao(v, padrao string) string {
	if v == "" {
		return padrao
	}
	return v
}

func totalPaginas(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func inicioDoMes(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func ordemToResponse(o *model.OrdemServico) *dto.OrdemResponse {
	resp := &dto.OrdemResponse{
		ID:                     o.ID.String(),
		Numero:                 o.Numero,
		ClienteID:              o.ClienteID.String(),
		TipoOrdem:              o.TipoOrdem,
		Status:                 o.Status,
		Prioridade:             o.Prioridade,
		DescricaoServico:       o.DescricaoServico,
		DescricaoProblema:      o.DescricaoProblema,
		Observacoes:            o.Observacoes,
		DataAbertura:           o.DataAbertura,
		DataPrevista:           o.DataPrevista,
		DataConclusao:          o.DataConclusao,
		KmVeiculo:              o.KmVeiculo,
		ValorPecas:             o.ValorPecas,
		ValorServico:           o.ValorServico,
		ValorSubtotal:          o.ValorSubtotal,
		PercentualDesconto:     o.PercentualDesconto,
		ValorDesconto:          o.ValorDesconto,
		TipoDesconto:           o.TipoDesconto,
		ValorTotal:             o.ValorTotal,
		FuncionarioResponsavel: o.FuncionarioResponsavel,
		FormaPagamento:         o.FormaPagamento,
		AprovadoCliente:        o.AprovadoCliente,
		MotivoCancelamento:     o.MotivoCancelamento,
		Itens:                  make([]dto.ItemOrdemResponse, 0, len(o.Itens)),
	}
	if o.Cliente != nil {
		resp.ClienteNome = o.Cliente.Nome
	}
	if o.VeiculoID != nil {
		vid := o.VeiculoID.String()
		resp.VeiculoID = &vid
	}
	if o.Veiculo != nil {
		resp.VeiculoPlaca = o.Veiculo.Placa
	}
	for _, it := range o.Itens {
		ir := dto.ItemOrdemResponse{
			ID:            it.ID.String(),
			Descricao:     it.Descricao,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
			DescontoItem:  it.DescontoItem,
			ValorTotal:    it.ValorTotal,
			Tipo:          it.Tipo,
			Observacoes:   it.Observacoes,
		}
		if it.ProdutoID != nil {
			pid := it.ProdutoID.String()
			ir.ProdutoID = &pid
		}
		resp.Itens = append(resp.Itens, ir)
	}
	return resp
}
