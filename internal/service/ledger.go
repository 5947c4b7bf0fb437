package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Ator identifies the user behind a stock change. Nil means a system action.
type Ator struct {
	ID   uuid.UUID
	Nome string
}

func (a *Ator) ids() (*uuid.UUID, *string) {
	if a == nil {
		return nil, nil
	}
	id, nome := a.ID, a.Nome
	return &id, &nome
}

// ledger holds the stock primitives shared by the stock and order services.
// Every method runs inside the caller's transaction; product and lot rows are
// locked FOR UPDATE before they are read.
type ledger struct {
	produtos   repository.ProdutoRepository
	lotes      repository.LoteRepository
	movimentos repository.MovimentoRepository
	precos     repository.HistoricoPrecoRepository
	now        func() time.Time
}

func newLedger(
	produtos repository.ProdutoRepository,
	lotes repository.LoteRepository,
	movimentos repository.MovimentoRepository,
	precos repository.HistoricoPrecoRepository,
) *ledger {
	return &ledger{produtos: produtos, lotes: lotes, movimentos: movimentos, precos: precos, now: time.Now}
}

type entradaParams struct {
	ProdutoID    uuid.UUID
	Quantidade   int
	Custo        decimal.Decimal
	PrecoVenda   *decimal.Decimal
	FornecedorID *uuid.UUID
	NumeroLote   *string
	DataValidade *time.Time
	Origem       string
	// AtualizarPrecos copies positive Custo/PrecoVenda onto the product.
	AtualizarPrecos bool
	Motivo          *string
	Observacoes     *string
	Ator            *Ator
}

// entradaTx records an ENTRADA and creates exactly one lot for it.
func (l *ledger) entradaTx(tx *gorm.DB, p entradaParams) (*model.MovimentoEstoque, *model.LoteEstoque, error) {
	if p.Quantidade <= 0 {
		return nil, nil, validacao("Quantidade deve ser maior que zero")
	}
	if p.Custo.IsNegative() {
		return nil, nil, validacao("Preço de custo não pode ser negativo")
	}
	prod, err := l.produtos.FindByIDForUpdateTx(tx, p.ProdutoID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Produto não encontrado")
	}

	now := l.now()
	venda := prod.PrecoVenda
	if p.PrecoVenda != nil && p.PrecoVenda.IsPositive() {
		venda = *p.PrecoVenda
	}
	usuarioID, usuarioNome := p.Ator.ids()
	q := decimal.NewFromInt(int64(p.Quantidade))

	mov := &model.MovimentoEstoque{
		ID:              uuid.New(),
		ProdutoID:       prod.ID,
		FornecedorID:    p.FornecedorID,
		Tipo:            model.MovimentoEntrada,
		Origem:          p.Origem,
		Quantidade:      p.Quantidade,
		PrecoCusto:      p.Custo,
		PrecoVenda:      venda,
		ValorTotal:      p.Custo.Mul(q),
		EstoqueAnterior: prod.QuantidadeAtual,
		EstoqueNovo:     prod.QuantidadeAtual + p.Quantidade,
		Motivo:          p.Motivo,
		Observacoes:     p.Observacoes,
		UsuarioID:       usuarioID,
		UsuarioNome:     usuarioNome,
		CreatedAt:       now,
	}
	if err := l.movimentos.CreateTx(tx, mov); err != nil {
		return nil, nil, err
	}

	numero := fmt.Sprintf("LOTE-%s-%s", prod.Codigo, now.Format("20060102150405"))
	if p.NumeroLote != nil && *p.NumeroLote != "" {
		numero = *p.NumeroLote
	}
	lote := &model.LoteEstoque{
		ID:                 uuid.New(),
		ProdutoID:          prod.ID,
		MovimentoEntradaID: mov.ID,
		FornecedorID:       p.FornecedorID,
		QuantidadeInicial:  p.Quantidade,
		SaldoAtual:         p.Quantidade,
		PrecoCustoUnitario: p.Custo,
		PrecoVendaUnitario: venda,
		DataEntrada:        now,
		DataValidade:       p.DataValidade,
		NumeroLote:         &numero,
		Ativo:              true,
	}
	if err := l.lotes.CreateTx(tx, lote); err != nil {
		return nil, nil, err
	}
	if err := l.produtos.UpdateQuantidadeTx(tx, prod.ID, p.Quantidade); err != nil {
		return nil, nil, err
	}

	if p.AtualizarPrecos {
		novoCusto := prod.PrecoCusto
		if p.Custo.IsPositive() {
			novoCusto = p.Custo
		}
		if !novoCusto.Equal(prod.PrecoCusto) || !venda.Equal(prod.PrecoVenda) {
			if err := l.produtos.UpdatePrecosTx(tx, prod.ID, novoCusto, venda); err != nil {
				return nil, nil, err
			}
			h := &model.HistoricoPreco{
				ID:           uuid.New(),
				ProdutoID:    prod.ID,
				FornecedorID: p.FornecedorID,
				CustoAntes:   prod.PrecoCusto,
				CustoDepois:  novoCusto,
				VendaAntes:   prod.PrecoVenda,
				VendaDepois:  venda,
				Motivo:       model.MotivoPrecoEntrada,
				CreatedAt:    now,
			}
			if err := l.precos.CreateTx(tx, h); err != nil {
				return nil, nil, err
			}
		}
	}
	return mov, lote, nil
}

type saidaParams struct {
	ProdutoID   uuid.UUID
	Quantidade  int
	Origem      string
	OrdemID     *uuid.UUID
	PrecoVenda  *decimal.Decimal
	Motivo      *string
	Observacoes *string
	Ator        *Ator
}

// saidaTx removes stock through FIFO and records a SAIDA carrying the weighted
// cost. A product without any available lot (stock from before lot tracking)
// leaves at its nominal cost.
func (l *ledger) saidaTx(tx *gorm.DB, p saidaParams) (*model.MovimentoEstoque, error) {
	if p.Quantidade <= 0 {
		return nil, validacao("Quantidade deve ser maior que zero")
	}
	prod, err := l.produtos.FindByIDForUpdateTx(tx, p.ProdutoID)
	if err != nil {
		return nil, notFoundOr(err, "Produto não encontrado")
	}
	if prod.QuantidadeAtual < p.Quantidade {
		return nil, &EstoqueInsuficienteError{Produto: prod.Nome, Disponivel: prod.QuantidadeAtual, Solicitado: p.Quantidade}
	}

	lotes, err := l.lotes.ListDisponiveisTx(tx, prod.ID)
	if err != nil {
		return nil, err
	}
	saldosAntes := make(map[uuid.UUID]int, len(lotes))
	for _, lt := range lotes {
		saldosAntes[lt.ID] = lt.SaldoAtual
	}

	var res *ResultadoFIFO
	if len(lotes) == 0 {
		res = &ResultadoFIFO{
			CustoTotal: prod.PrecoCusto.Mul(decimal.NewFromInt(int64(p.Quantidade))),
			CustoMedio: prod.PrecoCusto,
		}
	} else {
		res, err = ConsumirFIFO(lotes, p.Quantidade)
		if err != nil {
			var insuf *EstoqueInsuficienteError
			if errors.As(err, &insuf) {
				insuf.Produto = prod.Nome
			}
			return nil, err
		}
	}

	venda := prod.PrecoVenda
	if p.PrecoVenda != nil {
		venda = *p.PrecoVenda
	}
	usuarioID, usuarioNome := p.Ator.ids()
	mov := &model.MovimentoEstoque{
		ID:              uuid.New(),
		ProdutoID:       prod.ID,
		Tipo:            model.MovimentoSaida,
		Origem:          p.Origem,
		Quantidade:      p.Quantidade,
		PrecoCusto:      res.CustoMedio.Round(2),
		PrecoVenda:      venda,
		ValorTotal:      res.CustoTotal,
		EstoqueAnterior: prod.QuantidadeAtual,
		EstoqueNovo:     prod.QuantidadeAtual - p.Quantidade,
		Motivo:          p.Motivo,
		Observacoes:     p.Observacoes,
		UsuarioID:       usuarioID,
		UsuarioNome:     usuarioNome,
		OrdemServicoID:  p.OrdemID,
		CreatedAt:       l.now(),
	}
	if err := l.movimentos.CreateTx(tx, mov); err != nil {
		return nil, err
	}

	for _, c := range res.Consumos {
		if err := l.lotes.UpdateSaldoTx(tx, c.LoteID, saldosAntes[c.LoteID]-c.Quantidade); err != nil {
			return nil, err
		}
		consumo := &model.ConsumoLote{
			ID:             uuid.New(),
			MovimentoID:    mov.ID,
			LoteID:         c.LoteID,
			ProdutoID:      prod.ID,
			OrdemServicoID: p.OrdemID,
			Quantidade:     c.Quantidade,
			CustoUnitario:  c.CustoUnitario,
			CreatedAt:      mov.CreatedAt,
		}
		if err := l.lotes.CreateConsumoTx(tx, consumo); err != nil {
			return nil, err
		}
	}

	if err := l.produtos.UpdateQuantidadeTx(tx, prod.ID, -p.Quantidade); err != nil {
		return nil, err
	}
	return mov, nil
}

// devolucaoTx credits quantidade of an order's product back to stock. The
// quantity goes back into the lots it was taken from, newest consumption
// first; anything without a consumption record only raises the product
// counter. The movement is tagged DEVOLUCAO so it counts as already returned.
func (l *ledger) devolucaoTx(tx *gorm.DB, ordemID, produtoID uuid.UUID, quantidade int, observacoes string, ator *Ator) (*model.MovimentoEstoque, error) {
	if quantidade <= 0 {
		return nil, validacao("Quantidade deve ser maior que zero")
	}
	prod, err := l.produtos.FindByIDForUpdateTx(tx, produtoID)
	if err != nil {
		return nil, notFoundOr(err, "Produto não encontrado")
	}

	consumos, err := l.lotes.ListConsumosPendentesTx(tx, ordemID, produtoID)
	if err != nil {
		return nil, err
	}
	restante := quantidade
	custo := decimal.Zero
	for _, c := range consumos {
		if restante == 0 {
			break
		}
		q := min(c.Pendente(), restante)
		if q <= 0 {
			continue
		}
		if err := l.lotes.AddSaldoTx(tx, c.LoteID, q); err != nil {
			return nil, err
		}
		if err := l.lotes.AddDevolvidoTx(tx, c.ID, q); err != nil {
			return nil, err
		}
		custo = custo.Add(c.CustoUnitario.Mul(decimal.NewFromInt(int64(q))))
		restante -= q
	}
	if restante > 0 {
		custo = custo.Add(prod.PrecoCusto.Mul(decimal.NewFromInt(int64(restante))))
	}

	if err := l.produtos.UpdateQuantidadeTx(tx, produtoID, quantidade); err != nil {
		return nil, err
	}

	motivo := "Devolução de ordem de serviço"
	usuarioID, usuarioNome := ator.ids()
	ordem := ordemID
	mov := &model.MovimentoEstoque{
		ID:              uuid.New(),
		ProdutoID:       produtoID,
		Tipo:            model.MovimentoEntrada,
		Origem:          model.OrigemDevolucao,
		Quantidade:      quantidade,
		PrecoCusto:      custo.Div(decimal.NewFromInt(int64(quantidade))).Round(2),
		PrecoVenda:      prod.PrecoVenda,
		ValorTotal:      custo,
		EstoqueAnterior: prod.QuantidadeAtual,
		EstoqueNovo:     prod.QuantidadeAtual + quantidade,
		Motivo:          &motivo,
		Observacoes:     &observacoes,
		UsuarioID:       usuarioID,
		UsuarioNome:     usuarioNome,
		OrdemServicoID:  &ordem,
		CreatedAt:       l.now(),
	}
	if err := l.movimentos.CreateTx(tx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// pendenteOrdemTx is what the order still owes the stock for one product:
// every order exit minus every reversal already credited.
func (l *ledger) pendenteOrdemTx(tx *gorm.DB, ordemID, produtoID uuid.UUID) (int, error) {
	saidas, err := l.movimentos.SumQuantidadeTx(tx, ordemID, produtoID, model.MovimentoSaida, model.OrigemOrdem)
	if err != nil {
		return 0, err
	}
	devolvido, err := l.movimentos.SumQuantidadeTx(tx, ordemID, produtoID, model.MovimentoEntrada, model.OrigemDevolucao)
	if err != nil {
		return 0, err
	}
	return saidas - devolvido, nil
}
