package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relogio advances one second per reading so consecutive lots never share an
// entry time.
type relogio struct{ t time.Time }

func (r *relogio) now() time.Time {
	r.t = r.t.Add(time.Second)
	return r.t
}

type estoqueFixture struct {
	produtos     *stubProdutoRepo
	lotes        *stubLoteRepo
	movimentos   *stubMovimentoRepo
	precos       *stubHistoricoPrecoRepo
	fornecedores *stubFornecedorRepo
	svc          *estoqueService
}

func newEstoqueFixture() *estoqueFixture {
	f := &estoqueFixture{
		produtos:     newStubProdutoRepo(),
		lotes:        newStubLoteRepo(),
		movimentos:   &stubMovimentoRepo{},
		precos:       &stubHistoricoPrecoRepo{},
		fornecedores: newStubFornecedorRepo(),
	}
	f.svc = NewEstoqueService(f.produtos, f.lotes, f.movimentos, f.precos, f.fornecedores, nil).(*estoqueService)
	f.svc.ledger.now = (&relogio{t: t0}).now
	return f
}

func seedProduto(repo *stubProdutoRepo, nome string, qtd int, custo, venda string) *model.Produto {
	p := &model.Produto{
		ID:               uuid.New(),
		Codigo:           "COD-" + nome,
		Nome:             nome,
		PrecoCusto:       decimal.RequireFromString(custo),
		PrecoVenda:       decimal.RequireFromString(venda),
		QuantidadeAtual:  qtd,
		QuantidadeMinima: 2,
		Unidade:          "UN",
		Ativo:            true,
	}
	repo.produtos[p.ID] = p
	return p
}

func (f *estoqueFixture) entrada(t *testing.T, p *model.Produto, qtd int, custo string) {
	t.Helper()
	_, err := f.svc.RegistrarEntrada(context.Background(), dto.EntradaEstoqueRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: qtd,
		PrecoCusto: decimal.RequireFromString(custo),
	}, nil)
	require.NoError(t, err)
}

// conservado checks that the product counter equals the sum of its lot balances.
func conservado(t *testing.T, produtos *stubProdutoRepo, lotes *stubLoteRepo, id uuid.UUID) {
	t.Helper()
	soma := 0
	for _, s := range lotes.saldos(id) {
		soma += s
	}
	assert.Equal(t, produtos.produtos[id].QuantidadeAtual, soma, "quantidade do produto difere da soma dos lotes")
}

func TestRegistrarEntrada_CriaLoteEAtualizaPrecos(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Filtro de Óleo", 0, "4.00", "10.00")
	venda := decimal.RequireFromString("12.00")
	ator := &Ator{ID: uuid.New(), Nome: "Maria"}

	mov, err := f.svc.RegistrarEntrada(context.Background(), dto.EntradaEstoqueRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: 10,
		PrecoCusto: decimal.RequireFromString("5.00"),
		PrecoVenda: &venda,
	}, ator)
	require.NoError(t, err)

	assert.Equal(t, model.MovimentoEntrada, mov.Tipo)
	assert.Equal(t, model.OrigemCompra, mov.Origem)
	assert.Equal(t, 0, mov.EstoqueAnterior)
	assert.Equal(t, 10, mov.EstoqueNovo)
	assert.True(t, mov.ValorTotal.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, mov.UsuarioNome)
	assert.Equal(t, "Maria", *mov.UsuarioNome)

	assert.Equal(t, []int{10}, f.lotes.saldos(p.ID))
	for _, l := range f.lotes.lotes {
		require.NotNil(t, l.NumeroLote)
		assert.Contains(t, *l.NumeroLote, "LOTE-COD-Filtro de Óleo-")
	}
	stored := f.produtos.produtos[p.ID]
	assert.Equal(t, 10, stored.QuantidadeAtual)
	assert.True(t, stored.PrecoCusto.Equal(decimal.RequireFromString("5")))
	assert.True(t, stored.PrecoVenda.Equal(venda))

	require.Len(t, f.precos.historico, 1)
	assert.Equal(t, model.MotivoPrecoEntrada, f.precos.historico[0].Motivo)
	assert.True(t, f.precos.historico[0].CustoAntes.Equal(decimal.RequireFromString("4")))
}

func TestRegistrarEntrada_PrecoInalteradoNaoGeraHistorico(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Vela", 0, "4.00", "10.00")

	f.entrada(t, p, 3, "4.00")
	assert.Empty(t, f.precos.historico)
	conservado(t, f.produtos, f.lotes, p.ID)
}

func TestRegistrarEntrada_CustoZeroUsaCustoDoProduto(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Palheta", 0, "7.50", "15.00")

	mov, err := f.svc.RegistrarEntrada(context.Background(), dto.EntradaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 2}, nil)
	require.NoError(t, err)
	assert.True(t, mov.PrecoCusto.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, mov.ValorTotal.Equal(decimal.NewFromInt(15)))
}

func TestRegistrarEntrada_Rejeicoes(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Correia", 0, "40.00", "80.00")
	ctx := context.Background()

	fid := uuid.New().String()
	_, err := f.svc.RegistrarEntrada(ctx, dto.EntradaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 1, FornecedorID: &fid}, nil)
	assert.True(t, errors.Is(err, ErrNaoEncontrado))

	_, err = f.svc.RegistrarEntrada(ctx, dto.EntradaEstoqueRequest{ProdutoID: uuid.New().String(), Quantidade: 1}, nil)
	assert.True(t, errors.Is(err, ErrNaoEncontrado))

	f.produtos.produtos[p.ID].Ativo = false
	_, err = f.svc.RegistrarEntrada(ctx, dto.EntradaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 1}, nil)
	assert.True(t, errors.Is(err, ErrValidacao))

	assert.Empty(t, f.movimentos.movimentos)
	assert.Empty(t, f.lotes.lotes)
}

func TestRegistrarSaida_CustoFIFO(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Óleo 5W30", 0, "5.00", "12.00")
	f.entrada(t, p, 10, "5.00")
	f.entrada(t, p, 5, "8.00")

	mov, err := f.svc.RegistrarSaida(context.Background(), dto.SaidaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 12}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.MovimentoSaida, mov.Tipo)
	assert.True(t, mov.PrecoCusto.Equal(decimal.RequireFromString("5.5")), "custo: %s", mov.PrecoCusto)
	assert.True(t, mov.ValorTotal.Equal(decimal.NewFromInt(66)), "total: %s", mov.ValorTotal)
	assert.Equal(t, 15, mov.EstoqueAnterior)
	assert.Equal(t, 3, mov.EstoqueNovo)

	assert.Equal(t, []int{0, 3}, f.lotes.saldos(p.ID))
	assert.Equal(t, 3, f.produtos.produtos[p.ID].QuantidadeAtual)
	assert.Len(t, f.lotes.consumos, 2)
	conservado(t, f.produtos, f.lotes, p.ID)
}

func TestRegistrarSaida_EstoqueInsuficiente(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Pastilha", 0, "30.00", "60.00")
	f.entrada(t, p, 5, "30.00")
	antes := len(f.movimentos.movimentos)

	_, err := f.svc.RegistrarSaida(context.Background(), dto.SaidaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 6}, nil)

	var insuf *EstoqueInsuficienteError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, "Pastilha", insuf.Produto)
	assert.Equal(t, 5, insuf.Disponivel)
	assert.Equal(t, 6, insuf.Solicitado)
	assert.Len(t, f.movimentos.movimentos, antes)
	assert.Equal(t, []int{5}, f.lotes.saldos(p.ID))
	assert.Equal(t, 5, f.produtos.produtos[p.ID].QuantidadeAtual)
}

func TestRegistrarSaida_ProdutoSemLotesUsaCustoNominal(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Aditivo", 4, "7.00", "14.00")

	mov, err := f.svc.RegistrarSaida(context.Background(), dto.SaidaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 3}, nil)
	require.NoError(t, err)
	assert.True(t, mov.ValorTotal.Equal(decimal.NewFromInt(21)))
	assert.Equal(t, 1, f.produtos.produtos[p.ID].QuantidadeAtual)
	assert.Empty(t, f.lotes.consumos)
}

func TestRegistrarSaida_LotesParciaisNaoCobrem(t *testing.T) {
	f := newEstoqueFixture()
	// 4 units counted before lot tracking plus a 2-unit lot.
	p := seedProduto(f.produtos, "Fluido", 4, "10.00", "20.00")
	f.entrada(t, p, 2, "10.00")

	_, err := f.svc.RegistrarSaida(context.Background(), dto.SaidaEstoqueRequest{ProdutoID: p.ID.String(), Quantidade: 5}, nil)
	var insuf *EstoqueInsuficienteError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, 2, insuf.Disponivel)
	assert.Equal(t, 6, f.produtos.produtos[p.ID].QuantidadeAtual)
}

func TestAjustarEstoque(t *testing.T) {
	f := newEstoqueFixture()
	p := seedProduto(f.produtos, "Lâmpada", 0, "3.00", "9.00")
	f.entrada(t, p, 5, "3.00")
	ctx := context.Background()

	mov, err := f.svc.AjustarEstoque(ctx, p.ID, dto.AjusteEstoqueRequest{NovoEstoque: 8}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.MovimentoEntrada, mov.Tipo)
	assert.Equal(t, model.OrigemAjuste, mov.Origem)
	assert.Equal(t, 3, mov.Quantidade)
	require.NotNil(t, mov.Motivo)
	assert.Equal(t, "Ajuste de inventário", *mov.Motivo)
	assert.Equal(t, []int{5, 3}, f.lotes.saldos(p.ID))

	mov, err = f.svc.AjustarEstoque(ctx, p.ID, dto.AjusteEstoqueRequest{NovoEstoque: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.MovimentoSaida, mov.Tipo)
	assert.Equal(t, 6, mov.Quantidade)
	assert.Equal(t, []int{0, 2}, f.lotes.saldos(p.ID))
	conservado(t, f.produtos, f.lotes, p.ID)

	_, err = f.svc.AjustarEstoque(ctx, p.ID, dto.AjusteEstoqueRequest{NovoEstoque: 2}, nil)
	assert.True(t, errors.Is(err, ErrValidacao))

	_, err = f.svc.AjustarEstoque(ctx, uuid.New(), dto.AjusteEstoqueRequest{NovoEstoque: 1}, nil)
	assert.True(t, errors.Is(err, ErrNaoEncontrado))
}
