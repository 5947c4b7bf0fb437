package service

import (
	"context"
	"errors"
	"testing"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type produtoFixture struct {
	produtos *stubProdutoRepo
	precos   *stubHistoricoPrecoRepo
	config   *stubConfiguracaoRepo
	svc      ProdutoService
}

func newProdutoFixture() *produtoFixture {
	f := &produtoFixture{
		produtos: newStubProdutoRepo(),
		precos:   &stubHistoricoPrecoRepo{},
		config:   newStubConfiguracaoRepo(),
	}
	f.svc = NewProdutoService(f.produtos, f.precos, newStubFornecedorRepo(), f.config, nil)
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCriarProduto(t *testing.T) {
	f := newProdutoFixture()
	ctx := context.Background()

	p, err := f.svc.Criar(ctx, dto.CriarProdutoRequest{Codigo: " FLT-01 ", Nome: "Filtro de óleo", PrecoCusto: dec("12"), PrecoVenda: dec("20")})
	require.NoError(t, err)
	assert.Equal(t, "FLT-01", p.Codigo)
	assert.Equal(t, "UN", p.Unidade)
	assert.Equal(t, 0, p.QuantidadeAtual)

	_, err = f.svc.Criar(ctx, dto.CriarProdutoRequest{Codigo: "FLT-01", Nome: "Outro"})
	assert.True(t, errors.Is(err, ErrConflito))

	_, err = f.svc.Criar(ctx, dto.CriarProdutoRequest{Codigo: "X", Nome: "Negativo", PrecoCusto: dec("-1")})
	assert.True(t, errors.Is(err, ErrValidacao))

	fid := uuid.NewString()
	_, err = f.svc.Criar(ctx, dto.CriarProdutoRequest{Codigo: "Y", Nome: "Sem fornecedor", FornecedorID: &fid})
	assert.True(t, errors.Is(err, ErrNaoEncontrado))
}

func TestAtualizarProduto_HistoricoManual(t *testing.T) {
	f := newProdutoFixture()
	p := seedProduto(f.produtos, "Vela", 7, "10.00", "15.00")

	nome := "Vela de ignição"
	_, err := f.svc.Atualizar(context.Background(), p.ID, dto.AtualizarProdutoRequest{Nome: &nome})
	require.NoError(t, err)
	assert.Empty(t, f.precos.historico)

	venda := dec("18.50")
	r, err := f.svc.Atualizar(context.Background(), p.ID, dto.AtualizarProdutoRequest{PrecoVenda: &venda})
	require.NoError(t, err)
	assert.True(t, r.PrecoVenda.Equal(venda))
	assert.Equal(t, 7, r.QuantidadeAtual)

	require.Len(t, f.precos.historico, 1)
	h := f.precos.historico[0]
	assert.Equal(t, model.MotivoPrecoManual, h.Motivo)
	assert.True(t, h.VendaAntes.Equal(dec("15")))
	assert.True(t, h.VendaDepois.Equal(venda))
	assert.True(t, h.CustoAntes.Equal(h.CustoDepois))
}

func TestAplicarMargem_PadraoConfigurado(t *testing.T) {
	f := newProdutoFixture()
	f.config.valores[model.ConfigMargemLucroPadrao] = &model.Configuracao{Chave: model.ConfigMargemLucroPadrao, Valor: "40", Tipo: "number"}
	a := seedProduto(f.produtos, "Pastilha", 3, "10.00", "15.00")
	b := seedProduto(f.produtos, "Correia", 1, "33.33", "46.66")
	seedProduto(f.produtos, "Brinde", 1, "0", "0")

	r, err := f.svc.AplicarMargem(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, r.Margem.Equal(dec("40")))
	assert.Equal(t, 1, r.ProdutosAfetados, "correia já está com 40%")

	assert.True(t, f.produtos.produtos[a.ID].PrecoVenda.Equal(dec("14.00")))
	assert.True(t, f.produtos.produtos[b.ID].PrecoVenda.Equal(dec("46.66")))
	require.Len(t, f.precos.historico, 1)
	assert.Equal(t, model.MotivoPrecoMargem, f.precos.historico[0].Motivo)
}

func TestAplicarMargem_Explicita(t *testing.T) {
	f := newProdutoFixture()
	a := seedProduto(f.produtos, "Disco", 1, "80.00", "100.00")

	m := dec("100")
	r, err := f.svc.AplicarMargem(context.Background(), &m)
	require.NoError(t, err)
	assert.Equal(t, 1, r.ProdutosAfetados)
	assert.True(t, f.produtos.produtos[a.ID].PrecoVenda.Equal(dec("160")))

	neg := dec("-5")
	_, err = f.svc.AplicarMargem(context.Background(), &neg)
	assert.True(t, errors.Is(err, ErrValidacao))
}

func TestAplicarMargem_SemConfiguracaoUsa50(t *testing.T) {
	f := newProdutoFixture()
	seedProduto(f.produtos, "Filtro", 1, "10.00", "10.00")

	r, err := f.svc.AplicarMargem(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, r.Margem.Equal(dec("50")))
}
