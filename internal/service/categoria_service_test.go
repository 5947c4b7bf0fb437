package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autocenter/internal/dto"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoriaRepo struct {
	itens map[uuid.UUID]*model.Categoria
}

func (r *stubCategoriaRepo) Criar(_ context.Context, c *model.Categoria) error {
	cp := *c
	r.itens[c.ID] = &cp
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.itens {
		if c.Ativo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoriaRepo) ObterPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.itens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoriaRepo) ObterPorNome(_ context.Context, nome string) (*model.Categoria, error) {
	for _, c := range r.itens {
		if strings.EqualFold(c.Nome, nome) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Atualizar(_ context.Context, c *model.Categoria) error {
	cp := *c
	r.itens[c.ID] = &cp
	return nil
}

func (r *stubCategoriaRepo) Desativar(_ context.Context, id uuid.UUID) error {
	r.itens[id].Ativo = false
	return nil
}

func TestCategoriaNomeUnicoSemCaixa(t *testing.T) {
	svc := NewCategoriaService(&stubCategoriaRepo{itens: map[uuid.UUID]*model.Categoria{}})
	ctx := context.Background()

	filtros, err := svc.Criar(ctx, dto.CriarCategoriaRequest{Nome: " Filtros "})
	require.NoError(t, err)
	assert.Equal(t, "Filtros", filtros.Nome)

	_, err = svc.Criar(ctx, dto.CriarCategoriaRequest{Nome: "FILTROS"})
	assert.True(t, errors.Is(err, ErrConflito))

	oleos, err := svc.Criar(ctx, dto.CriarCategoriaRequest{Nome: "Óleos"})
	require.NoError(t, err)

	_, err = svc.Atualizar(ctx, oleos.ID, dto.AtualizarCategoriaRequest{Nome: strPtr("filtros")})
	assert.True(t, errors.Is(err, ErrConflito))

	// Renaming to itself with a different case is allowed.
	up, err := svc.Atualizar(ctx, filtros.ID, dto.AtualizarCategoriaRequest{Nome: strPtr("FILTROS")})
	require.NoError(t, err)
	assert.Equal(t, "FILTROS", up.Nome)
}

func TestCategoriaDesativar(t *testing.T) {
	svc := NewCategoriaService(&stubCategoriaRepo{itens: map[uuid.UUID]*model.Categoria{}})
	ctx := context.Background()

	c, err := svc.Criar(ctx, dto.CriarCategoriaRequest{Nome: "Freios"})
	require.NoError(t, err)
	require.NoError(t, svc.Desativar(ctx, c.ID))

	list, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.Desativar(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNaoEncontrado))
}
