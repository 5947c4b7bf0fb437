package service

import (
	"context"
	"errors"
	"testing"

	"autocenter/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFornecedorCnpj(t *testing.T) {
	repo := newStubFornecedorRepo()
	svc := NewFornecedorService(repo)
	ctx := context.Background()

	f, err := svc.Criar(ctx, dto.FornecedorRequest{Nome: " Distribuidora Sul ", Cnpj: strPtr("11.222.333/0001-81")})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Sul", f.Nome)
	assert.Equal(t, "11222333000181", *f.Cnpj)

	_, err = svc.Criar(ctx, dto.FornecedorRequest{Nome: "Cópia", Cnpj: strPtr("11222333000181")})
	assert.True(t, errors.Is(err, ErrConflito))

	_, err = svc.Criar(ctx, dto.FornecedorRequest{Nome: "Curto", Cnpj: strPtr("1234")})
	assert.True(t, errors.Is(err, ErrValidacao))

	id := uuid.MustParse(f.ID)
	up, err := svc.Atualizar(ctx, id, dto.FornecedorRequest{Nome: "Distribuidora Sul Ltda", Cnpj: f.Cnpj})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Sul Ltda", up.Nome)

	require.NoError(t, svc.Desativar(ctx, id))
	ativos, err := svc.Listar(ctx, "", false)
	require.NoError(t, err)
	assert.Empty(t, ativos)
	todos, err := svc.Listar(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	assert.True(t, errors.Is(svc.Reativar(ctx, uuid.New()), ErrNaoEncontrado))
}
