package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerfilService manages permission profiles. Profiles seeded as not editable
// (Administrador) reject updates and removal.
type PerfilService interface {
	Criar(ctx context.Context, req dto.CriarPerfilRequest) (*dto.PerfilResponse, error)
	Listar(ctx context.Context, apenasAtivos bool) ([]dto.PerfilResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.PerfilResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPerfilRequest) (*dto.PerfilResponse, error)
	Deletar(ctx context.Context, id uuid.UUID) error
	// Chaves lists the permission keys a profile may carry.
	Chaves() []string
}

type perfilService struct {
	repo repository.PerfilRepository
}

func NewPerfilService(repo repository.PerfilRepository) PerfilService {
	return &perfilService{repo: repo}
}

func (s *perfilService) Criar(ctx context.Context, req dto.CriarPerfilRequest) (*dto.PerfilResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	if err := s.nomeDisponivel(ctx, nome, uuid.Nil); err != nil {
		return nil, err
	}
	perms, err := permissoesDeMapa(req.Permissoes)
	if err != nil {
		return nil, err
	}
	p := &model.Perfil{
		ID:         uuid.New(),
		Nome:       nome,
		Descricao:  req.Descricao,
		Permissoes: perms,
		Ativo:      req.Ativo == nil || *req.Ativo,
		Editavel:   true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, conflitoOr(err, "Já existe um perfil com este nome")
	}
	return perfilToResponse(p), nil
}

func (s *perfilService) Listar(ctx context.Context, apenasAtivos bool) ([]dto.PerfilResponse, error) {
	list, err := s.repo.List(ctx, apenasAtivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PerfilResponse, 0, len(list))
	for i := range list {
		out = append(out, *perfilToResponse(&list[i]))
	}
	return out, nil
}

func (s *perfilService) Obter(ctx context.Context, id uuid.UUID) (*dto.PerfilResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Perfil não encontrado")
	}
	return perfilToResponse(p), nil
}

func (s *perfilService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPerfilRequest) (*dto.PerfilResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Perfil não encontrado")
	}
	if !p.Editavel {
		return nil, validacao("Este perfil não pode ser editado")
	}
	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if !strings.EqualFold(nome, p.Nome) {
			if err := s.nomeDisponivel(ctx, nome, p.ID); err != nil {
				return nil, err
			}
		}
		p.Nome = nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.Permissoes != nil {
		if p.Permissoes, err = permissoesDeMapa(req.Permissoes); err != nil {
			return nil, err
		}
	}
	if req.Ativo != nil {
		p.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, conflitoOr(err, "Já existe um perfil com este nome")
	}
	return perfilToResponse(p), nil
}

func (s *perfilService) Deletar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Perfil não encontrado")
	}
	if !p.Editavel {
		return validacao("Este perfil não pode ser deletado")
	}
	n, err := s.repo.ContarUsuarios(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflito(fmt.Sprintf("Não é possível deletar este perfil pois %d usuário(s) estão usando-o", n))
	}
	return s.repo.Delete(ctx, id)
}

func (s *perfilService) Chaves() []string {
	return chavesPermissao()
}

func (s *perfilService) nomeDisponivel(ctx context.Context, nome string, self uuid.UUID) error {
	existing, err := s.repo.FindByNome(ctx, nome)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != self {
		return conflito("Já existe um perfil com este nome")
	}
	return nil
}

func permissoesParaMapa(p model.Permissoes) map[string]bool {
	b, _ := json.Marshal(p)
	m := map[string]bool{}
	_ = json.Unmarshal(b, &m)
	return m
}

func chavesPermissao() []string {
	m := permissoesParaMapa(model.Permissoes{})
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// permissoesDeMapa rejects unknown keys; absent keys stay false.
func permissoesDeMapa(m map[string]bool) (model.Permissoes, error) {
	conhecidas := permissoesParaMapa(model.Permissoes{})
	for k := range m {
		if _, ok := conhecidas[k]; !ok {
			return model.Permissoes{}, validacao("Permissão desconhecida: %s", k)
		}
	}
	var p model.Permissoes
	b, err := json.Marshal(m)
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(b, &p)
	return p, err
}

func perfilToResponse(p *model.Perfil) *dto.PerfilResponse {
	return &dto.PerfilResponse{
		ID:         p.ID.String(),
		Nome:       p.Nome,
		Descricao:  p.Descricao,
		Permissoes: permissoesParaMapa(p.Permissoes),
		Ativo:      p.Ativo,
		Editavel:   p.Editavel,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
