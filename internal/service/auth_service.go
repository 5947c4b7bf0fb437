package service

import (
	"context"
	"errors"
	"time"

	"autocenter/internal/config"
	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Token kinds carried in the "typ" claim. Only access tokens open protected
// routes; only refresh tokens are accepted by Refresh.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInativos bool) ([]dto.UsuarioResponse, error)
	AtualizarUsuario(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesativarUsuario(ctx context.Context, id uuid.UUID) error
	ReativarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo   repository.UsuarioRepository
	perfis repository.PerfilRepository
	cfg    *config.Config
	cost   int
}

func NewAuthService(repo repository.UsuarioRepository, perfis repository.PerfilRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, perfis: perfis, cfg: cfg, cost: 12}
}

// perfilPorRol is the profile a new user gets when none is given.
var perfilPorRol = map[string]string{
	model.RolAdministrador: model.PerfilAdministrador,
	model.RolSupervisor:    model.PerfilSupervisor,
	model.RolAtendente:     model.PerfilOperador,
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, naoAutorizado("Credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, naoAutorizado("Credenciais inválidas")
	}

	now := time.Now()
	user.UltimoLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.tokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, naoAutorizado("Refresh token inválido ou expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != TokenRefresh {
		return nil, naoAutorizado("Refresh token inválido ou expirado")
	}
	userIDStr, _ := claims["user_id"].(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, naoAutorizado("Token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Ativo {
		return nil, naoAutorizado("Usuário não encontrado ou inativo")
	}
	return s.tokens(user)
}

func (s *authService) CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	switch req.Rol {
	case model.RolAdministrador, model.RolSupervisor, model.RolAtendente:
	default:
		return nil, validacao("Perfil inválido: %s", req.Rol)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Ativo:        true,
	}
	if req.PerfilID != nil && *req.PerfilID != "" {
		if err := s.atribuirPerfil(ctx, user, *req.PerfilID); err != nil {
			return nil, err
		}
	} else if err := s.perfilPadrao(ctx, user); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, conflitoOr(err, "Usuário ou email já cadastrado")
	}
	return usuarioToResponse(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInativos bool) ([]dto.UsuarioResponse, error) {
	var (
		users []model.Usuario
		err   error
	)
	if incluirInativos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = *usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) AtualizarUsuario(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Usuário não encontrado")
	}
	if req.Nome != "" {
		user.Nome = req.Nome
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.PerfilID != nil {
		if *req.PerfilID == "" {
			user.PerfilID, user.Perfil = nil, nil
		} else if err := s.atribuirPerfil(ctx, user, *req.PerfilID); err != nil {
			return nil, err
		}
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, conflitoOr(err, "Email já cadastrado")
	}
	return usuarioToResponse(user), nil
}

func (s *authService) DesativarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Usuário não encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReativarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Usuário não encontrado")
	}
	return s.repo.Reativar(ctx, id)
}

func (s *authService) atribuirPerfil(ctx context.Context, user *model.Usuario, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return validacao("perfil_id inválido")
	}
	if s.perfis == nil {
		return naoEncontrado("Perfil não encontrado")
	}
	p, err := s.perfis.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Perfil não encontrado")
	}
	if !p.Ativo {
		return validacao("Perfil %s está inativo", p.Nome)
	}
	user.PerfilID, user.Perfil = &p.ID, p
	return nil
}

// perfilPadrao links the seeded profile matching the user's role, if present.
func (s *authService) perfilPadrao(ctx context.Context, user *model.Usuario) error {
	if s.perfis == nil {
		return nil
	}
	p, err := s.perfis.FindByNome(ctx, perfilPorRol[user.Rol])
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	}
	if p.Ativo {
		user.PerfilID, user.Perfil = &p.ID, p
	}
	return nil
}

func (s *authService) tokens(user *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.generateToken(user, TokenAccess, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, TokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, tipo string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"nome":     user.Nome,
		"rol":      user.Rol,
		"typ":      tipo,
		"exp":      now.Add(duration).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	r := &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nome:     u.Nome,
		Email:    u.Email,
		Rol:      u.Rol,
		Ativo:    u.Ativo,
	}
	if u.PerfilID != nil {
		id := u.PerfilID.String()
		r.PerfilID = &id
	}
	if u.Perfil != nil {
		r.PerfilNome = &u.Perfil.Nome
		r.Permissoes = permissoesParaMapa(u.Perfil.Permissoes)
	}
	return r
}
