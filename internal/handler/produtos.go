package handler

import (
	"net/http"
	"strconv"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 409 {object} apierror.APIError "Código já cadastrado"
// @Router /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista produtos com filtros
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param search query string false "Nome ou código"
// @Param categoria query string false "Categoria"
// @Param fornecedor_id query string false "Fornecedor"
// @Param estoque_baixo query bool false "Apenas estoque baixo"
// @Param page query int false "Página"
// @Param limit query int false "Itens por página"
// @Success 200 {object} dto.ProdutoListResponse
// @Router /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutosHandler) Obter(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutosHandler) Desativar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BaixoEstoque GET /v1/produtos/estoque-baixo
func (h *ProdutosHandler) BaixoEstoque(c *gin.Context) {
	resp, err := h.svc.BaixoEstoque(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistoricoPrecos GET /v1/produtos/:id/historico-precos?page=&limit=
func (h *ProdutosHandler) HistoricoPrecos(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, total, err := h.svc.HistoricoPrecos(c.Request.Context(), id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": page, "limit": limit})
}

// AplicarMargem godoc
// @Summary Reprecifica todos os produtos ativos com custo pela margem informada
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AplicarMargemRequest true "Margem (%); vazio usa a margem padrão"
// @Success 200 {object} dto.AplicarMargemResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos/aplicar-margem [post]
func (h *ProdutosHandler) AplicarMargem(c *gin.Context) {
	var req dto.AplicarMargemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarMargem(c.Request.Context(), req.Margem)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
