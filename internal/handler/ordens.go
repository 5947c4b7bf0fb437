package handler

import (
	"net/http"
	"path/filepath"

	"autocenter/internal/dto"
	"autocenter/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdensHandler struct{ svc service.OrdemService }

func NewOrdensHandler(svc service.OrdemService) *OrdensHandler {
	return &OrdensHandler{svc: svc}
}

// Criar godoc
// @Summary Abre uma ordem de serviço (status PENDENTE)
// @Tags ordens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarOrdemRequest true "Ordem"
// @Success 201 {object} dto.OrdemResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/ordens [post]
func (h *OrdensHandler) Criar(c *gin.Context) {
	var req dto.CriarOrdemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req, ator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista ordens com filtros
// @Tags ordens
// @Produce json
// @Security BearerAuth
// @Param cliente_id query string false "Cliente"
// @Param veiculo_id query string false "Veículo"
// @Param status query string false "Status"
// @Param tipo_ordem query string false "VENDA | SERVICO | VENDA_SERVICO"
// @Param desde query string false "Data inicial (YYYY-MM-DD)"
// @Param ate query string false "Data final (YYYY-MM-DD)"
// @Success 200 {object} dto.OrdemListResponse
// @Router /v1/ordens [get]
func (h *OrdensHandler) Listar(c *gin.Context) {
	var filter dto.OrdemFilter
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

func (h *OrdensHandler) Obter(c *gin.Context) {
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

// Atualizar godoc
// @Summary Atualiza campos, itens e status de uma ordem
// @Description Mudanças de status seguem a máquina de estados; EM_ANDAMENTO
// @Description consome estoque em FIFO e a saída dele estorna os lotes.
// @Tags ordens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da ordem"
// @Param body body dto.AtualizarOrdemRequest true "Alterações"
// @Success 200 {object} dto.OrdemResponse
// @Failure 400 {object} apierror.APIError "Transição inválida ou estoque insuficiente"
// @Router /v1/ordens/{id} [put]
func (h *OrdensHandler) Atualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AtualizarOrdemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req, ator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar DELETE /v1/ordens/:id
func (h *OrdensHandler) Cancelar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.CancelarOrdemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo, ator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estatisticas GET /v1/ordens/estatisticas
func (h *OrdensHandler) Estatisticas(c *gin.Context) {
	resp, err := h.svc.Estatisticas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF godoc
// @Summary Documento da ordem em PDF
// @Tags ordens
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID da ordem"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/ordens/{id}/pdf [get]
func (h *OrdensHandler) PDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	path, err := h.svc.GerarPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
