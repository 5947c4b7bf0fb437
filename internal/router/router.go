package router

import (
	"time"

	"autocenter/internal/config"
	"autocenter/internal/handler"
	"autocenter/internal/infra"
	"autocenter/internal/middleware"
	"autocenter/internal/model"
	"autocenter/internal/repository"
	"autocenter/internal/service"
	"autocenter/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, "api", 1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	locker := infra.NewRedisLocker(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	perfilRepo := repository.NewPerfilRepository(db)
	sugestaoRepo := repository.NewSugestaoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	veiculoRepo := repository.NewVeiculoRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	precoRepo := repository.NewHistoricoPrecoRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	movimentoRepo := repository.NewMovimentoRepository(db)
	ordemRepo := repository.NewOrdemRepository(db)
	manutencaoRepo := repository.NewManutencaoRepository(db)
	configRepo := repository.NewConfiguracaoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, perfilRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, veiculoRepo)
	veiculoSvc := service.NewVeiculoService(veiculoRepo, clienteRepo)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, precoRepo, fornecedorRepo, configRepo, rdb)
	estoqueSvc := service.NewEstoqueService(produtoRepo, loteRepo, movimentoRepo, precoRepo, fornecedorRepo, rdb)
	manutencaoSvc := service.NewManutencaoService(manutencaoRepo, veiculoRepo)
	ordemSvc := service.NewOrdemService(service.OrdemServiceDeps{
		Ordens:     ordemRepo,
		Clientes:   clienteRepo,
		Veiculos:   veiculoRepo,
		Produtos:   produtoRepo,
		Lotes:      loteRepo,
		Movimentos: movimentoRepo,
		Precos:     precoRepo,
		Manutencao: manutencaoSvc,
		Config:     configRepo,
		Dispatcher: dispatcher,
		Locker:     locker,
		RDB:        rdb,
		PDFPath:    cfg.PDFStoragePath,
		ShopName:   cfg.ShopName,
	})
	relatorioSvc := service.NewRelatorioService(produtoRepo, loteRepo, movimentoRepo)
	dashboardSvc := service.NewDashboardService(clienteRepo, veiculoRepo, produtoRepo, ordemRepo, movimentoRepo, manutencaoRepo)
	configSvc := service.NewConfiguracaoService(configRepo)
	perfilSvc := service.NewPerfilService(perfilRepo)
	sugestaoSvc := service.NewSugestaoService(sugestaoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	veiculosH := handler.NewVeiculosHandler(veiculoSvc, manutencaoSvc)
	fornecedoresH := handler.NewFornecedoresHandler(fornecedorSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	ordensH := handler.NewOrdensHandler(ordemSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	configH := handler.NewConfiguracoesHandler(configSvc)
	perfisH := handler.NewPerfisHandler(perfilSvc)
	sugestoesH := handler.NewSugestoesHandler(sugestaoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	var breaker handler.BreakerReporter
	if mailer != nil {
		breaker = mailer
	}
	r.GET("/health", handler.Health(db, rdb, breaker))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		todos := middleware.RequireRole(model.RolAtendente, model.RolSupervisor, model.RolAdministrador)
		gestao := middleware.RequireRole(model.RolSupervisor, model.RolAdministrador)
		admin := middleware.RequireRole(model.RolAdministrador)

		v1.GET("/auth/me", authH.Me)

		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Criar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/buscar", clientesH.Buscar)
			clientes.GET("/:id", clientesH.Obter)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.GET("/:id/veiculos", clientesH.Veiculos)
			clientes.DELETE("/:id", gestao, clientesH.Desativar)
			clientes.PATCH("/:id/reativar", gestao, clientesH.Reativar)
		}

		veiculos := v1.Group("/veiculos", todos)
		{
			veiculos.POST("", veiculosH.Criar)
			veiculos.GET("", veiculosH.Listar)
			veiculos.GET("/placa/:placa", veiculosH.PorPlaca)
			veiculos.GET("/:id", veiculosH.Obter)
			veiculos.PUT("/:id", veiculosH.Atualizar)
			veiculos.PATCH("/:id/km", veiculosH.AtualizarKm)
			veiculos.GET("/:id/manutencoes", veiculosH.Manutencoes)
			veiculos.GET("/:id/sugestoes-manutencao", veiculosH.Sugestoes)
			veiculos.PATCH("/:id/transferir", gestao, veiculosH.Transferir)
			veiculos.DELETE("/:id", gestao, veiculosH.Desativar)
		}

		// Catalogue reads are open to every role; writes need supervisor or above.
		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/estoque-baixo", todos, produtosH.BaixoEstoque)
		v1.GET("/produtos/:id", todos, produtosH.Obter)
		v1.GET("/produtos/:id/historico-precos", todos, produtosH.HistoricoPrecos)
		prods := v1.Group("/produtos", gestao)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
			prods.POST("/aplicar-margem", admin, produtosH.AplicarMargem)
		}

		estoque := v1.Group("/estoque")
		{
			estoque.GET("/lotes", todos, estoqueH.Lotes)
			estoque.GET("/lotes/:id", todos, estoqueH.Lote)
			estoque.GET("/movimentos", todos, estoqueH.Movimentos)
			estoque.POST("/entrada", gestao, estoqueH.Entrada)
			estoque.POST("/saida", gestao, estoqueH.Saida)
			estoque.POST("/ajuste/:id", gestao, estoqueH.Ajuste)
		}

		ordens := v1.Group("/ordens", todos)
		{
			ordens.POST("", ordensH.Criar)
			ordens.GET("", ordensH.Listar)
			ordens.GET("/estatisticas", ordensH.Estatisticas)
			ordens.GET("/:id", ordensH.Obter)
			ordens.PUT("/:id", ordensH.Atualizar)
			ordens.GET("/:id/pdf", ordensH.PDF)
			ordens.DELETE("/:id", gestao, ordensH.Cancelar)
		}

		v1.GET("/fornecedores", todos, fornecedoresH.Listar)
		v1.GET("/fornecedores/:id", todos, fornecedoresH.Obter)
		forn := v1.Group("/fornecedores", gestao)
		{
			forn.POST("", fornecedoresH.Criar)
			forn.PUT("/:id", fornecedoresH.Atualizar)
			forn.DELETE("/:id", fornecedoresH.Desativar)
			forn.PATCH("/:id/reativar", fornecedoresH.Reativar)
		}

		v1.GET("/categorias", todos, categoriasH.Listar)
		categorias := v1.Group("/categorias", gestao)
		{
			categorias.POST("", categoriasH.Criar)
			categorias.PUT("/:id", categoriasH.Atualizar)
			categorias.DELETE("/:id", categoriasH.Desativar)
		}

		rel := v1.Group("/relatorios", gestao)
		{
			rel.GET("/estoque", relatoriosH.Estoque)
			rel.GET("/estoque.xlsx", relatoriosH.EstoqueXLSX)
			rel.GET("/movimentos", relatoriosH.Movimentos)
			rel.GET("/movimentos.xlsx", relatoriosH.MovimentosXLSX)
		}

		sugestoes := v1.Group("/sugestoes-manutencao", todos)
		{
			sugestoes.GET("", sugestoesH.Listar)
			sugestoes.GET("/:id", sugestoesH.Obter)
			sugestoes.POST("", gestao, sugestoesH.Criar)
			sugestoes.PUT("/:id", gestao, sugestoesH.Atualizar)
			sugestoes.DELETE("/:id", gestao, sugestoesH.Deletar)
		}

		dash := v1.Group("/dashboard", todos)
		{
			dash.GET("/resumo", dashboardH.Resumo)
			dash.GET("/produtos-mais-usados", dashboardH.MaisUsados)
			dash.GET("/alertas", dashboardH.Alertas)
		}

		v1.GET("/configuracoes", gestao, configH.Listar)
		v1.GET("/configuracoes/:chave", gestao, configH.Obter)
		v1.PUT("/configuracoes/:chave", admin, configH.Atualizar)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.PATCH("/:id/reativar", usuariosH.Reativar)
		}

		perfis := v1.Group("/perfis", admin)
		{
			perfis.POST("", perfisH.Criar)
			perfis.GET("", perfisH.Listar)
			perfis.GET("/permissoes", perfisH.Permissoes)
			perfis.GET("/:id", perfisH.Obter)
			perfis.PUT("/:id", perfisH.Atualizar)
			perfis.DELETE("/:id", perfisH.Deletar)
		}
	}

	// Swagger UI, outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
