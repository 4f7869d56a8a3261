package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
	usersports "github.com/pustakahq/bookstore-api/internal/domains/users/ports"
)

// Dependencies carries the wired services the router dispatches to.
type Dependencies struct {
	ServiceName string
	Catalog     catalogports.Service
	Users       usersports.Service
	Orders      ordersports.Service
	Workflows   ordersports.WorkflowOrchestrator
	Tokens      usersports.TokenIssuer
	Ready       func() bool
}

// NewRouter builds the gin engine with all routes registered. Catalog reads
// and statistics are public; catalog mutations and everything touching a user
// identity require a bearer token.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.ServiceName != "" {
		router.Use(otelgin.Middleware(deps.ServiceName))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		if deps.Ready != nil && !deps.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	auth := &authHandler{users: deps.Users}
	genres := &genreHandler{catalog: deps.Catalog}
	books := &bookHandler{catalog: deps.Catalog}
	orders := &orderHandler{orders: deps.Orders, workflows: deps.Workflows}
	authed := requireAuth(deps.Tokens)

	api := router.Group("/api")
	{
		api.POST("/auth/register", auth.register)
		api.POST("/auth/login", auth.login)
		api.GET("/me", authed, auth.me)

		api.GET("/genres", genres.list)
		api.GET("/genres/:id", genres.get)
		api.POST("/genres", authed, genres.create)
		api.PATCH("/genres/:id", authed, genres.update)
		api.DELETE("/genres/:id", authed, genres.delete)

		api.GET("/books", books.list)
		api.GET("/books/:id", books.get)
		api.POST("/books", authed, books.create)
		api.PATCH("/books/:id", authed, books.update)
		api.DELETE("/books/:id", authed, books.delete)

		api.POST("/orders", authed, orders.place)
		api.GET("/orders", authed, orders.list)
		api.GET("/orders/:id", authed, orders.get)

		api.GET("/statistics", orders.statistics)
	}

	return router
}
