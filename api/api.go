package api

import (
	"net/http"

	"github.com/ladrillo-finance/ladrillo/api/middleware"
	"github.com/ladrillo-finance/ladrillo/config"

	"github.com/gin-gonic/gin"
	"github.com/ladrillo-finance/ladrillo"
)

type Api struct {
	ladrillo *ladrillo.Ladrillo
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/properties", a.CreateProperty)
	router.GET("/properties", a.GetAllProperties)
	router.GET("/properties/:id", a.GetProperty)
	router.PUT("/properties/:id", a.UpdateProperty)
	router.DELETE("/properties/:id", a.DeleteProperty)

	router.POST("/movements", a.CreateMovement)
	router.GET("/movements", a.GetMovements)
	router.GET("/movements/:id", a.GetMovement)
	router.PUT("/movements/:id/classification", a.ClassifyMovement)
	router.PUT("/movements/:id/property", a.AssignMovementProperty)
	router.DELETE("/movements", a.DeleteAllMovements)
	router.DELETE("/movements/range", a.DeleteMovementsByDateRange)

	router.POST("/movements/import", a.ImportMovements)
	router.POST("/movements/import-file", a.ImportStatementFile)

	router.POST("/rules", a.CreateRule)
	router.GET("/rules", a.GetAllRules)
	router.GET("/rules/:id", a.GetRule)
	router.PUT("/rules/:id", a.UpdateRule)
	router.DELETE("/rules/:id", a.DeleteRule)
	router.POST("/rules/test", a.TestRules)
	router.POST("/rules/auto-classify", a.AutoClassify)
	router.GET("/rules/suggestions", a.GetRuleSuggestions)

	return a.router
}

func NewAPI(l *ladrillo.Ladrillo) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}
	r.Use(middleware.RateLimitMiddleware(conf))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "server running...")
	})

	return &Api{ladrillo: l, router: r}
}
