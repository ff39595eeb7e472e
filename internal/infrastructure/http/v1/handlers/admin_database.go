package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"edr/internal/infrastructure/http/v1/dto"
	"edr/internal/infrastructure/storage/postgres"
)

// connectTimeout bounds the administrative connection attempt.
const connectTimeout = 10 * time.Second

func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

// AdminDatabaseHandler serves the database administration endpoints.
// They connect with the credentials from the request body, never with
// the server's own backend.
type AdminDatabaseHandler struct {
	*BaseHandler
}

// NewAdminDatabaseHandler creates the database administration handler.
func NewAdminDatabaseHandler(base *BaseHandler) *AdminDatabaseHandler {
	return &AdminDatabaseHandler{BaseHandler: base}
}

// Initialize handles POST /admin/database/initialize. It creates every
// missing application table with the requested prefix.
func (h *AdminDatabaseHandler) Initialize(c *gin.Context) {
	var cfg dto.DatabaseConfig
	if !h.BindJSON(c, &cfg) {
		return
	}

	ctx, cancel := contextWithTimeout(c, connectTimeout)
	defer cancel()

	poolCfg := postgres.DefaultPoolConfig(cfg.DSN())
	poolCfg.MaxConns = 2
	poolCfg.MinConns = 0

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		h.Error(c, err)
		return
	}
	defer pool.Close()

	if err := postgres.CreateSchema(ctx, pool, cfg.TablePrefix); err != nil {
		h.Error(c, err)
		return
	}

	tables := postgres.TableNames(cfg.TablePrefix)
	h.OK(c, dto.DatabaseResult{
		Success: true,
		Message: fmt.Sprintf("%d tables ready", len(tables)),
		Tables:  tables,
	})
}

// Verify handles POST /admin/database/verify. It reports which
// application tables are present.
func (h *AdminDatabaseHandler) Verify(c *gin.Context) {
	var cfg dto.DatabaseConfig
	if !h.BindJSON(c, &cfg) {
		return
	}

	ctx, cancel := contextWithTimeout(c, connectTimeout)
	defer cancel()

	poolCfg := postgres.DefaultPoolConfig(cfg.DSN())
	poolCfg.MaxConns = 2
	poolCfg.MinConns = 0

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		h.Error(c, err)
		return
	}
	defer pool.Close()

	present, missing, err := postgres.VerifySchema(ctx, pool, cfg.TablePrefix)
	if err != nil {
		h.Error(c, err)
		return
	}

	result := dto.DatabaseResult{
		Success: len(missing) == 0,
		Tables:  present,
		Missing: missing,
	}
	if result.Success {
		result.Message = "all tables present"
	} else {
		result.Message = fmt.Sprintf("%d tables missing", len(missing))
	}
	h.OK(c, result)
}
