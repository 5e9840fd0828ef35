package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"olivia/pkg/ai"
	"olivia/pkg/climate"
)

var appStart = time.Now()

type HealthCtrl struct {
	db      *gorm.DB
	normals *climate.Normals
	llm     ai.Client
}

func NewHealthCtrl(db *gorm.DB, normals *climate.Normals, llm ai.Client) *HealthCtrl {
	return &HealthCtrl{db: db, normals: normals, llm: llm}
}

type check struct {
	OK     bool   `json:"ok"`
	Err    string `json:"err,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

func (h *HealthCtrl) dbCheck(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health answers 503 only when the database is down. A missing LLM or
// missing climate files degrade features but the service still serves.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.dbCheck(ctx)

	clim := check{OK: h.normals != nil}
	if h.normals != nil {
		clim.Detail = map[string]int{"cities_from_files": h.normals.Loaded()}
	}

	llm := check{OK: ai.Configured(h.llm)}
	if h.llm != nil {
		llm.Detail = map[string]string{"provider": h.llm.Name(), "breaker": ai.State(h.llm)}
	}
	if !llm.OK {
		llm.Err = ai.ErrNotConfigured.Error()
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]check{
			"database": db,
			"climate":  clim,
			"llm":      llm,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
