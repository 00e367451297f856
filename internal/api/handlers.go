package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/render"
	"github.com/plansemanal/plansemanal/internal/repository"
	"github.com/plansemanal/plansemanal/internal/services/planning"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
)

type handler struct {
	deps Deps
}

func (h *handler) health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":  "healthy",
		"version": h.deps.Version,
		"time":    time.Now().Format(time.RFC3339),
	}

	if h.deps.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.deps.Health.HealthCheck(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["error"] = err.Error()
		}
	}

	c.JSON(status, body)
}

func (h *handler) listPlans(c *gin.Context) {
	page := models.DefaultPagination()
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
		page.PageSize = v
	}

	plans, total, err := h.deps.Planning.Plans(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	if plans == nil {
		plans = []repository.PlanSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"plans":     plans,
		"total":     total,
		"page":      page.Page,
		"page_size": page.Limit(),
	})
}

func (h *handler) latestPlan(c *gin.Context) {
	plan, err := h.deps.Planning.LatestPlan(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(plan))
}

func (h *handler) getPlan(c *gin.Context) {
	plan, err := h.deps.Planning.Plan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(plan))
}

func (h *handler) shoppingList(c *gin.Context) {
	ctx := c.Request.Context()

	plan, list, err := h.deps.Shopping.List(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	checked, err := h.deps.Shopping.Checked(ctx, plan.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	opts := render.Options{
		Checked:    checked,
		HideAGusto: c.Query("hide_a_gusto") == "true",
	}
	c.JSON(http.StatusOK, render.Build(plan, list, h.deps.Shopping.Builder().Display(), opts))
}

func (h *handler) toggleItem(c *gin.Context) {
	item := c.Param("item")

	checked, err := h.deps.Shopping.Toggle(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": item, "checked": checked})
}

func (h *handler) clearChecks(c *gin.Context) {
	n, err := h.deps.Shopping.Clear(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": n})
}

func (h *handler) getRecipe(c *gin.Context) {
	recipe, err := h.deps.Planning.Recipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planning.ErrPlanNotFound),
		errors.Is(err, planning.ErrRecipeNotFound),
		errors.Is(err, shopping.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
