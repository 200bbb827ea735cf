package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/rakushite-inc/demo-obentou/store"
)

// errorBody maps an error onto the status code and payload the UI expects.
func errorBody(err error) (int, gin.H) {
	switch kind := generator.ErrorKind(err); kind {
	case generator.KindConfiguration:
		return http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": kind}
	case generator.KindProvider, generator.KindValidation:
		return http.StatusBadGateway, gin.H{"error": "failed to generate menus", "kind": kind, "detail": err.Error()}
	}

	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, gin.H{"error": "menu not found"}
	}

	return http.StatusInternalServerError, gin.H{"error": err.Error()}
}

func writeError(ctx *gin.Context, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", ctx.FullPath(), "err", err)
	}
	ctx.JSON(status, body)
}

func bindConditions(ctx *gin.Context) (models.GenerationConditions, bool) {
	var conditions models.GenerationConditions
	if err := ctx.ShouldBindJSON(&conditions); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return conditions, false
	}
	if err := conditions.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return conditions, false
	}

	return conditions, true
}

func (a *Agent) options(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, NewOptionsResponse())
}

func (a *Agent) sampleMenus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, MenusResponse{Menus: generator.SampleMenus(a.handler.now())})
}

func (a *Agent) generateMenu(ctx *gin.Context) {
	if err := a.handler.GenerationAvailable(); err != nil {
		writeError(ctx, err)
		return
	}

	conditions, ok := bindConditions(ctx)
	if !ok {
		return
	}

	menus, err := a.handler.GenerateMenus(ctx.Request.Context(), conditions)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MenusResponse{Menus: menus})
}

func (a *Agent) streamGeneration(ctx *gin.Context) {
	c, err := a.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "err", err)
		return
	}
	defer c.Close()

	if err := a.handler.GenerationAvailable(); err != nil {
		_, body := errorBody(err)
		_ = c.WriteJSON(WebSocketsMessage{Type: MessageError, Data: body})
		return
	}

	var conditions models.GenerationConditions
	if err := c.ReadJSON(&conditions); err != nil {
		_ = c.WriteJSON(WebSocketsMessage{Type: MessageError, Data: gin.H{"error": fmt.Sprintf("invalid conditions: %v", err)}})
		return
	}
	if err := conditions.Validate(); err != nil {
		_ = c.WriteJSON(WebSocketsMessage{Type: MessageError, Data: gin.H{"error": err.Error()}})
		return
	}

	resultChan := a.handler.StreamGeneration(ctx.Request.Context(), conditions)
	for {
		select {
		case <-ctx.Request.Context().Done():
			return
		case result := <-resultChan:
			if result == nil {
				return
			}
			if result.Err != nil {
				if result.Err == io.EOF {
					return
				}
				_, body := errorBody(result.Err)
				if err := c.WriteJSON(WebSocketsMessage{Type: MessageError, Data: body}); err != nil {
					slog.Error("failed to write to ws connection", "error", err)
				}
				return
			}

			if err := c.WriteJSON(result.Msg); err != nil {
				slog.Error("failed to write to ws connection", "error", err)
				return
			}
		}
	}
}

func (a *Agent) listMenus(ctx *gin.Context) {
	var filter store.MenuFilter

	if genre, ok := ctx.GetQuery("genre"); ok && genre != "" {
		filter.Genre = models.Genre(genre)
		if !filter.Genre.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre"})
			return
		}
	}
	if selected, ok := ctx.GetQuery("selected"); ok && selected != "" {
		v, err := strconv.ParseBool(selected)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid selected"})
			return
		}
		filter.SelectedOnly = v
	}

	menus, err := a.handler.ListMenus(ctx.Request.Context(), filter)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MenusResponse{Menus: menus})
}

func (a *Agent) saveMenus(ctx *gin.Context) {
	var req SaveMenusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := a.handler.SaveMenus(ctx.Request.Context(), req.Menus)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"saved": saved})
}

func (a *Agent) menuStats(ctx *gin.Context) {
	stats, err := a.handler.MenuStats(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func (a *Agent) deleteMenu(ctx *gin.Context) {
	if err := a.handler.DeleteMenu(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (a *Agent) setSelected(ctx *gin.Context) {
	var req SetSelectedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Selected == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "selected is required"})
		return
	}

	menu, err := a.handler.SetSelected(ctx.Request.Context(), ctx.Param("id"), *req.Selected)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, menu)
}

func (a *Agent) listGenerations(ctx *gin.Context) {
	limit := 0
	if raw, ok := ctx.GetQuery("limit"); ok && raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	records, err := a.handler.ListGenerations(ctx.Request.Context(), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"generations": records})
}
