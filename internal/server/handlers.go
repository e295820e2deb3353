package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-storyboard-kit/pkg/assistant"
	"github.com/shouni/go-storyboard-kit/pkg/contact"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"
	"github.com/shouni/go-storyboard-kit/pkg/parallax"
)

type handlers struct {
	catalog *gallery.Catalog
	relay   *contact.Relay
	store   *Store
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.store.Len()})
}

func (h *handlers) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": gallery.Categories()})
}

func (h *handlers) projects(c *gin.Context) {
	category := c.DefaultQuery("category", gallery.All)
	projects, err := h.catalog.Filter(category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "projects": projects})
}

func (h *handlers) parallax(c *gin.Context) {
	scrollY, err := finiteQuery(c, "scrollY", "0")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scrollY は有限の数値で指定してください"})
		return
	}
	// 最上部ではビューポートの高さに関係なく上書きを外す
	if scrollY <= parallax.TopThreshold {
		c.JSON(http.StatusOK, parallax.Compute(scrollY, 0))
		return
	}
	viewport, err := finiteQuery(c, "viewportHeight", "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "viewportHeight は有限の数値で指定してください"})
		return
	}
	c.JSON(http.StatusOK, parallax.Compute(scrollY, viewport))
}

// finiteQuery はクエリパラメータを有限の float64 として読みます。NaN と ±Inf は拒否します。
func finiteQuery(c *gin.Context, key, def string) (float64, error) {
	v, err := strconv.ParseFloat(c.DefaultQuery(key, def), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is not finite: %v", key, v)
	}
	return v, nil
}

func (h *handlers) parallaxSetup(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"elements":        parallax.Setup(),
		"floatClass":      parallax.FloatClass,
		"revealThreshold": parallax.RevealThreshold,
	})
}

func (h *handlers) createSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	// 本文は任意なのでバインドエラーは無視する
	_ = c.ShouldBindJSON(&req)

	var (
		visit *Visit
		err   error
	)
	if req.SessionID == "" {
		visit, err = h.store.Create()
	} else {
		visit, err = h.store.GetOrCreate(req.SessionID)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidSessionID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, visit.View())
}

// visit は :id の Visit を引き当てます。見つからなければ 404 を書き込み false を返します。
func (h *handlers) visit(c *gin.Context) (*Visit, bool) {
	v, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return nil, false
	}
	return v, true
}

func (h *handlers) getSession(c *gin.Context) {
	v, ok := h.visit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v.View())
}

func (h *handlers) deleteSession(c *gin.Context) {
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *handlers) sendMessage(c *gin.Context) {
	v, ok := h.visit(c)
	if !ok {
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無効なリクエスト形式です"})
		return
	}

	// モデル呼び出しは途中で取り消さない。クライアントが離れても結果はトランスクリプトに残す
	ctx := context.WithoutCancel(c.Request.Context())
	reply, err := v.Chat.Send(ctx, req.Prompt)
	switch {
	case errors.Is(err, assistant.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, assistant.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":  reply,
		"failed": reply.Err != nil,
		"chat":   v.Chat.Snapshot(),
	})
}

func (h *handlers) selectCategory(c *gin.Context) {
	v, ok := h.visit(c)
	if !ok {
		return
	}

	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category は必須です"})
		return
	}

	changed, err := v.Gallery.Select(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projects, err := h.catalog.Filter(v.Gallery.Current())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"changed":  changed,
		"category": v.Gallery.Current(),
		"projects": projects,
	})
}

func (h *handlers) sessionContact(c *gin.Context) {
	v, ok := h.visit(c)
	if !ok {
		return
	}
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無効なリクエスト形式です"})
		return
	}
	respondContact(c, form, v.SubmitContact(c.Request.Context(), h.relay, form))
}

func (h *handlers) contact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無効なリクエスト形式です"})
		return
	}
	respondContact(c, form, h.relay.Submit(c.Request.Context(), form))
}

func respondContact(c *gin.Context, form contact.Form, res contact.Result) {
	status := http.StatusOK
	if res.State == contact.StateError {
		status = http.StatusBadGateway
		if form.Validate() != nil {
			status = http.StatusBadRequest
		}
	}
	c.JSON(status, res)
}
