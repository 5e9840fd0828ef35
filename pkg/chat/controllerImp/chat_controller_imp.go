package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"olivia/pkg/ai"
	"olivia/pkg/chat/controller"
	"olivia/pkg/chat/service"
)

type ChatCtrl struct{ svc service.ChatService }

func New(svc service.ChatService) *ChatCtrl { return &ChatCtrl{svc: svc} }

var _ controller.ChatController = (*ChatCtrl)(nil)

type chatReq struct {
	Messages []ai.Message `json:"messages" validate:"required,min=1,max=50,dive"`
}

func (h *ChatCtrl) Send(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	reply, err := h.svc.Send(c.Request().Context(), uid, req.Messages)
	switch {
	case errors.Is(err, service.ErrUpstream):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, reply)
}
