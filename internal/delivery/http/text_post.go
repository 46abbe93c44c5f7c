package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"posts-backend/internal/delivery/http/utils"
	"posts-backend/internal/entity"
	"posts-backend/internal/usecase"
)

type TextPost struct {
	textPostUseCase usecase.TextPost
}

func NewTextPost(textPostUseCase usecase.TextPost) *TextPost {
	return &TextPost{
		textPostUseCase: textPostUseCase,
	}
}

func (t *TextPost) Configure(server *echo.Group) {
	server.GET("", t.GetTextPosts)
	server.GET("/:id", t.GetTextPost)
	server.POST("", t.AddTextPost)
}

func (t *TextPost) GetTextPosts(c echo.Context) error {
	request := &entity.GetPostsRequest{}
	if err := utils.ReadQuery(c, request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный параметр limit",
		})
	}
	posts, err := t.textPostUseCase.GetTextPosts(request)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (t *TextPost) GetTextPost(c echo.Context) error {
	post, err := t.textPostUseCase.GetTextPost(c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (t *TextPost) AddTextPost(c echo.Context) error {
	request := &entity.AddTextPostRequest{}
	if err := utils.ReadJSON(c, request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}
	post, err := t.textPostUseCase.AddTextPost(request)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, post)
}
