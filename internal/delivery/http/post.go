package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"posts-backend/internal/delivery/http/utils"
	"posts-backend/internal/entity"
	"posts-backend/internal/usecase"
)

type Post struct {
	postUseCase usecase.Post
}

func NewPost(postUseCase usecase.Post) *Post {
	return &Post{
		postUseCase: postUseCase,
	}
}

func (p *Post) Configure(server *echo.Group) {
	server.POST("/upload", p.UploadPost)
	server.GET("/feed", p.GetFeed)
	server.GET("/feed/:id", p.GetPost)
}

func (p *Post) UploadPost(c echo.Context) error {
	// Извлекаем файл
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Файл не найден: " + err.Error(),
		})
	}
	src, err := file.Open()
	if err != nil {
		return errorResponse(c, fmt.Errorf("%w: %w", entity.ErrPersistence, err))
	}

	// Поток закрывает сам пайплайн, в том числе при ошибке
	request := &entity.UploadPostRequest{
		File:        src,
		FileName:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Caption:     c.FormValue("caption"),
	}
	post, err := p.postUseCase.UploadPost(c.Request().Context(), request)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (p *Post) GetFeed(c echo.Context) error {
	request := &entity.GetPostsRequest{}
	if err := utils.ReadQuery(c, request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный параметр limit",
		})
	}
	posts, err := p.postUseCase.GetPosts(c.Request().Context(), request)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, entity.PostList{Posts: posts})
}

func (p *Post) GetPost(c echo.Context) error {
	post, err := p.postUseCase.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, post)
}
