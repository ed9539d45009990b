package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
)

type TodoController struct {
	api     *echo.Group
	useCase todo.UseCase
	session echo.MiddlewareFunc
}

func NewTodoController(api *echo.Group, useCase todo.UseCase, session echo.MiddlewareFunc) *TodoController {
	return &TodoController{api: api, useCase: useCase, session: session}
}

// InitTodoRoutes initializes todo routes; every route requires a session
func (controller *TodoController) InitTodoRoutes() {
	todos := controller.api.Group("/todos", controller.session)
	todos.GET("", controller.FindAll)
	todos.POST("", controller.Create)
	todos.GET("/:todoId", controller.FindByID)
	todos.PUT("/:todoId", controller.Update)
	todos.DELETE("/:todoId", controller.Delete)
	todos.PATCH("/:todoId/status", controller.ToggleStatus)

	todos.POST("/:todoId/attachments", controller.AddAttachment)
	todos.GET("/:todoId/attachments/:attachmentId", controller.GetAttachment)
	todos.DELETE("/:todoId/attachments/:attachmentId", controller.RemoveAttachment)

	todos.POST("/:todoId/links", controller.AddLink)
	todos.DELETE("/:todoId/links/:linkId", controller.RemoveLink)
}

// FindAll godoc
// @Summary List todos
// @Description List the caller's todos, oldest first, with their subtasks
// @Tags todo
// @Produce json
// @Success 200 {object} model.Response{data=[]entity.Todo} "Todos"
// @Failure 401 {object} model.Response "Missing or invalid session"
// @Security CookieAuth
// @Router /todos [get]
func (controller *TodoController) FindAll(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	todos, err := controller.useCase.FindAll(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "todo.fetched", todos)
}

// Create godoc
// @Summary Create a todo
// @Tags todo
// @Accept json
// @Produce json
// @Param todo body model.CreateTodoDTO true "Todo data"
// @Success 201 {object} model.Response{data=entity.Todo} "Created todo"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 401 {object} model.Response "Missing or invalid session"
// @Security CookieAuth
// @Router /todos [post]
func (controller *TodoController) Create(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.CreateTodoDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	created, err := controller.useCase.Create(c.Request().Context(), caller, dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "todo.created", created)
}

// FindByID godoc
// @Summary Get a todo
// @Tags todo
// @Produce json
// @Param todoId path string true "Todo id"
// @Success 200 {object} model.Response{data=entity.Todo} "Todo"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId} [get]
func (controller *TodoController) FindByID(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	found, err := controller.useCase.FindByID(c.Request().Context(), caller, c.Param("todoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "todo.fetched-one", found)
}

// Update godoc
// @Summary Update a todo
// @Tags todo
// @Accept json
// @Produce json
// @Param todoId path string true "Todo id"
// @Param todo body model.UpdateTodoDTO true "Fields to change"
// @Success 200 {object} model.Response{data=entity.Todo} "Updated todo"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId} [put]
func (controller *TodoController) Update(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.UpdateTodoDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	updated, err := controller.useCase.Update(c.Request().Context(), caller, c.Param("todoId"), dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "todo.updated", updated)
}

// Delete godoc
// @Summary Delete a todo
// @Description Delete the todo with its subtasks and every attachment file
// @Tags todo
// @Produce json
// @Param todoId path string true "Todo id"
// @Success 200 {object} model.Response "Deleted"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId} [delete]
func (controller *TodoController) Delete(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	if err := controller.useCase.Delete(c.Request().Context(), caller, c.Param("todoId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "todo.deleted", nil)
}

// ToggleStatus godoc
// @Summary Toggle a todo's completion
// @Tags todo
// @Produce json
// @Param todoId path string true "Todo id"
// @Success 200 {object} model.Response{data=entity.Todo} "Updated todo"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId}/status [patch]
func (controller *TodoController) ToggleStatus(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	toggled, err := controller.useCase.ToggleStatus(c.Request().Context(), caller, c.Param("todoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "todo.toggled", toggled)
}

// AddAttachment godoc
// @Summary Upload an attachment to a todo
// @Tags todo
// @Accept multipart/form-data
// @Produce json
// @Param todoId path string true "Todo id"
// @Param attachment formData file true "File, at most 10 MB"
// @Success 201 {object} model.Response{data=entity.Todo} "Updated todo"
// @Failure 400 {object} model.Response "Missing file, too large or type not allowed"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId}/attachments [post]
func (controller *TodoController) AddAttachment(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	upload, file, err := readUpload(c)
	if err != nil {
		return err
	}
	defer file.Close()

	updated, err := controller.useCase.AddAttachment(c.Request().Context(), caller, c.Param("todoId"), upload)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "attachment.added", updated)
}

// GetAttachment godoc
// @Summary Download a todo attachment
// @Tags todo
// @Produce octet-stream
// @Param todoId path string true "Todo id"
// @Param attachmentId path string true "Attachment id"
// @Success 200 {file} file "Raw attachment bytes"
// @Failure 404 {object} model.Response "Todo or attachment not found"
// @Security CookieAuth
// @Router /todos/{todoId}/attachments/{attachmentId} [get]
func (controller *TodoController) GetAttachment(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	found, content, err := controller.useCase.GetAttachment(c.Request().Context(), caller, c.Param("todoId"), c.Param("attachmentId"))
	if err != nil {
		return err
	}
	return streamAttachment(c, found, content)
}

// RemoveAttachment godoc
// @Summary Remove a todo attachment
// @Tags todo
// @Produce json
// @Param todoId path string true "Todo id"
// @Param attachmentId path string true "Attachment id"
// @Success 200 {object} model.Response{data=entity.Todo} "Updated todo"
// @Failure 404 {object} model.Response "Todo or attachment not found"
// @Security CookieAuth
// @Router /todos/{todoId}/attachments/{attachmentId} [delete]
func (controller *TodoController) RemoveAttachment(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	updated, err := controller.useCase.RemoveAttachment(c.Request().Context(), caller, c.Param("todoId"), c.Param("attachmentId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "attachment.removed", updated)
}

// AddLink godoc
// @Summary Add a link to a todo
// @Tags todo
// @Accept json
// @Produce json
// @Param todoId path string true "Todo id"
// @Param link body model.CreateLinkDTO true "Link data"
// @Success 201 {object} model.Response{data=entity.Todo} "Updated todo"
// @Failure 400 {object} model.Response "Invalid url"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId}/links [post]
func (controller *TodoController) AddLink(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.CreateLinkDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	updated, err := controller.useCase.AddLink(c.Request().Context(), caller, c.Param("todoId"), dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "link.added", updated)
}

// RemoveLink godoc
// @Summary Remove a link from a todo
// @Tags todo
// @Produce json
// @Param todoId path string true "Todo id"
// @Param linkId path string true "Link id"
// @Success 200 {object} model.Response{data=entity.Todo} "Updated todo"
// @Failure 404 {object} model.Response "Todo or link not found"
// @Security CookieAuth
// @Router /todos/{todoId}/links/{linkId} [delete]
func (controller *TodoController) RemoveLink(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	updated, err := controller.useCase.RemoveLink(c.Request().Context(), caller, c.Param("todoId"), c.Param("linkId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "link.removed", updated)
}
