package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/subtask"
)

type SubTaskController struct {
	api     *echo.Group
	useCase subtask.UseCase
	session echo.MiddlewareFunc
}

func NewSubTaskController(api *echo.Group, useCase subtask.UseCase, session echo.MiddlewareFunc) *SubTaskController {
	return &SubTaskController{api: api, useCase: useCase, session: session}
}

// InitSubTaskRoutes initializes subtask routes nested under a todo
func (controller *SubTaskController) InitSubTaskRoutes() {
	subTasks := controller.api.Group("/todos/:todoId/subtasks", controller.session)
	subTasks.GET("", controller.FindAll)
	subTasks.POST("", controller.Create)
	subTasks.GET("/:subTaskId", controller.FindByID)
	subTasks.PUT("/:subTaskId", controller.Update)
	subTasks.DELETE("/:subTaskId", controller.Delete)
	subTasks.PATCH("/:subTaskId/status", controller.ToggleStatus)

	subTasks.POST("/:subTaskId/attachments", controller.AddAttachment)
	subTasks.GET("/:subTaskId/attachments/:attachmentId", controller.GetAttachment)
	subTasks.DELETE("/:subTaskId/attachments/:attachmentId", controller.RemoveAttachment)

	subTasks.POST("/:subTaskId/links", controller.AddLink)
	subTasks.DELETE("/:subTaskId/links/:linkId", controller.RemoveLink)
}

// FindAll godoc
// @Summary List subtasks of a todo
// @Tags subtask
// @Produce json
// @Param todoId path string true "Todo id"
// @Success 200 {object} model.Response{data=[]entity.SubTask} "Subtasks"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks [get]
func (controller *SubTaskController) FindAll(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	subTasks, err := controller.useCase.FindAll(c.Request().Context(), caller, c.Param("todoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subtask.fetched", subTasks)
}

// Create godoc
// @Summary Create a subtask
// @Tags subtask
// @Accept json
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subtask body model.CreateSubTaskDTO true "Subtask data"
// @Success 201 {object} model.Response{data=entity.SubTask} "Created subtask"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 404 {object} model.Response "Todo not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks [post]
func (controller *SubTaskController) Create(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.CreateSubTaskDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	created, err := controller.useCase.Create(c.Request().Context(), caller, c.Param("todoId"), dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "subtask.created", created)
}

// FindByID godoc
// @Summary Get a subtask
// @Tags subtask
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Success 200 {object} model.Response{data=entity.SubTask} "Subtask"
// @Failure 404 {object} model.Response "Todo or subtask not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId} [get]
func (controller *SubTaskController) FindByID(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	found, err := controller.useCase.FindByID(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subtask.fetched-one", found)
}

// Update godoc
// @Summary Update a subtask
// @Tags subtask
// @Accept json
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Param subtask body model.UpdateSubTaskDTO true "Fields to change"
// @Success 200 {object} model.Response{data=entity.SubTask} "Updated subtask"
// @Failure 400 {object} model.Response "Invalid input"
// @Failure 404 {object} model.Response "Todo or subtask not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId} [put]
func (controller *SubTaskController) Update(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.UpdateSubTaskDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	updated, err := controller.useCase.Update(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"), dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subtask.updated", updated)
}

// Delete godoc
// @Summary Delete a subtask
// @Tags subtask
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Success 200 {object} model.Response "Deleted"
// @Failure 404 {object} model.Response "Todo or subtask not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId} [delete]
func (controller *SubTaskController) Delete(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	if err := controller.useCase.Delete(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subtask.deleted", nil)
}

// ToggleStatus godoc
// @Summary Toggle a subtask's completion
// @Tags subtask
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Success 200 {object} model.Response{data=entity.SubTask} "Updated subtask"
// @Failure 404 {object} model.Response "Todo or subtask not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId}/status [patch]
func (controller *SubTaskController) ToggleStatus(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	toggled, err := controller.useCase.ToggleStatus(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subtask.toggled", toggled)
}

// AddAttachment godoc
// @Summary Upload an attachment to a subtask
// @Tags subtask
// @Accept multipart/form-data
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Param attachment formData file true "File, at most 10 MB"
// @Success 201 {object} model.Response{data=entity.SubTask} "Updated subtask"
// @Failure 400 {object} model.Response "Missing file, too large or type not allowed"
// @Failure 404 {object} model.Response "Todo or subtask not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId}/attachments [post]
func (controller *SubTaskController) AddAttachment(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	upload, file, err := readUpload(c)
	if err != nil {
		return err
	}
	defer file.Close()

	updated, err := controller.useCase.AddAttachment(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"), upload)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "attachment.added", updated)
}

// GetAttachment godoc
// @Summary Download a subtask attachment
// @Tags subtask
// @Produce octet-stream
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Param attachmentId path string true "Attachment id"
// @Success 200 {file} file "Raw attachment bytes"
// @Failure 404 {object} model.Response "Not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId}/attachments/{attachmentId} [get]
func (controller *SubTaskController) GetAttachment(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	found, content, err := controller.useCase.GetAttachment(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"), c.Param("attachmentId"))
	if err != nil {
		return err
	}
	return streamAttachment(c, found, content)
}

// RemoveAttachment godoc
// @Summary Remove a subtask attachment
// @Tags subtask
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Param attachmentId path string true "Attachment id"
// @Success 200 {object} model.Response{data=entity.SubTask} "Updated subtask"
// @Failure 404 {object} model.Response "Not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId}/attachments/{attachmentId} [delete]
func (controller *SubTaskController) RemoveAttachment(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	updated, err := controller.useCase.RemoveAttachment(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"), c.Param("attachmentId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "attachment.removed", updated)
}

// AddLink godoc
// @Summary Add a link to a subtask
// @Tags subtask
// @Accept json
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Param link body model.CreateLinkDTO true "Link data"
// @Success 201 {object} model.Response{data=entity.SubTask} "Updated subtask"
// @Failure 400 {object} model.Response "Invalid url"
// @Failure 404 {object} model.Response "Todo or subtask not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId}/links [post]
func (controller *SubTaskController) AddLink(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var dto model.CreateLinkDTO
	if err := bind(c, &dto); err != nil {
		return err
	}

	updated, err := controller.useCase.AddLink(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"), dto)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "link.added", updated)
}

// RemoveLink godoc
// @Summary Remove a link from a subtask
// @Tags subtask
// @Produce json
// @Param todoId path string true "Todo id"
// @Param subTaskId path string true "Subtask id"
// @Param linkId path string true "Link id"
// @Success 200 {object} model.Response{data=entity.SubTask} "Updated subtask"
// @Failure 404 {object} model.Response "Not found"
// @Security CookieAuth
// @Router /todos/{todoId}/subtasks/{subTaskId}/links/{linkId} [delete]
func (controller *SubTaskController) RemoveLink(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	updated, err := controller.useCase.RemoveLink(c.Request().Context(), caller, c.Param("todoId"), c.Param("subTaskId"), c.Param("linkId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "link.removed", updated)
}
