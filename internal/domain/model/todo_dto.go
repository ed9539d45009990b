package model

type CreateTodoDTO struct {
	Content  string `json:"content"`
	Priority string `json:"priority"`
}

type UpdateTodoDTO struct {
	Content     *string `json:"content"`
	Priority    *string `json:"priority"`
	IsCompleted *bool   `json:"isCompleted"`
}

type CreateSubTaskDTO struct {
	Content string `json:"content"`
}

type UpdateSubTaskDTO struct {
	Content     *string `json:"content"`
	IsCompleted *bool   `json:"isCompleted"`
}

type CreateLinkDTO struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
