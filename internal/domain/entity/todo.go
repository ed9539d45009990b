package entity

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Todo struct {
	ID          string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Author      string       `gorm:"type:varchar(36);index;not null" json:"author"`
	Content     string       `gorm:"not null" json:"content"`
	Priority    Priority     `gorm:"type:varchar(10);not null" json:"priority"`
	IsCompleted bool         `gorm:"not null" json:"isCompleted"`
	SubTasks    []SubTask    `gorm:"foreignKey:ParentTodo" json:"subTasks"`
	Attachments []Attachment `gorm:"type:text;serializer:json" json:"attachments"`
	Links       []Link       `gorm:"type:text;serializer:json" json:"links"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
