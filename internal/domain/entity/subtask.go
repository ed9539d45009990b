package entity

import "time"

type SubTask struct {
	ID          string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	ParentTodo  string       `gorm:"type:varchar(36);index;not null" json:"parentTodo"`
	Content     string       `gorm:"not null" json:"content"`
	IsCompleted bool         `gorm:"not null" json:"isCompleted"`
	Attachments []Attachment `gorm:"type:text;serializer:json" json:"attachments"`
	Links       []Link       `gorm:"type:text;serializer:json" json:"links"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
