package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorType  string            `gorm:"column:actor_type;not null" json:"actor_type"`
	ActorID    string            `gorm:"column:actor_id" json:"actor_id,omitempty"`
	Action     string            `gorm:"column:action;not null" json:"action"`
	Resource   string            `gorm:"column:resource;not null" json:"resource"`
	ResourceID string            `gorm:"column:resource_id" json:"resource_id,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	RequestID  string            `gorm:"column:request_id" json:"request_id,omitempty"`
	IPAddress  string            `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent  string            `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
