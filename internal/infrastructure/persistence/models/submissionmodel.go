package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/keshevplus/leadhub/internal/shared/constants"
)

// SubmissionMetadata is stored as a JSON column.
type SubmissionMetadata struct {
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Locale    string `json:"locale,omitempty"`
	Source    string `json:"source,omitempty"`
}

// SubmissionModel is the persistence model for the submissions table.
type SubmissionModel struct {
	ID                   uint                                   `gorm:"primarykey"`
	MessageID            string                                 `gorm:"uniqueIndex;not null;size:36"`
	Name                 string                                 `gorm:"not null;size:255"`
	Email                *string                                `gorm:"size:255;index"`
	Phone                string                                 `gorm:"not null;size:32;index"`
	Subject              *string                                `gorm:"size:255"`
	Message              string                                 `gorm:"type:text;not null"`
	IsRead               bool                                   `gorm:"not null;default:false;index"`
	IdentityID           *uint                                  `gorm:"index"`
	Identity             *IdentityModel                         `gorm:"foreignKey:IdentityID;constraint:OnDelete:SET NULL"`
	PreviousMessageCount int                                    `gorm:"not null;default:0"`
	MatchType            *string                                `gorm:"size:20"`
	Metadata             datatypes.JSONType[SubmissionMetadata] `gorm:"column:metadata"`
	CreatedAt            time.Time                              `gorm:"index"`
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (SubmissionModel) TableName() string {
	return constants.TableSubmissions
}
