package mappers

import (
	"gorm.io/datatypes"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
)

// SubmissionMapper converts between submission entities and persistence models.
type SubmissionMapper interface {
	ToModel(s *submission.Submission) *models.SubmissionModel
	ToEntity(model *models.SubmissionModel) *submission.Submission
	ToEntities(list []*models.SubmissionModel) []*submission.Submission
}

// SubmissionMapperImpl is the concrete implementation of SubmissionMapper.
type SubmissionMapperImpl struct{}

// NewSubmissionMapper creates a new SubmissionMapper.
func NewSubmissionMapper() SubmissionMapper {
	return &SubmissionMapperImpl{}
}

// ToModel converts a submission entity to a persistence model.
func (m *SubmissionMapperImpl) ToModel(s *submission.Submission) *models.SubmissionModel {
	if s == nil {
		return nil
	}
	model := &models.SubmissionModel{
		ID:                   s.ID,
		MessageID:            s.MessageID,
		Name:                 s.Name,
		Email:                s.Email,
		Phone:                s.Phone,
		Subject:              s.Subject,
		Message:              s.Message,
		IsRead:               s.IsRead,
		IdentityID:           s.IdentityID,
		PreviousMessageCount: s.PreviousMessageCount,
		Metadata: datatypes.NewJSONType(models.SubmissionMetadata{
			ClientIP:  s.Metadata.ClientIP,
			UserAgent: s.Metadata.UserAgent,
			Locale:    s.Metadata.Locale,
			Source:    s.Metadata.Source,
		}),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.MatchType != "" {
		mt := s.MatchType
		model.MatchType = &mt
	}
	return model
}

// ToEntity converts a persistence model to a submission entity.
func (m *SubmissionMapperImpl) ToEntity(model *models.SubmissionModel) *submission.Submission {
	if model == nil {
		return nil
	}
	meta := model.Metadata.Data()
	s := &submission.Submission{
		ID:                   model.ID,
		MessageID:            model.MessageID,
		Name:                 model.Name,
		Email:                model.Email,
		Phone:                model.Phone,
		Subject:              model.Subject,
		Message:              model.Message,
		IsRead:               model.IsRead,
		IdentityID:           model.IdentityID,
		PreviousMessageCount: model.PreviousMessageCount,
		Metadata: submission.Metadata{
			ClientIP:  meta.ClientIP,
			UserAgent: meta.UserAgent,
			Locale:    meta.Locale,
			Source:    meta.Source,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.MatchType != nil {
		s.MatchType = *model.MatchType
	}
	return s
}

// ToEntities converts a slice of persistence models.
func (m *SubmissionMapperImpl) ToEntities(list []*models.SubmissionModel) []*submission.Submission {
	out := make([]*submission.Submission, 0, len(list))
	for _, model := range list {
		out = append(out, m.ToEntity(model))
	}
	return out
}
