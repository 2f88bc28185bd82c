package mappers

import (
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
)

// IdentityMapper converts between identity entities and persistence models.
type IdentityMapper interface {
	ToModel(i *identity.Identity) *models.IdentityModel
	ToEntity(model *models.IdentityModel) *identity.Identity
}

// IdentityMapperImpl is the concrete implementation of IdentityMapper.
type IdentityMapperImpl struct{}

// NewIdentityMapper creates a new IdentityMapper.
func NewIdentityMapper() IdentityMapper {
	return &IdentityMapperImpl{}
}

// ToModel converts an identity entity to a persistence model.
func (m *IdentityMapperImpl) ToModel(i *identity.Identity) *models.IdentityModel {
	if i == nil {
		return nil
	}
	return &models.IdentityModel{
		ID:            i.ID,
		Name:          i.Name,
		Email:         i.Email,
		Phone:         i.Phone,
		Username:      i.Username,
		Role:          i.Role.String(),
		PasswordHash:  i.PasswordHash,
		LoggedIn:      i.LoggedIn,
		DuplicateOfID: i.DuplicateOfID,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// ToEntity converts a persistence model to an identity entity.
func (m *IdentityMapperImpl) ToEntity(model *models.IdentityModel) *identity.Identity {
	if model == nil {
		return nil
	}
	return &identity.Identity{
		ID:            model.ID,
		Name:          model.Name,
		Email:         model.Email,
		Phone:         model.Phone,
		Username:      model.Username,
		Role:          identity.Role(model.Role),
		PasswordHash:  model.PasswordHash,
		LoggedIn:      model.LoggedIn,
		DuplicateOfID: model.DuplicateOfID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
