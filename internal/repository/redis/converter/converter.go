package converter

import "github.com/pinkcart/go-backend/internal/domain"

type ProductConverter struct{}

func (ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:              entity.ID,
		Name:            entity.Name,
		Description:     entity.Description,
		Price:           entity.Price,
		OriginalPrice:   entity.OriginalPrice,
		Images:          entity.Images,
		Video:           entity.Video,
		HasVideo:        entity.HasVideo,
		CategoryID:      entity.CategoryID,
		Category:        entity.Category,
		JoinedCount:     entity.JoinedCount,
		MaxParticipants: entity.MaxParticipants,
		IsActive:        entity.IsActive,
		Featured:        entity.Featured,
		InStock:         entity.InStock,
		Features:        entity.Features,
		Dimensions:      entity.Dimensions,
		Weight:          entity.Weight,
		Material:        entity.Material,
		Quality:         entity.Quality,
		ShippingTime:    entity.ShippingTime,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	return &domain.Product{
		ID:              model.ID,
		Name:            model.Name,
		Description:     model.Description,
		Price:           model.Price,
		OriginalPrice:   model.OriginalPrice,
		Images:          model.Images,
		Video:           model.Video,
		HasVideo:        model.HasVideo,
		CategoryID:      model.CategoryID,
		Category:        model.Category,
		JoinedCount:     model.JoinedCount,
		MaxParticipants: model.MaxParticipants,
		IsActive:        model.IsActive,
		Featured:        model.Featured,
		InStock:         model.InStock,
		Features:        model.Features,
		Dimensions:      model.Dimensions,
		Weight:          model.Weight,
		Material:        model.Material,
		Quality:         model.Quality,
		ShippingTime:    model.ShippingTime,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
