package converter

import (
	"encoding/json"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:              entity.ID,
		Name:            entity.Name,
		Description:     entity.Description,
		Price:           entity.Price,
		OriginalPrice:   entity.OriginalPrice,
		Images:          nonNil(entity.Images),
		Video:           entity.Video,
		HasVideo:        entity.HasVideo,
		CategoryID:      entity.CategoryID,
		Category:        entity.Category,
		JoinedCount:     entity.JoinedCount,
		MaxParticipants: entity.MaxParticipants,
		IsActive:        entity.IsActive,
		Featured:        entity.Featured,
		InStock:         entity.InStock,
		Features:        nonNil(entity.Features),
		Dimensions:      entity.Dimensions,
		Weight:          entity.Weight,
		Material:        entity.Material,
		Quality:         entity.Quality,
		ShippingTime:    entity.ShippingTime,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
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

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter struct{}

func (CategoryConverter) ToModel(entity *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Slug:        entity.Slug,
		Description: entity.Description,
		Icon:        entity.Icon,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:          model.ID,
		Name:        model.Name,
		Slug:        model.Slug,
		Description: model.Description,
		Icon:        model.Icon,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// OrderConverter преобразует заказ; позиции сериализуются в JSON для колонки items.
type OrderConverter struct{}

func (OrderConverter) ToModel(entity *domain.Order) (*OrderModel, error) {
	items := make([]LineItemModel, 0, len(entity.Items))
	for _, it := range entity.Items {
		items = append(items, LineItemModel{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Image:         it.Image,
			Category:      it.Category,
			Quantity:      it.Quantity,
		})
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	return &OrderModel{
		ID:            entity.ID,
		OrderID:       entity.OrderID,
		CustomerName:  entity.CustomerName,
		CustomerPhone: entity.CustomerPhone,
		Items:         raw,
		TotalPrice:    entity.TotalPrice,
		TotalItems:    entity.TotalItems,
		Status:        entity.Status,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}, nil
}

func (OrderConverter) ToEntity(model *OrderModel) (*domain.Order, error) {
	var items []LineItemModel
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &items); err != nil {
			return nil, err
		}
	}

	order := &domain.Order{
		ID:            model.ID,
		OrderID:       model.OrderID,
		CustomerName:  model.CustomerName,
		CustomerPhone: model.CustomerPhone,
		Items:         make([]domain.LineItem, 0, len(items)),
		TotalPrice:    model.TotalPrice,
		TotalItems:    model.TotalItems,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	for _, it := range items {
		order.Items = append(order.Items, domain.LineItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Image:         it.Image,
			Category:      it.Category,
			Quantity:      it.Quantity,
		})
	}

	return order, nil
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		res = append(res, c.ToEntity(m))
	}
	return res
}

// nonNil заменяет nil-срез пустым: колонки-массивы объявлены NOT NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
