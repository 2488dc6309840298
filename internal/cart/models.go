package cart

import (
	"encoding/json"
	"sort"

	"github.com/pinkcart/go-backend/internal/domain"
)

// storedCart — формат корзины в локальном хранилище: id товара -> позиция.
// Seq хранит порядок добавления, JSON-объект его не сохраняет.
type storedCart map[string]lineModel

// lineModel — формат позиции в локальном хранилище.
type lineModel struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Quantity      int64  `json:"quantity"`
	Seq           int    `json:"seq"`
}

func (m lineModel) toEntity() domain.LineItem {
	return domain.LineItem{
		ProductID:     m.ID,
		Name:          m.Name,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		Image:         m.Image,
		Category:      m.Category,
		Quantity:      m.Quantity,
	}
}

func toStored(items []domain.LineItem) storedCart {
	res := make(storedCart, len(items))
	for i, it := range items {
		res[it.ProductID] = lineModel{
			ID:            it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Image:         it.Image,
			Category:      it.Category,
			Quantity:      it.Quantity,
			Seq:           i,
		}
	}

	return res
}

// decodeStored разбирает сохранённую корзину. Кроме основного формата принимает
// ранний формат массива позиций, порядок тогда берётся из массива.
func decodeStored(data []byte) ([]lineModel, error) {
	var stored storedCart
	err := json.Unmarshal(data, &stored)
	if err == nil {
		lines := make([]lineModel, 0, len(stored))
		for id, m := range stored {
			if m.ID == "" {
				m.ID = id
			}
			lines = append(lines, m)
		}
		sort.Slice(lines, func(i, j int) bool {
			if lines[i].Seq != lines[j].Seq {
				return lines[i].Seq < lines[j].Seq
			}
			return lines[i].ID < lines[j].ID
		})
		return lines, nil
	}

	var lines []lineModel
	if arrErr := json.Unmarshal(data, &lines); arrErr != nil {
		return nil, err
	}

	return lines, nil
}
