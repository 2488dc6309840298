package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/delivery/v1/http/dto"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// badRequest — ошибки валидации, которые отдаются клиенту с кодом 400 и своим текстом.
var badRequest = []error{
	e.ErrStatusBadRequest,
	e.ErrExpectedMultipart,
	e.ErrMissingFields,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrInvalidPriceRange,
	e.ErrTooManyImages,
	e.ErrNoImages,
	e.ErrFileTooLarge,
	e.ErrUnsupportedMediaType,
	e.ErrProductNameRequired,
	e.ErrCategoryRequired,
	e.ErrNegativeJoinedCount,
	e.ErrProductIDRequired,
	e.ErrInvalidLineItem,
	e.ErrInvalidJSON,
}

const missingOrderFieldsMsg = "Missing required fields: customerName, customerPhone, and items are required"

// ToHTTPResponse сопоставляет ошибку с кодом ответа и текстом для поля error.
// failTitle используется для 500, когда клиенту нечего показать кроме общего заголовка.
func ToHTTPResponse(err error, failTitle string) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, e.ErrProductIDRequired):
		return http.StatusBadRequest, "Product ID is required"
	case errors.Is(err, e.ErrCustomerNameRequired),
		errors.Is(err, e.ErrCustomerPhoneRequired),
		errors.Is(err, e.ErrEmptyOrder):
		return http.StatusBadRequest, missingOrderFieldsMsg
	}

	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	return http.StatusInternalServerError, failTitle
}

func WriteError(w http.ResponseWriter, err error, failTitle string) {
	code, msg := ToHTTPResponse(err, failTitle)

	resp := dto.ErrorResponse{Success: false, Error: msg}
	if code == http.StatusInternalServerError {
		resp.Message = err.Error()
	}

	WriteSuccess(w, code, resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePrice переводит строку вида "1200" или "1200.00" в целое число единиц валюты.
// Дробная часть должна быть нулевой, значение не больше миллиарда.
func parsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return 0, e.ErrInvalidPrice
	}

	if d.GreaterThan(decimal.NewFromInt(1_000_000_000)) {
		return 0, e.ErrInvalidPrice
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, e.ErrPricePrecision
	}

	return d.IntPart(), nil
}

// parseOptionalPrice возвращает nil для пустой строки.
func parseOptionalPrice(s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	v, err := parsePrice(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseFlag повторяет поведение витрины: присутствующий параметр истинен только при значении "true".
func parseFlag(values map[string][]string, key string) *bool {
	v, ok := values[key]
	if !ok {
		return nil
	}

	flag := len(v) > 0 && v[0] == "true"
	return &flag
}

func parseOptionalInt(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return nil, e.Wrap("maxParticipants", e.ErrStatusBadRequest)
	}
	return &v, nil
}

// splitFeatures принимает как повторяющиеся поля features, так и одно поле через запятую.
func splitFeatures(values []string) []string {
	var res []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				res = append(res, f)
			}
		}
	}
	return res
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	return nil
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
