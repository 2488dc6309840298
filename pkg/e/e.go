package e

import "fmt"

var (
	// Внутренние ошибки
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrUnknownStoreDriver   = fmt.Errorf("unknown store driver")

	// 400 Bad Request
	ErrStatusBadRequest      = fmt.Errorf("bad request")
	ErrExpectedMultipart     = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields         = fmt.Errorf("missing required fields")
	ErrInvalidPrice          = fmt.Errorf("invalid price")
	ErrPricePrecision        = fmt.Errorf("price must be a whole amount")
	ErrInvalidPriceRange     = fmt.Errorf("minPrice must not exceed maxPrice")
	ErrTooManyImages         = fmt.Errorf("too many images")
	ErrNoImages              = fmt.Errorf("no images provided")
	ErrFileTooLarge          = fmt.Errorf("file too large")
	ErrProductNameRequired   = fmt.Errorf("product name is required")
	ErrCategoryRequired      = fmt.Errorf("category is required")
	ErrNegativeJoinedCount   = fmt.Errorf("joined count must not be negative")
	ErrProductIDRequired     = fmt.Errorf("product ID is required")
	ErrCustomerNameRequired  = fmt.Errorf("customer name is required")
	ErrCustomerPhoneRequired = fmt.Errorf("customer phone is required")
	ErrEmptyOrder            = fmt.Errorf("order must contain at least one item")
	ErrInvalidLineItem       = fmt.Errorf("invalid order item")
	ErrInvalidJSON           = fmt.Errorf("invalid JSON body")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
