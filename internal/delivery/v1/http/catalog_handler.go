package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pinkcart/go-backend/internal/delivery/v1/http/dto"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const (
	failFetchProducts   = "Failed to fetch products"
	failFetchProduct    = "Failed to fetch product"
	failCreateProduct   = "Failed to create product"
	failFetchCategories = "Failed to fetch categories"
	failInitDatabase    = "Failed to initialize database"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает товары по фильтру, новые первыми. categoryId=all или неизвестный slug не фильтрует.
//	@Tags			products
//	@Produce		json
//	@Param			categoryId	query		string	false	"slug категории"
//	@Param			search		query		string	false	"подстрока в названии или описании"
//	@Param			featured	query		string	false	"true: только рекомендуемые"
//	@Param			active		query		string	false	"true: только активные"
//	@Param			minPrice	query		integer	false	"нижняя граница цены"
//	@Param			maxPrice	query		integer	false	"верхняя граница цены"
//	@Success		200			{object}	dto.ListResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		500			{object}	dto.ErrorResponse
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := parseOptionalPrice(q.Get("minPrice"))
	if err != nil {
		WriteError(w, err, failFetchProducts)
		return
	}
	maxPrice, err := parseOptionalPrice(q.Get("maxPrice"))
	if err != nil {
		WriteError(w, err, failFetchProducts)
		return
	}

	products, err := h.catalogUsecase.ListProducts(r.Context(), &usecase.ListProductsReq{
		CategoryID: q.Get("categoryId"),
		Search:     q.Get("search"),
		Featured:   parseFlag(q, "featured"),
		Active:     parseFlag(q, "active"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	})
	if err != nil {
		h.logger.Errorf(err, "list products")
		WriteError(w, err, failFetchProducts)
		return
	}

	WriteSuccess(w, http.StatusOK, dto.ListResponse{Success: true, Data: dto.FromProducts(products), Count: len(products)})
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"идентификатор товара"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("get product: %v", err)
		WriteError(w, err, failFetchProduct)
		return
	}

	WriteSuccess(w, http.StatusOK, dto.Response{Success: true, Data: dto.FromProduct(product)})
}

// createProduct
//
//	@Summary		Добавление товара
//	@Description	Создаёт товар и загружает его изображения в объектное хранилище
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name			formData	string	true	"Название"
//	@Param			description		formData	string	false	"Описание"
//	@Param			category		formData	string	true	"slug или название категории"
//	@Param			price			formData	integer	true	"Цена"
//	@Param			originalPrice	formData	integer	false	"Цена до скидки"
//	@Param			featured		formData	boolean	false	"Рекомендуемый"
//	@Param			maxParticipants	formData	integer	false	"Размер группы"
//	@Param			features		formData	string	false	"Особенности через запятую"
//	@Param			images			formData	file	true	"Изображения, первое основное"
//	@Success		201				{object}	dto.Response
//	@Failure		400				{object}	dto.ErrorResponse
//	@Failure		500				{object}	dto.ErrorResponse
//	@Router			/products [post]
func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err, failCreateProduct)
		return
	}

	req, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err, failCreateProduct)
		return
	}

	product, err := h.catalogUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		h.logger.Errorf(err, "create product %q", req.Name)
		WriteError(w, err, failCreateProduct)
		return
	}

	WriteSuccess(w, http.StatusCreated, dto.Response{Success: true, Data: dto.FromProduct(product), Message: "Product created successfully"})
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{object}	dto.ListResponse
//	@Failure	500	{object}	dto.ErrorResponse
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list categories")
		WriteError(w, err, failFetchCategories)
		return
	}

	WriteSuccess(w, http.StatusOK, dto.ListResponse{Success: true, Data: dto.FromCategories(categories), Count: len(categories)})
}

// initDatabase
//
//	@Summary		Начальное заполнение
//	@Description	Создаёт категории и образцы товаров, если категорий ещё нет
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Failure		500	{object}	dto.ErrorResponse
//	@Router			/init [post]
func (h *CatalogHandler) initDatabase(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalogUsecase.Seed(r.Context())
	if err != nil {
		h.logger.Errorf(err, "init database")
		WriteError(w, err, failInitDatabase)
		return
	}

	WriteSuccess(w, http.StatusOK, dto.Response{
		Success: true,
		Message: "Database initialized successfully",
		Data:    dto.SeedResult{Skipped: res.Skipped, Categories: res.Categories, Products: res.Products},
	})
}

func parseProductForm(r *http.Request) (*usecase.CreateProductReq, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	category := strings.TrimSpace(r.FormValue("category"))
	priceStr := r.FormValue("price")

	if name == "" || category == "" || strings.TrimSpace(priceStr) == "" {
		return nil, e.Wrap("name, category and price are required", e.ErrMissingFields)
	}

	price, err := parsePrice(priceStr)
	if err != nil {
		return nil, err
	}

	originalPrice, err := parseOptionalPrice(r.FormValue("originalPrice"))
	if err != nil {
		return nil, err
	}

	maxParticipants, err := parseOptionalInt(r.FormValue("maxParticipants"))
	if err != nil {
		return nil, err
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		return nil, err
	}

	return &usecase.CreateProductReq{
		Name:            name,
		Description:     r.FormValue("description"),
		Category:        category,
		Price:           price,
		OriginalPrice:   originalPrice,
		Featured:        r.FormValue("featured") == "true",
		MaxParticipants: maxParticipants,
		Features:        splitFeatures(r.MultipartForm.Value["features"]),
		Images:          images,
	}, nil
}
