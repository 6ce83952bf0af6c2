package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"wings_cafe/internal/api/middleware"
	"wings_cafe/internal/app/service"
	"wings_cafe/internal/common"
	"wings_cafe/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	inventoryService *service.InventoryService
}

func NewProductHandler(is *service.InventoryService) *ProductHandler {
	return &ProductHandler{inventoryService: is}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/", h.listProducts)
	r.Post("/", h.createProduct)
	r.Put("/sell/{productID}", h.sellProduct)
	r.Put("/{productID}", h.updateProduct)
	r.Delete("/{productID}", h.deleteProduct)
}

func productIDFromURL(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		return 0, common.Errorf("invalid product id: %w", common.ErrBadRequest)
	}
	return id, nil
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.inventoryService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.inventoryService.Update(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) sellProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	product, err := h.inventoryService.Sell(r.Context(), id, 1)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type SellResponse struct {
		ID       int64 `json:"id"`
		Quantity int   `json:"quantity"`
	}
	common.RespondWithJSON(w, http.StatusOK, SellResponse{ID: product.ID, Quantity: product.Quantity})
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	if err := h.inventoryService.Delete(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	type DeleteResponse struct {
		Message string `json:"message"`
	}
	common.RespondWithJSON(w, http.StatusOK, DeleteResponse{Message: "Product deleted successfully"})
}
