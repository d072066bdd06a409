package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"moyo/auth"
	"moyo/models"
	"moyo/rdx"
	"moyo/upstream"
	"moyo/utils"

	"github.com/julienschmidt/httprouter"
)

const catalogCacheTTL = 5 * time.Minute

// Handlers serves the catalog, proxied from the backend with a short Redis
// read-through cache. Anonymous callers read with the API-user token.
type Handlers struct {
	API *upstream.Client
}

func NewHandlers(api *upstream.Client) *Handlers {
	return &Handlers{API: api}
}

// GetProducts lists the transformed catalog.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached, err := rdx.RdxGet("products:all"); err == nil && cached != "" {
		var display []models.ProductDisplay
		if err := json.Unmarshal([]byte(cached), &display); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, display)
			return
		}
	}

	token := auth.UpstreamToken(r, h.API)
	raw, err := h.API.FetchProducts(ctx, token)
	if staleAPIUserToken(r, err) {
		h.API.DropReadOnlyToken()
		token = auth.UpstreamToken(r, h.API)
		raw, err = h.API.FetchProducts(ctx, token)
	}
	if err != nil {
		log.Println("GetProducts upstream error:", err)
		http.Error(w, "Could not retrieve products", http.StatusBadGateway)
		return
	}

	display := TransformAll(raw)
	cacheCatalog("products:all", display)
	utils.RespondWithJSON(w, http.StatusOK, display)
}

// GetProduct returns one transformed product.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(ps.ByName("productId"))
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	cacheKey := "products:" + ps.ByName("productId")
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var display models.ProductDisplay
		if err := json.Unmarshal([]byte(cached), &display); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, display)
			return
		}
	}

	token := auth.UpstreamToken(r, h.API)
	raw, err := h.API.FetchProduct(ctx, token, id)
	if staleAPIUserToken(r, err) {
		h.API.DropReadOnlyToken()
		token = auth.UpstreamToken(r, h.API)
		raw, err = h.API.FetchProduct(ctx, token, id)
	}
	if err != nil {
		if apiErr, ok := err.(*upstream.APIError); ok && apiErr.Status == http.StatusNotFound {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Println("GetProduct upstream error:", err)
		http.Error(w, "Could not retrieve product", http.StatusBadGateway)
		return
	}

	display := Transform(raw)
	cacheCatalog(cacheKey, display)
	utils.RespondWithJSON(w, http.StatusOK, display)
}

// staleAPIUserToken reports whether an anonymous catalog read failed because
// the cached API-user token expired, which one drop-and-retry cures.
func staleAPIUserToken(r *http.Request, err error) bool {
	if utils.GetUserIDFromRequest(r) != "" {
		return false
	}
	apiErr, ok := err.(*upstream.APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

func cacheCatalog(key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := rdx.SetWithExpiry(key, string(data), catalogCacheTTL); err != nil {
		log.Println("products cache write failed:", err)
	}
}
