package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/service"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/stats"
)

type Handler struct {
	Menu      service.MenuServiceInterface
	Orders    service.OrderServiceInterface
	Stats     stats.ReaderInterface
	UploadDir string
}

func NewHandler(menuSvc service.MenuServiceInterface, orderSvc service.OrderServiceInterface, statsReader stats.ReaderInterface, uploadDir string) *Handler {
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	return &Handler{
		Menu:      menuSvc,
		Orders:    orderSvc,
		Stats:     statsReader,
		UploadDir: uploadDir,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.addMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/menu/{id}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/complete", h.completeOrder).Methods("PUT")
	r.HandleFunc("/api/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/receipt", h.getOrderReceipt).Methods("GET")

	r.HandleFunc("/api/stats/top-items", h.getTopItems).Methods("GET")
	r.HandleFunc("/api/stats/summary", h.getStatsSummary).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "coffeeshop-manager",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation problems are 400, missing ids are 404, storage failures are 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidItem), errors.Is(err, service.ErrEmptyCart):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem

	if isMultipart(r) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "File too large", http.StatusBadRequest)
			return
		}
		price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
		if err != nil {
			http.Error(w, service.ErrInvalidItem.Error(), http.StatusBadRequest)
			return
		}
		item.Name = r.FormValue("name")
		item.Price = price

		if err := h.Menu.Create(r.Context(), &item); err != nil {
			writeServiceError(w, err)
			return
		}

		if _, _, err := r.FormFile("image"); err == nil {
			imageURL, err := h.saveUpload(r, item.ID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := h.Menu.UpdateImage(r.Context(), item.ID, imageURL); err != nil {
				writeServiceError(w, err)
				return
			}
			item.ImageURL = imageURL
		}
	} else {
		var payload struct {
			Name     string `json:"name"`
			Price    *int64 `json:"price"`
			ImageURL string `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if payload.Price == nil {
			http.Error(w, service.ErrInvalidItem.Error(), http.StatusBadRequest)
			return
		}
		item = domain.MenuItem{Name: payload.Name, Price: *payload.Price, ImageURL: payload.ImageURL}
		if err := h.Menu.Create(r.Context(), &item); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// updateMenuItem handles two distinct payloads on the same route, mirroring
// the admin page: a JSON body patches name/price, a multipart body replaces
// the image. Changing both takes two calls.
func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if isMultipart(r) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "File too large", http.StatusBadRequest)
			return
		}
		imageURL, err := h.saveUpload(r, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.Menu.UpdateImage(r.Context(), id, imageURL); err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"image_url": imageURL})
		return
	}

	var patch domain.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.Menu.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Menu.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Cart []domain.CartLine `json:"cart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Create(r.Context(), domain.Cart{Lines: payload.Cart})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Complete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Orders.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrderReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	receipt, err := h.Orders.Receipt(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(receipt)
}

func (h *Handler) getTopItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Stats.TopItems(r.Context(), limit)
	if err != nil {
		json.NewEncoder(w).Encode([]stats.ItemCount{})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) getStatsSummary(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	summary, err := h.Stats.Summary(r.Context(), day)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handler) saveUpload(r *http.Request, itemID int) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", errors.New("error retrieving the file")
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		return "", errors.New("invalid file type, only JPEG, PNG, GIF, WebP allowed")
	}

	if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
		return "", errors.New("failed to create upload directory")
	}

	filename := "item_" + strconv.Itoa(itemID) + "_" + filepath.Base(header.Filename)
	path := filepath.Join(h.UploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", errors.New("failed to save file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", errors.New("failed to save file")
	}

	return "/uploads/" + filename, nil
}
