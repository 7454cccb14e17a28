package dashboard

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/service"
)

// Handler drives the server-rendered staff and customer pages. It talks to
// the same services as the JSON API and owns nothing but the session carts.
type Handler struct {
	Menu     service.MenuServiceInterface
	Orders   service.OrderServiceInterface
	Sessions *SessionStore
}

func NewHandler(menuSvc service.MenuServiceInterface, orderSvc service.OrderServiceInterface) *Handler {
	return &Handler{
		Menu:     menuSvc,
		Orders:   orderSvc,
		Sessions: NewSessionStore(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.root).Methods("GET")
	r.HandleFunc("/dashboard/menu", h.menuPage).Methods("GET")
	r.HandleFunc("/dashboard/menu", h.addItem).Methods("POST")
	r.HandleFunc("/dashboard/menu/{id}/update", h.updateItem).Methods("POST")
	r.HandleFunc("/dashboard/menu/{id}/delete", h.deleteItem).Methods("POST")

	r.HandleFunc("/dashboard/shop", h.shopPage).Methods("GET")
	r.HandleFunc("/dashboard/shop/cart", h.addToCart).Methods("POST")
	r.HandleFunc("/dashboard/shop/cart/remove", h.removeFromCart).Methods("POST")
	r.HandleFunc("/dashboard/shop/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/dashboard/orders", h.ordersPage).Methods("GET")
	r.HandleFunc("/dashboard/orders/{id}/complete", h.completeOrder).Methods("POST")
	r.HandleFunc("/dashboard/orders/{id}/delete", h.deleteOrder).Methods("POST")
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard/menu", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s page: %v", name, err)
	}
}

func (h *Handler) menuPage(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, "menu", map[string]interface{}{
		"Items":   items,
		"Message": r.URL.Query().Get("msg"),
	})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/dashboard/menu?msg=price+must+be+a+number", http.StatusSeeOther)
		return
	}

	item := domain.MenuItem{Name: r.FormValue("name"), Price: price}
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		http.Redirect(w, r, "/dashboard/menu?msg="+err.Error(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard/menu", http.StatusSeeOther)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	patch := domain.MenuItemPatch{}
	if name := r.FormValue("name"); name != "" {
		patch.Name = &name
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Redirect(w, r, "/dashboard/menu?msg=price+must+be+a+number", http.StatusSeeOther)
			return
		}
		patch.Price = &price
	}

	if _, err := h.Menu.Update(r.Context(), id, patch); err != nil {
		http.Redirect(w, r, "/dashboard/menu?msg="+err.Error(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard/menu", http.StatusSeeOther)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Menu.Delete(r.Context(), id); err != nil {
		http.Redirect(w, r, "/dashboard/menu?msg="+err.Error(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard/menu", http.StatusSeeOther)
}

func (h *Handler) shopPage(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)

	items, err := h.Menu.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cart := h.Sessions.Cart(session)
	total, _, _ := service.AggregateCart(cart, items)

	h.render(w, "shop", map[string]interface{}{
		"Items":   items,
		"Cart":    cart,
		"Total":   total,
		"Message": r.URL.Query().Get("msg"),
	})
}

// addToCart only accepts names that resolve in the catalog right now, so a
// tampered form cannot stuff junk lines into the session cart.
func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	if name := r.FormValue("name"); name != "" {
		if _, err := h.Menu.GetByName(r.Context(), name); err != nil {
			http.Redirect(w, r, "/dashboard/shop?msg="+err.Error(), http.StatusSeeOther)
			return
		}
		h.Sessions.Add(session, name)
	}
	http.Redirect(w, r, "/dashboard/shop", http.StatusSeeOther)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	if name := r.FormValue("name"); name != "" {
		h.Sessions.Remove(session, name)
	}
	http.Redirect(w, r, "/dashboard/shop", http.StatusSeeOther)
}

// checkout submits the session cart as an order and clears the cart only
// when the order was accepted.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	cart := h.Sessions.Cart(session)

	order, err := h.Orders.Create(r.Context(), cart)
	if err != nil {
		http.Redirect(w, r, "/dashboard/shop?msg="+err.Error(), http.StatusSeeOther)
		return
	}

	h.Sessions.Clear(session)
	log.Printf("Dashboard checkout: order %d for %d", order.ID, order.TotalPrice)
	http.Redirect(w, r, "/dashboard/shop?msg=order+placed", http.StatusSeeOther)
}

func (h *Handler) ordersPage(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, "orders", map[string]interface{}{"Orders": orders})
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := h.Orders.Complete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/dashboard/orders", http.StatusSeeOther)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Orders.Delete(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/dashboard/orders", http.StatusSeeOther)
}
