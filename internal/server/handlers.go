package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/app"
	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/middleware"
)

// gestureHandler translates browser gestures into engine calls. Each
// route does nothing but name the gesture; the choreography lives behind
// the session's event bus.
type gestureHandler struct {
	logger   *zap.Logger
	sessions *SessionManager
}

// RegisterRoutes mounts the storefront surface.
func (h *gestureHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page)
	r.Post("/products/{id}/preview", h.preview)
	r.Post("/basket/items/{id}", h.addToBasket)
	r.Post("/basket/items/{id}/delete", h.deleteFromBasket)
	r.Post("/basket/open", h.openBasket)
	r.Post("/order", h.beginOrder)
	r.Post("/order/fields", h.orderFields)
	r.Post("/order/submit", h.submitOrder)
	r.Post("/contacts/submit", h.submitContacts)
	r.Post("/modal/close", h.closeModal)
}

func (h *gestureHandler) page(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}
	h.render(w, engine)
}

func (h *gestureHandler) preview(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		return e.SelectProduct(chi.URLParam(r, "id"))
	})
}

func (h *gestureHandler) addToBasket(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		return e.AddToBasket(chi.URLParam(r, "id"))
	})
}

func (h *gestureHandler) deleteFromBasket(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		return e.DeleteFromBasket(chi.URLParam(r, "id"))
	})
}

func (h *gestureHandler) openBasket(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		return e.OpenBasket()
	})
}

func (h *gestureHandler) beginOrder(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		return e.BeginOrder()
	})
}

// orderFields handles the payment choice buttons. The buttons sit inside
// the order form, so the address input travels along and is applied too.
func (h *gestureHandler) orderFields(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		if field := r.URL.Query().Get("field"); field != "" {
			if err := e.SetOrderField(field, r.URL.Query().Get("value")); err != nil {
				return err
			}
		}
		return applyFormFields(e, r, domain.FieldAddress)
	})
}

func (h *gestureHandler) submitOrder(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		if err := applyFormFields(e, r, domain.FieldAddress); err != nil {
			return err
		}
		return e.SubmitOrder()
	})
}

func (h *gestureHandler) submitContacts(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		if err := applyFormFields(e, r, domain.FieldEmail, domain.FieldPhone); err != nil {
			return err
		}
		return e.SubmitContacts()
	})
}

func (h *gestureHandler) closeModal(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, func(e *app.Engine) error {
		e.CloseModal()
		return nil
	})
}

// applyFormFields forwards the named posted inputs as field-change
// gestures, in the given order.
func applyFormFields(e *app.Engine, r *http.Request, fields ...string) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	for _, field := range fields {
		if !r.PostForm.Has(field) {
			continue
		}
		if err := e.SetOrderField(field, r.PostForm.Get(field)); err != nil {
			return err
		}
	}
	return nil
}

func (h *gestureHandler) gesture(w http.ResponseWriter, r *http.Request, fn func(e *app.Engine) error) {
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}

	if err := fn(engine); err != nil {
		h.respondGestureError(w, err)
		return
	}

	h.render(w, engine)
}

func (h *gestureHandler) engine(w http.ResponseWriter, r *http.Request) (*app.Engine, bool) {
	engine, err := h.sessions.Engine(w, r)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create session")
		return nil, false
	}
	return engine, true
}

func (h *gestureHandler) render(w http.ResponseWriter, engine *app.Engine) {
	html, err := engine.RenderPage()
	if err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func (h *gestureHandler) respondGestureError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUnknownProduct):
		middleware.RespondWithError(w, http.StatusNotFound, "unknown product")
	case errors.Is(err, checkout.ErrDraftInvalid),
		errors.Is(err, checkout.ErrEmptyBasket),
		errors.Is(err, checkout.ErrTransition):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Gesture failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "gesture failed")
	}
}
