package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/recipebook/internal/server/gateway"
	"github.com/go-chi/chi/v5"
)

type handlers struct {
	gw *gateway.Gateway
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var in gateway.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.Register(r.Context(), in))
}

func (h *handlers) signIn(w http.ResponseWriter, r *http.Request) {
	var in gateway.SignInInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.SignIn(r.Context(), in))
}

func (h *handlers) signOut(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.SignOut(r.Context(), in.RefreshToken))
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.Refresh(r.Context(), in.RefreshToken))
}

func (h *handlers) session(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.gw.Session(r.Context()))
}

func (h *handlers) listIngredients(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeResult(w, h.gw.SearchIngredients(r.Context(), q))
		return
	}
	writeResult(w, h.gw.ListIngredients(r.Context()))
}

func (h *handlers) createIngredient(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.CreateIngredient(r.Context(), form))
}

func (h *handlers) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.gw.DeleteIngredient(r.Context(), chi.URLParam(r, "id")))
}

func (h *handlers) listRecipes(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.gw.ListRecipes(r.Context()))
}

func (h *handlers) getRecipe(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.gw.GetRecipe(r.Context(), chi.URLParam(r, "id")))
}

func (h *handlers) createRecipe(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.CreateRecipe(r.Context(), form))
}

func (h *handlers) updateRecipe(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeResult(w, gateway.MalformedRequest())
		return
	}
	writeResult(w, h.gw.UpdateRecipe(r.Context(), chi.URLParam(r, "id"), form))
}

func (h *handlers) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.gw.DeleteRecipe(r.Context(), chi.URLParam(r, "id")))
}

func (h *handlers) imageUploadURL(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.gw.ImageUploadURL(r.Context()))
}
