package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux *mux.Router
}

func NewRoutes(mux *mux.Router) *Routes {
	return &Routes{mux}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Bot is alive!"))
	}).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
