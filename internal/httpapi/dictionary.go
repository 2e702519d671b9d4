package httpapi

import (
	"net/http"

	"github.com/tinoosan/smartbudget/internal/dictionary"
	"github.com/tinoosan/smartbudget/internal/slug"
)

// GET /v1/dictionary/categories
func (s *Server) getCategoriesDictionary(w http.ResponseWriter, r *http.Request) {
	rules := s.categorizer.Rules()
	out := struct {
		Items   []categoryDefResponse `json:"items"`
		Default string                `json:"default"`
	}{Items: make([]categoryDefResponse, 0, len(rules)), Default: s.categorizer.Default()}
	for _, rule := range rules {
		out.Items = append(out.Items, categoryDefResponse{Code: slug.Slugify(rule.Category), Name: rule.Category, Keywords: rule.Keywords, Curated: dictionary.IsCurated(rule.Category)})
	}
	toJSON(w, http.StatusOK, out)
}
