package ioserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/barcraft/bardb/pkg/records"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/dustin/go-humanize"
)

// response is the envelope every endpoint answers with.
type response struct {
	Status        string                  `json:"status"`
	Msg           string                  `json:"msg"`
	FileLocation  string                  `json:"file_location,omitempty"`
	Ingredients   []string                `json:"ingredients,omitempty"`
	Results       *int                    `json:"results,omitempty"`
	InvalidDrinks []records.InvalidRecord `json:"invalid_drinks,omitempty"`
}

type drinkRequest struct {
	DrinkFile string `json:"drink_file"`
}

type ingredientsRequest struct {
	IngredientsFile string `json:"ingredients_file"`
}

type linkRequest struct {
	LinkFile string `json:"link_file"`
}

func (s *Server) handleValidateDrinks(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.drinkRef(w, r)
	if !ok {
		return
	}

	invalid, err := s.stages.ValidateDrinks(ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	if len(invalid) > 0 {
		writeJSON(w, http.StatusOK, response{
			Status:        "fail",
			Msg:           "Drink records are missing required fields",
			InvalidDrinks: invalid,
		})
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status: "success",
		Msg:    "All drink records are valid",
	})
}

func (s *Server) handleFilterDrinks(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.drinkRef(w, r)
	if !ok {
		return
	}

	out, n, err := s.stages.FilterNewDrinks(r.Context(), ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:       "success",
		Msg:          fmt.Sprintf("%d new drinks", n),
		FileLocation: string(out),
		Results:      &n,
	})
}

func (s *Server) handleTransformDrinks(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.drinkRef(w, r)
	if !ok {
		return
	}

	out, err := s.stages.TransformDrinks(ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:       "success",
		Msg:          "Drinks transformed",
		FileLocation: string(out),
	})
}

func (s *Server) handleStoreDrinks(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.drinkRef(w, r)
	if !ok {
		return
	}

	n, err := s.stages.StoreDrinks(r.Context(), ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status: "success",
		Msg: fmt.Sprintf(
			"Loaded %s drinks", humanize.Comma(n)),
	})
}

func (s *Server) handleUniqueIngredients(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.drinkRef(w, r)
	if !ok {
		return
	}

	names, err := s.stages.UniqueIngredients(ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:      "success",
		Msg:         fmt.Sprintf("%d unique ingredients", len(names)),
		Ingredients: names,
	})
}

func (s *Server) handleFilterIngredients(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.ingredientsRef(w, r)
	if !ok {
		return
	}

	out, n, err := s.stages.FilterNewIngredients(r.Context(), ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:       "success",
		Msg:          fmt.Sprintf("%d new ingredients", n),
		FileLocation: string(out),
		Results:      &n,
	})
}

func (s *Server) handleTransformIngredients(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.ingredientsRef(w, r)
	if !ok {
		return
	}

	out, err := s.stages.TransformIngredients(ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:       "success",
		Msg:          "Ingredients transformed",
		FileLocation: string(out),
	})
}

func (s *Server) handleStoreIngredients(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.ingredientsRef(w, r)
	if !ok {
		return
	}

	n, err := s.stages.StoreIngredients(r.Context(), ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status: "success",
		Msg: fmt.Sprintf(
			"Loaded %s ingredients", humanize.Comma(n)),
	})
}

func (s *Server) handleTransformLinks(
	w http.ResponseWriter, r *http.Request,
) {
	ref, ok := s.drinkRef(w, r)
	if !ok {
		return
	}

	out, report, err := s.stages.TransformLinks(r.Context(), ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status: "success",
		Msg: fmt.Sprintf("%d links, %d unresolved mentions",
			len(report.Links), len(report.Unresolved)),
		FileLocation: string(out),
	})
}

func (s *Server) handleStoreLinks(
	w http.ResponseWriter, r *http.Request,
) {
	var req linkRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.LinkFile == "" {
		badRequest(w, "link_file is required")
		return
	}

	n, err := s.stages.StoreLinks(r.Context(), stage.Ref(req.LinkFile))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status: "success",
		Msg: fmt.Sprintf(
			"Loaded %s links", humanize.Comma(n)),
	})
}

func (s *Server) drinkRef(
	w http.ResponseWriter, r *http.Request,
) (stage.Ref, bool) {
	var req drinkRequest
	if !decodeRequest(w, r, &req) {
		return "", false
	}
	if req.DrinkFile == "" {
		badRequest(w, "drink_file is required")
		return "", false
	}
	return stage.Ref(req.DrinkFile), true
}

func (s *Server) ingredientsRef(
	w http.ResponseWriter, r *http.Request,
) (stage.Ref, bool) {
	var req ingredientsRequest
	if !decodeRequest(w, r, &req) {
		return "", false
	}
	if req.IngredientsFile == "" {
		badRequest(w, "ingredients_file is required")
		return "", false
	}
	return stage.Ref(req.IngredientsFile), true
}

// fail answers a stage error: missing staging files are the caller's
// fault (400), everything else is a business failure (200).
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusOK
	if isMalformed(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, response{
		Status: "fail",
		Msg:    err.Error(),
	})
}

func decodeRequest(
	w http.ResponseWriter, r *http.Request, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "request body is not valid JSON")
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, response{
		Status: "fail",
		Msg:    msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
