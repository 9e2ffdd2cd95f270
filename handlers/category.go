package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cycleledger/database"
	"cycleledger/models"
)

func GetCategories(w http.ResponseWriter, r *http.Request) {
	query := "SELECT id, name, type FROM categories"
	args := []interface{}{}
	if catType := r.URL.Query().Get("type"); catType != "" {
		query += " WHERE type = ?"
		args = append(args, catType)
	}
	query += " ORDER BY name ASC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			respondServiceError(w, err)
			return
		}
		categories = append(categories, c)
	}

	respondJSON(w, http.StatusOK, categories)
}

func AddCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}
	if !models.ValidTransactionType(c.Type) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid category type %q", c.Type)})
		return
	}

	// Names are unique per type, case-insensitively.
	var count int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM categories WHERE LOWER(name) = LOWER(?) AND type = ?",
		c.Name, c.Type).Scan(&count)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if count > 0 {
		respondJSON(w, http.StatusConflict, errorResponse{Error: "category already exists"})
		return
	}

	c.ID = uuid.NewString()
	if _, err := database.DB.Exec(
		"INSERT INTO categories (id, name, type) VALUES (?, ?, ?)", c.ID, c.Name, c.Type); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res, err := database.DB.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if affected == 0 {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "category not found"})
		return
	}
	w.WriteHeader(http.StatusOK)
}
