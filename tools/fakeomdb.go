package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// splitCamelCase splits a camelCase string into a slice of words.
func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}
	re := regexp.MustCompile("([a-z0-9])([A-Z])")
	s = re.ReplaceAllString(s, "${1} ${2}")
	return strings.Fields(s)
}

type fakeItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

const pageSize = 10

func main() {
	http.HandleFunc("/", searchHandler)

	fmt.Println("Fake OMDb server starting on :8090")
	fmt.Println("Special terms: 'notfound' -> Response False, 'fail500' -> HTTP 500, 'badjson' -> malformed body")
	log.Fatal(http.ListenAndServe(":8090", nil))
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("Received request URL: %s", r.URL.String())

	query := r.URL.Query()
	term := strings.TrimSpace(query.Get("s"))

	if query.Get("apikey") == "" {
		respondFalse(w, http.StatusUnauthorized, "No API key provided.")
		return
	}

	switch strings.ToLower(term) {
	case "":
		respondFalse(w, http.StatusOK, "Incorrect IMDb ID.")
		return
	case "notfound":
		respondFalse(w, http.StatusOK, "Movie not found!")
		return
	case "fail500":
		w.WriteHeader(http.StatusInternalServerError)
		return
	case "badjson":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Search":[`)
		return
	}

	mediaType := query.Get("type")
	if mediaType == "" {
		mediaType = "movie"
	}
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	name := term
	if parts := splitCamelCase(term); len(parts) > 1 {
		name = strings.Join(parts, " ")
	}

	total := rand.Intn(25) + 1
	var items []fakeItem
	for i := (page - 1) * pageSize; i < total && i < page*pageSize; i++ {
		year := query.Get("y")
		if year == "" {
			year = strconv.Itoa(1970 + rand.Intn(55))
		}
		title := name
		if i > 0 {
			title = fmt.Sprintf("%s %d", name, i+1)
		}
		items = append(items, fakeItem{
			Title:  title,
			Year:   year,
			ImdbID: fmt.Sprintf("tt%07d", rand.Intn(9999999)),
			Type:   mediaType,
			Poster: "N/A",
		})
	}
	if len(items) == 0 {
		respondFalse(w, http.StatusOK, "Movie not found!")
		return
	}

	log.Printf("Interpreted search for: '%s', type: %s, page: %d, results: %d", name, mediaType, page, len(items))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"Search":       items,
		"totalResults": strconv.Itoa(total),
		"Response":     "True",
	})
}

func respondFalse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"Response": "False",
		"Error":    message,
	})
}
