// Command ringserver serves ring-code rendering and decoding over HTTP.
//
//	GET  /render?text=hi&level=1&style=ocean&size=800  -> PNG
//	GET  /render.svg?text=hi&level=1&style=ocean       -> SVG
//	POST /decode (image body)                          -> {"text": ...}
//	GET  /styles                                       -> style table
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/yyyoichi/ringcode"
)

const (
	maxBodyBytes  = 16 << 20
	decodeTimeout = 30 * time.Second
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/styles", stylesHandler).Methods("GET")
	r.HandleFunc("/render", renderHandler).Methods("GET")
	r.HandleFunc("/render.svg", renderSVGHandler).Methods("GET")
	r.HandleFunc("/decode", decodeHandler).Methods("POST")

	log.Printf("ringserver listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, gzhttp.GzipHandler(r)))
}

func stylesHandler(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Background string `json:"background"`
		Foreground string `json:"foreground"`
	}
	var out []entry
	for _, id := range ringcode.StyleIDs() {
		s := ringcode.StyleByID(id)
		out = append(out, entry{
			ID:         id,
			Name:       s.Name,
			Background: fmt.Sprintf("#%02x%02x%02x", s.Background.R, s.Background.G, s.Background.B),
			Foreground: fmt.Sprintf("#%02x%02x%02x", s.Foreground.R, s.Foreground.G, s.Foreground.B),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// renderParams pulls the shared encode query parameters.
func renderParams(r *http.Request) (text string, level ringcode.Level, style ringcode.Style, size int, err error) {
	q := r.URL.Query()
	text = q.Get("text")
	if text == "" {
		return "", 0, ringcode.Style{}, 0, errors.New("missing text parameter")
	}
	level = ringcode.Level(1)
	if v := q.Get("level"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 || n > 3 {
			return "", 0, ringcode.Style{}, 0, errors.New("level must be 0-3")
		}
		level = ringcode.Level(n)
	}
	style = ringcode.StyleByID(q.Get("style"))
	size = 1024
	if v := q.Get("size"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 64 || n > 4096 {
			return "", 0, ringcode.Style{}, 0, errors.New("size must be 64-4096")
		}
		size = n
	}
	return text, level, style, size, nil
}

func renderHandler(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	text, level, style, size, err := renderParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bits, err := ringcode.Encode(text, level)
	if err != nil {
		if errors.Is(err, ringcode.ErrPayloadTooLarge) {
			http.Error(w, "text too long for ecc level", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, ringcode.Render(bits, size, style)); err != nil {
		log.Printf("[%s] render: %v", reqID, err)
	}
}

func renderSVGHandler(w http.ResponseWriter, r *http.Request) {
	text, level, style, size, err := renderParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bits, err := ringcode.Encode(text, level)
	if err != nil {
		if errors.Is(err, ringcode.ErrPayloadTooLarge) {
			http.Error(w, "text too long for ecc level", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, ringcode.RenderSVG(bits, size, style))
}

func decodeHandler(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	img, _, err := image.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "unreadable image", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), decodeTimeout)
	defer cancel()
	start := time.Now()
	text, err := ringcode.Decode(ctx, img, nil)
	if err != nil {
		log.Printf("[%s] decode failed after %s: %v", reqID, time.Since(start).Round(time.Millisecond), err)
		http.Error(w, "no valid ring code found", http.StatusUnprocessableEntity)
		return
	}
	log.Printf("[%s] decoded %d bytes in %s", reqID, len(text), time.Since(start).Round(time.Millisecond))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"text": text})
}
