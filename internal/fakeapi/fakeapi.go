// Package fakeapi serves an in-memory stand-in for the JSONPlaceholder API.
// Tests point a placeholder.Client at it, and `folio -offline` runs it on a
// loopback port.
package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/five82/folio/internal/placeholder"
)

// Dataset is the content served by the fake API.
type Dataset struct {
	Posts    []placeholder.Post
	Comments []placeholder.Comment
	Albums   []placeholder.Album
	Photos   []placeholder.Photo
}

// Server routes requests against a Dataset. Created comments are echoed with
// a fresh id and not stored, matching the real API.
type Server struct {
	mu     sync.Mutex
	data   Dataset
	nextID int64
}

// New returns a Server over data.
func New(data Dataset) *Server {
	next := int64(len(data.Comments)) + 1
	for _, c := range data.Comments {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return &Server{data: data, nextID: next}
}

// Router builds the mux routes for every supported endpoint.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/posts", s.listPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", s.getPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/comments", s.listPostComments).Methods(http.MethodGet)
	r.HandleFunc("/comments", s.createComment).Methods(http.MethodPost)
	r.HandleFunc("/albums", s.listAlbums).Methods(http.MethodGet)
	r.HandleFunc("/albums/{id:[0-9]+}", s.getAlbum).Methods(http.MethodGet)
	r.HandleFunc("/albums/{id:[0-9]+}/photos", s.listAlbumPhotos).Methods(http.MethodGet)
	r.HandleFunc("/photos", s.listPhotos).Methods(http.MethodGet)
	return r
}

// Start serves the router on a loopback port until ctx is cancelled. It
// returns the base URL to hand to placeholder.NewClient.
func (s *Server) Start(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	srv := &http.Server{Handler: s.Router(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("fakeapi: serve failed: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return "http://" + ln.Addr().String(), nil
}

func (s *Server) listPosts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.data.Posts))
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.Posts {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func (s *Server) listPostComments(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []placeholder.Comment{}
	for _, c := range s.data.Comments {
		if c.PostID == id {
			out = append(out, c)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var in placeholder.NewComment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, placeholder.Comment{
		ID:     id,
		PostID: in.PostID,
		Name:   in.Name,
		Email:  in.Email,
		Body:   in.Body,
	})
}

func (s *Server) listAlbums(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.data.Albums))
}

func (s *Server) getAlbum(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.data.Albums {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func (s *Server) listAlbumPhotos(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []placeholder.Photo{}
	for _, p := range s.data.Photos {
		if p.AlbumID == id {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listPhotos(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.data.Photos))
}

func routeID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("fakeapi: encode response failed: %v", err)
	}
}
