package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/domain/model"
)

const maxMultipartMemory = 10 << 20

type ctxKey struct{}

type caller struct {
	userID string
	role   domainauth.Role
}

func callerFrom(ctx context.Context) caller {
	c, _ := ctx.Value(ctxKey{}).(caller)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// requireToken rejects requests without a valid `token` header.
func (s *Server) requireToken(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("token")
		if raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		claims, err := s.verifyToken(raw)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		role, ok := domainauth.ParseRole(claims.Role)
		if !ok {
			writeMessage(w, http.StatusForbidden, "Unknown role.")
			return
		}
		s.mu.Lock()
		_, known := s.users[claims.ID]
		s.mu.Unlock()
		if !known {
			writeMessage(w, http.StatusUnauthorized, "User no longer exists.")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, caller{userID: claims.ID, role: role})
		next(w, r.WithContext(ctx))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	var found *userRecord
	for _, u := range s.users {
		if u.Email == email {
			found = u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || found.password != in.Password {
		writeMessage(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}
	token, err := s.mintToken(found.User)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not issue token.")
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token, Role: found.Role, UserID: found.ID})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		writeMessage(w, http.StatusBadRequest, "fullName, email and password are required.")
		return
	}

	s.mu.Lock()
	rec, err := s.addUser(SeedUser{
		FullName: in.FullName,
		Email:    in.Email,
		Password: in.Password,
		Role:     domainauth.RoleParticipant,
	})
	s.mu.Unlock()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "User already exists.")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered", "user": rec.User})
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := sortedUsers(s.users)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

// handleListEvents scopes by role: organizers see what they own,
// participants see what they are registered for.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r.Context())
	s.mu.Lock()
	out := s.eventsLocked(func(rec *eventRecord) bool {
		if c.role == domainauth.RoleOrganizer {
			return rec.organizerID == c.userID
		}
		return hasParticipant(rec.event, c.userID)
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleParticipantEvents(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r.Context())
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = c.userID
	}
	if c.role != domainauth.RoleOrganizer && userID != c.userID {
		writeMessage(w, http.StatusForbidden, "Access denied.")
		return
	}
	s.mu.Lock()
	out := s.eventsLocked(func(rec *eventRecord) bool { return hasParticipant(rec.event, userID) })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	rec, ok := s.events[id]
	var ev model.Event
	if ok {
		ev = *rec.event.Clone()
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Event not found.")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r.Context())
	if c.role != domainauth.RoleOrganizer {
		writeMessage(w, http.StatusForbidden, "Only organizers can create events.")
		return
	}
	form, err := parseEventForm(r, "participants")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	refs, err := s.populate(form.participants)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(refs) > form.maxParticipants {
		writeMessage(w, http.StatusBadRequest, "Too many participants for this event.")
		return
	}
	ev := model.Event{
		ID:              uuid.NewString(),
		Title:           form.title,
		Description:     form.description,
		Location:        form.location,
		Date:            form.date,
		MaxParticipants: form.maxParticipants,
		Participants:    refs,
		Image:           form.image,
	}
	s.events[ev.ID] = &eventRecord{event: ev, organizerID: c.userID}
	s.order = append(s.order, ev.ID)
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r.Context())
	id := r.PathValue("id")
	form, err := parseEventForm(r, "participants[]")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Event not found.")
		return
	}
	if c.role != domainauth.RoleOrganizer || rec.organizerID != c.userID {
		writeMessage(w, http.StatusForbidden, "You can only edit your own events.")
		return
	}
	refs, err := s.populate(form.participants)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(refs) > form.maxParticipants {
		writeMessage(w, http.StatusBadRequest, "Too many participants for this event.")
		return
	}
	image := form.image
	if image == nil && form.existing != nil {
		image = form.existing
	}
	rec.event = model.Event{
		ID:              id,
		Title:           form.title,
		Description:     form.description,
		Location:        form.location,
		Date:            form.date,
		MaxParticipants: form.maxParticipants,
		Participants:    refs,
		Image:           image,
	}
	writeJSON(w, http.StatusOK, rec.event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	c := callerFrom(r.Context())
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Event not found.")
		return
	}
	if c.role != domainauth.RoleOrganizer || rec.organizerID != c.userID {
		writeMessage(w, http.StatusForbidden, "You can only delete your own events.")
		return
	}
	s.deleteLocked(id)
	writeMessage(w, http.StatusOK, "Event deleted.")
}

type eventForm struct {
	title           string
	description     string
	location        string
	date            time.Time
	maxParticipants int
	participants    []string
	image           *model.Image
	existing        *model.Image
}

// dateLayouts lists accepted date encodings; the second is an HTML datetime-local value.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func parseEventForm(r *http.Request, participantsField string) (eventForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return eventForm{}, errors.New("expected multipart/form-data body")
	}
	v := r.MultipartForm.Value
	first := func(k string) string {
		if vals := v[k]; len(vals) > 0 {
			return strings.TrimSpace(vals[0])
		}
		return ""
	}

	f := eventForm{
		title:        first("title"),
		description:  first("description"),
		location:     first("location"),
		participants: v[participantsField],
	}
	if f.title == "" || f.location == "" {
		return eventForm{}, errors.New("title and location are required")
	}
	date, err := parseDate(first("date"))
	if err != nil {
		return eventForm{}, err
	}
	f.date = date
	maxP, err := strconv.Atoi(first("maxParticipants"))
	if err != nil || maxP < 1 {
		return eventForm{}, errors.New("maxParticipants must be a positive integer")
	}
	f.maxParticipants = maxP

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		fh := files[0]
		file, err := fh.Open()
		if err != nil {
			return eventForm{}, errors.New("unreadable image")
		}
		_, _ = io.Copy(io.Discard, file)
		_ = file.Close()
		publicID := uuid.NewString()
		f.image = &model.Image{
			URL:      "/uploads/" + publicID + path.Ext(fh.Filename),
			PublicID: publicID,
		}
	}
	if u := first("existingImageUrl"); u != "" {
		f.existing = &model.Image{URL: u, PublicID: first("existingImagePublicId")}
	}
	return f, nil
}
