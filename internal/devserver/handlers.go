package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/util"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

var errUnknownHobby = errors.New("hobby not found")
var errUnknownGoal = errors.New("goal not found")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListHobbies(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := append([]hobby.Hobby{}, s.catalog.Hobbies...)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateHobby(w http.ResponseWriter, r *http.Request) {
	var in hobby.Hobby
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	now := s.now()
	in.ID = util.NewObjectID()
	in.CreatedAt = now
	in.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.Hobbies = append(s.catalog.Hobbies, in)
	if err := s.persist(); err != nil {
		s.catalog.Hobbies = s.catalog.Hobbies[:len(s.catalog.Hobbies)-1]
		s.logger.Error("persist hobby", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	hobbyID := r.URL.Query().Get("hobbyId")

	s.mu.RLock()
	out := make([]hobby.Goal, 0, len(s.catalog.Goals))
	for _, g := range s.catalog.Goals {
		if hobbyID == "" || g.HobbyID == hobbyID {
			out = append(out, g)
		}
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var in hobby.Goal
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasHobby(in.HobbyID) {
		writeError(w, http.StatusUnprocessableEntity, errUnknownHobby)
		return
	}

	now := s.now()
	in.ID = util.NewObjectID()
	in.CreatedAt = now
	in.UpdatedAt = now
	s.catalog.Goals = append(s.catalog.Goals, in)
	if err := s.persist(); err != nil {
		s.catalog.Goals = s.catalog.Goals[:len(s.catalog.Goals)-1]
		s.logger.Error("persist goal", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	goalID := r.URL.Query().Get("goalId")

	s.mu.RLock()
	out := make([]hobby.Task, 0, len(s.catalog.Tasks))
	for _, t := range s.catalog.Tasks {
		if goalID == "" || t.GoalID == goalID {
			out = append(out, t)
		}
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in hobby.Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasGoal(in.GoalID) {
		writeError(w, http.StatusUnprocessableEntity, errUnknownGoal)
		return
	}

	now := s.now()
	in.ID = util.NewObjectID()
	in.CreatedAt = now
	in.UpdatedAt = now
	s.catalog.Tasks = append(s.catalog.Tasks, in)
	if err := s.persist(); err != nil {
		s.catalog.Tasks = s.catalog.Tasks[:len(s.catalog.Tasks)-1]
		s.logger.Error("persist task", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) hasHobby(id string) bool {
	for _, h := range s.catalog.Hobbies {
		if h.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) hasGoal(id string) bool {
	for _, g := range s.catalog.Goals {
		if g.ID == id {
			return true
		}
	}
	return false
}
