package server

import (
	"fmt"
	"net/http"

	"github.com/amonks/workshop/app"
	internalstrings "github.com/amonks/workshop/internal/strings"
	"github.com/amonks/workshop/todo"
)

func (s *Server) handleTodosList(w http.ResponseWriter, r *http.Request) {
	var payload todosListRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	view := internalstrings.NormalizeLowerTrimSpace(payload.View)
	var response TodoList
	var viewErr error
	s.ctx.Do(func(st app.Stores) {
		switch view {
		case "", ViewFiltered:
			response.Todos = st.Todos.FilteredTodos()
		case ViewAll:
			response.Todos = st.Todos.Todos()
		case ViewActive:
			response.Todos = st.Todos.ActiveTodos()
		case ViewCompleted:
			response.Todos = st.Todos.CompletedTodos()
		default:
			viewErr = fmt.Errorf("unknown view %q", payload.View)
			return
		}
		response.Filter = st.Todos.Filter()
		response.Stats = st.Todos.Stats()
	})
	if viewErr != nil {
		s.writeError(w, r, http.StatusBadRequest, viewErr)
		return
	}
	if response.Todos == nil {
		response.Todos = []todo.Todo{}
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosByPriority(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todosByPriorityResponse
	s.ctx.Do(func(st app.Stores) {
		response.Todos = st.Todos.TodosByPriority()
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosAdd(w http.ResponseWriter, r *http.Request) {
	var payload todosAddRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todosAddResponse
	s.ctx.Do(func(st app.Stores) {
		response.Todo, response.Added = st.Todos.AddTodo(payload.Text, todo.AddOptions{Priority: payload.Priority})
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosRemove(w http.ResponseWriter, r *http.Request) {
	var payload todoIDRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todosRemoveResponse
	s.ctx.Do(func(st app.Stores) {
		response.Removed = st.Todos.RemoveTodo(payload.ID)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosToggle(w http.ResponseWriter, r *http.Request) {
	var payload todoIDRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todoResponse
	s.ctx.Do(func(st app.Stores) {
		if st.Todos.ToggleTodo(payload.ID) {
			response.Todo, response.Found = st.Todos.Find(payload.ID)
		}
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosUpdate(w http.ResponseWriter, r *http.Request) {
	var payload todosUpdateRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todoResponse
	s.ctx.Do(func(st app.Stores) {
		response.Todo, response.Found = st.Todos.UpdateTodo(payload.ID, payload.Options)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosClearCompleted(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todosClearCompletedResponse
	s.ctx.Do(func(st app.Stores) {
		response.Removed = st.Todos.ClearCompleted()
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosFilter(w http.ResponseWriter, r *http.Request) {
	var payload todosFilterRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	filter, err := todo.ParseFilter(payload.Filter)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	var response todosFilterResponse
	s.ctx.Do(func(st app.Stores) {
		st.Todos.SetFilter(filter)
		response.Filter = st.Todos.Filter()
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosMarkAll(w http.ResponseWriter, r *http.Request) {
	var payload todosMarkAllRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todosStatsResponse
	s.ctx.Do(func(st app.Stores) {
		if payload.Completed {
			st.Todos.MarkAllComplete()
		} else {
			st.Todos.MarkAllIncomplete()
		}
		response.Stats = st.Todos.Stats()
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTodosStats(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response todosStatsResponse
	s.ctx.Do(func(st app.Stores) {
		response.Stats = st.Todos.Stats()
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	writeJSON(w, http.StatusOK, routesResponse{Routes: s.ctx.Router().Routes()})
}
