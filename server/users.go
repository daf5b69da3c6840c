package server

import (
	"net/http"

	"github.com/amonks/workshop/app"
	"github.com/amonks/workshop/user"
)

func sessionFrom(users *user.Store) Session {
	session := Session{
		LoggedIn:    users.IsLoggedIn(),
		Preferences: users.Preferences(),
	}
	if current, ok := users.CurrentUser(); ok {
		session.User = &current
	}
	return session
}

func (s *Server) handleUsersSession(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response Session
	s.ctx.Do(func(st app.Stores) {
		response = sessionFrom(st.Users)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleUsersLogin(w http.ResponseWriter, r *http.Request) {
	var payload usersLoginRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response Session
	s.ctx.Do(func(st app.Stores) {
		st.Users.Login(payload.User)
		response = sessionFrom(st.Users)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleUsersLogout(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response Session
	s.ctx.Do(func(st app.Stores) {
		st.Users.Logout()
		response = sessionFrom(st.Users)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleUsersProfile(w http.ResponseWriter, r *http.Request) {
	var payload usersProfileRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response usersProfileResponse
	s.ctx.Do(func(st app.Stores) {
		response.Updated = st.Users.UpdateProfile(payload.Update)
		response.Session = sessionFrom(st.Users)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleUsersPreferences(w http.ResponseWriter, r *http.Request) {
	var payload usersPreferencesRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response usersPreferencesResponse
	s.ctx.Do(func(st app.Stores) {
		response.Preferences = st.Users.UpdatePreferences(payload.Update)
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	var payload emptyRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response Directory
	s.ctx.Do(func(st app.Stores) {
		response.Users = st.Users.Users()
		response.Count = st.Users.UserCount()
	})
	if response.Users == nil {
		response.Users = []user.User{}
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleUsersAdd(w http.ResponseWriter, r *http.Request) {
	var payload usersAddRequest
	if !s.decodeRequest(w, r, &payload) {
		return
	}
	var response usersAddResponse
	s.ctx.Do(func(st app.Stores) {
		response.User = st.Users.AddUser(payload.User)
	})
	writeJSON(w, http.StatusOK, response)
}
