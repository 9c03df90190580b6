package ipc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var ErrLapRejected = errors.New("lap not recorded: stopwatch is not running")

type StopwatchHandler interface {
	Toggle() error
	Start() error
	Stop() error
	Reset() error
	RecordLap() error
	SetTheme(dark bool) error
	State() State
}

type WindowHandler interface {
	Show()
	Quit()
}

type serverImpl struct {
	swHandler StopwatchHandler
	wdHandler WindowHandler
}

func NewServer(swHandler StopwatchHandler, wdHandler WindowHandler) *http.Server {
	s := serverImpl{swHandler: swHandler, wdHandler: wdHandler}
	return &http.Server{
		Handler: s.createHandler(),
	}
}

func (s *serverImpl) createHandler() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("The given path is not valid"))
	})
	r.Get(PingPath, s.makeSimpleEndpointHandler(func() error { return nil }))
	r.Post(ShowPath, s.makeSimpleEndpointHandler(func() error {
		if s.wdHandler == nil {
			return errors.New("no window")
		}
		s.wdHandler.Show()
		return nil
	}))
	r.Post(QuitPath, s.makeSimpleEndpointHandler(func() error {
		if s.wdHandler == nil {
			return errors.New("no window")
		}
		go s.wdHandler.Quit()
		return nil
	}))
	r.Post(TogglePath, s.makeSimpleEndpointHandler(s.swHandler.Toggle))
	r.Post(StartPath, s.makeSimpleEndpointHandler(s.swHandler.Start))
	r.Post(StopPath, s.makeSimpleEndpointHandler(s.swHandler.Stop))
	r.Post(ResetPath, s.makeSimpleEndpointHandler(s.swHandler.Reset))
	r.Post(LapPath, s.makeSimpleEndpointHandler(s.swHandler.RecordLap))
	r.Post(ThemePath, func(w http.ResponseWriter, r *http.Request) {
		dark, err := strconv.ParseBool(r.URL.Query().Get("dark"))
		if err != nil {
			s.writeErr(w, http.StatusBadRequest, err)
			return
		}
		s.writeSimpleResponse(w, s.swHandler.SetTheme(dark))
	})
	r.Get(StatePath, func(w http.ResponseWriter, r *http.Request) {
		b, err := json.Marshal(s.swHandler.State())
		if err != nil {
			s.writeErr(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(b)
	})
	return r
}

func (s *serverImpl) makeSimpleEndpointHandler(f func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeSimpleResponse(w, f())
	}
}

func (s *serverImpl) writeSimpleResponse(w http.ResponseWriter, err error) {
	if err == nil {
		s.writeOK(w)
	} else {
		s.writeErr(w, http.StatusInternalServerError, err)
	}
}

func (s *serverImpl) writeOK(w http.ResponseWriter) (int, error) {
	var r Response
	b, err := json.Marshal(&r)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

func (s *serverImpl) writeErr(w http.ResponseWriter, status int, err error) (int, error) {
	r := Response{Error: err.Error()}
	b, err := json.Marshal(&r)
	if err != nil {
		return 0, err
	}
	w.WriteHeader(status)
	return w.Write(b)
}
