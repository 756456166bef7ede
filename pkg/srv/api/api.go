/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package api serves the MCS controller over HTTP.
// The API is described by swagger.json, rendered at /docs.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"

	"jinr.ru/greenlab/go-mcs/pkg/channel"
	chifc "jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/device/mcs"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
	"jinr.ru/greenlab/go-mcs/pkg/srv"
)

//go:embed swagger.json
var swaggerJSON []byte

const (
	shutdownTimeout = 5 * time.Second
)

// Register is a named register value
type Register struct {
	Name  string     `json:"name"`
	Value *reg.Value `json:"value"`
	Text  string     `json:"text"`
}

// RegWrite is a register value in text form
type RegWrite struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Wait  bool   `json:"wait,omitempty"`
}

type ModeResp struct {
	Mode string `json:"mode"`
}

type InternalMode struct {
	Prescale *int `json:"prescale"`
}

type FloatValue struct {
	Value *float64 `json:"value"`
}

type Record struct {
	Channel    int     `json:"channel"`
	PointCount int     `json:"pointCount"`
	Bins       []int64 `json:"bins"`
}

type ExportRequest struct {
	// File name inside the export directory, generated when empty
	File string `json:"file,omitempty"`
	deviceifc.ExportOptions
}

type ExportResponse struct {
	ID string `json:"id"`
	*deviceifc.ExportResult
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	dev      deviceifc.MCS
	regs     chifc.ControlChannel
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	spec     *loads.Document
}

func NewApiServer(ctx context.Context, cfg *config.Config, dev deviceifc.MCS, regs chifc.ControlChannel, registry *prometheus.Registry) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.Api.Address, cfg.Api.Port)

	spec, err := loads.Analyzed(json.RawMessage(swaggerJSON), "")
	if err != nil {
		return nil, err
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mcs_api_requests_total",
		Help: "HTTP requests handled by the control API.",
	}, []string{"code", "method"})
	if err := registry.Register(requests); err != nil {
		return nil, err
	}

	s := &ApiServer{
		Context:  ctx,
		Config:   cfg,
		dev:      dev,
		regs:     regs,
		registry: registry,
		requests: requests,
		spec:     spec,
	}
	s.configureRouter()
	return s, nil
}

// Handler returns the router with logging, recovery, metrics and docs around it
func (s *ApiServer) Handler() http.Handler {
	var h http.Handler = s.Router
	h = middleware.Redoc(middleware.RedocOpts{
		Path:    "docs",
		SpecURL: "/swagger.json",
		Title:   s.spec.Spec().Info.Title,
	}, h)
	h = promhttp.InstrumentHandlerCounter(s.requests, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return handlers.CombinedLoggingHandler(log.Writer(), h)
}

// Run serves until the context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.Api.Address, s.Config.Api.Port)
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    fmt.Sprintf("%s:%d", s.Config.Api.Address, s.Config.Api.Port),
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-s.Context.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return err
		}
		return s.Context.Err()
	case err := <-errChan:
		return err
	}
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	s.Router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	s.Router.HandleFunc("/swagger.json", s.handleSwagger()).Methods("GET")

	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/reg/r/{name}", s.handleRegRead()).Methods("GET")
	subRouter.HandleFunc("/reg/w/{name}", s.handleRegWrite()).Methods("POST")
	subRouter.HandleFunc("/mode", s.handleMode()).Methods("GET")
	subRouter.HandleFunc("/mode/external", s.handleExternalMode()).Methods("POST")
	subRouter.HandleFunc("/mode/internal", s.handleInternalMode()).Methods("POST")
	subRouter.HandleFunc("/preset_real", s.handleFloat(s.dev.SetPresetRealTime)).Methods("POST")
	subRouter.HandleFunc("/dwell", s.handleFloat(s.dev.SetDwellTime)).Methods("POST")
	subRouter.HandleFunc("/auto_count", s.handleAutoCount()).Methods("POST")
	subRouter.HandleFunc("/acquisition/{action:start|stop|erase|advance}", s.handleAcquisition()).Methods("POST")
	subRouter.HandleFunc("/status", s.handleStatus()).Methods("GET")
	subRouter.HandleFunc("/mca/{channel:[0-9]+}", s.handleMca()).Methods("GET")
	subRouter.HandleFunc("/export", s.handleExport()).Methods("POST")
}

// errStatus maps controller errors to HTTP status codes
func errStatus(err error) int {
	switch {
	case errors.As(err, &channel.ErrRegisterNotFound{}):
		return http.StatusNotFound
	case errors.As(err, &mcs.ErrChannelOutOfRange{}):
		return http.StatusNotFound
	case errors.As(err, &mcs.ErrNoChannels{}):
		return http.StatusBadRequest
	case errors.As(err, &mcs.ErrExportFile{}):
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

// decodeBody decodes an optional JSON body into v, an empty body leaves v as is
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *ApiServer) handleSwagger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(swaggerJSON)
	}
}

func (s *ApiServer) handleRegRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling reg read request: name: %s", vars["name"])

		count := 0
		if c := r.URL.Query().Get("count"); c != "" {
			parsed, err := strconv.Atoi(c)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			count = parsed
		}

		value, err := s.regs.Get(vars["name"], count)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, &Register{Name: vars["name"], Value: value, Text: value.AsString()})
	}
}

func (s *ApiServer) handleRegWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		regWrite := &RegWrite{}
		if err := json.NewDecoder(r.Body).Decode(regWrite); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling reg write request: name: %s kind: %s value: %s", vars["name"], regWrite.Kind, regWrite.Value)

		kind, err := reg.ParseKind(regWrite.Kind)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		value, err := reg.Parse(kind, regWrite.Value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.regs.Put(vars["name"], value, regWrite.Wait); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := s.dev.Mode()
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, &ModeResp{Mode: mode.String()})
	}
}

func (s *ApiServer) handleExternalMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// absent fields keep defaults, explicit nulls are not written
		m := deviceifc.NewExternalMode()
		if err := decodeBody(r, &m); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.dev.SetExternalMode(m); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleInternalMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := &InternalMode{}
		if err := decodeBody(r, m); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.dev.SetInternalMode(m.Prescale); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleFloat(set func(float64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := &FloatValue{}
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if v.Value == nil {
			http.Error(w, "value is required", http.StatusBadRequest)
			return
		}
		if err := set(*v.Value); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleAutoCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.dev.SetAutoCountMode(); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleAcquisition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling acquisition request: action: %s", vars["action"])
		var err error
		switch vars["action"] {
		case "start":
			err = s.dev.Start()
		case "stop":
			err = s.dev.Stop()
		case "erase":
			err = s.dev.Erase()
		case "advance":
			err = s.dev.SoftwareAdvance()
		default:
			err := srv.ErrUnknownOperation{
				What: "Wrong acquisition action. Must be one of start/stop/erase/advance",
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := s.dev.Status()
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, status)
	}
}

func (s *ApiServer) handleMca() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		n, err := strconv.Atoi(vars["channel"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		count := 0
		if c := r.URL.Query().Get("count"); c != "" {
			count, err = strconv.Atoi(c)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		pointCount, err := s.dev.ChannelPointCount(n)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		bins, err := s.dev.ReadChannel(n, count)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, &Record{Channel: n, PointCount: pointCount, Bins: bins})
	}
}

func (s *ApiServer) handleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &ExportRequest{}
		if err := decodeBody(r, req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := xid.New().String()
		name := fmt.Sprintf("mcs_%s.dat", id)
		if req.File != "" {
			name = filepath.Base(req.File)
			if name == "." || name == ".." || name == string(filepath.Separator) {
				http.Error(w, fmt.Sprintf("Wrong export file name: %q", req.File), http.StatusBadRequest)
				return
			}
		}
		filename := filepath.Join(s.Config.Api.ExportDir, name)
		log.Debug("Handling export request: id: %s file: %s", id, filename)

		result, err := s.dev.Export(filename, req.ExportOptions)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, &ExportResponse{ID: id, ExportResult: result})
	}
}
