package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// HTTPHandlerFunc atiende un mensaje y devuelve lo que se serializa como respuesta
type HTTPHandlerFunc func(*Mensaje) (interface{}, error)

// HTTPServer recibe mensajes en POST /mensaje y los despacha por tipo
type HTTPServer struct {
	IP       string
	Puerto   int
	Nombre   string
	Listener net.Listener // si está asignado se sirve sobre él en lugar de IP:Puerto

	server   *http.Server
	handlers map[int]HTTPHandlerFunc
}

// RespuestaError es el cuerpo de cualquier respuesta con estado distinto de 200
type RespuestaError struct {
	Error string `json:"error"`
}

// NewHTTPServer crea un nuevo servidor HTTP
func NewHTTPServer(ip string, puerto int, nombre string) *HTTPServer {
	return &HTTPServer{
		IP:       ip,
		Puerto:   puerto,
		Nombre:   nombre,
		handlers: make(map[int]HTTPHandlerFunc),
	}
}

// RegisterHTTPHandler registra un manejador para un tipo específico de mensaje
func (s *HTTPServer) RegisterHTTPHandler(tipoMensaje int, handler HTTPHandlerFunc) {
	s.handlers[tipoMensaje] = handler
}

// Handler arma el mux con los endpoints /mensaje y /health
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /mensaje", s.atenderMensaje)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		responderJSON(w, http.StatusOK, EstadoModulo{Status: "ok", Module: s.Nombre})
	})
	return mux
}

func (s *HTTPServer) atenderMensaje(w http.ResponseWriter, r *http.Request) {
	var mensaje Mensaje
	if err := json.NewDecoder(r.Body).Decode(&mensaje); err != nil {
		responderJSON(w, http.StatusBadRequest, RespuestaError{fmt.Sprintf("Error decodificando mensaje: %v", err)})
		return
	}

	handler, existe := s.handlers[mensaje.Tipo]
	if !existe {
		responderJSON(w, http.StatusBadRequest, RespuestaError{fmt.Sprintf("No hay manejador para el tipo de mensaje %d", mensaje.Tipo)})
		return
	}

	respuesta, err := handler(&mensaje)
	if err != nil {
		ErrorLog.Error("Error en el manejador", "tipo", mensaje.Tipo, "origen", mensaje.Origen, "error", err)
		responderJSON(w, http.StatusInternalServerError, RespuestaError{fmt.Sprintf("Error en el manejador: %v", err)})
		return
	}
	responderJSON(w, http.StatusOK, respuesta)
}

func responderJSON(w http.ResponseWriter, estado int, cuerpo interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(estado)
	if err := json.NewEncoder(w).Encode(cuerpo); err != nil {
		ErrorLog.Error("Error escribiendo respuesta", "error", err)
	}
}

// Start sirve hasta que se llame a Shutdown; en ese caso devuelve nil
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.IP, s.Puerto),
		Handler: s.Handler(),
	}

	var err error
	if s.Listener != nil {
		InfoLog.Info("Servidor HTTP escuchando", "módulo", s.Nombre, "dirección", s.Listener.Addr().String())
		err = s.server.Serve(s.Listener)
	} else {
		InfoLog.Info("Servidor HTTP escuchando", "módulo", s.Nombre, "dirección", s.server.Addr)
		err = s.server.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown cierra el servidor esperando a que terminen las peticiones en curso
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
