package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Modulo representa un módulo del simulador expuesto por HTTP
type Modulo struct {
	Nombre      string
	Server      *HTTPServer
	HandlerFunc map[int]map[string]HTTPHandlerFunc
}

// NuevoModulo crea una nueva instancia de un módulo
func NuevoModulo(nombre string) *Modulo {
	return &Modulo{
		Nombre:      nombre,
		HandlerFunc: make(map[int]map[string]HTTPHandlerFunc),
	}
}

// RegistrarHandler registra un handler para un tipo de mensaje y operación específicos
func (m *Modulo) RegistrarHandler(tipo int, operacion string, handler HTTPHandlerFunc) {
	if _, existe := m.HandlerFunc[tipo]; !existe {
		m.HandlerFunc[tipo] = make(map[string]HTTPHandlerFunc)
	}
	m.HandlerFunc[tipo][operacion] = handler
}

// ConstruirServidor crea el servidor HTTP del módulo con el despacho por tipo y operación ya registrado
func (m *Modulo) ConstruirServidor(ip string, puerto int) *HTTPServer {
	m.Server = NewHTTPServer(ip, puerto, m.Nombre)

	for tipo, handlersPorOperacion := range m.HandlerFunc {
		m.Server.RegisterHTTPHandler(tipo, func(msg *Mensaje) (interface{}, error) {
			operacion := msg.Operacion
			if operacion == "" {
				operacion = "default"
			}

			handler, existe := handlersPorOperacion[operacion]
			if !existe {
				handler, existe = handlersPorOperacion["default"]
				if !existe {
					ErrorLog.Error("No hay handler para operación", "tipo", tipo, "operacion", operacion)
					return nil, fmt.Errorf("no hay handler para operación %s", operacion)
				}
			}

			return handler(msg)
		})
	}

	return m.Server
}

// IniciarServidor levanta el servidor HTTP del módulo en segundo plano
func (m *Modulo) IniciarServidor(ip string, puerto int) {
	servidor := m.ConstruirServidor(ip, puerto)

	go func() {
		err := servidor.Start()
		if err != nil {
			ErrorLog.Error("Error al iniciar servidor HTTP", "error", err)
			os.Exit(1)
		}
	}()

	InfoLog.Info("Servidor HTTP iniciado", "módulo", m.Nombre, "dirección", fmt.Sprintf("%s:%d", ip, puerto))
}

// CargarConfiguracion decodifica un archivo JSON o TOML (según su extensión) a un tipo genérico
func CargarConfiguracion[T any](ruta string) (*T, error) {
	var config T
	if err := CargarConfiguracionEn(ruta, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// CargarConfiguracionEn decodifica sobre una configuración ya inicializada, así los campos
// ausentes en el archivo conservan sus valores por defecto
func CargarConfiguracionEn[T any](ruta string, config *T) error {
	InfoLog.Debug("Cargando configuración", "ruta", ruta)

	absPath, err := filepath.Abs(ruta)
	if err != nil {
		return fmt.Errorf("error obteniendo ruta absoluta de %s: %w", ruta, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("error abriendo archivo de configuración %s: %w", absPath, err)
	}

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".toml":
		if err := toml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("error decodificando configuración %s: %w", absPath, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("error decodificando configuración %s: %w", absPath, err)
		}
	}

	InfoLog.Info("Configuración cargada correctamente", "archivo", absPath)
	return nil
}

// ============================================================================
// Constantes para tipos de mensajes entre módulos
// ============================================================================
const (
	// === COMUNICACIÓN BÁSICA (1-9) ===
	MensajeHandshake = 1 // Conexión inicial

	// === GESTIÓN DE MEMORIA (10-19) ===
	MensajeEjecutarTarea = 10 // Interpretar una tarea y asignarle marcos
	MensajeEstadoMarcos  = 11 // Consultar marcos libres y métricas
)
