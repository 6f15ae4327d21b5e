package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mensaje representa un mensaje genérico entre módulos
type Mensaje struct {
	Tipo      int         `json:"tipo"`
	Operacion string      `json:"operacion"`
	Origen    string      `json:"origen"`
	Datos     interface{} `json:"datos"`
}

// EstadoModulo es la respuesta de /health
type EstadoModulo struct {
	Status string `json:"status"`
	Module string `json:"module"`
}

// ErrorHTTP es una respuesta con estado distinto de 200
type ErrorHTTP struct {
	Estado int
	Cuerpo string
}

func (e *ErrorHTTP) Error() string {
	return fmt.Sprintf("respuesta HTTP no exitosa: %d - %s", e.Estado, e.Cuerpo)
}

// HTTPClient envía mensajes a otro módulo
type HTTPClient struct {
	BaseURL string
	Nombre  string
	client  *http.Client
}

// NewHTTPClient crea un cliente para el módulo en ip:puerto
func NewHTTPClient(ip string, puerto int, nombre string) *HTTPClient {
	return NewHTTPClientURL(fmt.Sprintf("http://%s:%d", ip, puerto), nombre)
}

// NewHTTPClientURL crea un cliente contra una URL base ya armada
func NewHTTPClientURL(baseURL string, nombre string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Nombre:  nombre,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// EnviarHTTPMensaje envía un mensaje y devuelve la respuesta decodificada sin tipo
func (c *HTTPClient) EnviarHTTPMensaje(tipo int, operacion string, datos interface{}) (interface{}, error) {
	var resultado interface{}
	if err := c.EnviarHTTPMensajeEn(tipo, operacion, datos, &resultado); err != nil {
		return nil, err
	}
	return resultado, nil
}

// EnviarHTTPMensajeEn envía un mensaje y decodifica la respuesta en destino
func (c *HTTPClient) EnviarHTTPMensajeEn(tipo int, operacion string, datos interface{}, destino interface{}) error {
	return c.EnviarHTTPMensajeContexto(context.Background(), tipo, operacion, datos, destino)
}

// EnviarHTTPMensajeContexto es EnviarHTTPMensajeEn cancelable por ctx
func (c *HTTPClient) EnviarHTTPMensajeContexto(ctx context.Context, tipo int, operacion string, datos interface{}, destino interface{}) error {
	cuerpo, err := json.Marshal(Mensaje{Tipo: tipo, Operacion: operacion, Origen: c.Nombre, Datos: datos})
	if err != nil {
		return fmt.Errorf("error al serializar mensaje: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/mensaje", bytes.NewReader(cuerpo))
	if err != nil {
		return fmt.Errorf("error al armar petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	InfoLog.Debug("Enviando mensaje", "destino", c.BaseURL, "tipo", tipo, "operacion", operacion)
	return c.hacer(req, destino)
}

// VerificarConexion consulta /health del módulo destino
func (c *HTTPClient) VerificarConexion() error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("error al armar petición: %w", err)
	}

	var estado EstadoModulo
	if err := c.hacer(req, &estado); err != nil {
		return fmt.Errorf("error al verificar conexión con %s: %w", c.BaseURL, err)
	}

	InfoLog.Info("Conexión verificada", "destino", c.BaseURL, "módulo", estado.Module)
	return nil
}

func (c *HTTPClient) hacer(req *http.Request, destino interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error al enviar mensaje HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cuerpo, _ := io.ReadAll(resp.Body)
		return &ErrorHTTP{Estado: resp.StatusCode, Cuerpo: string(bytes.TrimSpace(cuerpo))}
	}

	if err := json.NewDecoder(resp.Body).Decode(destino); err != nil {
		return fmt.Errorf("error al decodificar respuesta: %w", err)
	}
	return nil
}
