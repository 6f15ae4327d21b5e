package memoria

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// Estados de una ejecución en el historial
const (
	EstadoEjecutada = "EJECUTADA"
	EstadoFallida   = "FALLIDA"
)

// RegistroEjecucion es una fila del historial
type RegistroEjecucion struct {
	ID        int64
	Tarea     string
	Estado    string
	TipoError string
	Mensaje   string
	Marcos    []int
	Fecha     time.Time
}

// Historial guarda el resultado de cada tarea en una base SQLite
type Historial struct {
	db *sql.DB
	mu sync.Mutex
}

// AbrirHistorial abre (o crea) la base del historial en ruta
func AbrirHistorial(ruta string) (*Historial, error) {
	if dir := filepath.Dir(ruta); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error al crear directorio del historial: %w", err)
		}
	}

	db, err := sql.Open("sqlite", ruta)
	if err != nil {
		return nil, fmt.Errorf("error abriendo historial %s: %w", ruta, err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS ejecuciones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tarea TEXT NOT NULL,
		estado TEXT NOT NULL,
		tipo_error TEXT NOT NULL DEFAULT '',
		mensaje TEXT NOT NULL DEFAULT '',
		marcos TEXT NOT NULL DEFAULT '[]',
		fecha TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creando tabla de ejecuciones: %w", err)
	}

	utils.InfoLog.Info("Historial abierto", "ruta", ruta)
	return &Historial{db: db}, nil
}

// Registrar guarda el resultado de una tarea: los marcos si se ejecutó, el error si falló
func (h *Historial) Registrar(res Resultado) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	estado, tipo, mensaje := EstadoEjecutada, "", ""
	marcos := []int{}
	if res.Err != nil {
		estado, tipo, mensaje = EstadoFallida, TipoError(res.Err), res.Err.Error()
	} else if res.Tarea != nil {
		marcos = res.Tarea.TablaPaginas
	}

	marcosJSON, err := json.Marshal(marcos)
	if err != nil {
		return fmt.Errorf("error serializando marcos de %s: %w", res.Nombre, err)
	}

	_, err = h.db.Exec(
		`INSERT INTO ejecuciones (tarea, estado, tipo_error, mensaje, marcos, fecha) VALUES (?, ?, ?, ?, ?, ?)`,
		res.Nombre, estado, tipo, mensaje, string(marcosJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("error registrando ejecución de %s: %w", res.Nombre, err)
	}
	return nil
}

// Consultar devuelve todas las ejecuciones en orden de registro
func (h *Historial) Consultar() ([]RegistroEjecucion, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	filas, err := h.db.Query(`SELECT id, tarea, estado, tipo_error, mensaje, marcos, fecha FROM ejecuciones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error consultando historial: %w", err)
	}
	defer filas.Close()

	var registros []RegistroEjecucion
	for filas.Next() {
		var (
			reg          RegistroEjecucion
			marcos, fech string
		)
		if err := filas.Scan(&reg.ID, &reg.Tarea, &reg.Estado, &reg.TipoError, &reg.Mensaje, &marcos, &fech); err != nil {
			return nil, fmt.Errorf("error leyendo historial: %w", err)
		}
		if err := json.Unmarshal([]byte(marcos), &reg.Marcos); err != nil {
			return nil, fmt.Errorf("marcos corruptos en ejecución %d: %w", reg.ID, err)
		}
		reg.Fecha, err = time.Parse(time.RFC3339Nano, fech)
		if err != nil {
			return nil, fmt.Errorf("fecha corrupta en ejecución %d: %w", reg.ID, err)
		}
		registros = append(registros, reg)
	}
	return registros, filas.Err()
}

// Close cierra la base
func (h *Historial) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}
