package memoria

import (
	"fmt"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// Valores de la configuración de referencia
const (
	TamPaginaDefecto       = 512
	MaxMemoriaTareaDefecto = 4096
	MarcoInicialDefecto    = 40
	MarcoFinalDefecto      = 127
	MaxTareasDefecto       = 4
)

// Config representa la configuración del gestor de memoria
type Config struct {
	TamPagina       int    `json:"TAM_PAGINA" toml:"TAM_PAGINA"`
	MaxMemoriaTarea int    `json:"MAX_MEMORIA_TAREA" toml:"MAX_MEMORIA_TAREA"`
	MarcoInicial    int    `json:"MARCO_INICIAL" toml:"MARCO_INICIAL"`
	MarcoFinal      int    `json:"MARCO_FINAL" toml:"MARCO_FINAL"`
	MaxTareas       int    `json:"MAX_TAREAS" toml:"MAX_TAREAS"`
	TareasPath      string `json:"TAREAS_PATH" toml:"TAREAS_PATH"`
	ExtensionTarea  string `json:"EXTENSION_TAREA" toml:"EXTENSION_TAREA"`
	LogLevel        string `json:"LOG_LEVEL" toml:"LOG_LEVEL"`
	LogFile         string `json:"LOG_FILE" toml:"LOG_FILE"`
	DumpPath        string `json:"DUMP_PATH" toml:"DUMP_PATH"`           // vacío = sin dumps
	DumpFormato     string `json:"DUMP_FORMATO" toml:"DUMP_FORMATO"`     // json | cbor
	HistorialPath   string `json:"HISTORIAL_PATH" toml:"HISTORIAL_PATH"` // vacío = sin historial
	IPMemoria       string `json:"IP_MEMORIA" toml:"IP_MEMORIA"`
	PuertoMemoria   int    `json:"PUERTO_MEMORIA" toml:"PUERTO_MEMORIA"`
	RetardoMemoria  int    `json:"RETARDO_MEMORIA" toml:"RETARDO_MEMORIA"` // ms por petición
}

// ConfigPorDefecto devuelve la configuración de referencia: páginas de 512 bytes,
// 4096 bytes por tarea y los marcos 40 a 127.
func ConfigPorDefecto() Config {
	return Config{
		TamPagina:       TamPaginaDefecto,
		MaxMemoriaTarea: MaxMemoriaTareaDefecto,
		MarcoInicial:    MarcoInicialDefecto,
		MarcoFinal:      MarcoFinalDefecto,
		MaxTareas:       MaxTareasDefecto,
		TareasPath:      "samples",
		ExtensionTarea:  ".tsk",
		LogLevel:        "info",
		DumpFormato:     FormatoJSON,
		IPMemoria:       "127.0.0.1",
		PuertoMemoria:   8002,
	}
}

// CargarConfig lee la configuración desde un archivo JSON o TOML; los campos ausentes
// conservan los valores por defecto.
func CargarConfig(ruta string) (Config, error) {
	config := ConfigPorDefecto()
	if ruta == "" {
		return config, nil
	}
	if err := utils.CargarConfiguracionEn(ruta, &config); err != nil {
		return Config{}, err
	}
	if err := config.Validar(); err != nil {
		return Config{}, fmt.Errorf("configuración inválida en %s: %w", ruta, err)
	}
	return config, nil
}

// Validar rechaza configuraciones inconsistentes
func (c Config) Validar() error {
	if c.TamPagina <= 0 {
		return fmt.Errorf("TAM_PAGINA debe ser positivo (%d)", c.TamPagina)
	}
	if c.MaxMemoriaTarea <= 0 || c.MaxMemoriaTarea%c.TamPagina != 0 {
		return fmt.Errorf("MAX_MEMORIA_TAREA (%d) debe ser un múltiplo positivo de TAM_PAGINA (%d)",
			c.MaxMemoriaTarea, c.TamPagina)
	}
	if c.MarcoInicial < 0 || c.MarcoFinal < c.MarcoInicial {
		return fmt.Errorf("rango de marcos inválido [%d, %d]", c.MarcoInicial, c.MarcoFinal)
	}
	if c.MaxTareas <= 0 {
		return fmt.Errorf("MAX_TAREAS debe ser positivo (%d)", c.MaxTareas)
	}
	if c.DumpFormato != FormatoJSON && c.DumpFormato != FormatoCBOR {
		return fmt.Errorf("DUMP_FORMATO desconocido %q", c.DumpFormato)
	}
	return nil
}

// Parametros devuelve los límites que usa el intérprete para cada tarea
func (c Config) Parametros() Parametros {
	return Parametros{TamPagina: c.TamPagina, MaxMemoriaTarea: c.MaxMemoriaTarea}
}

// Parametros son los límites de memoria de una tarea
type Parametros struct {
	TamPagina       int
	MaxMemoriaTarea int
}

// ParametrosPorDefecto devuelve páginas de 512 bytes y 4096 bytes por tarea
func ParametrosPorDefecto() Parametros {
	return Parametros{TamPagina: TamPaginaDefecto, MaxMemoriaTarea: MaxMemoriaTareaDefecto}
}

// MaxPaginasLogicas es la capacidad de la tabla de páginas de una tarea
func (p Parametros) MaxPaginasLogicas() int {
	return p.MaxMemoriaTarea / p.TamPagina
}

// calcularNumeroPaginas redondea hacia arriba un tamaño en bytes a páginas
func (p Parametros) calcularNumeroPaginas(tamanio int) int {
	return (tamanio + p.TamPagina - 1) / p.TamPagina
}
