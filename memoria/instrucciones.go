package memoria

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// TipoInstruccion clasifica una línea del script por su forma
type TipoInstruccion int

const (
	InstruccionVacia TipoInstruccion = iota
	InstruccionDeclaracion
	InstruccionAcceso
	InstruccionInvalida
)

func (t TipoInstruccion) String() string {
	switch t {
	case InstruccionVacia:
		return "VACIA"
	case InstruccionDeclaracion:
		return "DECLARACION"
	case InstruccionAcceso:
		return "ACCESO"
	default:
		return "INVALIDA"
	}
}

// Instruccion es una línea ya clasificada. Valor es el tamaño en una declaración
// y la posición en un acceso.
type Instruccion struct {
	Tipo   TipoInstruccion
	Vector string
	Valor  int
}

var (
	patronEncabezado  = regexp.MustCompile(`^#T=(\d+)$`)
	patronDeclaracion = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s+new\s+(\d+)$`)
	patronAcceso      = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[\s*(-?\d+)\s*\]$`)
)

// ClasificarLinea decide por la forma de la línea si es una declaración `<nombre> new <tamaño>`,
// un acceso `<nombre>[<posición>]`, una línea vacía o una instrucción inválida. No valida nada
// contra la tarea.
func ClasificarLinea(linea string) Instruccion {
	linea = strings.TrimSpace(linea)
	if linea == "" {
		return Instruccion{Tipo: InstruccionVacia}
	}

	if m := patronDeclaracion.FindStringSubmatch(linea); m != nil {
		tamanio, err := strconv.Atoi(m[2])
		if err != nil {
			return Instruccion{Tipo: InstruccionInvalida}
		}
		return Instruccion{Tipo: InstruccionDeclaracion, Vector: m[1], Valor: tamanio}
	}

	if m := patronAcceso.FindStringSubmatch(linea); m != nil {
		posicion, err := strconv.Atoi(m[2])
		if err != nil {
			return Instruccion{Tipo: InstruccionInvalida}
		}
		return Instruccion{Tipo: InstruccionAcceso, Vector: m[1], Valor: posicion}
	}

	return Instruccion{Tipo: InstruccionInvalida}
}

// LeerEncabezado interpreta la primera línea `#T=<tamaño del código>`
func LeerEncabezado(linea string) (int, bool) {
	m := patronEncabezado.FindStringSubmatch(strings.TrimSpace(linea))
	if m == nil {
		return 0, false
	}
	memoriaCodigo, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return memoriaCodigo, true
}

// Aplicar ejecuta una instrucción clasificada sobre la tarea
func (t *Tarea) Aplicar(inst Instruccion) error {
	switch inst.Tipo {
	case InstruccionVacia:
		return nil
	case InstruccionDeclaracion:
		return t.DeclararVector(inst.Vector, inst.Valor)
	case InstruccionAcceso:
		return t.RegistrarAcceso(inst.Vector, inst.Valor)
	default:
		return errorTarea(t.Nombre, ErrInstruccionInvalida,
			"La tarea %s no será ejecutada, pues tiene instrucciones distintas de los tipos 1 y 2.", t.Nombre)
	}
}

// Interpretar lee el script completo de una tarea y construye su modelo de memoria.
// El primer error aborta la tarea entera; no hay ejecución parcial.
func Interpretar(nombre string, r io.Reader, p Parametros) (*Tarea, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
			return nil, errorLectura(nombre, err)
		}
		return nil, errorEncabezado(nombre)
	}

	memoriaCodigo, ok := LeerEncabezado(scanner.Text())
	if !ok {
		return nil, errorEncabezado(nombre)
	}

	tarea, err := NuevaTarea(nombre, memoriaCodigo, p)
	if err != nil {
		return nil, conLinea(err, 1)
	}
	utils.InfoLog.Debug("Encabezado leído", "tarea", nombre, "memoria_codigo", memoriaCodigo)

	numero := 2
	for ; scanner.Scan(); numero++ {
		inst := ClasificarLinea(scanner.Text())
		if inst.Tipo == InstruccionVacia {
			continue
		}

		if err := tarea.Aplicar(inst); err != nil {
			return nil, conLinea(err, numero)
		}
		utils.InfoLog.Debug("Instrucción aplicada", "tarea", nombre, "linea", numero,
			"tipo", inst.Tipo.String(), "vector", inst.Vector, "valor", inst.Valor)
	}

	if err := scanner.Err(); err != nil {
		// una línea que no entra en el buffer del scanner no es ninguna instrucción válida
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, conLinea(tarea.Aplicar(Instruccion{Tipo: InstruccionInvalida}), numero)
		}
		return nil, errorLectura(nombre, err)
	}

	return tarea, nil
}

// InterpretarLineas es Interpretar sobre líneas ya separadas
func InterpretarLineas(nombre string, lineas []string, p Parametros) (*Tarea, error) {
	return Interpretar(nombre, strings.NewReader(strings.Join(lineas, "\n")), p)
}

func errorEncabezado(nombre string) error {
	e := errorTarea(nombre, ErrEncabezadoInvalido,
		"La tarea %s tiene formato inválido (no comienza con los caracteres #T=<tamaño>).", nombre)
	e.Linea = 1
	return e
}

func errorLectura(nombre string, causa error) error {
	e := errorTarea(nombre, ErrArchivoNoDisponible, "Error al leer el archivo de la tarea %s: %v", nombre, causa)
	e.Causa = causa
	return e
}

func conLinea(err error, numero int) error {
	var et *ErrorTarea
	if errors.As(err, &et) {
		et.Linea = numero
	}
	return err
}
