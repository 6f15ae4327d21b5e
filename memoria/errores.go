package memoria

import (
	"errors"
	"fmt"
)

// Tipos de error de una tarea. Son mutuamente excluyentes: cada tarea fallida tiene uno solo.
var (
	ErrArchivoNoDisponible     = errors.New("archivo de tarea no disponible")
	ErrEncabezadoInvalido      = errors.New("encabezado inválido")
	ErrEncabezadoExcedeMemoria = errors.New("el código excede la memoria de la tarea")
	ErrInstruccionInvalida     = errors.New("instrucción inválida")
	ErrLimiteMemoria           = errors.New("límite de memoria excedido")
	ErrVectorDuplicado         = errors.New("vector duplicado")
	ErrVectorInexistente       = errors.New("vector inexistente")
	ErrAccesoFueraDeRango      = errors.New("acceso fuera de rango")
	ErrLimitePaginasLogicas    = errors.New("límite de páginas lógicas excedido")
	ErrMarcosInsuficientes     = errors.New("marcos físicos insuficientes")
)

var nombresTipo = map[error]string{
	ErrArchivoNoDisponible:     "ARCHIVO_NO_DISPONIBLE",
	ErrEncabezadoInvalido:      "ENCABEZADO_INVALIDO",
	ErrEncabezadoExcedeMemoria: "ENCABEZADO_EXCEDE_MEMORIA",
	ErrInstruccionInvalida:     "INSTRUCCION_INVALIDA",
	ErrLimiteMemoria:           "LIMITE_MEMORIA",
	ErrVectorDuplicado:         "VECTOR_DUPLICADO",
	ErrVectorInexistente:       "VECTOR_INEXISTENTE",
	ErrAccesoFueraDeRango:      "ACCESO_FUERA_DE_RANGO",
	ErrLimitePaginasLogicas:    "LIMITE_PAGINAS_LOGICAS",
	ErrMarcosInsuficientes:     "MARCOS_INSUFICIENTES",
}

// ErrorTarea es el fallo de una tarea completa, con el mensaje que se le muestra al usuario.
type ErrorTarea struct {
	Tarea   string
	Linea   int // 1-based; 0 cuando el error no proviene de una línea
	Tipo    error
	Causa   error
	Mensaje string
}

func (e *ErrorTarea) Error() string {
	if e == nil {
		return ""
	}
	if e.Mensaje == "" {
		return fmt.Sprintf("tarea %s: %s", e.Tarea, e.Tipo.Error())
	}
	return e.Mensaje
}

func (e *ErrorTarea) Unwrap() []error {
	if e.Causa == nil {
		return []error{e.Tipo}
	}
	return []error{e.Tipo, e.Causa}
}

func errorTarea(tarea string, tipo error, format string, args ...any) *ErrorTarea {
	return &ErrorTarea{Tarea: tarea, Tipo: tipo, Mensaje: fmt.Sprintf(format, args...)}
}

// TipoError devuelve el nombre estable del tipo de error, o "" si err no es un error de tarea.
func TipoError(err error) string {
	if err == nil {
		return ""
	}
	for tipo, nombre := range nombresTipo {
		if errors.Is(err, tipo) {
			return nombre
		}
	}
	return ""
}
