package memoria

import (
	"errors"
	"fmt"
	"io"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// Gestor procesa tareas una por una contra un único pool de marcos
type Gestor struct {
	params   Parametros
	pool     *PoolMarcos
	fuente   FuenteTareas
	metricas *Metricas
}

// Resultado de procesar una tarea: Tarea o Err, nunca ambos
type Resultado struct {
	Nombre string
	Tarea  *Tarea
	Err    error
}

func NuevoGestor(p Parametros, pool *PoolMarcos, fuente FuenteTareas) *Gestor {
	return &Gestor{params: p, pool: pool, fuente: fuente, metricas: NuevasMetricas()}
}

// ProcesarTarea abre el script de la tarea, la interpreta y le asigna marcos.
// La fuente se cierra una sola vez sin importar por dónde falle.
func (g *Gestor) ProcesarTarea(nombre string) (*Tarea, error) {
	rc, err := g.fuente.Abrir(nombre)
	if err != nil {
		err = errorApertura(nombre, err)
		g.registrarFallo(nombre, err)
		return nil, err
	}
	defer rc.Close()

	return g.Procesar(nombre, rc)
}

// Procesar ejecuta una tarea cuyo script ya está abierto
func (g *Gestor) Procesar(nombre string, r io.Reader) (*Tarea, error) {
	utils.InfoLog.Info("Procesando tarea", "tarea", nombre)

	tarea, err := g.ejecutar(nombre, r)
	if err != nil {
		g.registrarFallo(nombre, err)
		return nil, err
	}

	g.metricas.registrarExito(nombre, tarea.TotalPaginas())
	utils.InfoLog.Info(fmt.Sprintf("## Tarea: %s - Páginas lógicas: %d - Marcos: %v - Marcos libres: %d",
		nombre, tarea.TotalPaginas(), tarea.TablaPaginas, g.pool.Libres()))
	return tarea, nil
}

func (g *Gestor) ejecutar(nombre string, r io.Reader) (*Tarea, error) {
	tarea, err := Interpretar(nombre, r, g.params)
	if err != nil {
		return nil, err
	}

	if err := tarea.Finalizar(); err != nil {
		return nil, err
	}

	marcos, err := g.pool.Reservar(tarea.TotalPaginas())
	if err != nil {
		if errors.Is(err, ErrMarcosInsuficientes) {
			e := errorTarea(nombre, ErrMarcosInsuficientes, "Memoria física insuficiente para la tarea %s.", nombre)
			e.Causa = err
			return nil, e
		}
		return nil, err
	}

	if err := ConstruirTablaPaginas(tarea, marcos); err != nil {
		return nil, err
	}
	return tarea, nil
}

// ProcesarLote procesa las tareas en el orden recibido. Un fallo no detiene al resto.
func (g *Gestor) ProcesarLote(nombres []string) []Resultado {
	resultados := make([]Resultado, 0, len(nombres))
	for _, nombre := range nombres {
		tarea, err := g.ProcesarTarea(nombre)
		resultados = append(resultados, Resultado{Nombre: nombre, Tarea: tarea, Err: err})
	}
	return resultados
}

func (g *Gestor) registrarFallo(nombre string, err error) {
	utils.ErrorLog.Error("Tarea no ejecutada", "tarea", nombre, "tipo", TipoError(err), "error", err)
	g.metricas.registrarFallo(nombre, err)
}

// Pool devuelve el pool de marcos compartido
func (g *Gestor) Pool() *PoolMarcos {
	return g.pool
}

// Metricas devuelve un resumen de lo procesado hasta ahora
func (g *Gestor) Metricas() ResumenMetricas {
	return g.metricas.Resumen()
}

// Parametros devuelve los límites con los que se interpretan las tareas
func (g *Gestor) Parametros() Parametros {
	return g.params
}
