package memoria

import (
	"fmt"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// ConstruirTablaPaginas asigna a la página lógica i el marco i, en el orden en que se reservaron.
// La tarea se queda con el slice de marcos.
func ConstruirTablaPaginas(t *Tarea, marcos []int) error {
	if len(marcos) != t.TotalPaginas() {
		return fmt.Errorf("la tarea %s necesita %d marcos y recibió %d", t.Nombre, t.TotalPaginas(), len(marcos))
	}

	t.TablaPaginas = marcos

	utils.InfoLog.Debug("Tabla de páginas construida", "tarea", t.Nombre,
		"paginas_codigo", t.PaginasCodigo, "paginas_datos", t.PaginasDatos, "marcos", marcos)
	return nil
}
