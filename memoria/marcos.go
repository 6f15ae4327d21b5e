package memoria

import (
	"fmt"
	"sync"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// PoolMarcos es la lista de marcos físicos libres, compartida por todas las tareas de una corrida.
// Se inicializa en orden ascendente y nunca se reordena, así que reservar los primeros n
// marcos libres es asignarlos por orden de llegada. Los marcos no se devuelven.
type PoolMarcos struct {
	mu     sync.Mutex
	libres []int
	total  int
}

// NuevoPoolMarcos crea el pool con los marcos inicio..fin inclusive
func NuevoPoolMarcos(inicio, fin int) (*PoolMarcos, error) {
	if inicio < 0 || fin < inicio {
		return nil, fmt.Errorf("rango de marcos inválido [%d, %d]", inicio, fin)
	}

	total := fin - inicio + 1
	libres := make([]int, total)
	for i := range libres {
		libres[i] = inicio + i
	}

	utils.InfoLog.Info("Pool de marcos inicializado", "marco_inicial", inicio, "marco_final", fin, "total_marcos", total)
	return &PoolMarcos{libres: libres, total: total}, nil
}

// Reservar quita los primeros n marcos libres y los devuelve. El slice devuelto
// pertenece al llamador. Si no alcanzan los marcos el pool no se modifica.
func (p *PoolMarcos) Reservar(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("cantidad de marcos negativa: %d", n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.libres) {
		utils.ErrorLog.Error("Marcos insuficientes", "marcos_libres", len(p.libres), "marcos_requeridos", n)
		return nil, fmt.Errorf("%w: se requieren %d y quedan %d", ErrMarcosInsuficientes, n, len(p.libres))
	}

	marcos := make([]int, n)
	copy(marcos, p.libres[:n])
	p.libres = p.libres[n:]

	utils.InfoLog.Debug("Marcos reservados", "marcos", marcos, "marcos_libres", len(p.libres))
	return marcos, nil
}

// Libres devuelve la cantidad de marcos sin asignar
func (p *PoolMarcos) Libres() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.libres)
}

// Total devuelve la cantidad de marcos con la que se creó el pool
func (p *PoolMarcos) Total() int {
	return p.total
}

// Reservados devuelve la cantidad de marcos ya asignados a alguna tarea
func (p *PoolMarcos) Reservados() int {
	return p.total - p.Libres()
}

// MarcosLibres devuelve una copia de los identificadores libres, en orden de asignación
func (p *PoolMarcos) MarcosLibres() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	copia := make([]int, len(p.libres))
	copy(copia, p.libres)
	return copia
}
