package memoria

import (
	"sync"

	"github.com/sisoputnfrba/gestor-memoria/utils"
)

// Metricas acumula estadísticas de una corrida
type Metricas struct {
	mu sync.Mutex

	TareasProcesadas int
	TareasFallidas   int
	MarcosReservados int
	FallosPorTipo    map[string]int
}

// ResumenMetricas es una copia de las métricas, segura para serializar
type ResumenMetricas struct {
	TareasProcesadas int            `json:"tareas_procesadas"`
	TareasFallidas   int            `json:"tareas_fallidas"`
	MarcosReservados int            `json:"marcos_reservados"`
	FallosPorTipo    map[string]int `json:"fallos_por_tipo"`
}

func NuevasMetricas() *Metricas {
	return &Metricas{FallosPorTipo: make(map[string]int)}
}

// Actualizar métricas de una tarea ejecutada
func (m *Metricas) registrarExito(tarea string, marcos int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TareasProcesadas++
	m.MarcosReservados += marcos

	utils.InfoLog.Info("Tarea ejecutada", "tarea", tarea, "marcos", marcos, "total_ejecutadas", m.TareasProcesadas)
}

// Actualizar métricas de una tarea fallida
func (m *Metricas) registrarFallo(tarea string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TareasFallidas++
	tipo := TipoError(err)
	if tipo == "" {
		tipo = "DESCONOCIDO"
	}
	m.FallosPorTipo[tipo]++

	utils.InfoLog.Info("Tarea fallida", "tarea", tarea, "tipo", tipo, "total_fallidas", m.TareasFallidas)
}

// Resumen devuelve una copia de las métricas actuales
func (m *Metricas) Resumen() ResumenMetricas {
	m.mu.Lock()
	defer m.mu.Unlock()

	fallos := make(map[string]int, len(m.FallosPorTipo))
	for tipo, cantidad := range m.FallosPorTipo {
		fallos[tipo] = cantidad
	}
	return ResumenMetricas{
		TareasProcesadas: m.TareasProcesadas,
		TareasFallidas:   m.TareasFallidas,
		MarcosReservados: m.MarcosReservados,
		FallosPorTipo:    fallos,
	}
}
