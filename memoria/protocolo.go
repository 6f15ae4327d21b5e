package memoria

// RespuestaEjecucion es lo que devuelve el servidor de memoria al ejecutar una tarea
type RespuestaEjecucion struct {
	Status  string   `json:"status,omitempty"`
	Error   string   `json:"error,omitempty"`
	Tipo    string   `json:"tipo,omitempty"`
	Reporte *Reporte `json:"reporte,omitempty"`
}

// RespuestaHandshake describe los límites con los que trabaja el servidor
type RespuestaHandshake struct {
	Status          string `json:"status"`
	TamPagina       int    `json:"tam_pagina"`
	MaxMemoriaTarea int    `json:"max_memoria_tarea"`
	MarcosTotales   int    `json:"marcos_totales"`
}

// RespuestaEstadoMarcos informa el estado del pool y las métricas de la corrida
type RespuestaEstadoMarcos struct {
	Status         string          `json:"status"`
	MarcosLibres   int             `json:"marcos_libres"`
	MarcosTotales  int             `json:"marcos_totales"`
	MarcosOcupados int             `json:"marcos_ocupados"`
	Metricas       ResumenMetricas `json:"metricas"`
}

// NuevaRespuestaEjecucion arma la respuesta a partir del resultado de una tarea
func NuevaRespuestaEjecucion(t *Tarea, err error) RespuestaEjecucion {
	if err != nil {
		return RespuestaEjecucion{Error: err.Error(), Tipo: TipoError(err)}
	}
	return RespuestaEjecucion{Status: "OK", Reporte: GenerarReporte(t)}
}
